package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UsageLog records one consumption event against a reagent. Entries are
// append-only: they are never mutated or deleted, and they deliberately
// survive deletion of the referenced reagent (audit trail — the reagent_id
// is allowed to dangle, so no FK constraint is declared).
type UsageLog struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ReagentID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Actor        string          `gorm:"not null"`
	QuantityUsed decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	Timestamp    time.Time       `gorm:"not null;index"`
	Notes        *string
}

// TableName overrides GORM's default pluralization (usage_logs).
func (UsageLog) TableName() string { return "usage_logs" }
