package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Units recognized for reagent quantities. Anything else is rejected at
// creation and update time.
var ValidUnits = []string{"g", "mg", "ml", "L", "bottles", "vials", "kg"}

// IsValidUnit reports whether u is one of the recognized units.
func IsValidUnit(u string) bool {
	for _, v := range ValidUnits {
		if u == v {
			return true
		}
	}
	return false
}

// Reagent is a trackable chemical/material inventory item. Quantity is kept
// as a decimal so that repeated deductions never accumulate float drift.
// The low-stock threshold is inclusive: quantity <= threshold flags the item.
type Reagent struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name              string    `gorm:"index;not null"`
	CASNumber         *string   `gorm:"column:cas_number"`
	Supplier          *string
	Location          string          `gorm:"not null"`
	Quantity          decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	Unit              string          `gorm:"type:varchar(20);not null;default:'g'"`
	ExpirationDate    *time.Time      `gorm:"type:date"`
	LowStockThreshold decimal.Decimal `gorm:"type:decimal(12,3);not null;default:1.0"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName overrides GORM's default pluralization (reagents, not reagent).
func (Reagent) TableName() string { return "reagents" }
