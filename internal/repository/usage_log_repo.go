package repository

import (
	"context"

	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UsageLogRepository interface {
	Create(ctx context.Context, e *model.UsageLog) error
	// CreateTx appends within a caller-owned transaction (usage recording
	// couples the quantity deduction and the ledger append atomically).
	CreateTx(tx *gorm.DB, e *model.UsageLog) error
	// ListByReagent returns all entries for a reagent, oldest first.
	ListByReagent(ctx context.Context, reagentID uuid.UUID) ([]model.UsageLog, error)
}

type usageLogRepo struct{ db *gorm.DB }

func NewUsageLogRepository(db *gorm.DB) UsageLogRepository { return &usageLogRepo{db: db} }

func (r *usageLogRepo) Create(ctx context.Context, e *model.UsageLog) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *usageLogRepo) CreateTx(tx *gorm.DB, e *model.UsageLog) error {
	return tx.Create(e).Error
}

func (r *usageLogRepo) ListByReagent(ctx context.Context, reagentID uuid.UUID) ([]model.UsageLog, error) {
	var entries []model.UsageLog
	err := r.db.WithContext(ctx).
		Where("reagent_id = ?", reagentID).
		Order("timestamp ASC").
		Find(&entries).Error
	return entries, err
}
