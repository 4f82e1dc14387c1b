package repository

import (
	"context"
	"errors"

	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/apierror"
	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/dto"
	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReagentRepository defines the data access contract for reagents.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via in-memory stubs.
type ReagentRepository interface {
	Create(ctx context.Context, r *model.Reagent) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Reagent, error)
	List(ctx context.Context, filter dto.ReagentFilter) ([]model.Reagent, error)
	Update(ctx context.Context, r *model.Reagent) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)

	// AdjustQuantity applies quantity += delta as a single guarded UPDATE so
	// that two concurrent deductions can never under-deduct or drive the
	// quantity negative. Returns apierror.ErrInsufficientStock when the guard
	// rejects the change and apierror.ErrNotFound for an unknown id.
	AdjustQuantity(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error

	// AdjustQuantityTx is the same operation scoped to a caller-owned
	// transaction — callers must pass the live tx instance.
	AdjustQuantityTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	// Nil in unit tests backed by stubs.
	DB() *gorm.DB
}

type reagentRepo struct{ db *gorm.DB }

func NewReagentRepository(db *gorm.DB) ReagentRepository { return &reagentRepo{db: db} }

func (r *reagentRepo) Create(ctx context.Context, m *model.Reagent) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *reagentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Reagent, error) {
	var m model.Reagent
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.ErrNotFound
	}
	return &m, err
}

func (r *reagentRepo) List(ctx context.Context, filter dto.ReagentFilter) ([]model.Reagent, error) {
	q := r.db.WithContext(ctx).Model(&model.Reagent{})

	if filter.Search != "" {
		p := "%" + filter.Search + "%"
		q = q.Where("name ILIKE ? OR cas_number ILIKE ? OR location ILIKE ?", p, p, p)
	}

	var reagents []model.Reagent
	err := q.Order("name ASC").Find(&reagents).Error
	return reagents, err
}

func (r *reagentRepo) Update(ctx context.Context, m *model.Reagent) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *reagentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Reagent{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apierror.ErrNotFound
	}
	return nil
}

func (r *reagentRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Reagent{}).Count(&n).Error
	return n, err
}

func (r *reagentRepo) AdjustQuantity(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	return r.adjust(r.db.WithContext(ctx), id, delta)
}

func (r *reagentRepo) AdjustQuantityTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	return r.adjust(tx, id, delta)
}

// adjust issues the read-modify-write as one statement; the WHERE guard makes
// the non-negativity check and the update atomic at the row level.
func (r *reagentRepo) adjust(db *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	res := db.Model(&model.Reagent{}).
		Where("id = ? AND quantity + ? >= 0", id, delta).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Guard rejected: missing row or would-be-negative quantity.
		var n int64
		if err := db.Model(&model.Reagent{}).Where("id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return apierror.ErrNotFound
		}
		return apierror.ErrInsufficientStock
	}
	return nil
}

func (r *reagentRepo) DB() *gorm.DB { return r.db }
