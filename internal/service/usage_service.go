package service

import (
	"context"
	"time"

	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/apierror"
	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/dto"
	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/model"
	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// UsageService owns the append-only consumption ledger.
type UsageService interface {
	// Record deducts quantity from the reagent and appends a ledger entry,
	// both inside one transaction — if the deduction fails (insufficient
	// stock, unknown reagent) no entry is written.
	Record(ctx context.Context, reagentID uuid.UUID, actor string, req dto.RecordUsageRequest) (*dto.RecordUsageResponse, error)
	// History returns all entries for a reagent ordered by timestamp
	// ascending. The result is a plain slice, restartable by definition.
	History(ctx context.Context, reagentID uuid.UUID) ([]dto.UsageLogResponse, error)
}

type usageService struct {
	reagents repository.ReagentRepository
	ledger   repository.UsageLogRepository
	rdb      *redis.Client
}

func NewUsageService(reagents repository.ReagentRepository, ledger repository.UsageLogRepository, rdb *redis.Client) UsageService {
	return &usageService{reagents: reagents, ledger: ledger, rdb: rdb}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func (s *usageService) Record(ctx context.Context, reagentID uuid.UUID, actor string, req dto.RecordUsageRequest) (*dto.RecordUsageResponse, error) {
	if !req.QuantityUsed.IsPositive() {
		return nil, apierror.Validationf("quantity_used must be strictly positive")
	}

	entry := &model.UsageLog{
		ReagentID:    reagentID,
		Actor:        actor,
		QuantityUsed: req.QuantityUsed,
		Timestamp:    time.Now().UTC(),
		Notes:        normalizeOptional(req.Notes),
	}

	// Deduction and append are all-or-nothing. InsufficientStock / NotFound
	// from the deduction propagate unchanged and roll the entry back.
	err := runTx(ctx, s.reagents.DB(), func(tx *gorm.DB) error {
		if err := s.reagents.AdjustQuantityTx(tx, reagentID, req.QuantityUsed.Neg()); err != nil {
			return err
		}
		return s.ledger.CreateTx(tx, entry)
	})
	if err != nil {
		return nil, err
	}
	// A consumption changes the low-stock picture just like an admin edit.
	invalidateAlertCache(ctx, s.rdb)

	reagent, err := s.reagents.FindByID(ctx, reagentID)
	if err != nil {
		return nil, err
	}

	return &dto.RecordUsageResponse{
		Entry:             usageToResponse(entry),
		RemainingQuantity: reagent.Quantity,
	}, nil
}

func (s *usageService) History(ctx context.Context, reagentID uuid.UUID) ([]dto.UsageLogResponse, error) {
	entries, err := s.ledger.ListByReagent(ctx, reagentID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UsageLogResponse, 0, len(entries))
	for i := range entries {
		resp = append(resp, usageToResponse(&entries[i]))
	}
	return resp, nil
}

func usageToResponse(e *model.UsageLog) dto.UsageLogResponse {
	return dto.UsageLogResponse{
		ID:           e.ID.String(),
		ReagentID:    e.ReagentID.String(),
		Actor:        e.Actor,
		QuantityUsed: e.QuantityUsed,
		Timestamp:    e.Timestamp.Format(time.RFC3339),
		Notes:        e.Notes,
	}
}
