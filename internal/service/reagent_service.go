package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/apierror"
	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/dto"
	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/model"
	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// ReagentService defines the business logic contract for the reagent store.
type ReagentService interface {
	Create(ctx context.Context, req dto.CreateReagentRequest) (*dto.ReagentResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ReagentResponse, error)
	List(ctx context.Context, filter dto.ReagentFilter) (*dto.ReagentListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateReagentRequest) (*dto.ReagentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// AdjustQuantity applies quantity += delta atomically. It is the only
	// sanctioned quantity mutation outside a direct admin edit.
	AdjustQuantity(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (*dto.ReagentResponse, error)
}

type reagentService struct {
	repo repository.ReagentRepository
	rdb  *redis.Client
}

func NewReagentService(repo repository.ReagentRepository, rdb *redis.Client) ReagentService {
	return &reagentService{repo: repo, rdb: rdb}
}

// todayDate returns the current calendar date at UTC midnight; expiration
// comparisons are date-only, time of day never matters.
func todayDate() time.Time {
	y, m, d := time.Now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func (s *reagentService) Create(ctx context.Context, req dto.CreateReagentRequest) (*dto.ReagentResponse, error) {
	name := strings.TrimSpace(req.Name)
	location := strings.TrimSpace(req.Location)

	fields := map[string]string{}
	if name == "" {
		fields["name"] = "required"
	}
	if location == "" {
		fields["location"] = "required"
	}
	if req.Quantity.IsNegative() {
		fields["quantity"] = "must not be negative"
	}
	if !model.IsValidUnit(req.Unit) {
		fields["unit"] = fmt.Sprintf("must be one of %s", strings.Join(model.ValidUnits, ", "))
	}
	threshold := decimal.NewFromFloat(1.0)
	if req.LowStockThreshold != nil {
		if req.LowStockThreshold.IsNegative() {
			fields["low_stock_threshold"] = "must not be negative"
		}
		threshold = *req.LowStockThreshold
	}

	var expiration *time.Time
	warning := ""
	if req.ExpirationDate != nil && *req.ExpirationDate != "" {
		d, err := parseDate(*req.ExpirationDate)
		if err != nil {
			fields["expiration_date"] = "must be a YYYY-MM-DD date"
		} else {
			expiration = &d
			// Creation only warns about past or same-day expirations;
			// edits are the strict path.
			today := todayDate()
			switch {
			case d.Before(today):
				warning = fmt.Sprintf("expiration date %s already passed", d.Format(dateLayout))
			case d.Equal(today):
				warning = fmt.Sprintf("expires today (%s)", d.Format(dateLayout))
			}
		}
	}

	if len(fields) > 0 {
		return nil, apierror.NewValidation(fields)
	}

	m := &model.Reagent{
		Name:              name,
		CASNumber:         normalizeOptional(req.CASNumber),
		Supplier:          normalizeOptional(req.Supplier),
		Location:          location,
		Quantity:          req.Quantity,
		Unit:              req.Unit,
		ExpirationDate:    expiration,
		LowStockThreshold: threshold,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	s.invalidateAlerts(ctx)

	resp := reagentToResponse(m)
	resp.Warning = warning
	return resp, nil
}

func (s *reagentService) GetByID(ctx context.Context, id uuid.UUID) (*dto.ReagentResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return reagentToResponse(m), nil
}

func (s *reagentService) List(ctx context.Context, filter dto.ReagentFilter) (*dto.ReagentListResponse, error) {
	reagents, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.ReagentListResponse{
		Data:  make([]dto.ReagentResponse, 0, len(reagents)),
		Total: len(reagents),
	}
	for i := range reagents {
		resp.Data = append(resp.Data, *reagentToResponse(&reagents[i]))
	}
	return resp, nil
}

func (s *reagentService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateReagentRequest) (*dto.ReagentResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]string{}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			fields["name"] = "must not be blank"
		} else {
			m.Name = strings.TrimSpace(*req.Name)
		}
	}
	if req.Location != nil {
		if strings.TrimSpace(*req.Location) == "" {
			fields["location"] = "must not be blank"
		} else {
			m.Location = strings.TrimSpace(*req.Location)
		}
	}
	if req.Quantity != nil {
		if req.Quantity.IsNegative() {
			fields["quantity"] = "must not be negative"
		} else {
			m.Quantity = *req.Quantity
		}
	}
	if req.Unit != nil {
		if !model.IsValidUnit(*req.Unit) {
			fields["unit"] = fmt.Sprintf("must be one of %s", strings.Join(model.ValidUnits, ", "))
		} else {
			m.Unit = *req.Unit
		}
	}
	if req.LowStockThreshold != nil {
		if req.LowStockThreshold.IsNegative() {
			fields["low_stock_threshold"] = "must not be negative"
		} else {
			m.LowStockThreshold = *req.LowStockThreshold
		}
	}
	if req.CASNumber != nil {
		m.CASNumber = normalizeOptional(req.CASNumber)
	}
	if req.Supplier != nil {
		m.Supplier = normalizeOptional(req.Supplier)
	}
	if req.ExpirationDate != nil {
		if *req.ExpirationDate == "" {
			m.ExpirationDate = nil
		} else if d, err := parseDate(*req.ExpirationDate); err != nil {
			fields["expiration_date"] = "must be a YYYY-MM-DD date"
		} else if d.Before(todayDate()) {
			// Stricter than creation: an edit may not back-date expiration.
			fields["expiration_date"] = "expiration date in the past"
		} else {
			m.ExpirationDate = &d
		}
	}

	if len(fields) > 0 {
		return nil, apierror.NewValidation(fields)
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	s.invalidateAlerts(ctx)
	return reagentToResponse(m), nil
}

func (s *reagentService) Delete(ctx context.Context, id uuid.UUID) error {
	// Usage log entries survive deletion as an audit trail; their reagent_id
	// is left dangling on purpose.
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateAlerts(ctx)
	return nil
}

func (s *reagentService) AdjustQuantity(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (*dto.ReagentResponse, error) {
	if err := s.repo.AdjustQuantity(ctx, id, delta); err != nil {
		return nil, err
	}
	s.invalidateAlerts(ctx)
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return reagentToResponse(m), nil
}

func (s *reagentService) invalidateAlerts(ctx context.Context) {
	invalidateAlertCache(ctx, s.rdb)
}

// normalizeOptional trims an optional string and collapses blanks to nil.
func normalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func reagentToResponse(m *model.Reagent) *dto.ReagentResponse {
	var exp *string
	if m.ExpirationDate != nil {
		v := m.ExpirationDate.Format(dateLayout)
		exp = &v
	}
	return &dto.ReagentResponse{
		ID:                m.ID.String(),
		Name:              m.Name,
		CASNumber:         m.CASNumber,
		Supplier:          m.Supplier,
		Location:          m.Location,
		Quantity:          m.Quantity,
		Unit:              m.Unit,
		ExpirationDate:    exp,
		LowStockThreshold: m.LowStockThreshold,
	}
}
