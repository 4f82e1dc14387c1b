package tests

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/apierror"
	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/dto"
	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/model"
	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory ReagentRepository stub ─────────────────────────────────────────

type stubReagentRepo struct {
	reagents map[uuid.UUID]*model.Reagent
}

func newStubReagentRepo() *stubReagentRepo {
	return &stubReagentRepo{reagents: make(map[uuid.UUID]*model.Reagent)}
}

func (r *stubReagentRepo) Create(_ context.Context, m *model.Reagent) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.reagents[m.ID] = m
	return nil
}

func (r *stubReagentRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Reagent, error) {
	m, ok := r.reagents[id]
	if !ok {
		return nil, apierror.ErrNotFound
	}
	clone := *m
	return &clone, nil
}

func (r *stubReagentRepo) List(_ context.Context, filter dto.ReagentFilter) ([]model.Reagent, error) {
	match := func(m *model.Reagent) bool {
		if filter.Search == "" {
			return true
		}
		needle := strings.ToLower(filter.Search)
		cas := ""
		if m.CASNumber != nil {
			cas = *m.CASNumber
		}
		return strings.Contains(strings.ToLower(m.Name), needle) ||
			strings.Contains(strings.ToLower(cas), needle) ||
			strings.Contains(strings.ToLower(m.Location), needle)
	}

	var result []model.Reagent
	for _, m := range r.reagents {
		if match(m) {
			result = append(result, *m)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *stubReagentRepo) Update(_ context.Context, m *model.Reagent) error {
	if _, ok := r.reagents[m.ID]; !ok {
		return apierror.ErrNotFound
	}
	r.reagents[m.ID] = m
	return nil
}

func (r *stubReagentRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.reagents[id]; !ok {
		return apierror.ErrNotFound
	}
	delete(r.reagents, id)
	return nil
}

func (r *stubReagentRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.reagents)), nil
}

func (r *stubReagentRepo) adjust(id uuid.UUID, delta decimal.Decimal) error {
	m, ok := r.reagents[id]
	if !ok {
		return apierror.ErrNotFound
	}
	next := m.Quantity.Add(delta)
	if next.IsNegative() {
		return apierror.ErrInsufficientStock
	}
	m.Quantity = next
	return nil
}

func (r *stubReagentRepo) AdjustQuantity(_ context.Context, id uuid.UUID, delta decimal.Decimal) error {
	return r.adjust(id, delta)
}

func (r *stubReagentRepo) AdjustQuantityTx(_ *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	return r.adjust(id, delta)
}

func (r *stubReagentRepo) DB() *gorm.DB { return nil }

// ── Helpers ──────────────────────────────────────────────────────────────────

func str(s string) *string { return &s }

func dec(f float64) *decimal.Decimal { d := decimal.NewFromFloat(f); return &d }

func futureDate(days int) string { return time.Now().UTC().AddDate(0, 0, days).Format("2006-01-02") }

func newReagentSvc() (service.ReagentService, *stubReagentRepo) {
	repo := newStubReagentRepo()
	return service.NewReagentService(repo, nil), repo
}

func createReagent(t *testing.T, svc service.ReagentService, req dto.CreateReagentRequest) *dto.ReagentResponse {
	t.Helper()
	resp, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	return resp
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestCreateReagentRoundTrip(t *testing.T) {
	svc, _ := newReagentSvc()

	exp := futureDate(30)
	created := createReagent(t, svc, dto.CreateReagentRequest{
		Name:              "Sodium Chloride",
		CASNumber:         str("7647-14-5"),
		Supplier:          str("Sigma"),
		Location:          "Cabinet B",
		Quantity:          decimal.NewFromInt(100),
		Unit:              "g",
		ExpirationDate:    &exp,
		LowStockThreshold: dec(10),
	})
	assert.NotEmpty(t, created.ID)
	assert.Empty(t, created.Warning)

	id, err := uuid.Parse(created.ID)
	require.NoError(t, err)

	got, err := svc.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Sodium Chloride", got.Name)
	assert.Equal(t, "7647-14-5", *got.CASNumber)
	assert.Equal(t, "Sigma", *got.Supplier)
	assert.Equal(t, "Cabinet B", got.Location)
	assert.True(t, got.Quantity.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, "g", got.Unit)
	assert.Equal(t, exp, *got.ExpirationDate)
	assert.True(t, got.LowStockThreshold.Equal(decimal.NewFromInt(10)))
}

func TestCreateReagentValidation(t *testing.T) {
	svc, _ := newReagentSvc()
	ctx := context.Background()

	cases := []struct {
		name string
		req  dto.CreateReagentRequest
	}{
		{"empty name", dto.CreateReagentRequest{Name: "  ", Location: "Shelf 1", Quantity: decimal.NewFromInt(1), Unit: "g"}},
		{"empty location", dto.CreateReagentRequest{Name: "Acetone", Location: "", Quantity: decimal.NewFromInt(1), Unit: "ml"}},
		{"negative quantity", dto.CreateReagentRequest{Name: "Acetone", Location: "Shelf 1", Quantity: decimal.NewFromInt(-1), Unit: "ml"}},
		{"unknown unit", dto.CreateReagentRequest{Name: "Acetone", Location: "Shelf 1", Quantity: decimal.NewFromInt(1), Unit: "barrels"}},
		{"negative threshold", dto.CreateReagentRequest{Name: "Acetone", Location: "Shelf 1", Quantity: decimal.NewFromInt(1), Unit: "ml", LowStockThreshold: dec(-0.5)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.req)
			assert.True(t, apierror.IsValidation(err), "expected validation error, got %v", err)
		})
	}
}

func TestCreateReagentPastExpirationOnlyWarns(t *testing.T) {
	svc, _ := newReagentSvc()

	past := time.Now().UTC().AddDate(0, 0, -10).Format("2006-01-02")
	created := createReagent(t, svc, dto.CreateReagentRequest{
		Name:           "Old Buffer",
		Location:       "Fridge",
		Quantity:       decimal.NewFromInt(2),
		Unit:           "bottles",
		ExpirationDate: &past,
	})
	assert.Contains(t, created.Warning, "already passed")
}

func TestUpdateReagentRejectsPastExpiration(t *testing.T) {
	svc, _ := newReagentSvc()
	created := createReagent(t, svc, dto.CreateReagentRequest{
		Name: "Ethanol", Location: "Flammables", Quantity: decimal.NewFromInt(5), Unit: "L",
	})
	id := uuid.MustParse(created.ID)

	past := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
	_, err := svc.Update(context.Background(), id, dto.UpdateReagentRequest{ExpirationDate: &past})
	require.True(t, apierror.IsValidation(err))
	assert.Contains(t, err.Error(), "validation")

	// The reagent itself must be untouched.
	got, err := svc.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, got.ExpirationDate)
}

func TestUpdateReagentFields(t *testing.T) {
	svc, _ := newReagentSvc()
	created := createReagent(t, svc, dto.CreateReagentRequest{
		Name: "Ethanol", Location: "Flammables", Quantity: decimal.NewFromInt(5), Unit: "L",
	})
	id := uuid.MustParse(created.ID)

	got, err := svc.Update(context.Background(), id, dto.UpdateReagentRequest{
		Location: str("Flammables Cabinet 2"),
		Quantity: dec(7.5),
	})
	require.NoError(t, err)
	assert.Equal(t, "Flammables Cabinet 2", got.Location)
	assert.True(t, got.Quantity.Equal(decimal.NewFromFloat(7.5)))
	assert.Equal(t, "Ethanol", got.Name)
}

func TestUpdateUnknownReagent(t *testing.T) {
	svc, _ := newReagentSvc()
	_, err := svc.Update(context.Background(), uuid.New(), dto.UpdateReagentRequest{Name: str("X")})
	assert.ErrorIs(t, err, apierror.ErrNotFound)
}

func TestDeleteReagent(t *testing.T) {
	svc, _ := newReagentSvc()
	created := createReagent(t, svc, dto.CreateReagentRequest{
		Name: "Methanol", Location: "Flammables", Quantity: decimal.NewFromInt(1), Unit: "L",
	})
	id := uuid.MustParse(created.ID)

	require.NoError(t, svc.Delete(context.Background(), id))
	_, err := svc.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, apierror.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(context.Background(), id), apierror.ErrNotFound)
}

func TestListFiltersAcrossFields(t *testing.T) {
	svc, _ := newReagentSvc()
	createReagent(t, svc, dto.CreateReagentRequest{
		Name: "Sodium Chloride", CASNumber: str("7647-14-5"), Location: "Cabinet B",
		Quantity: decimal.NewFromInt(1), Unit: "g",
	})
	createReagent(t, svc, dto.CreateReagentRequest{
		Name: "Acetone", Location: "Flammables", Quantity: decimal.NewFromInt(1), Unit: "ml",
	})
	createReagent(t, svc, dto.CreateReagentRequest{
		Name: "Agarose", Location: "cabinet b", Quantity: decimal.NewFromInt(1), Unit: "g",
	})

	ctx := context.Background()

	// substring of name, case-insensitive
	resp, err := svc.List(ctx, dto.ReagentFilter{Search: "sodium"})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Sodium Chloride", resp.Data[0].Name)

	// CAS number match
	resp, err = svc.List(ctx, dto.ReagentFilter{Search: "7647"})
	require.NoError(t, err)
	assert.Len(t, resp.Data, 1)

	// location match hits both cabinet reagents, ordered by name
	resp, err = svc.List(ctx, dto.ReagentFilter{Search: "CABINET"})
	require.NoError(t, err)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "Agarose", resp.Data[0].Name)
	assert.Equal(t, "Sodium Chloride", resp.Data[1].Name)
}

func TestAdjustQuantity(t *testing.T) {
	svc, repo := newReagentSvc()
	created := createReagent(t, svc, dto.CreateReagentRequest{
		Name: "Glycerol", Location: "Shelf 3", Quantity: decimal.NewFromInt(10), Unit: "ml",
	})
	id := uuid.MustParse(created.ID)
	ctx := context.Background()

	got, err := svc.AdjustQuantity(ctx, id, decimal.NewFromInt(-4))
	require.NoError(t, err)
	assert.True(t, got.Quantity.Equal(decimal.NewFromInt(6)))

	// Over-deduction fails and leaves the quantity unchanged.
	_, err = svc.AdjustQuantity(ctx, id, decimal.NewFromInt(-7))
	assert.ErrorIs(t, err, apierror.ErrInsufficientStock)
	assert.True(t, repo.reagents[id].Quantity.Equal(decimal.NewFromInt(6)))

	// Down to exactly zero is allowed.
	got, err = svc.AdjustQuantity(ctx, id, decimal.NewFromInt(-6))
	require.NoError(t, err)
	assert.True(t, got.Quantity.IsZero())

	_, err = svc.AdjustQuantity(ctx, uuid.New(), decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, apierror.ErrNotFound)
}
