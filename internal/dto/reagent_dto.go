package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// Dates travel as "YYYY-MM-DD" strings and are parsed in the service layer,
// where the past-date rules live (warn on create, reject on update).

type CreateReagentRequest struct {
	Name              string           `json:"name"       validate:"required,min=1,max=200"`
	CASNumber         *string          `json:"cas_number" validate:"omitempty,max=50"`
	Supplier          *string          `json:"supplier"   validate:"omitempty,max=100"`
	Location          string           `json:"location"   validate:"required,min=1,max=100"`
	Quantity          decimal.Decimal  `json:"quantity"   validate:"min=0"`
	Unit              string           `json:"unit"       validate:"required"`
	ExpirationDate    *string          `json:"expiration_date" validate:"omitempty,datetime=2006-01-02"`
	LowStockThreshold *decimal.Decimal `json:"low_stock_threshold" validate:"omitempty,min=0"`
}

type UpdateReagentRequest struct {
	Name              *string          `json:"name"       validate:"omitempty,min=1,max=200"`
	CASNumber         *string          `json:"cas_number" validate:"omitempty,max=50"`
	Supplier          *string          `json:"supplier"   validate:"omitempty,max=100"`
	Location          *string          `json:"location"   validate:"omitempty,min=1,max=100"`
	Quantity          *decimal.Decimal `json:"quantity"   validate:"omitempty,min=0"`
	Unit              *string          `json:"unit"`
	ExpirationDate    *string          `json:"expiration_date" validate:"omitempty,datetime=2006-01-02"`
	LowStockThreshold *decimal.Decimal `json:"low_stock_threshold" validate:"omitempty,min=0"`
}

type AdjustQuantityRequest struct {
	// Delta is added to the current quantity; negative values consume stock.
	Delta decimal.Decimal `json:"delta" validate:"required"`
}

// ─── Filter ──────────────────────────────────────────────────────────────────

type ReagentFilter struct {
	// Search is a case-insensitive substring matched against name, CAS number,
	// and location (logical OR).
	Search string `form:"search"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ReagentResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	CASNumber         *string         `json:"cas_number"`
	Supplier          *string         `json:"supplier"`
	Location          string          `json:"location"`
	Quantity          decimal.Decimal `json:"quantity"`
	Unit              string          `json:"unit"`
	ExpirationDate    *string         `json:"expiration_date"`
	LowStockThreshold decimal.Decimal `json:"low_stock_threshold"`

	// Warning is only populated on creation, when the expiration date is
	// today or already past (creation warns; only edits reject).
	Warning string `json:"warning,omitempty"`
}

type ReagentListResponse struct {
	Data  []ReagentResponse `json:"data"`
	Total int               `json:"total"`
}
