package dto

import "github.com/shopspring/decimal"

type RecordUsageRequest struct {
	QuantityUsed decimal.Decimal `json:"quantity_used" validate:"required"`
	Notes        *string         `json:"notes" validate:"omitempty,max=2000"`
}

type UsageLogResponse struct {
	ID           string          `json:"id"`
	ReagentID    string          `json:"reagent_id"`
	Actor        string          `json:"actor"`
	QuantityUsed decimal.Decimal `json:"quantity_used"`
	Timestamp    string          `json:"timestamp"`
	Notes        *string         `json:"notes"`
}

// RecordUsageResponse returns the appended entry plus the reagent's quantity
// after the deduction, so clients can refresh their view without a re-read.
type RecordUsageResponse struct {
	Entry             UsageLogResponse `json:"entry"`
	RemainingQuantity decimal.Decimal  `json:"remaining_quantity"`
}
