package dto

// Alert kinds. A reagent may carry both at once — the checks are independent.
const (
	AlertLowStock = "low_stock"
	AlertExpired  = "expired"
)

type AlertResponse struct {
	Kind      string `json:"kind"` // low_stock | expired
	ReagentID string `json:"reagent_id"`
	Message   string `json:"message"`
}

// AlertListResponse is what the evaluator produces and what gets memoized in
// Redis. GeneratedAt lets clients see how stale a cached result is.
type AlertListResponse struct {
	Alerts      []AlertResponse `json:"alerts"`
	GeneratedAt string          `json:"generated_at"`
}

// OverviewResponse backs the admin dashboard metrics.
type OverviewResponse struct {
	TotalReagents int64 `json:"total_reagents"`
	LowStock      int   `json:"low_stock"`
	Expired       int   `json:"expired"`
}
