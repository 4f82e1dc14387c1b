package dto

// ImportRowResult reports the outcome of one spreadsheet row. Row numbering
// is 1-based and counts data rows (the header row is row 0 conceptually and
// never reported).
type ImportRowResult struct {
	Row       int     `json:"row"`
	Status    string  `json:"status"` // imported | skipped
	Reason    string  `json:"reason,omitempty"`
	ReagentID *string `json:"reagent_id,omitempty"`
}

type ImportResponse struct {
	Imported int               `json:"imported"`
	Skipped  int               `json:"skipped"`
	Rows     []ImportRowResult `json:"rows"`
}

// OCRResponse carries best-effort extracted label text. Extraction failures
// are reported through Notice, never as an HTTP error.
type OCRResponse struct {
	Text   string `json:"text"`
	Notice string `json:"notice,omitempty"`
}
