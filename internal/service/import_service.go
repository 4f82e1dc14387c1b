package service

import (
	"context"
	"strings"

	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/dto"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Defaults applied to imported rows for fields the spreadsheet never carries.
const (
	importDefaultLocation = "Default Location"
	importDefaultUnit     = "bottles"
)

// columnSynonyms maps normalized external header names onto canonical field
// names. Headers are trimmed and lowercased before lookup.
var columnSynonyms = map[string]string{
	"item":                     "name",
	"supplier item identifier": "cas_number",
}

// ImportService maps external tabular rows into reagent store entries.
// Rows are independent: a bad row is skipped and reported, never failing
// the batch.
type ImportService interface {
	// ImportTable treats the first row as headers and the rest as data.
	ImportTable(ctx context.Context, table [][]string) (*dto.ImportResponse, error)
	// ImportRows imports pre-mapped rows (canonical-or-synonym column names,
	// already row-shaped).
	ImportRows(ctx context.Context, rows []map[string]string) (*dto.ImportResponse, error)
}

type importService struct {
	reagents ReagentService
}

func NewImportService(reagents ReagentService) ImportService {
	return &importService{reagents: reagents}
}

// NormalizeColumn canonicalizes an external column header: whitespace is
// trimmed, case is folded, and known synonyms are resolved.
func NormalizeColumn(header string) string {
	h := strings.ToLower(strings.TrimSpace(header))
	if canonical, ok := columnSynonyms[h]; ok {
		return canonical
	}
	return h
}

func (s *importService) ImportTable(ctx context.Context, table [][]string) (*dto.ImportResponse, error) {
	if len(table) == 0 {
		return &dto.ImportResponse{Rows: []dto.ImportRowResult{}}, nil
	}

	headers := make([]string, len(table[0]))
	for i, h := range table[0] {
		headers[i] = NormalizeColumn(h)
	}

	rows := make([]map[string]string, 0, len(table)-1)
	for _, record := range table[1:] {
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(record) {
				row[h] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return s.ImportRows(ctx, rows)
}

func (s *importService) ImportRows(ctx context.Context, rows []map[string]string) (*dto.ImportResponse, error) {
	resp := &dto.ImportResponse{Rows: make([]dto.ImportRowResult, 0, len(rows))}

	for i, raw := range rows {
		// Rows may arrive with unnormalized keys when called directly.
		row := make(map[string]string, len(raw))
		for k, v := range raw {
			row[NormalizeColumn(k)] = v
		}

		rowNum := i + 1
		name := strings.TrimSpace(row["name"])
		if name == "" {
			// Blank names are silently skipped — reported, not an error.
			resp.Skipped++
			resp.Rows = append(resp.Rows, dto.ImportRowResult{
				Row: rowNum, Status: "skipped", Reason: "blank name",
			})
			continue
		}

		req := dto.CreateReagentRequest{
			Name:     name,
			Location: importDefaultLocation,
			Quantity: decimal.NewFromInt(1),
			Unit:     importDefaultUnit,
		}
		if cas := strings.TrimSpace(row["cas_number"]); cas != "" {
			req.CASNumber = &cas
		}
		if sup := strings.TrimSpace(row["supplier"]); sup != "" {
			req.Supplier = &sup
		}

		created, err := s.reagents.Create(ctx, req)
		if err != nil {
			// Skip-and-continue: one bad row never fails the batch.
			log.Warn().Int("row", rowNum).Err(err).Msg("import row skipped")
			resp.Skipped++
			resp.Rows = append(resp.Rows, dto.ImportRowResult{
				Row: rowNum, Status: "skipped", Reason: err.Error(),
			})
			continue
		}

		resp.Imported++
		resp.Rows = append(resp.Rows, dto.ImportRowResult{
			Row: rowNum, Status: "imported", ReagentID: &created.ID,
		})
	}
	return resp, nil
}
