package infra

// labels.go — printable reagent label generation using go-pdf/fpdf.
// A label is a small card with the reagent name, CAS number, storage
// location, and a QR code that resolves back to the reagent's detail URL,
// suitable for sticking on bottles and freezer boxes.

import (
	"bytes"
	"fmt"

	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/model"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// GenerateReagentQR renders a PNG QR code encoding the reagent's lookup URL.
func GenerateReagentQR(lookupURL string) ([]byte, error) {
	return qrcode.Encode(lookupURL, qrcode.Medium, 256)
}

// GenerateLabelPDF renders a single reagent label as an in-memory PDF.
// lookupURL is the public detail URL encoded into the QR code.
func GenerateLabelPDF(r *model.Reagent, lookupURL string) ([]byte, error) {
	qrPNG, err := GenerateReagentQR(lookupURL)
	if err != nil {
		return nil, fmt.Errorf("label: qr encode: %w", err)
	}

	// 74mm × 52mm — half an A7, close to common cryo/label sheet cells
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "L",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 52},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	qrSize := 26.0
	textW := pageW - qrSize - 12

	// ── Text block ───────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.MultiCell(textW, 5, r.Name, "", "L", false)

	pdf.SetFont("Helvetica", "", 7)
	if r.CASNumber != nil && *r.CASNumber != "" {
		pdf.CellFormat(textW, 4, "CAS "+*r.CASNumber, "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(textW, 4, "Location: "+r.Location, "", 1, "L", false, 0, "")
	pdf.CellFormat(textW, 4, fmt.Sprintf("%s %s", r.Quantity.String(), r.Unit), "", 1, "L", false, 0, "")
	if r.ExpirationDate != nil {
		pdf.CellFormat(textW, 4, "Exp "+r.ExpirationDate.Format("2006-01-02"), "", 1, "L", false, 0, "")
	}

	// ── QR code, right-aligned ───────────────────────────────────────────────
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", pageW-qrSize-4, (pageH-qrSize)/2, qrSize, qrSize, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("label: pdf output: %w", err)
	}
	return buf.Bytes(), nil
}
