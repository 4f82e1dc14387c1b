package infra

// ocr.go — best-effort text extraction from reagent label photos via
// Tesseract. Extraction is a convenience feature: every failure mode here is
// non-fatal and must surface to the caller as a notice, never an abort.

import (
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// OCRExtractor wraps a Tesseract client. Disabled instances return an error
// from ExtractText without touching Tesseract, which callers report as a
// notice.
type OCRExtractor struct {
	enabled bool
}

func NewOCRExtractor(enabled bool) *OCRExtractor {
	return &OCRExtractor{enabled: enabled}
}

// ExtractText runs OCR over an uploaded image (PNG/JPEG bytes) and returns
// the trimmed text. An empty result with a nil error means Tesseract ran but
// found nothing readable.
func (o *OCRExtractor) ExtractText(img []byte) (string, error) {
	if !o.enabled {
		return "", fmt.Errorf("ocr disabled by configuration")
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImageFromBytes(img); err != nil {
		return "", fmt.Errorf("ocr: set image: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr: extract: %w", err)
	}
	return text, nil
}
