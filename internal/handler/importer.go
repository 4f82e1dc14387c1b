package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/apierror"
	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/dto"
	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/infra"
	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

type ImportHandler struct {
	svc service.ImportService
	ocr *infra.OCRExtractor
}

func NewImportHandler(svc service.ImportService, ocr *infra.OCRExtractor) *ImportHandler {
	return &ImportHandler{svc: svc, ocr: ocr}
}

// ImportSpreadsheet accepts a multipart .xlsx/.xls upload under "file",
// treats the first sheet's first row as headers, and bulk-creates reagents.
// Bad rows are skipped and reported per row; the batch itself never fails
// on row errors.
func (h *ImportHandler) ImportSpreadsheet(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("missing upload: expected multipart field \"file\""))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("cannot open upload"))
		return
	}
	defer f.Close()

	wb, err := excelize.OpenReader(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("cannot read spreadsheet: "+err.Error()))
		return
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		c.JSON(http.StatusBadRequest, apierror.New("spreadsheet has no sheets"))
		return
	}
	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("cannot read sheet: "+err.Error()))
		return
	}

	resp, err := h.svc.ImportTable(c.Request.Context(), rows)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExtractText runs best-effort OCR over an uploaded label photo ("image").
// Every failure mode is a notice in a 200 response — OCR is a convenience,
// never a gate.
func (h *ImportHandler) ExtractText(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("missing upload: expected multipart field \"image\""))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("cannot open upload"))
		return
	}
	defer f.Close()

	img, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("cannot read upload"))
		return
	}

	text, err := h.ocr.ExtractText(img)
	switch {
	case err != nil:
		log.Warn().Err(err).Msg("ocr extraction failed")
		c.JSON(http.StatusOK, dto.OCRResponse{Notice: "text extraction unavailable: " + err.Error()})
	case strings.TrimSpace(text) == "":
		c.JSON(http.StatusOK, dto.OCRResponse{Notice: "no text detected, try better lighting or a straighter angle"})
	default:
		c.JSON(http.StatusOK, dto.OCRResponse{Text: strings.TrimSpace(text)})
	}
}
