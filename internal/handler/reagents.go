package handler

import (
	"fmt"
	"net/http"

	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/apierror"
	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/config"
	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/dto"
	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/infra"
	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/repository"
	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReagentsHandler struct {
	svc  service.ReagentService
	repo repository.ReagentRepository
	cfg  *config.Config
}

func NewReagentsHandler(svc service.ReagentService, repo repository.ReagentRepository, cfg *config.Config) *ReagentsHandler {
	return &ReagentsHandler{svc: svc, repo: repo, cfg: cfg}
}

func (h *ReagentsHandler) Create(c *gin.Context) {
	var req dto.CreateReagentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ReagentsHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	resp, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReagentsHandler) List(c *gin.Context) {
	var filter dto.ReagentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid query: "+err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReagentsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.UpdateReagentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReagentsHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ReagentsHandler) AdjustQuantity(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.AdjustQuantityRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AdjustQuantity(c.Request.Context(), id, req.Delta)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// lookupURL is the public detail URL encoded into QR labels; scanning a
// bottle resolves straight to the reagent record.
func (h *ReagentsHandler) lookupURL(id uuid.UUID) string {
	return fmt.Sprintf("%s/v1/reagents/%s", h.cfg.Domain, id)
}

// QRCode serves a PNG QR label for the reagent. Public route: the scan page
// must resolve before login.
func (h *ReagentsHandler) QRCode(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	// Only confirm existence — the QR encodes a URL, not reagent data.
	if _, err := h.repo.FindByID(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	png, err := infra.GenerateReagentQR(h.lookupURL(id))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// Label serves a printable PDF label with the reagent identity and QR code.
func (h *ReagentsHandler) Label(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	reagent, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	pdf, err := infra.GenerateLabelPDF(reagent, h.lookupURL(id))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=label_%s.pdf", id))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
