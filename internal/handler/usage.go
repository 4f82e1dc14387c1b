package handler

import (
	"net/http"

	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/apierror"
	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/dto"
	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/middleware"
	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UsageHandler struct{ svc service.UsageService }

func NewUsageHandler(svc service.UsageService) *UsageHandler {
	return &UsageHandler{svc: svc}
}

// Record logs a consumption event. The actor is taken from the JWT claims,
// never from the request body.
func (h *UsageHandler) Record(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.RecordUsageRequest
	if !bindAndValidate(c, &req) {
		return
	}

	claims := middleware.GetClaims(c)
	resp, err := h.svc.Record(c.Request.Context(), id, claims.Username, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *UsageHandler) History(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	resp, err := h.svc.History(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
