package handler

import (
	"net/http"

	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/apierror"
	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/config"
	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/infra"
	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/service"

	"github.com/gin-gonic/gin"
)

type AlertsHandler struct {
	svc    service.AlertService
	mailer *infra.Mailer
	cfg    *config.Config
}

func NewAlertsHandler(svc service.AlertService, mailer *infra.Mailer, cfg *config.Config) *AlertsHandler {
	return &AlertsHandler{svc: svc, mailer: mailer, cfg: cfg}
}

// List returns the current alerts, possibly served from the bounded-TTL
// cache. Pass ?fresh=1 to force a rescan.
func (h *AlertsHandler) List(c *gin.Context) {
	current := h.svc.Current
	if c.Query("fresh") == "1" {
		current = h.svc.Evaluate
	}
	resp, err := current(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Overview backs the admin dashboard metrics.
func (h *AlertsHandler) Overview(c *gin.Context) {
	resp, err := h.svc.Overview(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Notify mails the current alert list to the configured recipient. Sending
// is synchronous; failures surface to the caller.
func (h *AlertsHandler) Notify(c *gin.Context) {
	alerts, err := h.svc.Evaluate(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	lines := make([]string, 0, len(alerts.Alerts))
	for _, a := range alerts.Alerts {
		lines = append(lines, a.Message)
	}
	if err := h.mailer.SendAlertDigest(h.cfg.AlertRecipient, lines); err != nil {
		c.JSON(http.StatusBadGateway, apierror.New("alert mail failed: "+err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"sent": len(lines), "recipient": h.cfg.AlertRecipient})
}
