package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/civicdsi/budget_engagement_app/internal/core/ports/services"
	"github.com/civicdsi/budget_engagement_app/internal/dto"
	"github.com/civicdsi/budget_engagement_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// alertHandler serves the monitoring dashboard.
type alertHandler struct {
	alertService portssvc.AlertSvcFacade
}

func newAlertHandler(as portssvc.AlertSvcFacade) *alertHandler {
	return &alertHandler{alertService: as}
}

func registerAlertRoutes(rg *gin.RouterGroup, alertService portssvc.AlertSvcFacade) {
	h := newAlertHandler(alertService)
	rg.GET("/alerts", h.listAlerts)
}

func (h *alertHandler) listAlerts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	asOf := time.Now()
	if raw := c.Query("asOf"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid asOf date, expected YYYY-MM-DD"})
			return
		}
		asOf = parsed
	}

	contractAlerts, err := h.alertService.ListContractAlerts(c.Request.Context(), asOf)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compute contract alerts")
		return
	}

	lineAlerts, err := h.alertService.ListBudgetLineAlerts(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compute budget line alerts")
		return
	}

	resp := dto.AlertsResponse{
		ContractAlerts: make([]dto.ContractAlertResponse, len(contractAlerts)),
		LineAlerts:     make([]dto.BudgetLineAlertResponse, len(lineAlerts)),
	}
	for i, a := range contractAlerts {
		resp.ContractAlerts[i] = dto.ToContractAlertResponse(a)
	}
	for i, a := range lineAlerts {
		resp.LineAlerts[i] = dto.ToBudgetLineAlertResponse(a)
	}

	c.JSON(http.StatusOK, resp)
}
