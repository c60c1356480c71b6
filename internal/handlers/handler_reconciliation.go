package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/civicdsi/budget_engagement_app/internal/core/ports/services"
	"github.com/civicdsi/budget_engagement_app/internal/dto"
	"github.com/civicdsi/budget_engagement_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reconciliationHandler triggers reconciliation runs.
type reconciliationHandler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
}

func newReconciliationHandler(rs portssvc.ReconciliationSvcFacade) *reconciliationHandler {
	return &reconciliationHandler{reconciliationService: rs}
}

func registerReconciliationRoutes(rg *gin.RouterGroup, reconciliationService portssvc.ReconciliationSvcFacade) {
	h := newReconciliationHandler(reconciliationService)
	rg.POST("/reconcile", h.reconcile)
}

func (h *reconciliationHandler) reconcile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	// An empty body means a dry run over every line.
	var req dto.ReconcileRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for Reconcile", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
			return
		}
	}

	report, err := h.reconciliationService.Reconcile(c.Request.Context(), req.LineID, req.Repair)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to run reconciliation")
		return
	}

	c.JSON(http.StatusOK, dto.ToReconciliationReportResponse(report))
}
