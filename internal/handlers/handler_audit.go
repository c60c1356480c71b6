package handlers

import (
	"net/http"

	portsrepo "github.com/civicdsi/budget_engagement_app/internal/core/ports/repositories"
	portssvc "github.com/civicdsi/budget_engagement_app/internal/core/ports/services"
	"github.com/civicdsi/budget_engagement_app/internal/dto"
	"github.com/civicdsi/budget_engagement_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// auditHandler serves the audit trail.
type auditHandler struct {
	auditService portssvc.AuditSvcFacade
}

func newAuditHandler(as portssvc.AuditSvcFacade) *auditHandler {
	return &auditHandler{auditService: as}
}

func registerAuditRoutes(rg *gin.RouterGroup, auditService portssvc.AuditSvcFacade) {
	h := newAuditHandler(auditService)
	rg.GET("/audit", h.listAuditEntries)
}

func (h *auditHandler) listAuditEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListAuditParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	entries, err := h.auditService.ListAuditEntries(c.Request.Context(), portsrepo.ListAuditFilter{
		EntityType: params.EntityType,
		EntityID:   params.EntityID,
		Limit:      params.Limit,
		Offset:     params.Offset,
	})
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list audit entries")
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": dto.ToListAuditEntryResponse(entries)})
}
