package handlers

import (
	portssvc "github.com/civicdsi/budget_engagement_app/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(r *gin.Engine, services *portssvc.ServiceContainer) {
	v1 := r.Group("/api/v1")

	registerBudgetRoutes(v1, services.Budget)
	registerOrderRoutes(v1, services.Order)
	registerContractRoutes(v1, services.Contract)
	registerAlertRoutes(v1, services.Alert)
	registerReconciliationRoutes(v1, services.Reconciliation)
	registerAuditRoutes(v1, services.Audit)
}
