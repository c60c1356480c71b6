package services

import (
	portsrepo "github.com/civicdsi/budget_engagement_app/internal/core/ports/repositories"
	portssvc "github.com/civicdsi/budget_engagement_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// NewServiceContainer wires every service against the repository provider.
func NewServiceContainer(repos portsrepo.RepositoryProvider, reconcileEpsilon decimal.Decimal) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Budget:         NewBudgetService(repos.AuthorizationRepo, repos.AnnualCreditRepo, repos.BudgetLineRepo, repos.AuditRepo),
		Order:          NewOrderService(repos.OrderRepo, repos.AuditRepo),
		Contract:       NewContractService(repos.ContractRepo, repos.AuditRepo),
		Alert:          NewAlertService(repos.ContractRepo, repos.BudgetLineRepo),
		Reconciliation: NewReconciliationService(repos.ReconciliationRepo, reconcileEpsilon),
		Audit:          NewAuditService(repos.AuditRepo),
	}
}
