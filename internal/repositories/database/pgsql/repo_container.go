package pgsql

import (
	portsrepo "github.com/civicdsi/budget_engagement_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	authorizationRepo := newPgxAuthorizationRepository(dbPool)
	annualCreditRepo := newPgxAnnualCreditRepository(dbPool)
	budgetLineRepo := newPgxBudgetLineRepository(dbPool)
	orderRepo := newPgxOrderRepository(dbPool)
	contractRepo := newPgxContractRepository(dbPool)
	reconciliationRepo := newPgxReconciliationRepository(dbPool)
	auditRepo := newPgxAuditRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AuthorizationRepo:  authorizationRepo,
		AnnualCreditRepo:   annualCreditRepo,
		BudgetLineRepo:     budgetLineRepo,
		OrderRepo:          orderRepo,
		ContractRepo:       contractRepo,
		ReconciliationRepo: reconciliationRepo,
		AuditRepo:          auditRepo,
	}
}
