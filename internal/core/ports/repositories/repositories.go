package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	AuthorizationRepo  AuthorizationRepositoryFacade
	AnnualCreditRepo   AnnualCreditRepositoryFacade
	BudgetLineRepo     BudgetLineRepositoryFacade
	OrderRepo          OrderRepositoryFacade
	ContractRepo       ContractRepositoryFacade
	ReconciliationRepo ReconciliationRepositoryFacade
	AuditRepo          AuditRepositoryFacade
}
