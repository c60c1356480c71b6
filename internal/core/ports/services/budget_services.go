package services

import (
	"context"

	"github.com/civicdsi/budget_engagement_app/internal/core/domain"
	"github.com/civicdsi/budget_engagement_app/internal/dto"
)

// BudgetReaderSvc defines read operations over the budget hierarchy
type BudgetReaderSvc interface {
	// GetAuthorization retrieves a specific authorization.
	GetAuthorization(ctx context.Context, authorizationID int64) (*domain.Authorization, error)

	// ListAuthorizations retrieves a paginated list of authorizations.
	ListAuthorizations(ctx context.Context, limit int, offset int) ([]domain.Authorization, error)

	// GetAnnualCredit retrieves a specific annual credit.
	GetAnnualCredit(ctx context.Context, creditID int64) (*domain.AnnualCredit, error)

	// GetBudgetLine retrieves a specific budget line.
	GetBudgetLine(ctx context.Context, budgetLineID int64) (*domain.BudgetLine, error)

	// ListBudgetLines retrieves all lines under a credit.
	ListBudgetLines(ctx context.Context, creditID int64) ([]domain.BudgetLine, error)
}

// BudgetWriterSvc defines the structure-building operations
type BudgetWriterSvc interface {
	// CreateAuthorization opens a new multi-year authorization.
	CreateAuthorization(ctx context.Context, req dto.CreateAuthorizationRequest) (*domain.Authorization, error)

	// CreateAnnualCredit adds a fiscal year slice under an authorization.
	// Fails when the authorization's credits would exceed its total.
	CreateAnnualCredit(ctx context.Context, authorizationID int64, req dto.CreateAnnualCreditRequest) (*domain.AnnualCredit, error)

	// VoteAnnualCredit assigns the definitive voted amount and transitions
	// a credit EN_PREPARATION to ACTIVE.
	VoteAnnualCredit(ctx context.Context, creditID int64, req dto.VoteAnnualCreditRequest) (*domain.AnnualCredit, error)

	// CreateBudgetLine adds a line under a credit with a zero voted amount.
	CreateBudgetLine(ctx context.Context, creditID int64, req dto.CreateBudgetLineRequest) (*domain.BudgetLine, error)

	// VoteBudgetLine assigns the line's voted amount, one-way.
	VoteBudgetLine(ctx context.Context, budgetLineID int64, req dto.VoteBudgetLineRequest) (*domain.BudgetLine, error)

	// FreezeBudgetLine blocks new imputations on the line.
	FreezeBudgetLine(ctx context.Context, budgetLineID int64) (*domain.BudgetLine, error)

	// CloseBudgetLine closes the line permanently.
	CloseBudgetLine(ctx context.Context, budgetLineID int64) (*domain.BudgetLine, error)
}

// BudgetSvcFacade combines all budget structure service interfaces
type BudgetSvcFacade interface {
	BudgetReaderSvc
	BudgetWriterSvc
}
