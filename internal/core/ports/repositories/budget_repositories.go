package repositories

import (
	"context"
	"time"

	"github.com/civicdsi/budget_engagement_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AuthorizationReader defines read operations for authorization data
type AuthorizationReader interface {
	// FindAuthorizationByID retrieves a specific authorization by its identifier.
	FindAuthorizationByID(ctx context.Context, authorizationID int64) (*domain.Authorization, error)

	// ListAuthorizations retrieves a paginated list of authorizations.
	ListAuthorizations(ctx context.Context, limit int, offset int) ([]domain.Authorization, error)
}

// AuthorizationWriter defines write operations for authorization data
type AuthorizationWriter interface {
	// SaveAuthorization persists a new authorization and returns it with its assigned ID.
	SaveAuthorization(ctx context.Context, authorization domain.Authorization) (*domain.Authorization, error)

	// UpdateAuthorization updates an existing authorization.
	UpdateAuthorization(ctx context.Context, authorization domain.Authorization) error
}

// AuthorizationRepositoryFacade combines all authorization repository interfaces
type AuthorizationRepositoryFacade interface {
	AuthorizationReader
	AuthorizationWriter
}

// AnnualCreditReader defines read operations for annual credit data
type AnnualCreditReader interface {
	// FindAnnualCreditByID retrieves a specific credit by its identifier.
	FindAnnualCreditByID(ctx context.Context, creditID int64) (*domain.AnnualCredit, error)

	// ListAnnualCreditsByAuthorization retrieves all credits under an authorization.
	ListAnnualCreditsByAuthorization(ctx context.Context, authorizationID int64) ([]domain.AnnualCredit, error)
}

// AnnualCreditWriter defines write operations for annual credit data
type AnnualCreditWriter interface {
	// SaveAnnualCredit persists a new credit and returns it with its assigned
	// ID. The authorization ceiling is checked inside the transaction under a
	// row lock on the authorization.
	SaveAnnualCredit(ctx context.Context, credit domain.AnnualCredit) (*domain.AnnualCredit, error)

	// UpdateAnnualCredit updates an existing credit.
	UpdateAnnualCredit(ctx context.Context, credit domain.AnnualCredit) error

	// VoteAnnualCredit assigns the definitive voted amount, recomputes
	// availability and transitions the credit to ACTIVE within a single
	// transaction, re-checking the authorization ceiling under a row lock.
	VoteAnnualCredit(ctx context.Context, creditID int64, votedAmount decimal.Decimal, voteDate time.Time, now time.Time) (*domain.AnnualCredit, error)
}

// AnnualCreditRepositoryFacade combines all annual credit repository interfaces
type AnnualCreditRepositoryFacade interface {
	AnnualCreditReader
	AnnualCreditWriter
}

// BudgetLineReader defines read operations for budget line data
type BudgetLineReader interface {
	// FindBudgetLineByID retrieves a specific budget line by its identifier.
	FindBudgetLineByID(ctx context.Context, budgetLineID int64) (*domain.BudgetLine, error)

	// ListBudgetLinesByCredit retrieves all lines under a credit.
	ListBudgetLinesByCredit(ctx context.Context, creditID int64) ([]domain.BudgetLine, error)

	// ListBudgetLines retrieves a paginated list of all budget lines.
	ListBudgetLines(ctx context.Context, limit int, offset int) ([]domain.BudgetLine, error)
}

// BudgetLineWriter defines write operations for budget line data
type BudgetLineWriter interface {
	// SaveBudgetLine persists a new line and returns it with its assigned ID.
	SaveBudgetLine(ctx context.Context, line domain.BudgetLine) (*domain.BudgetLine, error)

	// UpdateBudgetLine updates an existing line's details and status.
	UpdateBudgetLine(ctx context.Context, line domain.BudgetLine) error

	// VoteBudgetLine assigns the voted amount and recomputes availability
	// within a single transaction, locking the line row.
	VoteBudgetLine(ctx context.Context, budgetLineID int64, amount decimal.Decimal, now time.Time) (*domain.BudgetLine, error)
}

// BudgetLineRepositoryFacade combines all budget line repository interfaces
type BudgetLineRepositoryFacade interface {
	BudgetLineReader
	BudgetLineWriter
}
