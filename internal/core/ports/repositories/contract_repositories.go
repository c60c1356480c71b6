package repositories

import (
	"context"
	"time"

	"github.com/civicdsi/budget_engagement_app/internal/core/domain"
)

// ListContractsFilter narrows ListContracts results. Zero values mean no filter.
type ListContractsFilter struct {
	Status     domain.ContractStatus
	SupplierID int64
	Limit      int
	Offset     int
}

// ContractReader defines read operations for contract data. Contracts are
// always loaded with their derived cumulative engaged amount.
type ContractReader interface {
	// FindContractByID retrieves a specific contract by its identifier.
	FindContractByID(ctx context.Context, contractID int64) (*domain.Contract, error)

	// ListContracts retrieves contracts matching the filter.
	ListContracts(ctx context.Context, filter ListContractsFilter) ([]domain.Contract, error)
}

// ContractWriter defines write operations for contract data
type ContractWriter interface {
	// SaveContract persists a new contract and returns it with its assigned ID.
	SaveContract(ctx context.Context, contract domain.Contract) (*domain.Contract, error)

	// UpdateContract updates an existing contract.
	UpdateContract(ctx context.Context, contract domain.Contract) error

	// ExpireContracts marks every ACTIVE or RENEWED contract whose end date
	// is before asOf as EXPIRED, writing one audit row per contract.
	// Returns the contracts that were expired.
	ExpireContracts(ctx context.Context, asOf time.Time) ([]domain.Contract, error)
}

// ContractRepositoryFacade combines all contract repository interfaces
type ContractRepositoryFacade interface {
	ContractReader
	ContractWriter
}
