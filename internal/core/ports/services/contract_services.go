package services

import (
	"context"
	"time"

	"github.com/civicdsi/budget_engagement_app/internal/core/domain"
	"github.com/civicdsi/budget_engagement_app/internal/core/ports/repositories"
	"github.com/civicdsi/budget_engagement_app/internal/dto"
)

// ContractReaderSvc defines read operations for contracts
type ContractReaderSvc interface {
	// GetContract retrieves a contract with its derived cumulative engaged.
	GetContract(ctx context.Context, contractID int64) (*domain.Contract, error)

	// ListContracts retrieves contracts matching the filter.
	ListContracts(ctx context.Context, filter repositories.ListContractsFilter) ([]domain.Contract, error)
}

// ContractWriterSvc defines the contract lifecycle operations
type ContractWriterSvc interface {
	// CreateContract registers a new contract in DRAFT.
	CreateContract(ctx context.Context, req dto.CreateContractRequest) (*domain.Contract, error)

	// ActivateContract moves a DRAFT contract to ACTIVE.
	ActivateContract(ctx context.Context, contractID int64) (*domain.Contract, error)

	// RenewContract extends the end date and increments the renewal counter.
	RenewContract(ctx context.Context, contractID int64, req dto.RenewContractRequest) (*domain.Contract, error)

	// TerminateContract ends a contract early.
	TerminateContract(ctx context.Context, contractID int64) (*domain.Contract, error)

	// ExpireContracts runs the expiry sweep and returns how many contracts
	// were marked EXPIRED.
	ExpireContracts(ctx context.Context, asOf time.Time) (int, error)
}

// ContractSvcFacade combines all contract service interfaces
type ContractSvcFacade interface {
	ContractReaderSvc
	ContractWriterSvc
}
