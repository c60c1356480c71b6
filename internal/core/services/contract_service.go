package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/civicdsi/budget_engagement_app/internal/apperrors"
	"github.com/civicdsi/budget_engagement_app/internal/core/domain"
	portsrepo "github.com/civicdsi/budget_engagement_app/internal/core/ports/repositories"
	portssvc "github.com/civicdsi/budget_engagement_app/internal/core/ports/services"
	"github.com/civicdsi/budget_engagement_app/internal/dto"
	"github.com/civicdsi/budget_engagement_app/internal/middleware"
)

// ContractService manages the procurement contract lifecycle, including the
// scheduled expiry sweep.
type ContractService struct {
	contractRepo portsrepo.ContractRepositoryFacade
	auditRepo    portsrepo.AuditRepositoryFacade
}

func NewContractService(contractRepo portsrepo.ContractRepositoryFacade, auditRepo portsrepo.AuditRepositoryFacade) *ContractService {
	return &ContractService{contractRepo: contractRepo, auditRepo: auditRepo}
}

var _ portssvc.ContractSvcFacade = (*ContractService)(nil)

// CreateContract registers a new contract in DRAFT. The current amount
// starts equal to the initial amount.
func (s *ContractService) CreateContract(ctx context.Context, req dto.CreateContractRequest) (*domain.Contract, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.InitialAmount.IsPositive() {
		return nil, fmt.Errorf("%w: initial amount must be positive", apperrors.ErrValidation)
	}
	if !req.EndDate.After(req.StartDate) {
		return nil, fmt.Errorf("%w: end date must be after start date", apperrors.ErrValidation)
	}

	maxRenewals := domain.DefaultMaxRenewals
	if req.MaxRenewals != nil {
		maxRenewals = *req.MaxRenewals
	}

	now := time.Now()
	contract := domain.Contract{
		Number:        req.Number,
		Type:          req.Type,
		Object:        req.Object,
		SupplierID:    req.SupplierID,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		InitialAmount: req.InitialAmount,
		CurrentAmount: req.InitialAmount,
		MaxRenewals:   maxRenewals,
		Status:        domain.ContractDraft,
		AuditFields:   domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}

	saved, err := s.contractRepo.SaveContract(ctx, contract)
	if err != nil {
		logger.Error("Failed to save contract", slog.String("error", err.Error()), slog.String("number", req.Number))
		return nil, err
	}

	s.recordAudit(ctx, domain.AuditEntry{
		EntityType: "CONTRACT",
		EntityID:   saved.ContractID,
		Action:     "CREATE",
		Detail:     fmt.Sprintf("contract %s created, ceiling %s", saved.Number, saved.CurrentAmount.StringFixed(2)),
		RecordedAt: now,
	})

	logger.Info("Contract created", slog.Int64("contract_id", saved.ContractID), slog.String("number", saved.Number))
	return saved, nil
}

// ActivateContract moves a DRAFT contract to ACTIVE.
func (s *ContractService) ActivateContract(ctx context.Context, contractID int64) (*domain.Contract, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	contract, err := s.contractRepo.FindContractByID(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if !contract.CanActivate() {
		return nil, fmt.Errorf("%w: contract %d is %s, activation requires DRAFT", apperrors.ErrInvalidState, contractID, contract.Status)
	}

	now := time.Now()
	contract.Status = domain.ContractActive
	contract.UpdatedAt = now

	if err := s.contractRepo.UpdateContract(ctx, *contract); err != nil {
		logger.Error("Failed to activate contract", slog.String("error", err.Error()), slog.Int64("contract_id", contractID))
		return nil, err
	}

	s.recordAudit(ctx, domain.AuditEntry{
		EntityType:  "CONTRACT",
		EntityID:    contractID,
		Action:      "ACTIVATE",
		ValueBefore: string(domain.ContractDraft),
		ValueAfter:  string(domain.ContractActive),
		RecordedAt:  now,
	})

	logger.Info("Contract activated", slog.Int64("contract_id", contractID))
	return contract, nil
}

// RenewContract extends the end date and increments the renewal counter.
func (s *ContractService) RenewContract(ctx context.Context, contractID int64, req dto.RenewContractRequest) (*domain.Contract, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	contract, err := s.contractRepo.FindContractByID(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if contract.Status != domain.ContractActive && contract.Status != domain.ContractRenewed {
		return nil, fmt.Errorf("%w: contract %d is %s, renewal requires ACTIVE or RENEWED", apperrors.ErrInvalidState, contractID, contract.Status)
	}
	if !contract.CanRenew() {
		return nil, fmt.Errorf("%w: contract %d reached its renewal limit of %d", apperrors.ErrInvalidState, contractID, contract.MaxRenewals)
	}
	if !req.NewEndDate.After(contract.EndDate) {
		return nil, fmt.Errorf("%w: new end date must extend the current end date", apperrors.ErrValidation)
	}

	now := time.Now()
	previousEnd := contract.EndDate
	contract.EndDate = req.NewEndDate
	contract.RenewalCount++
	contract.Status = domain.ContractRenewed
	contract.UpdatedAt = now

	if err := s.contractRepo.UpdateContract(ctx, *contract); err != nil {
		logger.Error("Failed to renew contract", slog.String("error", err.Error()), slog.Int64("contract_id", contractID))
		return nil, err
	}

	s.recordAudit(ctx, domain.AuditEntry{
		EntityType:  "CONTRACT",
		EntityID:    contractID,
		Action:      "RENEW",
		Detail:      fmt.Sprintf("renewal %d of %d", contract.RenewalCount, contract.MaxRenewals),
		ValueBefore: previousEnd.Format("2006-01-02"),
		ValueAfter:  contract.EndDate.Format("2006-01-02"),
		RecordedAt:  now,
	})

	logger.Info("Contract renewed", slog.Int64("contract_id", contractID), slog.Int("renewal_count", contract.RenewalCount))
	return contract, nil
}

// TerminateContract ends a contract early.
func (s *ContractService) TerminateContract(ctx context.Context, contractID int64) (*domain.Contract, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	contract, err := s.contractRepo.FindContractByID(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if !contract.CanTerminate() {
		return nil, fmt.Errorf("%w: contract %d is %s, termination requires ACTIVE or RENEWED", apperrors.ErrInvalidState, contractID, contract.Status)
	}

	now := time.Now()
	before := contract.Status
	contract.Status = domain.ContractTerminated
	contract.UpdatedAt = now

	if err := s.contractRepo.UpdateContract(ctx, *contract); err != nil {
		logger.Error("Failed to terminate contract", slog.String("error", err.Error()), slog.Int64("contract_id", contractID))
		return nil, err
	}

	s.recordAudit(ctx, domain.AuditEntry{
		EntityType:  "CONTRACT",
		EntityID:    contractID,
		Action:      "TERMINATE",
		ValueBefore: string(before),
		ValueAfter:  string(domain.ContractTerminated),
		RecordedAt:  now,
	})

	logger.Info("Contract terminated", slog.Int64("contract_id", contractID))
	return contract, nil
}

// ExpireContracts runs the expiry sweep: every ACTIVE or RENEWED contract
// whose end date is before asOf becomes EXPIRED. Returns the number of
// contracts expired.
func (s *ContractService) ExpireContracts(ctx context.Context, asOf time.Time) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	expired, err := s.contractRepo.ExpireContracts(ctx, asOf)
	if err != nil {
		logger.Error("Contract expiry sweep failed", slog.String("error", err.Error()))
		return 0, err
	}

	if len(expired) > 0 {
		logger.Info("Contract expiry sweep completed", slog.Int("expired", len(expired)))
	}
	return len(expired), nil
}

// GetContract retrieves a contract with its derived cumulative engaged.
func (s *ContractService) GetContract(ctx context.Context, contractID int64) (*domain.Contract, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	contract, err := s.contractRepo.FindContractByID(ctx, contractID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find contract", slog.String("error", err.Error()), slog.Int64("contract_id", contractID))
		}
		return nil, err
	}
	return contract, nil
}

// ListContracts retrieves contracts matching the filter.
func (s *ContractService) ListContracts(ctx context.Context, filter portsrepo.ListContractsFilter) ([]domain.Contract, error) {
	return s.contractRepo.ListContracts(ctx, filter)
}

func (s *ContractService) recordAudit(ctx context.Context, entry domain.AuditEntry) {
	if err := s.auditRepo.SaveAuditEntry(ctx, entry); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to record audit entry",
			slog.String("error", err.Error()),
			slog.String("entity_type", entry.EntityType),
			slog.Int64("entity_id", entry.EntityID))
	}
}
