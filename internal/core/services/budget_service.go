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

// BudgetService manages the authorization / credit / budget line hierarchy.
type BudgetService struct {
	authorizationRepo portsrepo.AuthorizationRepositoryFacade
	creditRepo        portsrepo.AnnualCreditRepositoryFacade
	lineRepo          portsrepo.BudgetLineRepositoryFacade
	auditRepo         portsrepo.AuditRepositoryFacade
}

func NewBudgetService(
	authorizationRepo portsrepo.AuthorizationRepositoryFacade,
	creditRepo portsrepo.AnnualCreditRepositoryFacade,
	lineRepo portsrepo.BudgetLineRepositoryFacade,
	auditRepo portsrepo.AuditRepositoryFacade,
) *BudgetService {
	return &BudgetService{
		authorizationRepo: authorizationRepo,
		creditRepo:        creditRepo,
		lineRepo:          lineRepo,
		auditRepo:         auditRepo,
	}
}

var _ portssvc.BudgetSvcFacade = (*BudgetService)(nil)

// CreateAuthorization opens a new multi-year authorization in ACTIVE status.
func (s *BudgetService) CreateAuthorization(ctx context.Context, req dto.CreateAuthorizationRequest) (*domain.Authorization, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.TotalAmount.IsPositive() {
		return nil, fmt.Errorf("%w: total amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now()
	authorization := domain.Authorization{
		Number:          req.Number,
		Label:           req.Label,
		TotalAmount:     req.TotalAmount,
		FiscalYearStart: req.FiscalYearStart,
		FiscalYearEnd:   req.FiscalYearEnd,
		Status:          domain.AuthorizationActive,
		AuditFields:     domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}

	saved, err := s.authorizationRepo.SaveAuthorization(ctx, authorization)
	if err != nil {
		logger.Error("Failed to save authorization", slog.String("error", err.Error()), slog.String("number", req.Number))
		return nil, err
	}

	s.recordAudit(ctx, domain.AuditEntry{
		EntityType: "AUTHORIZATION",
		EntityID:   saved.AuthorizationID,
		Action:     "CREATE",
		Detail:     fmt.Sprintf("authorization %s created with total %s", saved.Number, saved.TotalAmount.StringFixed(2)),
		RecordedAt: now,
	})

	logger.Info("Authorization created", slog.Int64("authorization_id", saved.AuthorizationID))
	return saved, nil
}

// GetAuthorization retrieves a specific authorization.
func (s *BudgetService) GetAuthorization(ctx context.Context, authorizationID int64) (*domain.Authorization, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	authorization, err := s.authorizationRepo.FindAuthorizationByID(ctx, authorizationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find authorization", slog.String("error", err.Error()), slog.Int64("authorization_id", authorizationID))
		}
		return nil, err
	}
	return authorization, nil
}

// ListAuthorizations retrieves a paginated list of authorizations.
func (s *BudgetService) ListAuthorizations(ctx context.Context, limit int, offset int) ([]domain.Authorization, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	authorizations, err := s.authorizationRepo.ListAuthorizations(ctx, limit, offset)
	if err != nil {
		logger.Error("Failed to list authorizations", slog.String("error", err.Error()))
		return nil, err
	}
	return authorizations, nil
}

// CreateAnnualCredit adds a fiscal year slice under an authorization. The
// repository verifies under a row lock that the sum of the authorization's
// non-cancelled credits stays within its total.
func (s *BudgetService) CreateAnnualCredit(ctx context.Context, authorizationID int64, req dto.CreateAnnualCreditRequest) (*domain.AnnualCredit, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.VotedAmount.IsPositive() {
		return nil, fmt.Errorf("%w: voted amount must be positive", apperrors.ErrValidation)
	}

	authorization, err := s.authorizationRepo.FindAuthorizationByID(ctx, authorizationID)
	if err != nil {
		return nil, err
	}
	if authorization.Status != domain.AuthorizationActive {
		return nil, fmt.Errorf("%w: authorization %d is %s", apperrors.ErrInvalidState, authorizationID, authorization.Status)
	}
	if req.FiscalYear < authorization.FiscalYearStart || req.FiscalYear > authorization.FiscalYearEnd {
		return nil, fmt.Errorf("%w: fiscal year %d outside authorization range %d-%d",
			apperrors.ErrValidation, req.FiscalYear, authorization.FiscalYearStart, authorization.FiscalYearEnd)
	}

	now := time.Now()
	credit := domain.AnnualCredit{
		AuthorizationID: authorizationID,
		FiscalYear:      req.FiscalYear,
		VotedAmount:     req.VotedAmount,
		AvailableAmount: req.VotedAmount,
		Status:          domain.CreditInPreparation,
		AuditFields:     domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}

	saved, err := s.creditRepo.SaveAnnualCredit(ctx, credit)
	if err != nil {
		logger.Error("Failed to save annual credit", slog.String("error", err.Error()), slog.Int64("authorization_id", authorizationID))
		return nil, err
	}

	s.recordAudit(ctx, domain.AuditEntry{
		EntityType: "CREDIT",
		EntityID:   saved.CreditID,
		Action:     "CREATE",
		Detail:     fmt.Sprintf("credit for year %d created with voted %s", saved.FiscalYear, saved.VotedAmount.StringFixed(2)),
		RecordedAt: now,
	})

	logger.Info("Annual credit created", slog.Int64("credit_id", saved.CreditID), slog.Int("fiscal_year", saved.FiscalYear))
	return saved, nil
}

// VoteAnnualCredit assigns the definitive voted amount and transitions the
// credit EN_PREPARATION to ACTIVE. The repository enforces the one-way rule
// and the authorization ceiling under row locks.
func (s *BudgetService) VoteAnnualCredit(ctx context.Context, creditID int64, req dto.VoteAnnualCreditRequest) (*domain.AnnualCredit, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.VotedAmount.IsPositive() {
		return nil, fmt.Errorf("%w: voted amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now()
	voteDate := now
	if req.VoteDate != nil {
		voteDate = *req.VoteDate
	}

	credit, err := s.creditRepo.VoteAnnualCredit(ctx, creditID, req.VotedAmount, voteDate, now)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrInvalidState) && !errors.Is(err, apperrors.ErrInsufficientBudget) {
			logger.Error("Failed to vote annual credit", slog.String("error", err.Error()), slog.Int64("credit_id", creditID))
		}
		return nil, err
	}

	logger.Info("Annual credit voted", slog.Int64("credit_id", creditID), slog.String("voted_amount", req.VotedAmount.StringFixed(2)))
	return credit, nil
}

// GetAnnualCredit retrieves a specific annual credit.
func (s *BudgetService) GetAnnualCredit(ctx context.Context, creditID int64) (*domain.AnnualCredit, error) {
	return s.creditRepo.FindAnnualCreditByID(ctx, creditID)
}

// CreateBudgetLine adds a line under a credit. Lines always start with a zero
// voted amount; VoteBudgetLine assigns it one-way.
func (s *BudgetService) CreateBudgetLine(ctx context.Context, creditID int64, req dto.CreateBudgetLineRequest) (*domain.BudgetLine, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	credit, err := s.creditRepo.FindAnnualCreditByID(ctx, creditID)
	if err != nil {
		return nil, err
	}
	if credit.Status == domain.CreditClosed || credit.Status == domain.CreditCancelled {
		return nil, fmt.Errorf("%w: credit %d is %s", apperrors.ErrInvalidState, creditID, credit.Status)
	}

	threshold := domain.DefaultAlertThresholdPct
	if req.AlertThresholdPct != nil {
		threshold = *req.AlertThresholdPct
	}

	now := time.Now()
	line := domain.BudgetLine{
		CreditID:          creditID,
		Label:             req.Label,
		Nature:            req.Nature,
		ProjectID:         req.ProjectID,
		AlertThresholdPct: threshold,
		Status:            domain.BudgetLineActive,
		AuditFields:       domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}

	saved, err := s.lineRepo.SaveBudgetLine(ctx, line)
	if err != nil {
		logger.Error("Failed to save budget line", slog.String("error", err.Error()), slog.Int64("credit_id", creditID))
		return nil, err
	}

	s.recordAudit(ctx, domain.AuditEntry{
		EntityType: "LINE",
		EntityID:   saved.BudgetLineID,
		Action:     "CREATE",
		Detail:     fmt.Sprintf("budget line %q created under credit %d", saved.Label, creditID),
		RecordedAt: now,
	})

	logger.Info("Budget line created", slog.Int64("budget_line_id", saved.BudgetLineID))
	return saved, nil
}

// VoteBudgetLine assigns the line's voted amount. The repository enforces the
// one-way rule under a row lock.
func (s *BudgetService) VoteBudgetLine(ctx context.Context, budgetLineID int64, req dto.VoteBudgetLineRequest) (*domain.BudgetLine, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: voted amount must be positive", apperrors.ErrValidation)
	}

	line, err := s.lineRepo.VoteBudgetLine(ctx, budgetLineID, req.Amount, time.Now())
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrInvalidState) {
			logger.Error("Failed to vote budget line", slog.String("error", err.Error()), slog.Int64("budget_line_id", budgetLineID))
		}
		return nil, err
	}

	logger.Info("Budget line voted", slog.Int64("budget_line_id", budgetLineID), slog.String("amount", req.Amount.StringFixed(2)))
	return line, nil
}

// GetBudgetLine retrieves a specific budget line.
func (s *BudgetService) GetBudgetLine(ctx context.Context, budgetLineID int64) (*domain.BudgetLine, error) {
	return s.lineRepo.FindBudgetLineByID(ctx, budgetLineID)
}

// ListBudgetLines retrieves all lines under a credit.
func (s *BudgetService) ListBudgetLines(ctx context.Context, creditID int64) ([]domain.BudgetLine, error) {
	return s.lineRepo.ListBudgetLinesByCredit(ctx, creditID)
}

// FreezeBudgetLine blocks new imputations on the line.
func (s *BudgetService) FreezeBudgetLine(ctx context.Context, budgetLineID int64) (*domain.BudgetLine, error) {
	return s.transitionLine(ctx, budgetLineID, domain.BudgetLineFrozen, "FREEZE", []domain.BudgetLineStatus{domain.BudgetLineActive})
}

// CloseBudgetLine closes the line permanently.
func (s *BudgetService) CloseBudgetLine(ctx context.Context, budgetLineID int64) (*domain.BudgetLine, error) {
	return s.transitionLine(ctx, budgetLineID, domain.BudgetLineClosed, "CLOSE", []domain.BudgetLineStatus{domain.BudgetLineActive, domain.BudgetLineFrozen})
}

func (s *BudgetService) transitionLine(ctx context.Context, budgetLineID int64, target domain.BudgetLineStatus, action string, allowedFrom []domain.BudgetLineStatus) (*domain.BudgetLine, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	line, err := s.lineRepo.FindBudgetLineByID(ctx, budgetLineID)
	if err != nil {
		return nil, err
	}

	allowed := false
	for _, from := range allowedFrom {
		if line.Status == from {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("%w: budget line %d is %s", apperrors.ErrInvalidState, budgetLineID, line.Status)
	}

	now := time.Now()
	before := line.Status
	line.Status = target
	line.UpdatedAt = now

	if err := s.lineRepo.UpdateBudgetLine(ctx, *line); err != nil {
		logger.Error("Failed to update budget line status", slog.String("error", err.Error()), slog.Int64("budget_line_id", budgetLineID))
		return nil, err
	}

	s.recordAudit(ctx, domain.AuditEntry{
		EntityType:  "LINE",
		EntityID:    budgetLineID,
		Action:      action,
		ValueBefore: string(before),
		ValueAfter:  string(target),
		RecordedAt:  now,
	})

	logger.Info("Budget line status changed", slog.Int64("budget_line_id", budgetLineID), slog.String("status", string(target)))
	return line, nil
}

// recordAudit writes a standalone audit row. Failures are logged, not
// propagated: the primary operation already committed.
func (s *BudgetService) recordAudit(ctx context.Context, entry domain.AuditEntry) {
	if err := s.auditRepo.SaveAuditEntry(ctx, entry); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to record audit entry",
			slog.String("error", err.Error()),
			slog.String("entity_type", entry.EntityType),
			slog.Int64("entity_id", entry.EntityID))
	}
}
