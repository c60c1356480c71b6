package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/civicdsi/budget_engagement_app/internal/apperrors"
	"github.com/civicdsi/budget_engagement_app/internal/core/domain"
	portsrepo "github.com/civicdsi/budget_engagement_app/internal/core/ports/repositories"
	portssvc "github.com/civicdsi/budget_engagement_app/internal/core/ports/services"
	"github.com/civicdsi/budget_engagement_app/internal/dto"
	"github.com/civicdsi/budget_engagement_app/internal/middleware"
	"github.com/civicdsi/budget_engagement_app/internal/utils/budgeting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderService runs the purchase order workflow:
// DRAFT → PENDING → VALIDATED → IMPUTED → SOLDE, with CANCELLED reachable
// from every non-terminal state.
type OrderService struct {
	orderRepo portsrepo.OrderRepositoryFacade
	auditRepo portsrepo.AuditRepositoryFacade
}

func NewOrderService(orderRepo portsrepo.OrderRepositoryFacade, auditRepo portsrepo.AuditRepositoryFacade) *OrderService {
	return &OrderService{orderRepo: orderRepo, auditRepo: auditRepo}
}

var _ portssvc.OrderSvcFacade = (*OrderService)(nil)

// CreateOrder opens a new order in DRAFT. The TTC amount is derived from the
// HT amount and the tax rate when not supplied.
func (s *OrderService) CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*domain.Order, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.AmountHT.IsPositive() {
		return nil, fmt.Errorf("%w: amount HT must be positive", apperrors.ErrValidation)
	}

	taxRate := domain.DefaultTaxRate
	if req.TaxRate != nil {
		if req.TaxRate.IsNegative() {
			return nil, fmt.Errorf("%w: tax rate cannot be negative", apperrors.ErrValidation)
		}
		taxRate = *req.TaxRate
	}

	amountTTC := budgeting.ComputeTTC(req.AmountHT, taxRate)
	if req.AmountTTC != nil {
		if req.AmountTTC.LessThan(req.AmountHT) {
			return nil, fmt.Errorf("%w: amount TTC cannot be below amount HT", apperrors.ErrValidation)
		}
		amountTTC = *req.AmountTTC
	}

	now := time.Now()
	order := domain.Order{
		Number:      req.Number,
		Object:      req.Object,
		Description: req.Description,
		SupplierID:  req.SupplierID,
		ProjectID:   req.ProjectID,
		ContractID:  req.ContractID,
		AmountHT:    req.AmountHT,
		AmountTTC:   amountTTC,
		TaxRate:     taxRate,
		Nature:      req.Nature,
		Status:      domain.OrderDraft,
		CreatedBy:   req.CreatedBy,
		AuditFields: domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}

	saved, err := s.orderRepo.SaveOrder(ctx, order)
	if err != nil {
		logger.Error("Failed to save order", slog.String("error", err.Error()), slog.String("number", req.Number))
		return nil, err
	}

	s.recordAudit(ctx, domain.AuditEntry{
		EntityType: "ORDER",
		EntityID:   saved.OrderID,
		Action:     "CREATE",
		Detail:     fmt.Sprintf("order %s created for %s TTC", saved.Number, saved.AmountTTC.StringFixed(2)),
		RecordedAt: now,
	})

	logger.Info("Order created", slog.Int64("order_id", saved.OrderID), slog.String("number", saved.Number))
	return saved, nil
}

// SubmitOrder moves a DRAFT order to PENDING after completeness checks.
func (s *OrderService) SubmitOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.CanSubmit() {
		return nil, fmt.Errorf("%w: order %d is %s, submission requires DRAFT", apperrors.ErrInvalidState, orderID, order.Status)
	}

	if strings.TrimSpace(order.Object) == "" {
		return nil, fmt.Errorf("%w: order object is required for submission", apperrors.ErrValidation)
	}
	if order.SupplierID == 0 {
		return nil, fmt.Errorf("%w: order supplier is required for submission", apperrors.ErrValidation)
	}
	if !order.AmountHT.IsPositive() {
		return nil, fmt.Errorf("%w: order amount HT must be positive for submission", apperrors.ErrValidation)
	}

	now := time.Now()
	order.Status = domain.OrderPending
	order.UpdatedAt = now

	if err := s.orderRepo.UpdateOrder(ctx, *order); err != nil {
		logger.Error("Failed to submit order", slog.String("error", err.Error()), slog.Int64("order_id", orderID))
		return nil, err
	}

	s.recordAudit(ctx, domain.AuditEntry{
		EntityType:  "ORDER",
		EntityID:    orderID,
		Action:      "SUBMIT",
		ValueBefore: string(domain.OrderDraft),
		ValueAfter:  string(domain.OrderPending),
		RecordedAt:  now,
	})

	logger.Info("Order submitted", slog.Int64("order_id", orderID))
	return order, nil
}

// ApproveOrder moves a PENDING order to VALIDATED, recording who validated it
// and when.
func (s *OrderService) ApproveOrder(ctx context.Context, orderID int64, validatorID int64) (*domain.Order, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.CanApprove() {
		return nil, fmt.Errorf("%w: order %d is %s, approval requires PENDING", apperrors.ErrInvalidState, orderID, order.Status)
	}

	now := time.Now()
	order.Status = domain.OrderValidated
	order.Validated = true
	order.ValidatedAt = &now
	order.ValidatorID = &validatorID
	order.UpdatedAt = now

	if err := s.orderRepo.UpdateOrder(ctx, *order); err != nil {
		logger.Error("Failed to approve order", slog.String("error", err.Error()), slog.Int64("order_id", orderID))
		return nil, err
	}

	s.recordAudit(ctx, domain.AuditEntry{
		EntityType:  "ORDER",
		EntityID:    orderID,
		Action:      "APPROVE",
		Detail:      fmt.Sprintf("approved by validator %d", validatorID),
		ValueBefore: string(domain.OrderPending),
		ValueAfter:  string(domain.OrderValidated),
		RecordedAt:  now,
	})

	logger.Info("Order approved", slog.Int64("order_id", orderID), slog.Int64("validator_id", validatorID))
	return order, nil
}

// ImputeOrder commits a VALIDATED order's amount against a budget line. The
// committed amount is the TTC amount, falling back to HT. The conservation
// check, the contract ceiling check and all balance updates run in one
// repository transaction under a row lock on the line.
func (s *OrderService) ImputeOrder(ctx context.Context, orderID int64, budgetLineID int64) (*domain.Order, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.CanImpute() {
		return nil, fmt.Errorf("%w: order %d is %s, imputation requires VALIDATED", apperrors.ErrInvalidState, orderID, order.Status)
	}

	amount := order.CommittedAmount()
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: committed amount must be positive", apperrors.ErrValidation)
	}

	engagementNumber := "ENG-" + strings.ToUpper(uuid.NewString()[:8])
	engagement, err := s.orderRepo.ImputeOrder(ctx, *order, budgetLineID, amount, engagementNumber, time.Now())
	if err != nil {
		var budgetErr *apperrors.InsufficientBudgetError
		if errors.As(err, &budgetErr) {
			logger.Warn("Imputation refused, insufficient budget",
				slog.Int64("order_id", orderID),
				slog.String("scope", budgetErr.Scope),
				slog.String("shortfall", budgetErr.Shortfall().StringFixed(2)))
		} else if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrInvalidState) {
			logger.Error("Failed to impute order", slog.String("error", err.Error()), slog.Int64("order_id", orderID))
		}
		return nil, err
	}

	logger.Info("Order imputed",
		slog.Int64("order_id", orderID),
		slog.Int64("budget_line_id", budgetLineID),
		slog.String("engagement_number", engagement.Number),
		slog.String("amount", amount.StringFixed(2)))

	return s.orderRepo.FindOrderByID(ctx, orderID)
}

// CancelOrder cancels an order. Imputed orders are reversed: their budget
// line is refunded and the engagement marked ANNULE in the same transaction.
func (s *OrderService) CancelOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.CanCancel() {
		return nil, fmt.Errorf("%w: order %d is %s and cannot be cancelled", apperrors.ErrInvalidState, orderID, order.Status)
	}

	now := time.Now()
	if order.RequiresReversal() {
		if err := s.orderRepo.ReverseImputation(ctx, orderID, now); err != nil {
			if !errors.Is(err, apperrors.ErrInvalidState) {
				logger.Error("Failed to reverse imputation", slog.String("error", err.Error()), slog.Int64("order_id", orderID))
			}
			return nil, err
		}
		logger.Info("Order cancelled with reversal", slog.Int64("order_id", orderID))
		return s.orderRepo.FindOrderByID(ctx, orderID)
	}

	before := order.Status
	order.Status = domain.OrderCancelled
	order.UpdatedAt = now

	if err := s.orderRepo.UpdateOrder(ctx, *order); err != nil {
		logger.Error("Failed to cancel order", slog.String("error", err.Error()), slog.Int64("order_id", orderID))
		return nil, err
	}

	s.recordAudit(ctx, domain.AuditEntry{
		EntityType:  "ORDER",
		EntityID:    orderID,
		Action:      "CANCEL",
		ValueBefore: string(before),
		ValueAfter:  string(domain.OrderCancelled),
		RecordedAt:  now,
	})

	logger.Info("Order cancelled", slog.Int64("order_id", orderID))
	return order, nil
}

// SettleOrder moves an IMPUTED order to SOLDE. The paid amount defaults to
// the order's committed amount.
func (s *OrderService) SettleOrder(ctx context.Context, orderID int64, paidAmount *decimal.Decimal) (*domain.Order, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.CanSettle() {
		return nil, fmt.Errorf("%w: order %d is %s, settlement requires IMPUTED", apperrors.ErrInvalidState, orderID, order.Status)
	}

	paid := order.CommittedAmount()
	if paidAmount != nil {
		if paidAmount.IsNegative() {
			return nil, fmt.Errorf("%w: paid amount cannot be negative", apperrors.ErrValidation)
		}
		paid = *paidAmount
	}

	if err := s.orderRepo.SettleOrder(ctx, orderID, paid, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrInvalidState) {
			logger.Error("Failed to settle order", slog.String("error", err.Error()), slog.Int64("order_id", orderID))
		}
		return nil, err
	}

	logger.Info("Order settled", slog.Int64("order_id", orderID), slog.String("paid", paid.StringFixed(2)))
	return s.orderRepo.FindOrderByID(ctx, orderID)
}

// GetOrder retrieves a specific order.
func (s *OrderService) GetOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	return s.orderRepo.FindOrderByID(ctx, orderID)
}

// ListOrders retrieves orders matching the filter.
func (s *OrderService) ListOrders(ctx context.Context, filter portsrepo.ListOrdersFilter) ([]domain.Order, error) {
	return s.orderRepo.ListOrders(ctx, filter)
}

func (s *OrderService) recordAudit(ctx context.Context, entry domain.AuditEntry) {
	if err := s.auditRepo.SaveAuditEntry(ctx, entry); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to record audit entry",
			slog.String("error", err.Error()),
			slog.String("entity_type", entry.EntityType),
			slog.Int64("entity_id", entry.EntityID))
	}
}
