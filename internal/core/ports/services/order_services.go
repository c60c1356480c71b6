package services

import (
	"context"

	"github.com/civicdsi/budget_engagement_app/internal/core/domain"
	"github.com/civicdsi/budget_engagement_app/internal/core/ports/repositories"
	"github.com/civicdsi/budget_engagement_app/internal/dto"
	"github.com/shopspring/decimal"
)

// OrderReaderSvc defines read operations for orders
type OrderReaderSvc interface {
	// GetOrder retrieves a specific order.
	GetOrder(ctx context.Context, orderID int64) (*domain.Order, error)

	// ListOrders retrieves orders matching the filter.
	ListOrders(ctx context.Context, filter repositories.ListOrdersFilter) ([]domain.Order, error)
}

// OrderWorkflowSvc defines the order lifecycle operations
type OrderWorkflowSvc interface {
	// CreateOrder opens a new order in DRAFT.
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*domain.Order, error)

	// SubmitOrder moves a DRAFT order to PENDING after completeness checks.
	SubmitOrder(ctx context.Context, orderID int64) (*domain.Order, error)

	// ApproveOrder moves a PENDING order to VALIDATED, recording the validator.
	ApproveOrder(ctx context.Context, orderID int64, validatorID int64) (*domain.Order, error)

	// ImputeOrder commits a VALIDATED order's amount against a budget line.
	ImputeOrder(ctx context.Context, orderID int64, budgetLineID int64) (*domain.Order, error)

	// CancelOrder cancels an order, reversing its commitment when imputed.
	CancelOrder(ctx context.Context, orderID int64) (*domain.Order, error)

	// SettleOrder moves an IMPUTED order to SOLDE with its final paid amount.
	SettleOrder(ctx context.Context, orderID int64, paidAmount *decimal.Decimal) (*domain.Order, error)
}

// OrderSvcFacade combines all order service interfaces
type OrderSvcFacade interface {
	OrderReaderSvc
	OrderWorkflowSvc
}
