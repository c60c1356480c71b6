package repositories

import (
	"context"
	"time"

	"github.com/civicdsi/budget_engagement_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListOrdersFilter narrows ListOrders results. Zero values mean no filter.
type ListOrdersFilter struct {
	Status       domain.OrderStatus
	SupplierID   int64
	ContractID   int64
	BudgetLineID int64
	Limit        int
	Offset       int
}

// OrderReader defines read operations for order data
type OrderReader interface {
	// FindOrderByID retrieves a specific order by its identifier.
	FindOrderByID(ctx context.Context, orderID int64) (*domain.Order, error)

	// ListOrders retrieves orders matching the filter.
	ListOrders(ctx context.Context, filter ListOrdersFilter) ([]domain.Order, error)
}

// OrderWriter defines plain write operations for order data
type OrderWriter interface {
	// SaveOrder persists a new order and returns it with its assigned ID.
	SaveOrder(ctx context.Context, order domain.Order) (*domain.Order, error)

	// UpdateOrder updates an existing order's details and status.
	UpdateOrder(ctx context.Context, order domain.Order) error
}

// OrderWorkflowSupport defines the transactional workflow operations. Each
// method owns its transaction: the budget line row is locked before any
// balance check so concurrent imputations serialize on the line.
type OrderWorkflowSupport interface {
	// ImputeOrder commits the order's amount against the budget line:
	// conservation check, optional contract ceiling check, line totals
	// update, order transition to IMPUTED, engagement insert and audit row,
	// all in one transaction. Returns the created engagement.
	ImputeOrder(ctx context.Context, order domain.Order, budgetLineID int64, amount decimal.Decimal, engagementNumber string, now time.Time) (*domain.Engagement, error)

	// ReverseImputation undoes an imputed order's commitment: line totals
	// refund, engagement marked ANNULE, order transition to CANCELLED and
	// audit row, all in one transaction.
	ReverseImputation(ctx context.Context, orderID int64, now time.Time) error

	// SettleOrder transitions an imputed order to SOLDE and adds the paid
	// amount to the line's paid total, in one transaction.
	SettleOrder(ctx context.Context, orderID int64, paidAmount decimal.Decimal, now time.Time) error
}

// EngagementReader defines read operations for engagement data
type EngagementReader interface {
	// FindEngagementByOrderID retrieves the live engagement of an order.
	FindEngagementByOrderID(ctx context.Context, orderID int64) (*domain.Engagement, error)
}

// OrderRepositoryFacade combines all order-related repository interfaces
type OrderRepositoryFacade interface {
	OrderReader
	OrderWriter
	OrderWorkflowSupport
	EngagementReader
}
