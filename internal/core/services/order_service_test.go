package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/civicdsi/budget_engagement_app/internal/apperrors"
	"github.com/civicdsi/budget_engagement_app/internal/core/domain"
	"github.com/civicdsi/budget_engagement_app/internal/core/services"
	"github.com/civicdsi/budget_engagement_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type OrderServiceTestSuite struct {
	suite.Suite
	mockOrderRepo *MockOrderRepository
	mockAuditRepo *MockAuditRepository
	service       *services.OrderService
}

func (suite *OrderServiceTestSuite) SetupTest() {
	suite.mockOrderRepo = new(MockOrderRepository)
	suite.mockAuditRepo = new(MockAuditRepository)
	suite.service = services.NewOrderService(suite.mockOrderRepo, suite.mockAuditRepo)

	// Audit writes are best-effort side effects, not the behavior under test.
	suite.mockAuditRepo.On("SaveAuditEntry", mock.Anything, mock.AnythingOfType("domain.AuditEntry")).Return(nil).Maybe()
}

func (suite *OrderServiceTestSuite) validatedOrder(id int64, ttc int64) *domain.Order {
	return &domain.Order{
		OrderID:    id,
		Number:     "BC-2026-0042",
		Object:     "Server hardware renewal",
		SupplierID: 7,
		AmountHT:   decimal.NewFromInt(ttc).Div(decimal.NewFromFloat(1.2)).Round(2),
		AmountTTC:  decimal.NewFromInt(ttc),
		TaxRate:    decimal.NewFromFloat(20.0),
		Nature:     domain.NatureCapital,
		Status:     domain.OrderValidated,
		Validated:  true,
	}
}

func (suite *OrderServiceTestSuite) TestCreateOrder_ComputesTTC() {
	ctx := context.Background()
	req := dto.CreateOrderRequest{
		Number:     "BC-2026-0001",
		Object:     "Annual software licences",
		SupplierID: 3,
		AmountHT:   decimal.NewFromInt(1000),
		Nature:     domain.NatureOperating,
		CreatedBy:  1,
	}

	suite.mockOrderRepo.On("SaveOrder", ctx, mock.MatchedBy(func(o domain.Order) bool {
		return o.Status == domain.OrderDraft &&
			o.AmountTTC.Equal(decimal.NewFromInt(1200)) &&
			o.TaxRate.Equal(decimal.NewFromFloat(20.0))
	})).Return(&domain.Order{OrderID: 1, Status: domain.OrderDraft}, nil).Once()

	created, err := suite.service.CreateOrder(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestCreateOrder_RejectsNonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreateOrderRequest{
		Number:     "BC-2026-0002",
		Object:     "Nothing",
		SupplierID: 3,
		AmountHT:   decimal.Zero,
		Nature:     domain.NatureOperating,
		CreatedBy:  1,
	}

	_, err := suite.service.CreateOrder(ctx, req)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "SaveOrder", mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestImputeOrder_Success() {
	ctx := context.Background()
	order := suite.validatedOrder(42, 48000)
	lineID := int64(9)

	engagement := &domain.Engagement{
		EngagementID: 1,
		OrderID:      42,
		BudgetLineID: lineID,
		Amount:       decimal.NewFromInt(48000),
		Status:       domain.EngagementActive,
	}
	imputed := *order
	imputed.Status = domain.OrderImputed
	imputed.Imputed = true
	imputed.BudgetLineID = &lineID
	imputed.EngagedAmount = decimal.NewFromInt(48000)

	suite.mockOrderRepo.On("FindOrderByID", ctx, int64(42)).Return(order, nil).Once()
	suite.mockOrderRepo.On("ImputeOrder", ctx, *order, lineID, mock.MatchedBy(func(amount decimal.Decimal) bool {
		return amount.Equal(decimal.NewFromInt(48000))
	}), mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(engagement, nil).Once()
	suite.mockOrderRepo.On("FindOrderByID", ctx, int64(42)).Return(&imputed, nil).Once()

	result, err := suite.service.ImputeOrder(ctx, 42, lineID)

	suite.Require().NoError(err)
	suite.Equal(domain.OrderImputed, result.Status)
	suite.True(result.EngagedAmount.Equal(decimal.NewFromInt(48000)))
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestImputeOrder_InsufficientBudget() {
	// The line has 52,000 left after a first 48,000 commitment; a 60,000
	// order must be refused with the 8,000 shortfall reported.
	ctx := context.Background()
	order := suite.validatedOrder(43, 60000)
	lineID := int64(9)

	budgetErr := &apperrors.InsufficientBudgetError{
		Scope:     "budget line",
		ScopeID:   lineID,
		Available: decimal.NewFromInt(52000),
		Requested: decimal.NewFromInt(60000),
	}

	suite.mockOrderRepo.On("FindOrderByID", ctx, int64(43)).Return(order, nil).Once()
	suite.mockOrderRepo.On("ImputeOrder", ctx, *order, lineID, mock.Anything, mock.Anything, mock.Anything).Return(nil, budgetErr).Once()

	_, err := suite.service.ImputeOrder(ctx, 43, lineID)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, apperrors.ErrInsufficientBudget)

	var ibe *apperrors.InsufficientBudgetError
	suite.Require().True(errors.As(err, &ibe))
	suite.True(ibe.Shortfall().Equal(decimal.NewFromInt(8000)))
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestImputeOrder_RequiresValidated() {
	ctx := context.Background()
	order := suite.validatedOrder(44, 1000)
	order.Status = domain.OrderPending

	suite.mockOrderRepo.On("FindOrderByID", ctx, int64(44)).Return(order, nil).Once()

	_, err := suite.service.ImputeOrder(ctx, 44, 9)

	suite.Require().ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "ImputeOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestApproveOrder_RequiresPending() {
	ctx := context.Background()
	order := suite.validatedOrder(45, 1000)
	order.Status = domain.OrderDraft
	order.Validated = false

	suite.mockOrderRepo.On("FindOrderByID", ctx, int64(45)).Return(order, nil).Once()

	_, err := suite.service.ApproveOrder(ctx, 45, 2)

	suite.Require().ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "UpdateOrder", mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestApproveOrder_Success() {
	ctx := context.Background()
	order := suite.validatedOrder(46, 1000)
	order.Status = domain.OrderPending
	order.Validated = false

	suite.mockOrderRepo.On("FindOrderByID", ctx, int64(46)).Return(order, nil).Once()
	suite.mockOrderRepo.On("UpdateOrder", ctx, mock.MatchedBy(func(o domain.Order) bool {
		return o.Status == domain.OrderValidated && o.Validated && o.ValidatorID != nil && *o.ValidatorID == 2
	})).Return(nil).Once()

	approved, err := suite.service.ApproveOrder(ctx, 46, 2)

	suite.Require().NoError(err)
	suite.Equal(domain.OrderValidated, approved.Status)
	suite.NotNil(approved.ValidatedAt)
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestCancelOrder_ImputedTriggersReversal() {
	ctx := context.Background()
	lineID := int64(9)
	order := suite.validatedOrder(47, 48000)
	order.Status = domain.OrderImputed
	order.Imputed = true
	order.BudgetLineID = &lineID
	order.EngagedAmount = decimal.NewFromInt(48000)

	cancelled := *order
	cancelled.Status = domain.OrderCancelled

	suite.mockOrderRepo.On("FindOrderByID", ctx, int64(47)).Return(order, nil).Once()
	suite.mockOrderRepo.On("ReverseImputation", ctx, int64(47), mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockOrderRepo.On("FindOrderByID", ctx, int64(47)).Return(&cancelled, nil).Once()

	result, err := suite.service.CancelOrder(ctx, 47)

	suite.Require().NoError(err)
	suite.Equal(domain.OrderCancelled, result.Status)
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestCancelOrder_DraftCancelsDirectly() {
	ctx := context.Background()
	order := suite.validatedOrder(48, 1000)
	order.Status = domain.OrderDraft

	suite.mockOrderRepo.On("FindOrderByID", ctx, int64(48)).Return(order, nil).Once()
	suite.mockOrderRepo.On("UpdateOrder", ctx, mock.MatchedBy(func(o domain.Order) bool {
		return o.Status == domain.OrderCancelled
	})).Return(nil).Once()

	result, err := suite.service.CancelOrder(ctx, 48)

	suite.Require().NoError(err)
	suite.Equal(domain.OrderCancelled, result.Status)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "ReverseImputation", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestCancelOrder_SettledIsFinal() {
	ctx := context.Background()
	order := suite.validatedOrder(49, 1000)
	order.Status = domain.OrderSettled

	suite.mockOrderRepo.On("FindOrderByID", ctx, int64(49)).Return(order, nil).Once()

	_, err := suite.service.CancelOrder(ctx, 49)

	suite.Require().ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *OrderServiceTestSuite) TestSettleOrder_DefaultsToCommittedAmount() {
	ctx := context.Background()
	lineID := int64(9)
	order := suite.validatedOrder(50, 48000)
	order.Status = domain.OrderImputed
	order.BudgetLineID = &lineID

	settled := *order
	settled.Status = domain.OrderSettled
	settled.PaidAmount = decimal.NewFromInt(48000)

	suite.mockOrderRepo.On("FindOrderByID", ctx, int64(50)).Return(order, nil).Once()
	suite.mockOrderRepo.On("SettleOrder", ctx, int64(50), mock.MatchedBy(func(paid decimal.Decimal) bool {
		return paid.Equal(decimal.NewFromInt(48000))
	}), mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockOrderRepo.On("FindOrderByID", ctx, int64(50)).Return(&settled, nil).Once()

	result, err := suite.service.SettleOrder(ctx, 50, nil)

	suite.Require().NoError(err)
	suite.Equal(domain.OrderSettled, result.Status)
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestSubmitOrder_RequiresCompleteness() {
	ctx := context.Background()
	order := &domain.Order{
		OrderID:  51,
		Number:   "BC-2026-0051",
		Object:   "   ",
		AmountHT: decimal.NewFromInt(100),
		Status:   domain.OrderDraft,
	}

	suite.mockOrderRepo.On("FindOrderByID", ctx, int64(51)).Return(order, nil).Once()

	_, err := suite.service.SubmitOrder(ctx, 51)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "UpdateOrder", mock.Anything, mock.Anything)
}

func TestOrderServiceTestSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(OrderServiceTestSuite))
}
