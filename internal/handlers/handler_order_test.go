package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/civicdsi/budget_engagement_app/internal/apperrors"
	"github.com/civicdsi/budget_engagement_app/internal/core/domain"
	portsrepo "github.com/civicdsi/budget_engagement_app/internal/core/ports/repositories"
	portssvc "github.com/civicdsi/budget_engagement_app/internal/core/ports/services"
	"github.com/civicdsi/budget_engagement_app/internal/dto"
	"github.com/civicdsi/budget_engagement_app/internal/handlers"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock OrderService ---
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*domain.Order, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderService) SubmitOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderService) ApproveOrder(ctx context.Context, orderID int64, validatorID int64) (*domain.Order, error) {
	args := m.Called(ctx, orderID, validatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderService) ImputeOrder(ctx context.Context, orderID int64, budgetLineID int64) (*domain.Order, error) {
	args := m.Called(ctx, orderID, budgetLineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderService) CancelOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderService) SettleOrder(ctx context.Context, orderID int64, paidAmount *decimal.Decimal) (*domain.Order, error) {
	args := m.Called(ctx, orderID, paidAmount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderService) GetOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderService) ListOrders(ctx context.Context, filter portsrepo.ListOrdersFilter) ([]domain.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

var _ portssvc.OrderSvcFacade = (*MockOrderService)(nil)

type OrderHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockOrderService *MockOrderService
}

func (suite *OrderHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockOrderService = new(MockOrderService)
	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, &portssvc.ServiceContainer{
		Order: suite.mockOrderService,
	})
}

func (suite *OrderHandlerTestSuite) performRequest(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *OrderHandlerTestSuite) TestCreateOrder_Created() {
	order := &domain.Order{
		OrderID:    1,
		Number:     "BC-2026-0042",
		Object:     "Server racks",
		SupplierID: 7,
		AmountHT:   decimal.NewFromInt(1000),
		AmountTTC:  decimal.NewFromInt(1200),
		TaxRate:    decimal.NewFromInt(20),
		Nature:     domain.NatureCapital,
		Status:     domain.OrderDraft,
		CreatedBy:  3,
	}
	suite.mockOrderService.On("CreateOrder", mock.Anything, mock.AnythingOfType("dto.CreateOrderRequest")).Return(order, nil).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/orders", dto.CreateOrderRequest{
		Number:     "BC-2026-0042",
		Object:     "Server racks",
		SupplierID: 7,
		AmountHT:   decimal.NewFromInt(1000),
		Nature:     domain.NatureCapital,
		CreatedBy:  3,
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.OrderResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("BC-2026-0042", resp.Number)
	suite.Equal(domain.OrderDraft, resp.Status)
}

func (suite *OrderHandlerTestSuite) TestCreateOrder_MissingFields() {
	w := suite.performRequest(http.MethodPost, "/api/v1/orders", gin.H{"object": "incomplete"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockOrderService.AssertNotCalled(suite.T(), "CreateOrder", mock.Anything, mock.Anything)
}

func (suite *OrderHandlerTestSuite) TestImputeOrder_InsufficientBudget() {
	suite.mockOrderService.On("ImputeOrder", mock.Anything, int64(12), int64(100)).Return(nil, &apperrors.InsufficientBudgetError{
		Scope:     "budget line",
		ScopeID:   100,
		Available: decimal.NewFromInt(52000),
		Requested: decimal.NewFromInt(60000),
	}).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/orders/12/impute", dto.ImputeOrderRequest{BudgetLineID: 100})

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	var body map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("budget line", body["scope"])
	suite.Equal("8000", body["shortfall"])
}

func (suite *OrderHandlerTestSuite) TestApproveOrder_WrongState() {
	suite.mockOrderService.On("ApproveOrder", mock.Anything, int64(5), int64(9)).
		Return(nil, apperrors.ErrInvalidState).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/orders/5/approve", dto.ApproveOrderRequest{ValidatorID: 9})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *OrderHandlerTestSuite) TestGetOrder_NotFound() {
	suite.mockOrderService.On("GetOrder", mock.Anything, int64(99)).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.performRequest(http.MethodGet, "/api/v1/orders/99", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *OrderHandlerTestSuite) TestGetOrder_InvalidID() {
	w := suite.performRequest(http.MethodGet, "/api/v1/orders/abc", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockOrderService.AssertNotCalled(suite.T(), "GetOrder", mock.Anything, mock.Anything)
}

func (suite *OrderHandlerTestSuite) TestListOrders_PassesFilter() {
	suite.mockOrderService.On("ListOrders", mock.Anything, portsrepo.ListOrdersFilter{
		Status:     domain.OrderImputed,
		SupplierID: 7,
		Limit:      50,
		Offset:     0,
	}).Return([]domain.Order{{OrderID: 1, Status: domain.OrderImputed}}, nil).Once()

	w := suite.performRequest(http.MethodGet, "/api/v1/orders?status=IMPUTED&supplierID=7", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockOrderService.AssertExpectations(suite.T())
}

func TestOrderHandlerTestSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(OrderHandlerTestSuite))
}
