package services_test

import (
	"context"
	"time"

	"github.com/civicdsi/budget_engagement_app/internal/core/domain"
	portsrepo "github.com/civicdsi/budget_engagement_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockAuthorizationRepository is a mock type for the AuthorizationRepositoryFacade interface
type MockAuthorizationRepository struct {
	mock.Mock
}

func (m *MockAuthorizationRepository) SaveAuthorization(ctx context.Context, authorization domain.Authorization) (*domain.Authorization, error) {
	args := m.Called(ctx, authorization)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Authorization), args.Error(1)
}

func (m *MockAuthorizationRepository) UpdateAuthorization(ctx context.Context, authorization domain.Authorization) error {
	args := m.Called(ctx, authorization)
	return args.Error(0)
}

func (m *MockAuthorizationRepository) FindAuthorizationByID(ctx context.Context, authorizationID int64) (*domain.Authorization, error) {
	args := m.Called(ctx, authorizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Authorization), args.Error(1)
}

func (m *MockAuthorizationRepository) ListAuthorizations(ctx context.Context, limit int, offset int) ([]domain.Authorization, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Authorization), args.Error(1)
}

// MockAnnualCreditRepository is a mock type for the AnnualCreditRepositoryFacade interface
type MockAnnualCreditRepository struct {
	mock.Mock
}

func (m *MockAnnualCreditRepository) SaveAnnualCredit(ctx context.Context, credit domain.AnnualCredit) (*domain.AnnualCredit, error) {
	args := m.Called(ctx, credit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnnualCredit), args.Error(1)
}

func (m *MockAnnualCreditRepository) UpdateAnnualCredit(ctx context.Context, credit domain.AnnualCredit) error {
	args := m.Called(ctx, credit)
	return args.Error(0)
}

func (m *MockAnnualCreditRepository) FindAnnualCreditByID(ctx context.Context, creditID int64) (*domain.AnnualCredit, error) {
	args := m.Called(ctx, creditID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnnualCredit), args.Error(1)
}

func (m *MockAnnualCreditRepository) ListAnnualCreditsByAuthorization(ctx context.Context, authorizationID int64) ([]domain.AnnualCredit, error) {
	args := m.Called(ctx, authorizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AnnualCredit), args.Error(1)
}

func (m *MockAnnualCreditRepository) VoteAnnualCredit(ctx context.Context, creditID int64, votedAmount decimal.Decimal, voteDate time.Time, now time.Time) (*domain.AnnualCredit, error) {
	args := m.Called(ctx, creditID, votedAmount, voteDate, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnnualCredit), args.Error(1)
}

// MockBudgetLineRepository is a mock type for the BudgetLineRepositoryFacade interface
type MockBudgetLineRepository struct {
	mock.Mock
}

func (m *MockBudgetLineRepository) SaveBudgetLine(ctx context.Context, line domain.BudgetLine) (*domain.BudgetLine, error) {
	args := m.Called(ctx, line)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetLine), args.Error(1)
}

func (m *MockBudgetLineRepository) UpdateBudgetLine(ctx context.Context, line domain.BudgetLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockBudgetLineRepository) VoteBudgetLine(ctx context.Context, budgetLineID int64, amount decimal.Decimal, now time.Time) (*domain.BudgetLine, error) {
	args := m.Called(ctx, budgetLineID, amount, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetLine), args.Error(1)
}

func (m *MockBudgetLineRepository) FindBudgetLineByID(ctx context.Context, budgetLineID int64) (*domain.BudgetLine, error) {
	args := m.Called(ctx, budgetLineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetLine), args.Error(1)
}

func (m *MockBudgetLineRepository) ListBudgetLinesByCredit(ctx context.Context, creditID int64) ([]domain.BudgetLine, error) {
	args := m.Called(ctx, creditID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BudgetLine), args.Error(1)
}

func (m *MockBudgetLineRepository) ListBudgetLines(ctx context.Context, limit int, offset int) ([]domain.BudgetLine, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BudgetLine), args.Error(1)
}

// MockOrderRepository is a mock type for the OrderRepositoryFacade interface
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) SaveOrder(ctx context.Context, order domain.Order) (*domain.Order, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateOrder(ctx context.Context, order domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) FindOrderByID(ctx context.Context, orderID int64) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) ListOrders(ctx context.Context, filter portsrepo.ListOrdersFilter) ([]domain.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) ImputeOrder(ctx context.Context, order domain.Order, budgetLineID int64, amount decimal.Decimal, engagementNumber string, now time.Time) (*domain.Engagement, error) {
	args := m.Called(ctx, order, budgetLineID, amount, engagementNumber, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Engagement), args.Error(1)
}

func (m *MockOrderRepository) ReverseImputation(ctx context.Context, orderID int64, now time.Time) error {
	args := m.Called(ctx, orderID, now)
	return args.Error(0)
}

func (m *MockOrderRepository) SettleOrder(ctx context.Context, orderID int64, paidAmount decimal.Decimal, now time.Time) error {
	args := m.Called(ctx, orderID, paidAmount, now)
	return args.Error(0)
}

func (m *MockOrderRepository) FindEngagementByOrderID(ctx context.Context, orderID int64) (*domain.Engagement, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Engagement), args.Error(1)
}

// MockContractRepository is a mock type for the ContractRepositoryFacade interface
type MockContractRepository struct {
	mock.Mock
}

func (m *MockContractRepository) SaveContract(ctx context.Context, contract domain.Contract) (*domain.Contract, error) {
	args := m.Called(ctx, contract)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}

func (m *MockContractRepository) UpdateContract(ctx context.Context, contract domain.Contract) error {
	args := m.Called(ctx, contract)
	return args.Error(0)
}

func (m *MockContractRepository) FindContractByID(ctx context.Context, contractID int64) (*domain.Contract, error) {
	args := m.Called(ctx, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}

func (m *MockContractRepository) ListContracts(ctx context.Context, filter portsrepo.ListContractsFilter) ([]domain.Contract, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Contract), args.Error(1)
}

func (m *MockContractRepository) ExpireContracts(ctx context.Context, asOf time.Time) ([]domain.Contract, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Contract), args.Error(1)
}

// MockReconciliationRepository is a mock type for the ReconciliationRepositoryFacade interface
type MockReconciliationRepository struct {
	mock.Mock
}

func (m *MockReconciliationRepository) ListBudgetLineIDs(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockReconciliationRepository) CheckLine(ctx context.Context, budgetLineID int64) (*domain.LineDrift, error) {
	args := m.Called(ctx, budgetLineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LineDrift), args.Error(1)
}

func (m *MockReconciliationRepository) RepairLine(ctx context.Context, drift domain.LineDrift, now time.Time) error {
	args := m.Called(ctx, drift, now)
	return args.Error(0)
}

// MockAuditRepository is a mock type for the AuditRepositoryFacade interface
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) SaveAuditEntry(ctx context.Context, entry domain.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) ListAuditEntries(ctx context.Context, filter portsrepo.ListAuditFilter) ([]domain.AuditEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditEntry), args.Error(1)
}
