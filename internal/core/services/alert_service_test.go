package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/civicdsi/budget_engagement_app/internal/core/domain"
	portsrepo "github.com/civicdsi/budget_engagement_app/internal/core/ports/repositories"
	"github.com/civicdsi/budget_engagement_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type AlertServiceTestSuite struct {
	suite.Suite
	mockContractRepo *MockContractRepository
	mockLineRepo     *MockBudgetLineRepository
	service          *services.AlertService
}

func (suite *AlertServiceTestSuite) SetupTest() {
	suite.mockContractRepo = new(MockContractRepository)
	suite.mockLineRepo = new(MockBudgetLineRepository)
	suite.service = services.NewAlertService(suite.mockContractRepo, suite.mockLineRepo)
}

func (suite *AlertServiceTestSuite) TestListContractAlerts_SortedMostUrgentFirst() {
	ctx := context.Background()
	asOf := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	active := []domain.Contract{
		{ContractID: 1, Status: domain.ContractActive, EndDate: asOf.AddDate(0, 0, 80)},
		{ContractID: 2, Status: domain.ContractActive, EndDate: asOf.AddDate(0, 0, 10)},
		{ContractID: 3, Status: domain.ContractActive, EndDate: asOf.AddDate(1, 0, 0)},
	}
	renewed := []domain.Contract{
		{ContractID: 4, Status: domain.ContractRenewed, EndDate: asOf.AddDate(0, 0, -5)},
	}

	suite.mockContractRepo.On("ListContracts", ctx, portsrepo.ListContractsFilter{Status: domain.ContractActive, Limit: 10000}).Return(active, nil).Once()
	suite.mockContractRepo.On("ListContracts", ctx, portsrepo.ListContractsFilter{Status: domain.ContractRenewed, Limit: 10000}).Return(renewed, nil).Once()
	suite.mockContractRepo.On("ListContracts", ctx, portsrepo.ListContractsFilter{Status: domain.ContractExpired, Limit: 10000}).Return([]domain.Contract{}, nil).Once()

	alerts, err := suite.service.ListContractAlerts(ctx, asOf)

	suite.Require().NoError(err)
	suite.Require().Len(alerts, 3)
	suite.Equal(int64(4), alerts[0].Contract.ContractID)
	suite.Equal(domain.AlertExpired, alerts[0].Level)
	suite.Equal(int64(2), alerts[1].Contract.ContractID)
	suite.Equal(domain.AlertCritical, alerts[1].Level)
	suite.Equal(int64(1), alerts[2].Contract.ContractID)
	suite.Equal(domain.AlertWarning, alerts[2].Level)
}

func (suite *AlertServiceTestSuite) TestListContractAlerts_KeepsExpiredStatusContracts() {
	ctx := context.Background()
	asOf := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	// A contract the expiry sweep already flipped must stay on the dashboard.
	expired := []domain.Contract{
		{ContractID: 9, Status: domain.ContractExpired, EndDate: asOf.AddDate(0, 0, -40)},
	}

	suite.mockContractRepo.On("ListContracts", ctx, portsrepo.ListContractsFilter{Status: domain.ContractActive, Limit: 10000}).Return([]domain.Contract{}, nil).Once()
	suite.mockContractRepo.On("ListContracts", ctx, portsrepo.ListContractsFilter{Status: domain.ContractRenewed, Limit: 10000}).Return([]domain.Contract{}, nil).Once()
	suite.mockContractRepo.On("ListContracts", ctx, portsrepo.ListContractsFilter{Status: domain.ContractExpired, Limit: 10000}).Return(expired, nil).Once()

	alerts, err := suite.service.ListContractAlerts(ctx, asOf)

	suite.Require().NoError(err)
	suite.Require().Len(alerts, 1)
	suite.Equal(int64(9), alerts[0].Contract.ContractID)
	suite.Equal(domain.AlertExpired, alerts[0].Level)
	suite.Equal(-40, alerts[0].DaysRemaining)
}

func (suite *AlertServiceTestSuite) TestListBudgetLineAlerts_FiltersAndSorts() {
	ctx := context.Background()

	lines := []domain.BudgetLine{
		{
			BudgetLineID:      1,
			Status:            domain.BudgetLineActive,
			VotedAmount:       decimal.NewFromInt(1000),
			EngagedAmount:     decimal.NewFromInt(850),
			AlertThresholdPct: 80,
		},
		{
			BudgetLineID:      2,
			Status:            domain.BudgetLineActive,
			VotedAmount:       decimal.NewFromInt(1000),
			EngagedAmount:     decimal.NewFromInt(500),
			AlertThresholdPct: 80,
		},
		{
			BudgetLineID:      3,
			Status:            domain.BudgetLineActive,
			VotedAmount:       decimal.NewFromInt(1000),
			EngagedAmount:     decimal.NewFromInt(990),
			AlertThresholdPct: 80,
		},
		{
			BudgetLineID:      4,
			Status:            domain.BudgetLineFrozen,
			VotedAmount:       decimal.NewFromInt(1000),
			EngagedAmount:     decimal.NewFromInt(999),
			AlertThresholdPct: 80,
		},
	}

	suite.mockLineRepo.On("ListBudgetLines", ctx, 10000, 0).Return(lines, nil).Once()

	alerts, err := suite.service.ListBudgetLineAlerts(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(alerts, 2)
	suite.Equal(int64(3), alerts[0].Line.BudgetLineID)
	suite.InDelta(99.0, alerts[0].EngagementRate, 0.001)
	suite.Equal(int64(1), alerts[1].Line.BudgetLineID)
	suite.InDelta(85.0, alerts[1].EngagementRate, 0.001)
}

func TestAlertServiceTestSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(AlertServiceTestSuite))
}
