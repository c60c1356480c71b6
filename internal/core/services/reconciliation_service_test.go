package services_test

import (
	"context"
	"testing"

	"github.com/civicdsi/budget_engagement_app/internal/core/domain"
	"github.com/civicdsi/budget_engagement_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReconciliationServiceTestSuite struct {
	suite.Suite
	mockReconRepo *MockReconciliationRepository
	service       *services.ReconciliationService
}

func (suite *ReconciliationServiceTestSuite) SetupTest() {
	suite.mockReconRepo = new(MockReconciliationRepository)
	suite.service = services.NewReconciliationService(suite.mockReconRepo, decimal.Zero)
}

func cleanDrift(id int64) *domain.LineDrift {
	amount := decimal.NewFromInt(1000)
	return &domain.LineDrift{
		BudgetLineID:  id,
		CachedEngaged: amount,
		RealEngaged:   amount,
		CachedPaid:    decimal.Zero,
		RealPaid:      decimal.Zero,
	}
}

func (suite *ReconciliationServiceTestSuite) TestReconcile_DryRunReportsDrift() {
	ctx := context.Background()

	drifted := &domain.LineDrift{
		BudgetLineID:  2,
		CachedEngaged: decimal.NewFromInt(5000),
		RealEngaged:   decimal.NewFromInt(4200),
		CachedPaid:    decimal.Zero,
		RealPaid:      decimal.Zero,
	}

	suite.mockReconRepo.On("ListBudgetLineIDs", ctx).Return([]int64{1, 2}, nil).Once()
	suite.mockReconRepo.On("CheckLine", ctx, int64(1)).Return(cleanDrift(1), nil).Once()
	suite.mockReconRepo.On("CheckLine", ctx, int64(2)).Return(drifted, nil).Once()

	report, err := suite.service.Reconcile(ctx, nil, false)

	suite.Require().NoError(err)
	suite.True(report.DryRun)
	suite.Equal(2, report.LinesChecked)
	suite.Require().Len(report.Drifts, 1)
	suite.Equal(int64(2), report.Drifts[0].BudgetLineID)
	suite.False(report.Drifts[0].Repaired)
	suite.mockReconRepo.AssertNotCalled(suite.T(), "RepairLine", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestReconcile_RepairMarksDrift() {
	ctx := context.Background()

	drifted := &domain.LineDrift{
		BudgetLineID:  7,
		CachedEngaged: decimal.NewFromInt(300),
		RealEngaged:   decimal.NewFromInt(450),
		CachedPaid:    decimal.NewFromInt(100),
		RealPaid:      decimal.NewFromInt(100),
	}

	suite.mockReconRepo.On("CheckLine", ctx, int64(7)).Return(drifted, nil).Once()
	suite.mockReconRepo.On("RepairLine", ctx, mock.MatchedBy(func(d domain.LineDrift) bool {
		return d.BudgetLineID == 7
	}), mock.AnythingOfType("time.Time")).Return(nil).Once()

	lineID := int64(7)
	report, err := suite.service.Reconcile(ctx, &lineID, true)

	suite.Require().NoError(err)
	suite.False(report.DryRun)
	suite.Require().Len(report.Drifts, 1)
	suite.True(report.Drifts[0].Repaired)
	suite.mockReconRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestReconcile_DeltaWithinEpsilonIgnored() {
	ctx := context.Background()

	// One cent off, inside the default 0.01 tolerance.
	nearClean := &domain.LineDrift{
		BudgetLineID:  3,
		CachedEngaged: decimal.NewFromFloat(100.01),
		RealEngaged:   decimal.NewFromInt(100),
		CachedPaid:    decimal.Zero,
		RealPaid:      decimal.Zero,
	}

	lineID := int64(3)
	suite.mockReconRepo.On("CheckLine", ctx, lineID).Return(nearClean, nil).Once()

	report, err := suite.service.Reconcile(ctx, &lineID, true)

	suite.Require().NoError(err)
	suite.Empty(report.Drifts)
	suite.mockReconRepo.AssertNotCalled(suite.T(), "RepairLine", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestReconcile_PaidDriftAloneIsReported() {
	ctx := context.Background()

	paidDrift := &domain.LineDrift{
		BudgetLineID:  4,
		CachedEngaged: decimal.NewFromInt(500),
		RealEngaged:   decimal.NewFromInt(500),
		CachedPaid:    decimal.NewFromInt(200),
		RealPaid:      decimal.NewFromInt(180),
	}

	lineID := int64(4)
	suite.mockReconRepo.On("CheckLine", ctx, lineID).Return(paidDrift, nil).Once()

	report, err := suite.service.Reconcile(ctx, &lineID, false)

	suite.Require().NoError(err)
	suite.Require().Len(report.Drifts, 1)
	suite.Equal(int64(4), report.Drifts[0].BudgetLineID)
}

func (suite *ReconciliationServiceTestSuite) TestReconcile_StopsOnCancelledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	suite.mockReconRepo.On("ListBudgetLineIDs", mock.Anything).Return([]int64{1, 2, 3}, nil).Once()

	_, err := suite.service.Reconcile(ctx, nil, true)

	suite.Require().ErrorIs(err, context.Canceled)
	suite.mockReconRepo.AssertNotCalled(suite.T(), "CheckLine", mock.Anything, mock.Anything)
}

func TestReconciliationServiceTestSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ReconciliationServiceTestSuite))
}
