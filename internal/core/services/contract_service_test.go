package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/civicdsi/budget_engagement_app/internal/apperrors"
	"github.com/civicdsi/budget_engagement_app/internal/core/domain"
	"github.com/civicdsi/budget_engagement_app/internal/core/services"
	"github.com/civicdsi/budget_engagement_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ContractServiceTestSuite struct {
	suite.Suite
	mockContractRepo *MockContractRepository
	mockAuditRepo    *MockAuditRepository
	service          *services.ContractService
}

func (suite *ContractServiceTestSuite) SetupTest() {
	suite.mockContractRepo = new(MockContractRepository)
	suite.mockAuditRepo = new(MockAuditRepository)
	suite.service = services.NewContractService(suite.mockContractRepo, suite.mockAuditRepo)

	suite.mockAuditRepo.On("SaveAuditEntry", mock.Anything, mock.AnythingOfType("domain.AuditEntry")).Return(nil).Maybe()
}

func (suite *ContractServiceTestSuite) activeContract() *domain.Contract {
	return &domain.Contract{
		ContractID:    5,
		Number:        "M-2025-017",
		Type:          domain.ContractMaintenance,
		Object:        "Printer fleet maintenance",
		SupplierID:    3,
		StartDate:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		InitialAmount: decimal.NewFromInt(80000),
		CurrentAmount: decimal.NewFromInt(80000),
		RenewalCount:  1,
		MaxRenewals:   3,
		Status:        domain.ContractActive,
	}
}

func (suite *ContractServiceTestSuite) TestRenewContract_ExtendsAndIncrements() {
	ctx := context.Background()
	contract := suite.activeContract()
	newEnd := time.Date(2027, 12, 31, 0, 0, 0, 0, time.UTC)

	suite.mockContractRepo.On("FindContractByID", ctx, int64(5)).Return(contract, nil).Once()
	suite.mockContractRepo.On("UpdateContract", ctx, mock.MatchedBy(func(c domain.Contract) bool {
		return c.Status == domain.ContractRenewed && c.RenewalCount == 2 && c.EndDate.Equal(newEnd)
	})).Return(nil).Once()

	renewed, err := suite.service.RenewContract(ctx, 5, dto.RenewContractRequest{NewEndDate: newEnd})

	suite.Require().NoError(err)
	suite.Equal(2, renewed.RenewalCount)
	suite.Equal(domain.ContractRenewed, renewed.Status)
	suite.mockContractRepo.AssertExpectations(suite.T())
}

func (suite *ContractServiceTestSuite) TestRenewContract_LimitExceeded() {
	ctx := context.Background()
	contract := suite.activeContract()
	contract.RenewalCount = 3

	suite.mockContractRepo.On("FindContractByID", ctx, int64(5)).Return(contract, nil).Once()

	_, err := suite.service.RenewContract(ctx, 5, dto.RenewContractRequest{
		NewEndDate: contract.EndDate.AddDate(1, 0, 0),
	})

	suite.Require().ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockContractRepo.AssertNotCalled(suite.T(), "UpdateContract", mock.Anything, mock.Anything)
}

func (suite *ContractServiceTestSuite) TestRenewContract_RequiresActive() {
	ctx := context.Background()
	contract := suite.activeContract()
	contract.Status = domain.ContractDraft

	suite.mockContractRepo.On("FindContractByID", ctx, int64(5)).Return(contract, nil).Once()

	_, err := suite.service.RenewContract(ctx, 5, dto.RenewContractRequest{
		NewEndDate: contract.EndDate.AddDate(1, 0, 0),
	})

	suite.Require().ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *ContractServiceTestSuite) TestRenewContract_MustExtendEndDate() {
	ctx := context.Background()
	contract := suite.activeContract()

	suite.mockContractRepo.On("FindContractByID", ctx, int64(5)).Return(contract, nil).Once()

	_, err := suite.service.RenewContract(ctx, 5, dto.RenewContractRequest{
		NewEndDate: contract.EndDate.AddDate(0, 0, -10),
	})

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ContractServiceTestSuite) TestExpireContracts_ReturnsCount() {
	ctx := context.Background()
	asOf := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	expired := []domain.Contract{
		{ContractID: 1, Status: domain.ContractExpired},
		{ContractID: 2, Status: domain.ContractExpired},
	}

	suite.mockContractRepo.On("ExpireContracts", ctx, asOf).Return(expired, nil).Once()

	count, err := suite.service.ExpireContracts(ctx, asOf)

	suite.Require().NoError(err)
	suite.Equal(2, count)
	suite.mockContractRepo.AssertExpectations(suite.T())
}

func (suite *ContractServiceTestSuite) TestCreateContract_EndBeforeStart() {
	ctx := context.Background()

	_, err := suite.service.CreateContract(ctx, dto.CreateContractRequest{
		Number:        "M-2026-001",
		Type:          domain.ContractOrderMarket,
		Object:        "Office supplies",
		SupplierID:    4,
		StartDate:     time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		InitialAmount: decimal.NewFromInt(10000),
	})

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockContractRepo.AssertNotCalled(suite.T(), "SaveContract", mock.Anything, mock.Anything)
}

func (suite *ContractServiceTestSuite) TestActivateContract_RequiresDraft() {
	ctx := context.Background()
	contract := suite.activeContract()

	suite.mockContractRepo.On("FindContractByID", ctx, int64(5)).Return(contract, nil).Once()

	_, err := suite.service.ActivateContract(ctx, 5)

	suite.Require().ErrorIs(err, apperrors.ErrInvalidState)
}

func TestContractServiceTestSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ContractServiceTestSuite))
}
