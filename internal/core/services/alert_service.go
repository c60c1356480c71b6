package services

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/civicdsi/budget_engagement_app/internal/core/domain"
	portsrepo "github.com/civicdsi/budget_engagement_app/internal/core/ports/repositories"
	portssvc "github.com/civicdsi/budget_engagement_app/internal/core/ports/services"
	"github.com/civicdsi/budget_engagement_app/internal/middleware"
	"github.com/civicdsi/budget_engagement_app/internal/utils/budgeting"
)

// alertScanLimit bounds one dashboard scan. Well above the fleet size of the
// deployments this serves.
const alertScanLimit = 10000

// AlertService builds the monitoring dashboard from contract end dates and
// budget line engagement rates.
type AlertService struct {
	contractRepo portsrepo.ContractRepositoryFacade
	lineRepo     portsrepo.BudgetLineRepositoryFacade
}

func NewAlertService(contractRepo portsrepo.ContractRepositoryFacade, lineRepo portsrepo.BudgetLineRepositoryFacade) *AlertService {
	return &AlertService{contractRepo: contractRepo, lineRepo: lineRepo}
}

var _ portssvc.AlertSvcFacade = (*AlertService)(nil)

// ListContractAlerts returns every non-OK contract alert as of the given
// date, most urgent first.
func (s *AlertService) ListContractAlerts(ctx context.Context, asOf time.Time) ([]domain.ContractAlert, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var alerts []domain.ContractAlert
	for _, status := range []domain.ContractStatus{domain.ContractActive, domain.ContractRenewed, domain.ContractExpired} {
		contracts, err := s.contractRepo.ListContracts(ctx, portsrepo.ListContractsFilter{Status: status, Limit: alertScanLimit})
		if err != nil {
			logger.Error("Failed to list contracts for alerts", slog.String("error", err.Error()), slog.String("status", string(status)))
			return nil, err
		}

		for _, contract := range contracts {
			level, days := budgeting.ContractAlertLevel(contract, asOf)
			if level == domain.AlertOK {
				continue
			}
			alerts = append(alerts, domain.ContractAlert{
				Contract:      contract,
				Level:         level,
				DaysRemaining: days,
			})
		}
	}

	sort.Slice(alerts, func(i, j int) bool {
		return alerts[i].DaysRemaining < alerts[j].DaysRemaining
	})

	return alerts, nil
}

// ListBudgetLineAlerts returns lines whose engagement rate crossed their
// configured threshold, highest rate first.
func (s *AlertService) ListBudgetLineAlerts(ctx context.Context) ([]domain.BudgetLineAlert, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	lines, err := s.lineRepo.ListBudgetLines(ctx, alertScanLimit, 0)
	if err != nil {
		logger.Error("Failed to list budget lines for alerts", slog.String("error", err.Error()))
		return nil, err
	}

	var alerts []domain.BudgetLineAlert
	for _, line := range lines {
		if line.Status != domain.BudgetLineActive {
			continue
		}
		if !budgeting.IsOverThreshold(line) {
			continue
		}
		threshold := line.AlertThresholdPct
		if threshold <= 0 {
			threshold = domain.DefaultAlertThresholdPct
		}
		alerts = append(alerts, domain.BudgetLineAlert{
			Line:           line,
			EngagementRate: budgeting.EngagementRate(line.VotedAmount, line.EngagedAmount),
			ThresholdPct:   threshold,
		})
	}

	sort.Slice(alerts, func(i, j int) bool {
		return alerts[i].EngagementRate > alerts[j].EngagementRate
	})

	return alerts, nil
}
