package services

import (
	"context"
	"time"

	"github.com/civicdsi/budget_engagement_app/internal/core/domain"
)

// AlertSvcFacade computes the monitoring dashboard: contracts near or past
// their end date, and budget lines over their engagement threshold.
type AlertSvcFacade interface {
	// ListContractAlerts returns non-OK contract alerts as of the given date,
	// most urgent first.
	ListContractAlerts(ctx context.Context, asOf time.Time) ([]domain.ContractAlert, error)

	// ListBudgetLineAlerts returns lines whose engagement rate crossed their
	// configured threshold.
	ListBudgetLineAlerts(ctx context.Context) ([]domain.BudgetLineAlert, error)
}
