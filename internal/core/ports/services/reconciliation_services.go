package services

import (
	"context"

	"github.com/civicdsi/budget_engagement_app/internal/core/domain"
)

// ReconciliationSvcFacade audits cached budget line totals against the sums
// recomputed from orders, optionally repairing divergent lines.
type ReconciliationSvcFacade interface {
	// Reconcile checks one line (lineID set) or all lines. With repair true,
	// divergent lines are overwritten with the recomputed totals. The run is
	// idempotent and stops between lines when ctx is cancelled.
	Reconcile(ctx context.Context, lineID *int64, repair bool) (*domain.ReconciliationReport, error)
}
