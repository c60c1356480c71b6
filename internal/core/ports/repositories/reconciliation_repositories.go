package repositories

import (
	"context"
	"time"

	"github.com/civicdsi/budget_engagement_app/internal/core/domain"
)

// ReconciliationRepositoryFacade defines the drift detection and repair
// operations. Real totals are recomputed from orders: engaged over
// {IMPUTED, SOLDE}, paid over SOLDE only.
type ReconciliationRepositoryFacade interface {
	// ListBudgetLineIDs returns every budget line id, for a full sweep.
	ListBudgetLineIDs(ctx context.Context) ([]int64, error)

	// CheckLine recomputes a line's real totals and returns them alongside
	// the cached values. No mutation.
	CheckLine(ctx context.Context, budgetLineID int64) (*domain.LineDrift, error)

	// RepairLine overwrites the line's cached engaged, paid and available
	// amounts with the recomputed values, in one transaction with a row
	// lock and an audit entry.
	RepairLine(ctx context.Context, drift domain.LineDrift, now time.Time) error
}
