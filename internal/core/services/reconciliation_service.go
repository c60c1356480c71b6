package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/civicdsi/budget_engagement_app/internal/core/domain"
	portsrepo "github.com/civicdsi/budget_engagement_app/internal/core/ports/repositories"
	portssvc "github.com/civicdsi/budget_engagement_app/internal/core/ports/services"
	"github.com/civicdsi/budget_engagement_app/internal/middleware"
	"github.com/shopspring/decimal"
)

// DefaultReconcileEpsilon is the tolerance under which cached and recomputed
// totals are considered equal.
var DefaultReconcileEpsilon = decimal.NewFromFloat(0.01)

// ReconciliationService audits cached budget line totals against the sums
// recomputed from orders and optionally repairs them. Each repair is its own
// transaction, so an interrupted run leaves every already-repaired line
// consistent and the run can simply be restarted.
type ReconciliationService struct {
	reconciliationRepo portsrepo.ReconciliationRepositoryFacade
	epsilon            decimal.Decimal
}

func NewReconciliationService(reconciliationRepo portsrepo.ReconciliationRepositoryFacade, epsilon decimal.Decimal) *ReconciliationService {
	if epsilon.IsZero() {
		epsilon = DefaultReconcileEpsilon
	}
	return &ReconciliationService{reconciliationRepo: reconciliationRepo, epsilon: epsilon}
}

var _ portssvc.ReconciliationSvcFacade = (*ReconciliationService)(nil)

// Reconcile checks one line (lineID set) or all lines. With repair true,
// divergent lines are overwritten with the recomputed totals.
func (s *ReconciliationService) Reconcile(ctx context.Context, lineID *int64, repair bool) (*domain.ReconciliationReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	report := &domain.ReconciliationReport{
		StartedAt: time.Now(),
		DryRun:    !repair,
	}

	var ids []int64
	if lineID != nil {
		ids = []int64{*lineID}
	} else {
		var err error
		ids, err = s.reconciliationRepo.ListBudgetLineIDs(ctx)
		if err != nil {
			logger.Error("Failed to list budget lines for reconciliation", slog.String("error", err.Error()))
			return nil, err
		}
	}

	for _, id := range ids {
		// Stop between lines when the caller gives up; every line already
		// processed stays committed.
		if err := ctx.Err(); err != nil {
			logger.Warn("Reconciliation interrupted", slog.Int("lines_checked", report.LinesChecked))
			return nil, err
		}

		drift, err := s.reconciliationRepo.CheckLine(ctx, id)
		if err != nil {
			logger.Error("Failed to check budget line", slog.String("error", err.Error()), slog.Int64("budget_line_id", id))
			return nil, err
		}
		report.LinesChecked++

		if !s.hasDrift(drift) {
			continue
		}

		if repair {
			if err := s.reconciliationRepo.RepairLine(ctx, *drift, time.Now()); err != nil {
				logger.Error("Failed to repair budget line", slog.String("error", err.Error()), slog.Int64("budget_line_id", id))
				return nil, err
			}
			drift.Repaired = true
			logger.Info("Budget line repaired",
				slog.Int64("budget_line_id", id),
				slog.String("cached_engaged", drift.CachedEngaged.StringFixed(2)),
				slog.String("real_engaged", drift.RealEngaged.StringFixed(2)))
		} else {
			logger.Warn("Budget line drift detected",
				slog.Int64("budget_line_id", id),
				slog.String("cached_engaged", drift.CachedEngaged.StringFixed(2)),
				slog.String("real_engaged", drift.RealEngaged.StringFixed(2)))
		}

		report.Drifts = append(report.Drifts, *drift)
	}

	report.FinishedAt = time.Now()
	logger.Info("Reconciliation completed",
		slog.Int("lines_checked", report.LinesChecked),
		slog.Int("drifts", len(report.Drifts)),
		slog.Bool("dry_run", report.DryRun))

	return report, nil
}

// hasDrift reports whether either total diverges beyond the epsilon.
func (s *ReconciliationService) hasDrift(d *domain.LineDrift) bool {
	engagedDelta := d.CachedEngaged.Sub(d.RealEngaged).Abs()
	paidDelta := d.CachedPaid.Sub(d.RealPaid).Abs()
	return engagedDelta.GreaterThan(s.epsilon) || paidDelta.GreaterThan(s.epsilon)
}
