package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/civicdsi/budget_engagement_app/internal/apperrors"
	"github.com/civicdsi/budget_engagement_app/internal/core/domain"
	portsrepo "github.com/civicdsi/budget_engagement_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxReconciliationRepository struct {
	BaseRepository
}

// newPgxReconciliationRepository creates a new repository for drift checks.
func newPgxReconciliationRepository(pool *pgxpool.Pool) portsrepo.ReconciliationRepositoryFacade {
	return &PgxReconciliationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReconciliationRepositoryFacade = (*PgxReconciliationRepository)(nil)

// ListBudgetLineIDs returns every budget line id for a full sweep.
func (r *PgxReconciliationRepository) ListBudgetLineIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.Pool.Query(ctx, `SELECT budget_line_id FROM budget_lines ORDER BY budget_line_id;`)
	if err != nil {
		return nil, fmt.Errorf("failed to list budget line ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan budget line id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading budget line ids: %w", err)
	}
	return ids, nil
}

// CheckLine recomputes a line's real totals from its orders: engaged over
// {IMPUTED, SOLDE}, paid over SOLDE only. No mutation.
func (r *PgxReconciliationRepository) CheckLine(ctx context.Context, budgetLineID int64) (*domain.LineDrift, error) {
	query := `
		SELECT l.budget_line_id, l.label, l.engaged_amount, l.paid_amount,
		       COALESCE((SELECT SUM(o.engaged_amount) FROM orders o
		                 WHERE o.budget_line_id = l.budget_line_id AND o.status IN ('IMPUTED', 'SOLDE')), 0),
		       COALESCE((SELECT SUM(o.paid_amount) FROM orders o
		                 WHERE o.budget_line_id = l.budget_line_id AND o.status = 'SOLDE'), 0)
		FROM budget_lines l
		WHERE l.budget_line_id = $1;
	`
	var d domain.LineDrift
	err := r.Pool.QueryRow(ctx, query, budgetLineID).Scan(
		&d.BudgetLineID,
		&d.Label,
		&d.CachedEngaged,
		&d.CachedPaid,
		&d.RealEngaged,
		&d.RealPaid,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: budget line %d", apperrors.ErrNotFound, budgetLineID)
		}
		return nil, fmt.Errorf("failed to check budget line %d: %w", budgetLineID, err)
	}
	return &d, nil
}

// RepairLine overwrites the line's cached totals with the recomputed values,
// in one transaction with a row lock and an audit entry.
func (r *PgxReconciliationRepository) RepairLine(ctx context.Context, drift domain.LineDrift, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	lockQuery := `SELECT voted_amount FROM budget_lines WHERE budget_line_id = $1 FOR UPDATE;`
	var voted decimal.Decimal
	if err := tx.QueryRow(ctx, lockQuery, drift.BudgetLineID).Scan(&voted); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: budget line %d", apperrors.ErrNotFound, drift.BudgetLineID)
		}
		return fmt.Errorf("failed to lock budget line %d: %w", drift.BudgetLineID, err)
	}

	repairQuery := `
		UPDATE budget_lines
		SET engaged_amount = $2, paid_amount = $3, available_amount = voted_amount - $2, updated_at = $4
		WHERE budget_line_id = $1;
	`
	if _, err := tx.Exec(ctx, repairQuery, drift.BudgetLineID, drift.RealEngaged, drift.RealPaid, now); err != nil {
		return fmt.Errorf("failed to repair budget line %d: %w", drift.BudgetLineID, err)
	}

	audit := domain.AuditEntry{
		EntityType:  "LINE",
		EntityID:    drift.BudgetLineID,
		Action:      "RECONCILE",
		Detail:      "cached totals overwritten with recomputed sums",
		ValueBefore: fmt.Sprintf("engaged=%s paid=%s", drift.CachedEngaged.StringFixed(2), drift.CachedPaid.StringFixed(2)),
		ValueAfter:  fmt.Sprintf("engaged=%s paid=%s", drift.RealEngaged.StringFixed(2), drift.RealPaid.StringFixed(2)),
		RecordedAt:  now,
	}
	if err := insertAuditEntry(ctx, tx, audit); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}
