package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/civicdsi/budget_engagement_app/internal/apperrors"
	"github.com/civicdsi/budget_engagement_app/internal/core/domain"
	portsrepo "github.com/civicdsi/budget_engagement_app/internal/core/ports/repositories"
	"github.com/civicdsi/budget_engagement_app/internal/models"
	"github.com/civicdsi/budget_engagement_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxBudgetLineRepository struct {
	BaseRepository
}

// newPgxBudgetLineRepository creates a new repository for budget line data.
func newPgxBudgetLineRepository(pool *pgxpool.Pool) portsrepo.BudgetLineRepositoryFacade {
	return &PgxBudgetLineRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BudgetLineRepositoryFacade = (*PgxBudgetLineRepository)(nil)

const budgetLineColumns = `budget_line_id, credit_id, label, nature, project_id, voted_amount, engaged_amount, available_amount, paid_amount, alert_threshold_pct, status, created_at, updated_at`

func scanBudgetLine(row pgx.Row) (*models.BudgetLine, error) {
	var m models.BudgetLine
	err := row.Scan(
		&m.BudgetLineID,
		&m.CreditID,
		&m.Label,
		&m.Nature,
		&m.ProjectID,
		&m.VotedAmount,
		&m.EngagedAmount,
		&m.AvailableAmount,
		&m.PaidAmount,
		&m.AlertThresholdPct,
		&m.Status,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveBudgetLine inserts a new line and returns it with its assigned ID.
func (r *PgxBudgetLineRepository) SaveBudgetLine(ctx context.Context, line domain.BudgetLine) (*domain.BudgetLine, error) {
	m := mapping.ToModelBudgetLine(line)

	query := `
		INSERT INTO budget_lines (credit_id, label, nature, project_id, voted_amount, engaged_amount, available_amount, paid_amount, alert_threshold_pct, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING budget_line_id;
	`
	err := r.Pool.QueryRow(ctx, query,
		m.CreditID,
		m.Label,
		m.Nature,
		m.ProjectID,
		m.VotedAmount,
		m.EngagedAmount,
		m.AvailableAmount,
		m.PaidAmount,
		m.AlertThresholdPct,
		m.Status,
		m.CreatedAt,
		m.UpdatedAt,
	).Scan(&m.BudgetLineID)
	if err != nil {
		return nil, fmt.Errorf("failed to save budget line %q: %w", m.Label, err)
	}

	d := mapping.ToDomainBudgetLine(m)
	return &d, nil
}

// UpdateBudgetLine updates an existing line's details and status.
func (r *PgxBudgetLineRepository) UpdateBudgetLine(ctx context.Context, line domain.BudgetLine) error {
	m := mapping.ToModelBudgetLine(line)

	query := `
		UPDATE budget_lines
		SET label = $2, nature = $3, project_id = $4, voted_amount = $5, engaged_amount = $6,
		    available_amount = $7, paid_amount = $8, alert_threshold_pct = $9, status = $10, updated_at = $11
		WHERE budget_line_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.BudgetLineID,
		m.Label,
		m.Nature,
		m.ProjectID,
		m.VotedAmount,
		m.EngagedAmount,
		m.AvailableAmount,
		m.PaidAmount,
		m.AlertThresholdPct,
		m.Status,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update budget line %d: %w", m.BudgetLineID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: budget line %d", apperrors.ErrNotFound, m.BudgetLineID)
	}
	return nil
}

// VoteBudgetLine assigns the voted amount and recomputes availability in one
// transaction. The row lock keeps a concurrent imputation from reading stale
// availability.
func (r *PgxBudgetLineRepository) VoteBudgetLine(ctx context.Context, budgetLineID int64, amount decimal.Decimal, now time.Time) (*domain.BudgetLine, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	lockQuery := `SELECT ` + budgetLineColumns + ` FROM budget_lines WHERE budget_line_id = $1 FOR UPDATE;`
	m, err := scanBudgetLine(tx.QueryRow(ctx, lockQuery, budgetLineID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: budget line %d", apperrors.ErrNotFound, budgetLineID)
		}
		return nil, fmt.Errorf("failed to lock budget line %d: %w", budgetLineID, err)
	}

	line := mapping.ToDomainBudgetLine(*m)
	if !line.CanVote() {
		return nil, fmt.Errorf("%w: budget line %d already voted or not active", apperrors.ErrInvalidState, budgetLineID)
	}

	line.VotedAmount = amount
	line.AvailableAmount = amount.Sub(line.EngagedAmount)
	line.UpdatedAt = now

	updateQuery := `
		UPDATE budget_lines
		SET voted_amount = $2, available_amount = $3, updated_at = $4
		WHERE budget_line_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, budgetLineID, line.VotedAmount, line.AvailableAmount, now); err != nil {
		return nil, fmt.Errorf("failed to vote budget line %d: %w", budgetLineID, err)
	}

	audit := domain.AuditEntry{
		EntityType:  "LINE",
		EntityID:    budgetLineID,
		Action:      "VOTE",
		Detail:      fmt.Sprintf("voted amount %s assigned", amount.StringFixed(2)),
		ValueBefore: m.VotedAmount.StringFixed(2),
		ValueAfter:  amount.StringFixed(2),
		RecordedAt:  now,
	}
	if err := insertAuditEntry(ctx, tx, audit); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &line, nil
}

// FindBudgetLineByID retrieves a budget line by its ID.
func (r *PgxBudgetLineRepository) FindBudgetLineByID(ctx context.Context, budgetLineID int64) (*domain.BudgetLine, error) {
	query := `SELECT ` + budgetLineColumns + ` FROM budget_lines WHERE budget_line_id = $1;`

	m, err := scanBudgetLine(r.Pool.QueryRow(ctx, query, budgetLineID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: budget line %d", apperrors.ErrNotFound, budgetLineID)
		}
		return nil, fmt.Errorf("failed to find budget line %d: %w", budgetLineID, err)
	}

	d := mapping.ToDomainBudgetLine(*m)
	return &d, nil
}

// ListBudgetLinesByCredit retrieves all lines under a credit.
func (r *PgxBudgetLineRepository) ListBudgetLinesByCredit(ctx context.Context, creditID int64) ([]domain.BudgetLine, error) {
	query := `SELECT ` + budgetLineColumns + ` FROM budget_lines WHERE credit_id = $1 ORDER BY budget_line_id;`

	rows, err := r.Pool.Query(ctx, query, creditID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budget lines for credit %d: %w", creditID, err)
	}
	defer rows.Close()

	return collectBudgetLines(rows)
}

// ListBudgetLines retrieves a paginated list of all budget lines.
func (r *PgxBudgetLineRepository) ListBudgetLines(ctx context.Context, limit int, offset int) ([]domain.BudgetLine, error) {
	query := `SELECT ` + budgetLineColumns + ` FROM budget_lines ORDER BY budget_line_id LIMIT $1 OFFSET $2;`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list budget lines: %w", err)
	}
	defer rows.Close()

	return collectBudgetLines(rows)
}

func collectBudgetLines(rows pgx.Rows) ([]domain.BudgetLine, error) {
	var ms []models.BudgetLine
	for rows.Next() {
		m, err := scanBudgetLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget line row: %w", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading budget line rows: %w", err)
	}
	return mapping.ToDomainBudgetLineSlice(ms), nil
}
