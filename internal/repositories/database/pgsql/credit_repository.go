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

type PgxAnnualCreditRepository struct {
	BaseRepository
}

// newPgxAnnualCreditRepository creates a new repository for annual credit data.
func newPgxAnnualCreditRepository(pool *pgxpool.Pool) portsrepo.AnnualCreditRepositoryFacade {
	return &PgxAnnualCreditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AnnualCreditRepositoryFacade = (*PgxAnnualCreditRepository)(nil)

const creditColumns = `credit_id, authorization_id, fiscal_year, voted_amount, engaged_amount, mandated_amount, available_amount, vote_date, status, created_at, updated_at`

func scanAnnualCredit(row pgx.Row) (*models.AnnualCredit, error) {
	var m models.AnnualCredit
	err := row.Scan(
		&m.CreditID,
		&m.AuthorizationID,
		&m.FiscalYear,
		&m.VotedAmount,
		&m.EngagedAmount,
		&m.MandatedAmount,
		&m.AvailableAmount,
		&m.VoteDate,
		&m.Status,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// lockAuthorizationHeadroom locks the authorization row and returns the
// headroom left after the voted amounts of its other non-cancelled credits.
// excludeCreditID lets a re-vote ignore the credit's own current amount;
// pass 0 at creation.
func lockAuthorizationHeadroom(ctx context.Context, tx pgx.Tx, authorizationID int64, excludeCreditID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := tx.QueryRow(ctx,
		`SELECT total_amount FROM authorizations WHERE authorization_id = $1 FOR UPDATE;`,
		authorizationID,
	).Scan(&total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, fmt.Errorf("%w: authorization %d", apperrors.ErrNotFound, authorizationID)
		}
		return decimal.Zero, fmt.Errorf("failed to lock authorization %d: %w", authorizationID, err)
	}

	var voted decimal.Decimal
	err = tx.QueryRow(ctx, `
		SELECT COALESCE(SUM(voted_amount), 0)
		FROM annual_credits
		WHERE authorization_id = $1 AND credit_id <> $2 AND status <> 'CANCELLED';
	`, authorizationID, excludeCreditID).Scan(&voted)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum voted credits for authorization %d: %w", authorizationID, err)
	}

	return total.Sub(voted), nil
}

// SaveAnnualCredit inserts a new credit and returns it with its assigned ID.
// The authorization row is locked for the duration of the ceiling check so
// two concurrent creations cannot both pass against a stale sum.
func (r *PgxAnnualCreditRepository) SaveAnnualCredit(ctx context.Context, credit domain.AnnualCredit) (*domain.AnnualCredit, error) {
	m := mapping.ToModelAnnualCredit(credit)

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	headroom, err := lockAuthorizationHeadroom(ctx, tx, m.AuthorizationID, 0)
	if err != nil {
		return nil, err
	}
	if headroom.LessThan(credit.VotedAmount) {
		return nil, &apperrors.InsufficientBudgetError{
			Scope:     "authorization",
			ScopeID:   credit.AuthorizationID,
			Available: headroom,
			Requested: credit.VotedAmount,
		}
	}

	query := `
		INSERT INTO annual_credits (authorization_id, fiscal_year, voted_amount, engaged_amount, mandated_amount, available_amount, vote_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING credit_id;
	`
	err = tx.QueryRow(ctx, query,
		m.AuthorizationID,
		m.FiscalYear,
		m.VotedAmount,
		m.EngagedAmount,
		m.MandatedAmount,
		m.AvailableAmount,
		m.VoteDate,
		m.Status,
		m.CreatedAt,
		m.UpdatedAt,
	).Scan(&m.CreditID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: credit for authorization %d and year %d already exists", apperrors.ErrDuplicate, m.AuthorizationID, m.FiscalYear)
		}
		return nil, fmt.Errorf("failed to save annual credit: %w", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	d := mapping.ToDomainAnnualCredit(m)
	return &d, nil
}

// UpdateAnnualCredit updates an existing credit.
func (r *PgxAnnualCreditRepository) UpdateAnnualCredit(ctx context.Context, credit domain.AnnualCredit) error {
	m := mapping.ToModelAnnualCredit(credit)

	query := `
		UPDATE annual_credits
		SET voted_amount = $2, engaged_amount = $3, mandated_amount = $4, available_amount = $5, vote_date = $6, status = $7, updated_at = $8
		WHERE credit_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.CreditID,
		m.VotedAmount,
		m.EngagedAmount,
		m.MandatedAmount,
		m.AvailableAmount,
		m.VoteDate,
		m.Status,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update annual credit %d: %w", m.CreditID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: annual credit %d", apperrors.ErrNotFound, m.CreditID)
	}
	return nil
}

// VoteAnnualCredit assigns the definitive voted amount and transitions the
// credit EN_PREPARATION to ACTIVE in one transaction. Both the credit row
// and the authorization row are locked so the ceiling re-check cannot race
// a concurrent creation or vote.
func (r *PgxAnnualCreditRepository) VoteAnnualCredit(ctx context.Context, creditID int64, votedAmount decimal.Decimal, voteDate time.Time, now time.Time) (*domain.AnnualCredit, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	lockQuery := `SELECT ` + creditColumns + ` FROM annual_credits WHERE credit_id = $1 FOR UPDATE;`
	m, err := scanAnnualCredit(tx.QueryRow(ctx, lockQuery, creditID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: annual credit %d", apperrors.ErrNotFound, creditID)
		}
		return nil, fmt.Errorf("failed to lock annual credit %d: %w", creditID, err)
	}

	credit := mapping.ToDomainAnnualCredit(*m)
	if !credit.CanVote() {
		return nil, fmt.Errorf("%w: credit %d is %s, vote requires EN_PREPARATION", apperrors.ErrInvalidState, creditID, credit.Status)
	}

	headroom, err := lockAuthorizationHeadroom(ctx, tx, credit.AuthorizationID, creditID)
	if err != nil {
		return nil, err
	}
	if headroom.LessThan(votedAmount) {
		return nil, &apperrors.InsufficientBudgetError{
			Scope:     "authorization",
			ScopeID:   credit.AuthorizationID,
			Available: headroom,
			Requested: votedAmount,
		}
	}

	credit.VotedAmount = votedAmount
	credit.AvailableAmount = votedAmount.Sub(credit.EngagedAmount)
	credit.VoteDate = &voteDate
	credit.Status = domain.CreditActive
	credit.UpdatedAt = now

	updateQuery := `
		UPDATE annual_credits
		SET voted_amount = $2, available_amount = $3, vote_date = $4, status = $5, updated_at = $6
		WHERE credit_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, creditID, credit.VotedAmount, credit.AvailableAmount, voteDate, string(credit.Status), now); err != nil {
		return nil, fmt.Errorf("failed to vote annual credit %d: %w", creditID, err)
	}

	audit := domain.AuditEntry{
		EntityType:  "CREDIT",
		EntityID:    creditID,
		Action:      "VOTE",
		Detail:      fmt.Sprintf("credit voted at %s on %s", votedAmount.StringFixed(2), voteDate.Format("2006-01-02")),
		ValueBefore: m.VotedAmount.StringFixed(2),
		ValueAfter:  votedAmount.StringFixed(2),
		RecordedAt:  now,
	}
	if err := insertAuditEntry(ctx, tx, audit); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &credit, nil
}

// FindAnnualCreditByID retrieves a credit by its ID.
func (r *PgxAnnualCreditRepository) FindAnnualCreditByID(ctx context.Context, creditID int64) (*domain.AnnualCredit, error) {
	query := `SELECT ` + creditColumns + ` FROM annual_credits WHERE credit_id = $1;`

	m, err := scanAnnualCredit(r.Pool.QueryRow(ctx, query, creditID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: annual credit %d", apperrors.ErrNotFound, creditID)
		}
		return nil, fmt.Errorf("failed to find annual credit %d: %w", creditID, err)
	}

	d := mapping.ToDomainAnnualCredit(*m)
	return &d, nil
}

// ListAnnualCreditsByAuthorization retrieves all credits under an authorization.
func (r *PgxAnnualCreditRepository) ListAnnualCreditsByAuthorization(ctx context.Context, authorizationID int64) ([]domain.AnnualCredit, error) {
	query := `SELECT ` + creditColumns + ` FROM annual_credits WHERE authorization_id = $1 ORDER BY fiscal_year;`

	rows, err := r.Pool.Query(ctx, query, authorizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list credits for authorization %d: %w", authorizationID, err)
	}
	defer rows.Close()

	var ms []models.AnnualCredit
	for rows.Next() {
		m, err := scanAnnualCredit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan annual credit row: %w", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading annual credit rows: %w", err)
	}

	return mapping.ToDomainAnnualCreditSlice(ms), nil
}
