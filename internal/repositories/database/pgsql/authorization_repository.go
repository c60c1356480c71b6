package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/civicdsi/budget_engagement_app/internal/apperrors"
	"github.com/civicdsi/budget_engagement_app/internal/core/domain"
	portsrepo "github.com/civicdsi/budget_engagement_app/internal/core/ports/repositories"
	"github.com/civicdsi/budget_engagement_app/internal/models"
	"github.com/civicdsi/budget_engagement_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAuthorizationRepository struct {
	pool *pgxpool.Pool
}

// newPgxAuthorizationRepository creates a new repository for authorization data.
func newPgxAuthorizationRepository(pool *pgxpool.Pool) portsrepo.AuthorizationRepositoryFacade {
	return &PgxAuthorizationRepository{pool: pool}
}

var _ portsrepo.AuthorizationRepositoryFacade = (*PgxAuthorizationRepository)(nil)

const authorizationColumns = `authorization_id, number, label, total_amount, fiscal_year_start, fiscal_year_end, status, created_at, updated_at`

func scanAuthorization(row pgx.Row) (*models.Authorization, error) {
	var m models.Authorization
	err := row.Scan(
		&m.AuthorizationID,
		&m.Number,
		&m.Label,
		&m.TotalAmount,
		&m.FiscalYearStart,
		&m.FiscalYearEnd,
		&m.Status,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveAuthorization inserts a new authorization and returns it with its assigned ID.
func (r *PgxAuthorizationRepository) SaveAuthorization(ctx context.Context, authorization domain.Authorization) (*domain.Authorization, error) {
	m := mapping.ToModelAuthorization(authorization)

	query := `
		INSERT INTO authorizations (number, label, total_amount, fiscal_year_start, fiscal_year_end, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING authorization_id;
	`
	err := r.pool.QueryRow(ctx, query,
		m.Number,
		m.Label,
		m.TotalAmount,
		m.FiscalYearStart,
		m.FiscalYearEnd,
		m.Status,
		m.CreatedAt,
		m.UpdatedAt,
	).Scan(&m.AuthorizationID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: authorization with number %s already exists", apperrors.ErrDuplicate, m.Number)
		}
		return nil, fmt.Errorf("failed to save authorization %s: %w", m.Number, err)
	}

	d := mapping.ToDomainAuthorization(m)
	return &d, nil
}

// UpdateAuthorization updates an existing authorization.
func (r *PgxAuthorizationRepository) UpdateAuthorization(ctx context.Context, authorization domain.Authorization) error {
	m := mapping.ToModelAuthorization(authorization)

	query := `
		UPDATE authorizations
		SET label = $2, total_amount = $3, status = $4, updated_at = $5
		WHERE authorization_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, m.AuthorizationID, m.Label, m.TotalAmount, m.Status, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update authorization %d: %w", m.AuthorizationID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: authorization %d", apperrors.ErrNotFound, m.AuthorizationID)
	}
	return nil
}

// FindAuthorizationByID retrieves an authorization by its ID.
func (r *PgxAuthorizationRepository) FindAuthorizationByID(ctx context.Context, authorizationID int64) (*domain.Authorization, error) {
	query := `SELECT ` + authorizationColumns + ` FROM authorizations WHERE authorization_id = $1;`

	m, err := scanAuthorization(r.pool.QueryRow(ctx, query, authorizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: authorization %d", apperrors.ErrNotFound, authorizationID)
		}
		return nil, fmt.Errorf("failed to find authorization %d: %w", authorizationID, err)
	}

	d := mapping.ToDomainAuthorization(*m)
	return &d, nil
}

// ListAuthorizations retrieves a paginated list of authorizations.
func (r *PgxAuthorizationRepository) ListAuthorizations(ctx context.Context, limit int, offset int) ([]domain.Authorization, error) {
	query := `SELECT ` + authorizationColumns + ` FROM authorizations ORDER BY authorization_id LIMIT $1 OFFSET $2;`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list authorizations: %w", err)
	}
	defer rows.Close()

	var ms []models.Authorization
	for rows.Next() {
		m, err := scanAuthorization(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan authorization row: %w", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading authorization rows: %w", err)
	}

	return mapping.ToDomainAuthorizationSlice(ms), nil
}
