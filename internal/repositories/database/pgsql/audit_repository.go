package pgsql

import (
	"context"
	"fmt"

	"github.com/civicdsi/budget_engagement_app/internal/core/domain"
	portsrepo "github.com/civicdsi/budget_engagement_app/internal/core/ports/repositories"
	"github.com/civicdsi/budget_engagement_app/internal/models"
	"github.com/civicdsi/budget_engagement_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAuditRepository struct {
	pool *pgxpool.Pool
}

// newPgxAuditRepository creates a new repository for the audit trail.
func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepositoryFacade {
	return &PgxAuditRepository{pool: pool}
}

var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

// execer is satisfied by both pgxpool.Pool and pgx.Tx so audit rows can be
// written standalone or inside a workflow transaction.
type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// insertAuditEntry writes one audit_log row through the given executor.
func insertAuditEntry(ctx context.Context, q execer, entry domain.AuditEntry) error {
	m := mapping.ToModelAuditEntry(entry)

	query := `
		INSERT INTO audit_log (entity_type, entity_id, action, detail, value_before, value_after, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := q.Exec(ctx, query,
		m.EntityType,
		m.EntityID,
		m.Action,
		m.Detail,
		m.ValueBefore,
		m.ValueAfter,
		m.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit entry for %s %d: %w", m.EntityType, m.EntityID, err)
	}
	return nil
}

// SaveAuditEntry persists one audit entry.
func (r *PgxAuditRepository) SaveAuditEntry(ctx context.Context, entry domain.AuditEntry) error {
	return insertAuditEntry(ctx, r.pool, entry)
}

// ListAuditEntries retrieves audit entries matching the filter, newest first.
func (r *PgxAuditRepository) ListAuditEntries(ctx context.Context, filter portsrepo.ListAuditFilter) ([]domain.AuditEntry, error) {
	query := `
		SELECT audit_id, entity_type, entity_id, action, detail, value_before, value_after, recorded_at
		FROM audit_log
		WHERE ($1 = '' OR entity_type = $1)
		  AND ($2 = 0 OR entity_id = $2)
		ORDER BY audit_id DESC
		LIMIT $3 OFFSET $4;
	`
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.pool.Query(ctx, query, filter.EntityType, filter.EntityID, limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	var ms []models.AuditEntry
	for rows.Next() {
		var m models.AuditEntry
		err := rows.Scan(
			&m.AuditID,
			&m.EntityType,
			&m.EntityID,
			&m.Action,
			&m.Detail,
			&m.ValueBefore,
			&m.ValueAfter,
			&m.RecordedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading audit rows: %w", err)
	}

	return mapping.ToDomainAuditEntrySlice(ms), nil
}
