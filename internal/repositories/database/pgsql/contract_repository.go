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
)

type PgxContractRepository struct {
	BaseRepository
}

// newPgxContractRepository creates a new repository for contract data.
func newPgxContractRepository(pool *pgxpool.Pool) portsrepo.ContractRepositoryFacade {
	return &PgxContractRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ContractRepositoryFacade = (*PgxContractRepository)(nil)

// contractColumns always includes the derived cumulative engaged so every
// read carries the contract's live consumption.
const contractColumns = `c.contract_id, c.number, c.contract_type, c.object, c.supplier_id, c.start_date, c.end_date,
	c.initial_amount, c.current_amount, c.renewal_count, c.max_renewals, c.status,
	COALESCE((SELECT SUM(o.engaged_amount) FROM orders o
	          WHERE o.contract_id = c.contract_id AND o.status IN ('IMPUTED', 'SOLDE')), 0) AS cumulative_engaged,
	c.created_at, c.updated_at`

func scanContract(row pgx.Row) (*models.Contract, error) {
	var m models.Contract
	err := row.Scan(
		&m.ContractID,
		&m.Number,
		&m.ContractType,
		&m.Object,
		&m.SupplierID,
		&m.StartDate,
		&m.EndDate,
		&m.InitialAmount,
		&m.CurrentAmount,
		&m.RenewalCount,
		&m.MaxRenewals,
		&m.Status,
		&m.CumulativeEngaged,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveContract inserts a new contract and returns it with its assigned ID.
func (r *PgxContractRepository) SaveContract(ctx context.Context, contract domain.Contract) (*domain.Contract, error) {
	m := mapping.ToModelContract(contract)

	query := `
		INSERT INTO contracts (number, contract_type, object, supplier_id, start_date, end_date,
			initial_amount, current_amount, renewal_count, max_renewals, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING contract_id;
	`
	err := r.Pool.QueryRow(ctx, query,
		m.Number,
		m.ContractType,
		m.Object,
		m.SupplierID,
		m.StartDate,
		m.EndDate,
		m.InitialAmount,
		m.CurrentAmount,
		m.RenewalCount,
		m.MaxRenewals,
		m.Status,
		m.CreatedAt,
		m.UpdatedAt,
	).Scan(&m.ContractID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: contract with number %s already exists", apperrors.ErrDuplicate, m.Number)
		}
		return nil, fmt.Errorf("failed to save contract %s: %w", m.Number, err)
	}

	d := mapping.ToDomainContract(m)
	return &d, nil
}

// UpdateContract updates an existing contract.
func (r *PgxContractRepository) UpdateContract(ctx context.Context, contract domain.Contract) error {
	m := mapping.ToModelContract(contract)

	query := `
		UPDATE contracts
		SET object = $2, end_date = $3, current_amount = $4, renewal_count = $5, max_renewals = $6, status = $7, updated_at = $8
		WHERE contract_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.ContractID,
		m.Object,
		m.EndDate,
		m.CurrentAmount,
		m.RenewalCount,
		m.MaxRenewals,
		m.Status,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update contract %d: %w", m.ContractID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: contract %d", apperrors.ErrNotFound, m.ContractID)
	}
	return nil
}

// FindContractByID retrieves a contract with its derived cumulative engaged.
func (r *PgxContractRepository) FindContractByID(ctx context.Context, contractID int64) (*domain.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts c WHERE c.contract_id = $1;`

	m, err := scanContract(r.Pool.QueryRow(ctx, query, contractID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: contract %d", apperrors.ErrNotFound, contractID)
		}
		return nil, fmt.Errorf("failed to find contract %d: %w", contractID, err)
	}

	d := mapping.ToDomainContract(*m)
	return &d, nil
}

// ListContracts retrieves contracts matching the filter.
func (r *PgxContractRepository) ListContracts(ctx context.Context, filter portsrepo.ListContractsFilter) ([]domain.Contract, error) {
	query := `
		SELECT ` + contractColumns + `
		FROM contracts c
		WHERE ($1 = '' OR c.status = $1)
		  AND ($2 = 0 OR c.supplier_id = $2)
		ORDER BY c.contract_id
		LIMIT $3 OFFSET $4;
	`
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.Pool.Query(ctx, query, string(filter.Status), filter.SupplierID, limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	defer rows.Close()

	var ms []models.Contract
	for rows.Next() {
		m, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contract row: %w", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading contract rows: %w", err)
	}

	return mapping.ToDomainContractSlice(ms), nil
}

// ExpireContracts marks every ACTIVE or RENEWED contract whose end date is
// before asOf as EXPIRED, in one transaction with one audit row per contract.
func (r *PgxContractRepository) ExpireContracts(ctx context.Context, asOf time.Time) ([]domain.Contract, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	// The self-join exposes each row's pre-update status for the audit trail;
	// RETURNING alone would only show the new EXPIRED value.
	query := `
		UPDATE contracts c
		SET status = $1, updated_at = $2
		FROM contracts prev
		WHERE c.contract_id = prev.contract_id
		  AND c.status IN ($3, $4) AND c.end_date < $5
		RETURNING c.contract_id, c.number, c.contract_type, c.object, c.supplier_id, c.start_date, c.end_date,
			c.initial_amount, c.current_amount, c.renewal_count, c.max_renewals, c.status, c.created_at, c.updated_at,
			prev.status;
	`
	rows, err := tx.Query(ctx, query,
		string(domain.ContractExpired),
		asOf,
		string(domain.ContractActive),
		string(domain.ContractRenewed),
		asOf,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to expire contracts: %w", err)
	}

	var ms []models.Contract
	var prevStatuses []string
	for rows.Next() {
		var m models.Contract
		var prevStatus string
		err := rows.Scan(
			&m.ContractID,
			&m.Number,
			&m.ContractType,
			&m.Object,
			&m.SupplierID,
			&m.StartDate,
			&m.EndDate,
			&m.InitialAmount,
			&m.CurrentAmount,
			&m.RenewalCount,
			&m.MaxRenewals,
			&m.Status,
			&m.CreatedAt,
			&m.UpdatedAt,
			&prevStatus,
		)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan expired contract row: %w", err)
		}
		ms = append(ms, m)
		prevStatuses = append(prevStatuses, prevStatus)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading expired contract rows: %w", err)
	}

	for i, m := range ms {
		if err := insertAuditEntry(ctx, tx, expiryAuditEntry(m, prevStatuses[i], asOf)); err != nil {
			return nil, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return mapping.ToDomainContractSlice(ms), nil
}

// expiryAuditEntry builds the audit row for one contract flipped by the
// expiry sweep. prevStatus is the status the row held before the update
// (ACTIVE or RENEWED).
func expiryAuditEntry(m models.Contract, prevStatus string, asOf time.Time) domain.AuditEntry {
	return domain.AuditEntry{
		EntityType:  "CONTRACT",
		EntityID:    m.ContractID,
		Action:      "EXPIRE",
		Detail:      fmt.Sprintf("contract %s expired, end date %s", m.Number, m.EndDate.Format("2006-01-02")),
		ValueBefore: prevStatus,
		ValueAfter:  string(domain.ContractExpired),
		RecordedAt:  asOf,
	}
}
