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

type PgxOrderRepository struct {
	BaseRepository
}

// newPgxOrderRepository creates a new repository for order data.
func newPgxOrderRepository(pool *pgxpool.Pool) portsrepo.OrderRepositoryFacade {
	return &PgxOrderRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.OrderRepositoryFacade = (*PgxOrderRepository)(nil)

const orderColumns = `order_id, number, object, description, supplier_id, project_id, contract_id, budget_line_id,
	amount_ht, amount_ttc, tax_rate, nature, status, validated, validated_at, validator_id,
	imputed, imputed_at, engaged_amount, paid_amount, settled_at, created_by, created_at, updated_at`

func scanOrder(row pgx.Row) (*models.Order, error) {
	var m models.Order
	err := row.Scan(
		&m.OrderID,
		&m.Number,
		&m.Object,
		&m.Description,
		&m.SupplierID,
		&m.ProjectID,
		&m.ContractID,
		&m.BudgetLineID,
		&m.AmountHT,
		&m.AmountTTC,
		&m.TaxRate,
		&m.Nature,
		&m.Status,
		&m.Validated,
		&m.ValidatedAt,
		&m.ValidatorID,
		&m.Imputed,
		&m.ImputedAt,
		&m.EngagedAmount,
		&m.PaidAmount,
		&m.SettledAt,
		&m.CreatedBy,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveOrder inserts a new order and returns it with its assigned ID.
func (r *PgxOrderRepository) SaveOrder(ctx context.Context, order domain.Order) (*domain.Order, error) {
	m := mapping.ToModelOrder(order)

	query := `
		INSERT INTO orders (number, object, description, supplier_id, project_id, contract_id, budget_line_id,
			amount_ht, amount_ttc, tax_rate, nature, status, validated, validated_at, validator_id,
			imputed, imputed_at, engaged_amount, paid_amount, settled_at, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
		RETURNING order_id;
	`
	err := r.Pool.QueryRow(ctx, query,
		m.Number,
		m.Object,
		m.Description,
		m.SupplierID,
		m.ProjectID,
		m.ContractID,
		m.BudgetLineID,
		m.AmountHT,
		m.AmountTTC,
		m.TaxRate,
		m.Nature,
		m.Status,
		m.Validated,
		m.ValidatedAt,
		m.ValidatorID,
		m.Imputed,
		m.ImputedAt,
		m.EngagedAmount,
		m.PaidAmount,
		m.SettledAt,
		m.CreatedBy,
		m.CreatedAt,
		m.UpdatedAt,
	).Scan(&m.OrderID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: order with number %s already exists", apperrors.ErrDuplicate, m.Number)
		}
		return nil, fmt.Errorf("failed to save order %s: %w", m.Number, err)
	}

	d := mapping.ToDomainOrder(m)
	return &d, nil
}

// UpdateOrder updates an existing order's details and status.
func (r *PgxOrderRepository) UpdateOrder(ctx context.Context, order domain.Order) error {
	m := mapping.ToModelOrder(order)

	query := `
		UPDATE orders
		SET object = $2, description = $3, supplier_id = $4, project_id = $5, contract_id = $6,
		    budget_line_id = $7, amount_ht = $8, amount_ttc = $9, tax_rate = $10, nature = $11,
		    status = $12, validated = $13, validated_at = $14, validator_id = $15, updated_at = $16
		WHERE order_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.OrderID,
		m.Object,
		m.Description,
		m.SupplierID,
		m.ProjectID,
		m.ContractID,
		m.BudgetLineID,
		m.AmountHT,
		m.AmountTTC,
		m.TaxRate,
		m.Nature,
		m.Status,
		m.Validated,
		m.ValidatedAt,
		m.ValidatorID,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update order %d: %w", m.OrderID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: order %d", apperrors.ErrNotFound, m.OrderID)
	}
	return nil
}

// FindOrderByID retrieves an order by its ID.
func (r *PgxOrderRepository) FindOrderByID(ctx context.Context, orderID int64) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_id = $1;`

	m, err := scanOrder(r.Pool.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: order %d", apperrors.ErrNotFound, orderID)
		}
		return nil, fmt.Errorf("failed to find order %d: %w", orderID, err)
	}

	d := mapping.ToDomainOrder(*m)
	return &d, nil
}

// ListOrders retrieves orders matching the filter.
func (r *PgxOrderRepository) ListOrders(ctx context.Context, filter portsrepo.ListOrdersFilter) ([]domain.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = 0 OR supplier_id = $2)
		  AND ($3 = 0 OR contract_id = $3)
		  AND ($4 = 0 OR budget_line_id = $4)
		ORDER BY order_id
		LIMIT $5 OFFSET $6;
	`
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.Pool.Query(ctx, query,
		string(filter.Status),
		filter.SupplierID,
		filter.ContractID,
		filter.BudgetLineID,
		limit,
		filter.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var ms []models.Order
	for rows.Next() {
		m, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading order rows: %w", err)
	}

	return mapping.ToDomainOrderSlice(ms), nil
}

// ImputeOrder commits the order's amount against the budget line in one
// transaction. The line row is locked before the conservation check so
// concurrent imputations on the same line serialize; the winner consumes the
// availability and the loser fails the check on the updated value.
func (r *PgxOrderRepository) ImputeOrder(ctx context.Context, order domain.Order, budgetLineID int64, amount decimal.Decimal, engagementNumber string, now time.Time) (*domain.Engagement, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	// 1. Lock the budget line and read its current totals.
	lockQuery := `SELECT ` + budgetLineColumns + ` FROM budget_lines WHERE budget_line_id = $1 FOR UPDATE;`
	lineModel, err := scanBudgetLine(tx.QueryRow(ctx, lockQuery, budgetLineID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: budget line %d", apperrors.ErrNotFound, budgetLineID)
		}
		return nil, fmt.Errorf("failed to lock budget line %d: %w", budgetLineID, err)
	}
	line := mapping.ToDomainBudgetLine(*lineModel)

	if !line.CanImpute() {
		return nil, fmt.Errorf("%w: budget line %d is %s", apperrors.ErrInvalidState, budgetLineID, line.Status)
	}

	// 2. Conservation check on the locked value.
	if line.AvailableAmount.LessThan(amount) {
		return nil, &apperrors.InsufficientBudgetError{
			Scope:     "budget line",
			ScopeID:   budgetLineID,
			Available: line.AvailableAmount,
			Requested: amount,
		}
	}

	// 3. Contract ceiling check when the order is attached to one.
	if order.ContractID != nil {
		if err := r.checkContractCeiling(ctx, tx, *order.ContractID, amount); err != nil {
			return nil, err
		}
	}

	// 4. Consume the line's availability.
	updateLineQuery := `
		UPDATE budget_lines
		SET engaged_amount = engaged_amount + $2, available_amount = available_amount - $2, updated_at = $3
		WHERE budget_line_id = $1;
	`
	if _, err := tx.Exec(ctx, updateLineQuery, budgetLineID, amount, now); err != nil {
		return nil, fmt.Errorf("failed to update budget line %d totals: %w", budgetLineID, err)
	}

	// 5. Propagate to the parent annual credit.
	updateCreditQuery := `
		UPDATE annual_credits
		SET engaged_amount = engaged_amount + $2, available_amount = available_amount - $2, updated_at = $3
		WHERE credit_id = $1;
	`
	if _, err := tx.Exec(ctx, updateCreditQuery, line.CreditID, amount, now); err != nil {
		return nil, fmt.Errorf("failed to update annual credit %d totals: %w", line.CreditID, err)
	}

	// 6. Transition the order.
	updateOrderQuery := `
		UPDATE orders
		SET status = $2, imputed = TRUE, imputed_at = $3, budget_line_id = $4, engaged_amount = $5, updated_at = $3
		WHERE order_id = $1 AND status = $6;
	`
	tag, err := tx.Exec(ctx, updateOrderQuery,
		order.OrderID,
		string(domain.OrderImputed),
		now,
		budgetLineID,
		amount,
		string(domain.OrderValidated),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to impute order %d: %w", order.OrderID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("%w: order %d is no longer VALIDATED", apperrors.ErrInvalidState, order.OrderID)
	}

	// 7. Record the engagement.
	engagement := domain.Engagement{
		Number:       engagementNumber,
		OrderID:      order.OrderID,
		BudgetLineID: budgetLineID,
		CreditID:     &line.CreditID,
		Amount:       amount,
		EngagedAt:    now,
		Status:       domain.EngagementActive,
	}
	insertEngagementQuery := `
		INSERT INTO engagements (number, order_id, budget_line_id, credit_id, amount, engaged_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING engagement_id;
	`
	err = tx.QueryRow(ctx, insertEngagementQuery,
		engagement.Number,
		engagement.OrderID,
		engagement.BudgetLineID,
		engagement.CreditID,
		engagement.Amount,
		engagement.EngagedAt,
		string(engagement.Status),
	).Scan(&engagement.EngagementID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert engagement for order %d: %w", order.OrderID, err)
	}

	audit := domain.AuditEntry{
		EntityType:  "ORDER",
		EntityID:    order.OrderID,
		Action:      "IMPUTE",
		Detail:      fmt.Sprintf("order %s imputed on budget line %d for %s", order.Number, budgetLineID, amount.StringFixed(2)),
		ValueBefore: string(domain.OrderValidated),
		ValueAfter:  string(domain.OrderImputed),
		RecordedAt:  now,
	}
	if err := insertAuditEntry(ctx, tx, audit); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &engagement, nil
}

// checkContractCeiling verifies that the contract can absorb one more
// commitment of the given amount. The cumulative engaged is recomputed inside
// the transaction from the contract's live orders.
func (r *PgxOrderRepository) checkContractCeiling(ctx context.Context, tx pgx.Tx, contractID int64, amount decimal.Decimal) error {
	query := `
		SELECT c.status, c.current_amount,
		       COALESCE((SELECT SUM(o.engaged_amount) FROM orders o
		                 WHERE o.contract_id = c.contract_id AND o.status IN ('IMPUTED', 'SOLDE')), 0)
		FROM contracts c
		WHERE c.contract_id = $1
		FOR UPDATE OF c;
	`
	var status string
	var currentAmount, cumulative decimal.Decimal
	err := tx.QueryRow(ctx, query, contractID).Scan(&status, &currentAmount, &cumulative)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: contract %d", apperrors.ErrNotFound, contractID)
		}
		return fmt.Errorf("failed to check contract %d balance: %w", contractID, err)
	}

	if status != string(domain.ContractActive) && status != string(domain.ContractRenewed) {
		return fmt.Errorf("%w: contract %d is %s", apperrors.ErrInvalidState, contractID, status)
	}

	available := currentAmount.Sub(cumulative)
	if available.LessThan(amount) {
		return &apperrors.InsufficientBudgetError{
			Scope:     "contract",
			ScopeID:   contractID,
			Available: available,
			Requested: amount,
		}
	}
	return nil
}

// ReverseImputation undoes an imputed order's commitment in one transaction.
func (r *PgxOrderRepository) ReverseImputation(ctx context.Context, orderID int64, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// Lock the order first so its status and amounts are stable.
	lockOrderQuery := `SELECT ` + orderColumns + ` FROM orders WHERE order_id = $1 FOR UPDATE;`
	m, err := scanOrder(tx.QueryRow(ctx, lockOrderQuery, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: order %d", apperrors.ErrNotFound, orderID)
		}
		return fmt.Errorf("failed to lock order %d: %w", orderID, err)
	}
	order := mapping.ToDomainOrder(*m)

	if order.Status != domain.OrderImputed {
		return fmt.Errorf("%w: order %d is %s, reversal requires IMPUTED", apperrors.ErrInvalidState, orderID, order.Status)
	}
	if order.BudgetLineID == nil {
		return fmt.Errorf("%w: imputed order %d has no budget line", apperrors.ErrPersistence, orderID)
	}

	// Lock the line, then refund line and credit totals.
	var creditID int64
	lockLineQuery := `SELECT credit_id FROM budget_lines WHERE budget_line_id = $1 FOR UPDATE;`
	if err := tx.QueryRow(ctx, lockLineQuery, *order.BudgetLineID).Scan(&creditID); err != nil {
		return fmt.Errorf("failed to lock budget line %d: %w", *order.BudgetLineID, err)
	}

	refundLineQuery := `
		UPDATE budget_lines
		SET engaged_amount = engaged_amount - $2, available_amount = available_amount + $2, updated_at = $3
		WHERE budget_line_id = $1;
	`
	if _, err := tx.Exec(ctx, refundLineQuery, *order.BudgetLineID, order.EngagedAmount, now); err != nil {
		return fmt.Errorf("failed to refund budget line %d: %w", *order.BudgetLineID, err)
	}

	refundCreditQuery := `
		UPDATE annual_credits
		SET engaged_amount = engaged_amount - $2, available_amount = available_amount + $2, updated_at = $3
		WHERE credit_id = $1;
	`
	if _, err := tx.Exec(ctx, refundCreditQuery, creditID, order.EngagedAmount, now); err != nil {
		return fmt.Errorf("failed to refund annual credit %d: %w", creditID, err)
	}

	cancelEngagementQuery := `UPDATE engagements SET status = $2 WHERE order_id = $1 AND status = $3;`
	if _, err := tx.Exec(ctx, cancelEngagementQuery, orderID, string(domain.EngagementCancelled), string(domain.EngagementActive)); err != nil {
		return fmt.Errorf("failed to cancel engagement for order %d: %w", orderID, err)
	}

	cancelOrderQuery := `UPDATE orders SET status = $2, updated_at = $3 WHERE order_id = $1;`
	if _, err := tx.Exec(ctx, cancelOrderQuery, orderID, string(domain.OrderCancelled), now); err != nil {
		return fmt.Errorf("failed to cancel order %d: %w", orderID, err)
	}

	audit := domain.AuditEntry{
		EntityType:  "ORDER",
		EntityID:    orderID,
		Action:      "CANCEL",
		Detail:      fmt.Sprintf("imputation of %s reversed on budget line %d", order.EngagedAmount.StringFixed(2), *order.BudgetLineID),
		ValueBefore: string(domain.OrderImputed),
		ValueAfter:  string(domain.OrderCancelled),
		RecordedAt:  now,
	}
	if err := insertAuditEntry(ctx, tx, audit); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// SettleOrder transitions an imputed order to SOLDE and records the paid
// amount on the order, its budget line and its annual credit.
func (r *PgxOrderRepository) SettleOrder(ctx context.Context, orderID int64, paidAmount decimal.Decimal, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	lockOrderQuery := `SELECT ` + orderColumns + ` FROM orders WHERE order_id = $1 FOR UPDATE;`
	m, err := scanOrder(tx.QueryRow(ctx, lockOrderQuery, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: order %d", apperrors.ErrNotFound, orderID)
		}
		return fmt.Errorf("failed to lock order %d: %w", orderID, err)
	}
	order := mapping.ToDomainOrder(*m)

	if !order.CanSettle() {
		return fmt.Errorf("%w: order %d is %s, settlement requires IMPUTED", apperrors.ErrInvalidState, orderID, order.Status)
	}
	if order.BudgetLineID == nil {
		return fmt.Errorf("%w: imputed order %d has no budget line", apperrors.ErrPersistence, orderID)
	}

	var creditID int64
	lockLineQuery := `SELECT credit_id FROM budget_lines WHERE budget_line_id = $1 FOR UPDATE;`
	if err := tx.QueryRow(ctx, lockLineQuery, *order.BudgetLineID).Scan(&creditID); err != nil {
		return fmt.Errorf("failed to lock budget line %d: %w", *order.BudgetLineID, err)
	}

	payLineQuery := `
		UPDATE budget_lines
		SET paid_amount = paid_amount + $2, updated_at = $3
		WHERE budget_line_id = $1;
	`
	if _, err := tx.Exec(ctx, payLineQuery, *order.BudgetLineID, paidAmount, now); err != nil {
		return fmt.Errorf("failed to update paid total on budget line %d: %w", *order.BudgetLineID, err)
	}

	payCreditQuery := `
		UPDATE annual_credits
		SET mandated_amount = mandated_amount + $2, updated_at = $3
		WHERE credit_id = $1;
	`
	if _, err := tx.Exec(ctx, payCreditQuery, creditID, paidAmount, now); err != nil {
		return fmt.Errorf("failed to update mandated total on annual credit %d: %w", creditID, err)
	}

	settleOrderQuery := `UPDATE orders SET status = $2, paid_amount = $3, settled_at = $4, updated_at = $4 WHERE order_id = $1;`
	if _, err := tx.Exec(ctx, settleOrderQuery, orderID, string(domain.OrderSettled), paidAmount, now); err != nil {
		return fmt.Errorf("failed to settle order %d: %w", orderID, err)
	}

	audit := domain.AuditEntry{
		EntityType:  "ORDER",
		EntityID:    orderID,
		Action:      "SETTLE",
		Detail:      fmt.Sprintf("order %s settled for %s", order.Number, paidAmount.StringFixed(2)),
		ValueBefore: string(domain.OrderImputed),
		ValueAfter:  string(domain.OrderSettled),
		RecordedAt:  now,
	}
	if err := insertAuditEntry(ctx, tx, audit); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindEngagementByOrderID retrieves the live engagement of an order.
func (r *PgxOrderRepository) FindEngagementByOrderID(ctx context.Context, orderID int64) (*domain.Engagement, error) {
	query := `
		SELECT engagement_id, number, order_id, budget_line_id, credit_id, amount, engaged_at, status
		FROM engagements
		WHERE order_id = $1 AND status = 'ENGAGE';
	`
	var m models.Engagement
	err := r.Pool.QueryRow(ctx, query, orderID).Scan(
		&m.EngagementID,
		&m.Number,
		&m.OrderID,
		&m.BudgetLineID,
		&m.CreditID,
		&m.Amount,
		&m.EngagedAt,
		&m.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: engagement for order %d", apperrors.ErrNotFound, orderID)
		}
		return nil, fmt.Errorf("failed to find engagement for order %d: %w", orderID, err)
	}

	d := mapping.ToDomainEngagement(m)
	return &d, nil
}
