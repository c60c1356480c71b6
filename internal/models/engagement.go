package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Engagement represents a commitment row created at imputation time.
type Engagement struct {
	EngagementID int64           `db:"engagement_id"`
	Number       string          `db:"number"`
	OrderID      int64           `db:"order_id"`
	BudgetLineID int64           `db:"budget_line_id"`
	CreditID     *int64          `db:"credit_id"` // Nullable
	Amount       decimal.Decimal `db:"amount"`
	EngagedAt    time.Time       `db:"engaged_at"`
	Status       string          `db:"status"`
}
