package models

import (
	"github.com/shopspring/decimal"
)

// BudgetLine represents a budget line row under an annual credit.
type BudgetLine struct {
	BudgetLineID      int64           `db:"budget_line_id"`
	CreditID          int64           `db:"credit_id"`
	Label             string          `db:"label"`
	Nature            string          `db:"nature"`
	ProjectID         *int64          `db:"project_id"` // Nullable
	VotedAmount       decimal.Decimal `db:"voted_amount"`
	EngagedAmount     decimal.Decimal `db:"engaged_amount"`
	AvailableAmount   decimal.Decimal `db:"available_amount"`
	PaidAmount        decimal.Decimal `db:"paid_amount"`
	AlertThresholdPct int             `db:"alert_threshold_pct"`
	Status            string          `db:"status"`
	AuditFields
}
