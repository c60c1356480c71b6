package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineDrift describes one budget line whose cached totals diverged from the
// sums recomputed over its orders.
type LineDrift struct {
	BudgetLineID  int64           `json:"budgetLineID"`
	Label         string          `json:"label"`
	CachedEngaged decimal.Decimal `json:"cachedEngaged"`
	RealEngaged   decimal.Decimal `json:"realEngaged"`
	CachedPaid    decimal.Decimal `json:"cachedPaid"`
	RealPaid      decimal.Decimal `json:"realPaid"`
	Repaired      bool            `json:"repaired"`
}

// ReconciliationReport summarizes one reconciliation run.
type ReconciliationReport struct {
	StartedAt    time.Time   `json:"startedAt"`
	FinishedAt   time.Time   `json:"finishedAt"`
	LinesChecked int         `json:"linesChecked"`
	Drifts       []LineDrift `json:"drifts"`
	DryRun       bool        `json:"dryRun"`
}
