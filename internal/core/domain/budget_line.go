package domain

import (
	"github.com/shopspring/decimal"
)

// BudgetLineStatus indicates whether a line can still receive imputations.
type BudgetLineStatus string

const (
	BudgetLineActive BudgetLineStatus = "ACTIVE"
	BudgetLineFrozen BudgetLineStatus = "FROZEN"
	BudgetLineClosed BudgetLineStatus = "CLOSED"
)

// DefaultAlertThresholdPct is the engagement-rate threshold above which a
// line is flagged on the dashboard.
const DefaultAlertThresholdPct = 80

// BudgetLine is a fine-grained allocation under an AnnualCredit, optionally
// tied to a project. Lines are created with a zero voted amount; voting
// assigns it one-way. Same conservation invariant as AnnualCredit, scoped
// to the line.
type BudgetLine struct {
	BudgetLineID      int64            `json:"budgetLineID"`
	CreditID          int64            `json:"creditID"`
	Label             string           `json:"label"`
	Nature            BudgetNature     `json:"nature"`
	ProjectID         *int64           `json:"projectID,omitempty"`
	VotedAmount       decimal.Decimal  `json:"votedAmount"`
	EngagedAmount     decimal.Decimal  `json:"engagedAmount"`
	AvailableAmount   decimal.Decimal  `json:"availableAmount"`
	PaidAmount        decimal.Decimal  `json:"paidAmount"`
	AlertThresholdPct int              `json:"alertThresholdPct"`
	Status            BudgetLineStatus `json:"status"`
	AuditFields
}

// CanImpute reports whether the line may receive new commitments.
func (l *BudgetLine) CanImpute() bool {
	return l.Status == BudgetLineActive
}

// CanVote reports whether the line's voted amount may still be assigned.
func (l *BudgetLine) CanVote() bool {
	return l.Status == BudgetLineActive && l.VotedAmount.IsZero()
}
