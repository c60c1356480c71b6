package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EngagementStatus indicates whether a commitment record is still live.
type EngagementStatus string

const (
	EngagementActive    EngagementStatus = "ENGAGE"
	EngagementCancelled EngagementStatus = "ANNULE"
)

// Engagement records the commitment of an imputed order's amount against a
// budget line (and, through it, an annual credit). Every non-cancelled
// imputed order has exactly one; reconciliation consumes these records to
// audit line totals.
type Engagement struct {
	EngagementID int64            `json:"engagementID"`
	Number       string           `json:"number"`
	OrderID      int64            `json:"orderID"`
	BudgetLineID int64            `json:"budgetLineID"`
	CreditID     *int64           `json:"creditID,omitempty"`
	Amount       decimal.Decimal  `json:"amount"`
	EngagedAt    time.Time        `json:"engagedAt"`
	Status       EngagementStatus `json:"status"`
}
