package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditStatus indicates the state of one fiscal-year slice of an
// Authorization. A credit starts in EN_PREPARATION and becomes ACTIVE when
// its amount is voted; the vote is one-way.
type CreditStatus string

const (
	CreditInPreparation CreditStatus = "EN_PREPARATION"
	CreditActive        CreditStatus = "ACTIVE"
	CreditClosed        CreditStatus = "CLOSED"
	CreditCancelled     CreditStatus = "CANCELLED"
)

// AnnualCredit is one fiscal year's payment credit under an Authorization.
// Invariant: EngagedAmount ≤ VotedAmount and
// AvailableAmount = VotedAmount − EngagedAmount.
type AnnualCredit struct {
	CreditID        int64           `json:"creditID"`
	AuthorizationID int64           `json:"authorizationID"`
	FiscalYear      int             `json:"fiscalYear"`
	VotedAmount     decimal.Decimal `json:"votedAmount"`
	EngagedAmount   decimal.Decimal `json:"engagedAmount"`
	MandatedAmount  decimal.Decimal `json:"mandatedAmount"`
	AvailableAmount decimal.Decimal `json:"availableAmount"`
	VoteDate        *time.Time      `json:"voteDate,omitempty"`
	Status          CreditStatus    `json:"status"`
	AuditFields
}

// CanVote reports whether the credit is still in its pre-vote status.
func (c *AnnualCredit) CanVote() bool {
	return c.Status == CreditInPreparation
}
