package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AnnualCredit represents one fiscal year's slice of an authorization.
type AnnualCredit struct {
	CreditID        int64           `db:"credit_id"`
	AuthorizationID int64           `db:"authorization_id"`
	FiscalYear      int             `db:"fiscal_year"`
	VotedAmount     decimal.Decimal `db:"voted_amount"`
	EngagedAmount   decimal.Decimal `db:"engaged_amount"`
	MandatedAmount  decimal.Decimal `db:"mandated_amount"`
	AvailableAmount decimal.Decimal `db:"available_amount"`
	VoteDate        *time.Time      `db:"vote_date"` // Nullable
	Status          string          `db:"status"`
	AuditFields
}
