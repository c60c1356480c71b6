package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Contract represents a procurement contract row. CumulativeEngaged is not
// a column; it is filled by queries that join against orders.
type Contract struct {
	ContractID    int64           `db:"contract_id"`
	Number        string          `db:"number"`
	ContractType  string          `db:"contract_type"`
	Object        string          `db:"object"`
	SupplierID    int64           `db:"supplier_id"`
	StartDate     time.Time       `db:"start_date"`
	EndDate       time.Time       `db:"end_date"`
	InitialAmount decimal.Decimal `db:"initial_amount"`
	CurrentAmount decimal.Decimal `db:"current_amount"`
	RenewalCount  int             `db:"renewal_count"`
	MaxRenewals   int             `db:"max_renewals"`
	Status        string          `db:"status"`

	CumulativeEngaged decimal.Decimal `db:"cumulative_engaged"`
	AuditFields
}
