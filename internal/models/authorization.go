package models

import (
	"github.com/shopspring/decimal"
)

// Authorization represents a multi-year spending authorization row.
type Authorization struct {
	AuthorizationID int64           `db:"authorization_id"`
	Number          string          `db:"number"`
	Label           string          `db:"label"`
	TotalAmount     decimal.Decimal `db:"total_amount"`
	FiscalYearStart int             `db:"fiscal_year_start"`
	FiscalYearEnd   int             `db:"fiscal_year_end"`
	Status          string          `db:"status"`
	AuditFields
}
