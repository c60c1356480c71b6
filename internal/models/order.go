package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order represents a purchase order row.
type Order struct {
	OrderID      int64           `db:"order_id"`
	Number       string          `db:"number"`
	Object       string          `db:"object"`
	Description  string          `db:"description"`
	SupplierID   int64           `db:"supplier_id"`
	ProjectID    *int64          `db:"project_id"`     // Nullable
	ContractID   *int64          `db:"contract_id"`    // Nullable
	BudgetLineID *int64          `db:"budget_line_id"` // Nullable until imputation
	AmountHT     decimal.Decimal `db:"amount_ht"`
	AmountTTC    decimal.Decimal `db:"amount_ttc"`
	TaxRate      decimal.Decimal `db:"tax_rate"`
	Nature       string          `db:"nature"`
	Status       string          `db:"status"`

	Validated   bool       `db:"validated"`
	ValidatedAt *time.Time `db:"validated_at"`
	ValidatorID *int64     `db:"validator_id"`

	Imputed       bool            `db:"imputed"`
	ImputedAt     *time.Time      `db:"imputed_at"`
	EngagedAmount decimal.Decimal `db:"engaged_amount"`

	PaidAmount decimal.Decimal `db:"paid_amount"`
	SettledAt  *time.Time      `db:"settled_at"`

	CreatedBy int64 `db:"created_by"`
	AuditFields
}
