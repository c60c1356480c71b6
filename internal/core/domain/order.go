package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus tracks a purchase order through its validation/imputation
// workflow. CANCELLED and SOLDE are terminal; IMPUTED orders can only leave
// via an explicit reversal (cancel) or settlement.
type OrderStatus string

const (
	OrderDraft     OrderStatus = "DRAFT"
	OrderPending   OrderStatus = "PENDING"
	OrderValidated OrderStatus = "VALIDATED"
	OrderImputed   OrderStatus = "IMPUTED"
	OrderSettled   OrderStatus = "SOLDE"
	OrderCancelled OrderStatus = "CANCELLED"
)

// DefaultTaxRate is the flat VAT percentage applied when none is given.
var DefaultTaxRate = decimal.NewFromFloat(20.0)

// Order is a purchase order (bon de commande). It is exclusively owned by
// the workflow until it reaches a terminal state; once imputed its committed
// amount stays reflected in its budget line until the order is cancelled.
type Order struct {
	OrderID      int64           `json:"orderID"`
	Number       string          `json:"number"` // human-assigned, unique
	Object       string          `json:"object"`
	Description  string          `json:"description"`
	SupplierID   int64           `json:"supplierID"`
	ProjectID    *int64          `json:"projectID,omitempty"`
	ContractID   *int64          `json:"contractID,omitempty"`
	BudgetLineID *int64          `json:"budgetLineID,omitempty"`
	AmountHT     decimal.Decimal `json:"amountHT"`
	AmountTTC    decimal.Decimal `json:"amountTTC"`
	TaxRate      decimal.Decimal `json:"taxRate"`
	Nature       BudgetNature    `json:"nature"`
	Status       OrderStatus     `json:"status"`

	Validated   bool       `json:"validated"`
	ValidatedAt *time.Time `json:"validatedAt,omitempty"`
	ValidatorID *int64     `json:"validatorID,omitempty"`

	Imputed       bool            `json:"imputed"`
	ImputedAt     *time.Time      `json:"imputedAt,omitempty"`
	EngagedAmount decimal.Decimal `json:"engagedAmount"`

	PaidAmount decimal.Decimal `json:"paidAmount"`
	SettledAt  *time.Time      `json:"settledAt,omitempty"`

	CreatedBy int64 `json:"createdBy"`
	AuditFields
}

// CommittedAmount is the amount imputed against a budget line: the TTC
// amount, falling back to HT when TTC is absent or smaller.
func (o *Order) CommittedAmount() decimal.Decimal {
	if o.AmountTTC.GreaterThanOrEqual(o.AmountHT) {
		return o.AmountTTC
	}
	return o.AmountHT
}

// CanSubmit reports whether the order may move DRAFT → PENDING.
func (o *Order) CanSubmit() bool {
	return o.Status == OrderDraft
}

// CanApprove reports whether the order may move PENDING → VALIDATED.
func (o *Order) CanApprove() bool {
	return o.Status == OrderPending
}

// CanImpute reports whether the order may be imputed on a budget line.
func (o *Order) CanImpute() bool {
	return o.Status == OrderValidated
}

// CanCancel reports whether the order may be cancelled. Cancelling an
// IMPUTED order requires reversing its commitment first; SOLDE and
// CANCELLED are final.
func (o *Order) CanCancel() bool {
	switch o.Status {
	case OrderDraft, OrderPending, OrderValidated, OrderImputed:
		return true
	}
	return false
}

// RequiresReversal reports whether cancelling this order must refund its
// budget line.
func (o *Order) RequiresReversal() bool {
	return o.Status == OrderImputed
}

// CanSettle reports whether the order may move IMPUTED → SOLDE.
func (o *Order) CanSettle() bool {
	return o.Status == OrderImputed
}
