package dto

import (
	"time"

	"github.com/civicdsi/budget_engagement_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest defines the data needed to open a purchase order draft.
// AmountTTC is computed from AmountHT and TaxRate when omitted.
type CreateOrderRequest struct {
	Number      string              `json:"number" binding:"required"`
	Object      string              `json:"object" binding:"required"`
	Description string              `json:"description"`
	SupplierID  int64               `json:"supplierID" binding:"required"`
	ProjectID   *int64              `json:"projectID"`
	ContractID  *int64              `json:"contractID"`
	AmountHT    decimal.Decimal     `json:"amountHT" binding:"required"`
	AmountTTC   *decimal.Decimal    `json:"amountTTC"`
	TaxRate     *decimal.Decimal    `json:"taxRate"`
	Nature      domain.BudgetNature `json:"nature" binding:"required,oneof=FONCTIONNEMENT INVESTISSEMENT"`
	CreatedBy   int64               `json:"createdBy" binding:"required"`
}

// ApproveOrderRequest carries the approving validator's identity.
type ApproveOrderRequest struct {
	ValidatorID int64 `json:"validatorID" binding:"required"`
}

// ImputeOrderRequest names the budget line the order commits against.
type ImputeOrderRequest struct {
	BudgetLineID int64 `json:"budgetLineID" binding:"required"`
}

// SettleOrderRequest carries the final paid amount; when omitted the order's
// committed amount is used.
type SettleOrderRequest struct {
	PaidAmount *decimal.Decimal `json:"paidAmount"`
}

// ListOrdersParams defines query filters for listing orders.
type ListOrdersParams struct {
	Status       string `form:"status"`
	SupplierID   int64  `form:"supplierID"`
	ContractID   int64  `form:"contractID"`
	BudgetLineID int64  `form:"budgetLineID"`
	Limit        int    `form:"limit,default=50"`
	Offset       int    `form:"offset,default=0"`
}

// OrderResponse mirrors domain.Order.
type OrderResponse struct {
	OrderID       int64               `json:"orderID"`
	Number        string              `json:"number"`
	Object        string              `json:"object"`
	Description   string              `json:"description"`
	SupplierID    int64               `json:"supplierID"`
	ProjectID     *int64              `json:"projectID,omitempty"`
	ContractID    *int64              `json:"contractID,omitempty"`
	BudgetLineID  *int64              `json:"budgetLineID,omitempty"`
	AmountHT      decimal.Decimal     `json:"amountHT"`
	AmountTTC     decimal.Decimal     `json:"amountTTC"`
	TaxRate       decimal.Decimal     `json:"taxRate"`
	Nature        domain.BudgetNature `json:"nature"`
	Status        domain.OrderStatus  `json:"status"`
	Validated     bool                `json:"validated"`
	ValidatedAt   *time.Time          `json:"validatedAt,omitempty"`
	ValidatorID   *int64              `json:"validatorID,omitempty"`
	Imputed       bool                `json:"imputed"`
	ImputedAt     *time.Time          `json:"imputedAt,omitempty"`
	EngagedAmount decimal.Decimal     `json:"engagedAmount"`
	PaidAmount    decimal.Decimal     `json:"paidAmount"`
	SettledAt     *time.Time          `json:"settledAt,omitempty"`
	CreatedBy     int64               `json:"createdBy"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

// ToOrderResponse converts a domain.Order to OrderResponse DTO
func ToOrderResponse(o *domain.Order) OrderResponse {
	return OrderResponse{
		OrderID:       o.OrderID,
		Number:        o.Number,
		Object:        o.Object,
		Description:   o.Description,
		SupplierID:    o.SupplierID,
		ProjectID:     o.ProjectID,
		ContractID:    o.ContractID,
		BudgetLineID:  o.BudgetLineID,
		AmountHT:      o.AmountHT,
		AmountTTC:     o.AmountTTC,
		TaxRate:       o.TaxRate,
		Nature:        o.Nature,
		Status:        o.Status,
		Validated:     o.Validated,
		ValidatedAt:   o.ValidatedAt,
		ValidatorID:   o.ValidatorID,
		Imputed:       o.Imputed,
		ImputedAt:     o.ImputedAt,
		EngagedAmount: o.EngagedAmount,
		PaidAmount:    o.PaidAmount,
		SettledAt:     o.SettledAt,
		CreatedBy:     o.CreatedBy,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

// ToListOrderResponse converts a slice of domain.Order to DTOs
func ToListOrderResponse(os []domain.Order) []OrderResponse {
	res := make([]OrderResponse, len(os))
	for i, o := range os {
		res[i] = ToOrderResponse(&o)
	}
	return res
}
