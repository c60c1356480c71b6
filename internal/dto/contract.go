package dto

import (
	"time"

	"github.com/civicdsi/budget_engagement_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateContractRequest defines the data needed to register a contract draft.
type CreateContractRequest struct {
	Number        string              `json:"number" binding:"required"`
	Type          domain.ContractType `json:"type" binding:"required,oneof=MARCHE_BC MARCHE_MAINTENANCE GRE_A_GRE ACCORD_CADRE HORS_MARCHE"`
	Object        string              `json:"object" binding:"required"`
	SupplierID    int64               `json:"supplierID" binding:"required"`
	StartDate     time.Time           `json:"startDate" binding:"required"`
	EndDate       time.Time           `json:"endDate" binding:"required"`
	InitialAmount decimal.Decimal     `json:"initialAmount" binding:"required"`
	MaxRenewals   *int                `json:"maxRenewals" binding:"omitempty,min=0"`
}

// ListContractsParams defines query filters for listing contracts.
type ListContractsParams struct {
	Status     string `form:"status"`
	SupplierID int64  `form:"supplierID"`
	Limit      int    `form:"limit,default=50"`
	Offset     int    `form:"offset,default=0"`
}

// RenewContractRequest carries the extended end date of a renewal.
type RenewContractRequest struct {
	NewEndDate time.Time `json:"newEndDate" binding:"required"`
}

// ContractResponse mirrors domain.Contract with the derived cumulative engaged.
type ContractResponse struct {
	ContractID        int64                 `json:"contractID"`
	Number            string                `json:"number"`
	Type              domain.ContractType   `json:"type"`
	Object            string                `json:"object"`
	SupplierID        int64                 `json:"supplierID"`
	StartDate         time.Time             `json:"startDate"`
	EndDate           time.Time             `json:"endDate"`
	InitialAmount     decimal.Decimal       `json:"initialAmount"`
	CurrentAmount     decimal.Decimal       `json:"currentAmount"`
	CumulativeEngaged decimal.Decimal       `json:"cumulativeEngaged"`
	RemainingAmount   decimal.Decimal       `json:"remainingAmount"`
	RenewalCount      int                   `json:"renewalCount"`
	MaxRenewals       int                   `json:"maxRenewals"`
	Status            domain.ContractStatus `json:"status"`
	CreatedAt         time.Time             `json:"createdAt"`
	UpdatedAt         time.Time             `json:"updatedAt"`
}

// ToContractResponse converts a domain.Contract to ContractResponse DTO
func ToContractResponse(c *domain.Contract) ContractResponse {
	return ContractResponse{
		ContractID:        c.ContractID,
		Number:            c.Number,
		Type:              c.Type,
		Object:            c.Object,
		SupplierID:        c.SupplierID,
		StartDate:         c.StartDate,
		EndDate:           c.EndDate,
		InitialAmount:     c.InitialAmount,
		CurrentAmount:     c.CurrentAmount,
		CumulativeEngaged: c.CumulativeEngaged,
		RemainingAmount:   c.CurrentAmount.Sub(c.CumulativeEngaged),
		RenewalCount:      c.RenewalCount,
		MaxRenewals:       c.MaxRenewals,
		Status:            c.Status,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}

// ToListContractResponse converts a slice of domain.Contract to DTOs
func ToListContractResponse(cs []domain.Contract) []ContractResponse {
	res := make([]ContractResponse, len(cs))
	for i, c := range cs {
		res[i] = ToContractResponse(&c)
	}
	return res
}
