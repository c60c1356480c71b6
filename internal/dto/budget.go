package dto

import (
	"time"

	"github.com/civicdsi/budget_engagement_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAuthorizationRequest defines the data needed to open a multi-year authorization.
type CreateAuthorizationRequest struct {
	Number          string          `json:"number" binding:"required"`
	Label           string          `json:"label" binding:"required"`
	TotalAmount     decimal.Decimal `json:"totalAmount" binding:"required"`
	FiscalYearStart int             `json:"fiscalYearStart" binding:"required,min=2000"`
	FiscalYearEnd   int             `json:"fiscalYearEnd" binding:"required,gtefield=FiscalYearStart"`
}

// ListAuthorizationsParams defines pagination for the authorization list.
type ListAuthorizationsParams struct {
	Limit  int `form:"limit,default=50"`
	Offset int `form:"offset,default=0"`
}

// AuthorizationResponse mirrors domain.Authorization.
type AuthorizationResponse struct {
	AuthorizationID int64                      `json:"authorizationID"`
	Number          string                     `json:"number"`
	Label           string                     `json:"label"`
	TotalAmount     decimal.Decimal            `json:"totalAmount"`
	FiscalYearStart int                        `json:"fiscalYearStart"`
	FiscalYearEnd   int                        `json:"fiscalYearEnd"`
	Status          domain.AuthorizationStatus `json:"status"`
	CreatedAt       time.Time                  `json:"createdAt"`
	UpdatedAt       time.Time                  `json:"updatedAt"`
}

// ToAuthorizationResponse converts a domain.Authorization to AuthorizationResponse DTO
func ToAuthorizationResponse(a *domain.Authorization) AuthorizationResponse {
	return AuthorizationResponse{
		AuthorizationID: a.AuthorizationID,
		Number:          a.Number,
		Label:           a.Label,
		TotalAmount:     a.TotalAmount,
		FiscalYearStart: a.FiscalYearStart,
		FiscalYearEnd:   a.FiscalYearEnd,
		Status:          a.Status,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// ToListAuthorizationResponse converts a slice of domain.Authorization to DTOs
func ToListAuthorizationResponse(as []domain.Authorization) []AuthorizationResponse {
	res := make([]AuthorizationResponse, len(as))
	for i, a := range as {
		res[i] = ToAuthorizationResponse(&a)
	}
	return res
}

// CreateAnnualCreditRequest defines the data for one fiscal year's credit
// slice. The amount given here is provisional; the vote assigns the
// definitive one.
type CreateAnnualCreditRequest struct {
	FiscalYear  int             `json:"fiscalYear" binding:"required,min=2000"`
	VotedAmount decimal.Decimal `json:"votedAmount" binding:"required"`
}

// VoteAnnualCreditRequest carries the definitive voted amount and an
// optional vote date (defaults to now).
type VoteAnnualCreditRequest struct {
	VotedAmount decimal.Decimal `json:"votedAmount" binding:"required"`
	VoteDate    *time.Time      `json:"voteDate"`
}

// AnnualCreditResponse mirrors domain.AnnualCredit.
type AnnualCreditResponse struct {
	CreditID        int64               `json:"creditID"`
	AuthorizationID int64               `json:"authorizationID"`
	FiscalYear      int                 `json:"fiscalYear"`
	VotedAmount     decimal.Decimal     `json:"votedAmount"`
	EngagedAmount   decimal.Decimal     `json:"engagedAmount"`
	MandatedAmount  decimal.Decimal     `json:"mandatedAmount"`
	AvailableAmount decimal.Decimal     `json:"availableAmount"`
	VoteDate        *time.Time          `json:"voteDate,omitempty"`
	Status          domain.CreditStatus `json:"status"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

// ToAnnualCreditResponse converts a domain.AnnualCredit to AnnualCreditResponse DTO
func ToAnnualCreditResponse(c *domain.AnnualCredit) AnnualCreditResponse {
	return AnnualCreditResponse{
		CreditID:        c.CreditID,
		AuthorizationID: c.AuthorizationID,
		FiscalYear:      c.FiscalYear,
		VotedAmount:     c.VotedAmount,
		EngagedAmount:   c.EngagedAmount,
		MandatedAmount:  c.MandatedAmount,
		AvailableAmount: c.AvailableAmount,
		VoteDate:        c.VoteDate,
		Status:          c.Status,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

// CreateBudgetLineRequest defines the data for a new budget line.
// Lines always start with a zero voted amount; voting assigns it later.
type CreateBudgetLineRequest struct {
	Label             string              `json:"label" binding:"required"`
	Nature            domain.BudgetNature `json:"nature" binding:"required,oneof=FONCTIONNEMENT INVESTISSEMENT"`
	ProjectID         *int64              `json:"projectID"`
	AlertThresholdPct *int                `json:"alertThresholdPct" binding:"omitempty,min=1,max=100"`
}

// VoteBudgetLineRequest carries the one-way vote assignment for a line.
type VoteBudgetLineRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// BudgetLineResponse mirrors domain.BudgetLine plus the computed engagement rate.
type BudgetLineResponse struct {
	BudgetLineID      int64                   `json:"budgetLineID"`
	CreditID          int64                   `json:"creditID"`
	Label             string                  `json:"label"`
	Nature            domain.BudgetNature     `json:"nature"`
	ProjectID         *int64                  `json:"projectID,omitempty"`
	VotedAmount       decimal.Decimal         `json:"votedAmount"`
	EngagedAmount     decimal.Decimal         `json:"engagedAmount"`
	AvailableAmount   decimal.Decimal         `json:"availableAmount"`
	PaidAmount        decimal.Decimal         `json:"paidAmount"`
	AlertThresholdPct int                     `json:"alertThresholdPct"`
	EngagementRate    float64                 `json:"engagementRate"`
	Status            domain.BudgetLineStatus `json:"status"`
	CreatedAt         time.Time               `json:"createdAt"`
	UpdatedAt         time.Time               `json:"updatedAt"`
}

// ToBudgetLineResponse converts a domain.BudgetLine to BudgetLineResponse DTO
func ToBudgetLineResponse(l *domain.BudgetLine, engagementRate float64) BudgetLineResponse {
	return BudgetLineResponse{
		BudgetLineID:      l.BudgetLineID,
		CreditID:          l.CreditID,
		Label:             l.Label,
		Nature:            l.Nature,
		ProjectID:         l.ProjectID,
		VotedAmount:       l.VotedAmount,
		EngagedAmount:     l.EngagedAmount,
		AvailableAmount:   l.AvailableAmount,
		PaidAmount:        l.PaidAmount,
		AlertThresholdPct: l.AlertThresholdPct,
		EngagementRate:    engagementRate,
		Status:            l.Status,
		CreatedAt:         l.CreatedAt,
		UpdatedAt:         l.UpdatedAt,
	}
}
