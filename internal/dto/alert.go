package dto

import (
	"github.com/civicdsi/budget_engagement_app/internal/core/domain"
)

// ContractAlertResponse is one contract flagged by the expiry dashboard.
type ContractAlertResponse struct {
	Contract      ContractResponse  `json:"contract"`
	Level         domain.AlertLevel `json:"level"`
	DaysRemaining int               `json:"daysRemaining"`
}

// BudgetLineAlertResponse is one budget line over its engagement threshold.
type BudgetLineAlertResponse struct {
	Line           BudgetLineResponse `json:"line"`
	EngagementRate float64            `json:"engagementRate"`
	ThresholdPct   int                `json:"thresholdPct"`
}

// AlertsResponse aggregates both alert families for the dashboard.
type AlertsResponse struct {
	ContractAlerts []ContractAlertResponse   `json:"contractAlerts"`
	LineAlerts     []BudgetLineAlertResponse `json:"lineAlerts"`
}

// ToContractAlertResponse converts a domain.ContractAlert to its DTO
func ToContractAlertResponse(a domain.ContractAlert) ContractAlertResponse {
	return ContractAlertResponse{
		Contract:      ToContractResponse(&a.Contract),
		Level:         a.Level,
		DaysRemaining: a.DaysRemaining,
	}
}

// ToBudgetLineAlertResponse converts a domain.BudgetLineAlert to its DTO
func ToBudgetLineAlertResponse(a domain.BudgetLineAlert) BudgetLineAlertResponse {
	return BudgetLineAlertResponse{
		Line:           ToBudgetLineResponse(&a.Line, a.EngagementRate),
		EngagementRate: a.EngagementRate,
		ThresholdPct:   a.ThresholdPct,
	}
}
