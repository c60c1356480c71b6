package mapping

import (
	"github.com/civicdsi/budget_engagement_app/internal/core/domain"
	"github.com/civicdsi/budget_engagement_app/internal/models"
)

// ToModelEngagement converts a domain Engagement to a model Engagement
func ToModelEngagement(d domain.Engagement) models.Engagement {
	return models.Engagement{
		EngagementID: d.EngagementID,
		Number:       d.Number,
		OrderID:      d.OrderID,
		BudgetLineID: d.BudgetLineID,
		CreditID:     d.CreditID,
		Amount:       d.Amount,
		EngagedAt:    d.EngagedAt,
		Status:       string(d.Status),
	}
}

// ToDomainEngagement converts a model Engagement to a domain Engagement
func ToDomainEngagement(m models.Engagement) domain.Engagement {
	return domain.Engagement{
		EngagementID: m.EngagementID,
		Number:       m.Number,
		OrderID:      m.OrderID,
		BudgetLineID: m.BudgetLineID,
		CreditID:     m.CreditID,
		Amount:       m.Amount,
		EngagedAt:    m.EngagedAt,
		Status:       domain.EngagementStatus(m.Status),
	}
}

// ToDomainEngagementSlice converts a slice of model Engagements to domain Engagements
func ToDomainEngagementSlice(ms []models.Engagement) []domain.Engagement {
	ds := make([]domain.Engagement, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEngagement(m)
	}
	return ds
}
