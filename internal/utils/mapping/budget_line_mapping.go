package mapping

import (
	"github.com/civicdsi/budget_engagement_app/internal/core/domain"
	"github.com/civicdsi/budget_engagement_app/internal/models"
)

// ToModelBudgetLine converts a domain BudgetLine to a model BudgetLine
func ToModelBudgetLine(d domain.BudgetLine) models.BudgetLine {
	return models.BudgetLine{
		BudgetLineID:      d.BudgetLineID,
		CreditID:          d.CreditID,
		Label:             d.Label,
		Nature:            string(d.Nature),
		ProjectID:         d.ProjectID,
		VotedAmount:       d.VotedAmount,
		EngagedAmount:     d.EngagedAmount,
		AvailableAmount:   d.AvailableAmount,
		PaidAmount:        d.PaidAmount,
		AlertThresholdPct: d.AlertThresholdPct,
		Status:            string(d.Status),
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBudgetLine converts a model BudgetLine to a domain BudgetLine
func ToDomainBudgetLine(m models.BudgetLine) domain.BudgetLine {
	return domain.BudgetLine{
		BudgetLineID:      m.BudgetLineID,
		CreditID:          m.CreditID,
		Label:             m.Label,
		Nature:            domain.BudgetNature(m.Nature),
		ProjectID:         m.ProjectID,
		VotedAmount:       m.VotedAmount,
		EngagedAmount:     m.EngagedAmount,
		AvailableAmount:   m.AvailableAmount,
		PaidAmount:        m.PaidAmount,
		AlertThresholdPct: m.AlertThresholdPct,
		Status:            domain.BudgetLineStatus(m.Status),
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBudgetLineSlice converts a slice of model BudgetLines to domain BudgetLines
func ToDomainBudgetLineSlice(ms []models.BudgetLine) []domain.BudgetLine {
	ds := make([]domain.BudgetLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBudgetLine(m)
	}
	return ds
}
