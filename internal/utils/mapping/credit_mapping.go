package mapping

import (
	"github.com/civicdsi/budget_engagement_app/internal/core/domain"
	"github.com/civicdsi/budget_engagement_app/internal/models"
)

// ToModelAnnualCredit converts a domain AnnualCredit to a model AnnualCredit
func ToModelAnnualCredit(d domain.AnnualCredit) models.AnnualCredit {
	return models.AnnualCredit{
		CreditID:        d.CreditID,
		AuthorizationID: d.AuthorizationID,
		FiscalYear:      d.FiscalYear,
		VotedAmount:     d.VotedAmount,
		EngagedAmount:   d.EngagedAmount,
		MandatedAmount:  d.MandatedAmount,
		AvailableAmount: d.AvailableAmount,
		VoteDate:        d.VoteDate,
		Status:          string(d.Status),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAnnualCredit converts a model AnnualCredit to a domain AnnualCredit
func ToDomainAnnualCredit(m models.AnnualCredit) domain.AnnualCredit {
	return domain.AnnualCredit{
		CreditID:        m.CreditID,
		AuthorizationID: m.AuthorizationID,
		FiscalYear:      m.FiscalYear,
		VotedAmount:     m.VotedAmount,
		EngagedAmount:   m.EngagedAmount,
		MandatedAmount:  m.MandatedAmount,
		AvailableAmount: m.AvailableAmount,
		VoteDate:        m.VoteDate,
		Status:          domain.CreditStatus(m.Status),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAnnualCreditSlice converts a slice of model AnnualCredits to domain AnnualCredits
func ToDomainAnnualCreditSlice(ms []models.AnnualCredit) []domain.AnnualCredit {
	ds := make([]domain.AnnualCredit, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAnnualCredit(m)
	}
	return ds
}
