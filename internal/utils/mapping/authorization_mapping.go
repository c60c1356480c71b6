package mapping

import (
	"github.com/civicdsi/budget_engagement_app/internal/core/domain"
	"github.com/civicdsi/budget_engagement_app/internal/models"
)

// ToModelAuthorization converts a domain Authorization to a model Authorization
func ToModelAuthorization(d domain.Authorization) models.Authorization {
	return models.Authorization{
		AuthorizationID: d.AuthorizationID,
		Number:          d.Number,
		Label:           d.Label,
		TotalAmount:     d.TotalAmount,
		FiscalYearStart: d.FiscalYearStart,
		FiscalYearEnd:   d.FiscalYearEnd,
		Status:          string(d.Status),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAuthorization converts a model Authorization to a domain Authorization
func ToDomainAuthorization(m models.Authorization) domain.Authorization {
	return domain.Authorization{
		AuthorizationID: m.AuthorizationID,
		Number:          m.Number,
		Label:           m.Label,
		TotalAmount:     m.TotalAmount,
		FiscalYearStart: m.FiscalYearStart,
		FiscalYearEnd:   m.FiscalYearEnd,
		Status:          domain.AuthorizationStatus(m.Status),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAuthorizationSlice converts a slice of model Authorizations to domain Authorizations
func ToDomainAuthorizationSlice(ms []models.Authorization) []domain.Authorization {
	ds := make([]domain.Authorization, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAuthorization(m)
	}
	return ds
}
