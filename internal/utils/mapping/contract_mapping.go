package mapping

import (
	"github.com/civicdsi/budget_engagement_app/internal/core/domain"
	"github.com/civicdsi/budget_engagement_app/internal/models"
)

// ToModelContract converts a domain Contract to a model Contract
func ToModelContract(d domain.Contract) models.Contract {
	return models.Contract{
		ContractID:        d.ContractID,
		Number:            d.Number,
		ContractType:      string(d.Type),
		Object:            d.Object,
		SupplierID:        d.SupplierID,
		StartDate:         d.StartDate,
		EndDate:           d.EndDate,
		InitialAmount:     d.InitialAmount,
		CurrentAmount:     d.CurrentAmount,
		RenewalCount:      d.RenewalCount,
		MaxRenewals:       d.MaxRenewals,
		Status:            string(d.Status),
		CumulativeEngaged: d.CumulativeEngaged,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainContract converts a model Contract to a domain Contract
func ToDomainContract(m models.Contract) domain.Contract {
	return domain.Contract{
		ContractID:        m.ContractID,
		Number:            m.Number,
		Type:              domain.ContractType(m.ContractType),
		Object:            m.Object,
		SupplierID:        m.SupplierID,
		StartDate:         m.StartDate,
		EndDate:           m.EndDate,
		InitialAmount:     m.InitialAmount,
		CurrentAmount:     m.CurrentAmount,
		RenewalCount:      m.RenewalCount,
		MaxRenewals:       m.MaxRenewals,
		Status:            domain.ContractStatus(m.Status),
		CumulativeEngaged: m.CumulativeEngaged,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainContractSlice converts a slice of model Contracts to domain Contracts
func ToDomainContractSlice(ms []models.Contract) []domain.Contract {
	ds := make([]domain.Contract, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainContract(m)
	}
	return ds
}
