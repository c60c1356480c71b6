package mapping

import (
	"github.com/civicdsi/budget_engagement_app/internal/core/domain"
	"github.com/civicdsi/budget_engagement_app/internal/models"
)

// ToModelOrder converts a domain Order to a model Order
func ToModelOrder(d domain.Order) models.Order {
	return models.Order{
		OrderID:       d.OrderID,
		Number:        d.Number,
		Object:        d.Object,
		Description:   d.Description,
		SupplierID:    d.SupplierID,
		ProjectID:     d.ProjectID,
		ContractID:    d.ContractID,
		BudgetLineID:  d.BudgetLineID,
		AmountHT:      d.AmountHT,
		AmountTTC:     d.AmountTTC,
		TaxRate:       d.TaxRate,
		Nature:        string(d.Nature),
		Status:        string(d.Status),
		Validated:     d.Validated,
		ValidatedAt:   d.ValidatedAt,
		ValidatorID:   d.ValidatorID,
		Imputed:       d.Imputed,
		ImputedAt:     d.ImputedAt,
		EngagedAmount: d.EngagedAmount,
		PaidAmount:    d.PaidAmount,
		SettledAt:     d.SettledAt,
		CreatedBy:     d.CreatedBy,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOrder converts a model Order to a domain Order
func ToDomainOrder(m models.Order) domain.Order {
	return domain.Order{
		OrderID:       m.OrderID,
		Number:        m.Number,
		Object:        m.Object,
		Description:   m.Description,
		SupplierID:    m.SupplierID,
		ProjectID:     m.ProjectID,
		ContractID:    m.ContractID,
		BudgetLineID:  m.BudgetLineID,
		AmountHT:      m.AmountHT,
		AmountTTC:     m.AmountTTC,
		TaxRate:       m.TaxRate,
		Nature:        domain.BudgetNature(m.Nature),
		Status:        domain.OrderStatus(m.Status),
		Validated:     m.Validated,
		ValidatedAt:   m.ValidatedAt,
		ValidatorID:   m.ValidatorID,
		Imputed:       m.Imputed,
		ImputedAt:     m.ImputedAt,
		EngagedAmount: m.EngagedAmount,
		PaidAmount:    m.PaidAmount,
		SettledAt:     m.SettledAt,
		CreatedBy:     m.CreatedBy,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainOrderSlice converts a slice of model Orders to domain Orders
func ToDomainOrderSlice(ms []models.Order) []domain.Order {
	ds := make([]domain.Order, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainOrder(m)
	}
	return ds
}
