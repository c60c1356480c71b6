package mapping

import (
	"github.com/civicdsi/budget_engagement_app/internal/core/domain"
	"github.com/civicdsi/budget_engagement_app/internal/models"
)

// ToModelAuditEntry converts a domain AuditEntry to a model AuditEntry
func ToModelAuditEntry(d domain.AuditEntry) models.AuditEntry {
	return models.AuditEntry{
		AuditID:     d.AuditID,
		EntityType:  d.EntityType,
		EntityID:    d.EntityID,
		Action:      d.Action,
		Detail:      d.Detail,
		ValueBefore: d.ValueBefore,
		ValueAfter:  d.ValueAfter,
		RecordedAt:  d.RecordedAt,
	}
}

// ToDomainAuditEntry converts a model AuditEntry to a domain AuditEntry
func ToDomainAuditEntry(m models.AuditEntry) domain.AuditEntry {
	return domain.AuditEntry{
		AuditID:     m.AuditID,
		EntityType:  m.EntityType,
		EntityID:    m.EntityID,
		Action:      m.Action,
		Detail:      m.Detail,
		ValueBefore: m.ValueBefore,
		ValueAfter:  m.ValueAfter,
		RecordedAt:  m.RecordedAt,
	}
}

// ToDomainAuditEntrySlice converts a slice of model AuditEntries to domain AuditEntries
func ToDomainAuditEntrySlice(ms []models.AuditEntry) []domain.AuditEntry {
	ds := make([]domain.AuditEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAuditEntry(m)
	}
	return ds
}
