package dto

import (
	"time"

	"github.com/civicdsi/budget_engagement_app/internal/core/domain"
)

// ListAuditParams defines query filters for the audit trail.
type ListAuditParams struct {
	EntityType string `form:"entityType"`
	EntityID   int64  `form:"entityID"`
	Limit      int    `form:"limit,default=100"`
	Offset     int    `form:"offset,default=0"`
}

// AuditEntryResponse mirrors domain.AuditEntry.
type AuditEntryResponse struct {
	AuditID     int64     `json:"auditID"`
	EntityType  string    `json:"entityType"`
	EntityID    int64     `json:"entityID"`
	Action      string    `json:"action"`
	Detail      string    `json:"detail"`
	ValueBefore string    `json:"valueBefore,omitempty"`
	ValueAfter  string    `json:"valueAfter,omitempty"`
	RecordedAt  time.Time `json:"recordedAt"`
}

// ToListAuditEntryResponse converts a slice of domain.AuditEntry to DTOs
func ToListAuditEntryResponse(es []domain.AuditEntry) []AuditEntryResponse {
	res := make([]AuditEntryResponse, len(es))
	for i, e := range es {
		res[i] = AuditEntryResponse{
			AuditID:     e.AuditID,
			EntityType:  e.EntityType,
			EntityID:    e.EntityID,
			Action:      e.Action,
			Detail:      e.Detail,
			ValueBefore: e.ValueBefore,
			ValueAfter:  e.ValueAfter,
			RecordedAt:  e.RecordedAt,
		}
	}
	return res
}
