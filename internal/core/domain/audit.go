package domain

import "time"

// AuditEntry is one row of the workflow audit trail. Entries are written
// alongside every state transition and reconciliation repair.
type AuditEntry struct {
	AuditID     int64     `json:"auditID"`
	EntityType  string    `json:"entityType"` // ORDER, CONTRACT, CREDIT, LINE, ...
	EntityID    int64     `json:"entityID"`
	Action      string    `json:"action"` // SUBMIT, APPROVE, IMPUTE, CANCEL, ...
	Detail      string    `json:"detail"`
	ValueBefore string    `json:"valueBefore,omitempty"`
	ValueAfter  string    `json:"valueAfter,omitempty"`
	RecordedAt  time.Time `json:"recordedAt"`
}
