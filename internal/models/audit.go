package models

import "time"

// AuditEntry represents one audit_log row.
type AuditEntry struct {
	AuditID     int64     `db:"audit_id"`
	EntityType  string    `db:"entity_type"`
	EntityID    int64     `db:"entity_id"`
	Action      string    `db:"action"`
	Detail      string    `db:"detail"`
	ValueBefore string    `db:"value_before"`
	ValueAfter  string    `db:"value_after"`
	RecordedAt  time.Time `db:"recorded_at"`
}
