package repositories

import (
	"context"

	"github.com/civicdsi/budget_engagement_app/internal/core/domain"
)

// ListAuditFilter narrows ListAuditEntries results. Zero values mean no filter.
type ListAuditFilter struct {
	EntityType string
	EntityID   int64
	Limit      int
	Offset     int
}

// AuditRepositoryFacade defines the audit trail operations. Workflow
// transactions write their own audit rows in-transaction; this facade covers
// standalone writes and reads.
type AuditRepositoryFacade interface {
	// SaveAuditEntry persists one audit entry.
	SaveAuditEntry(ctx context.Context, entry domain.AuditEntry) error

	// ListAuditEntries retrieves audit entries matching the filter, newest first.
	ListAuditEntries(ctx context.Context, filter ListAuditFilter) ([]domain.AuditEntry, error)
}
