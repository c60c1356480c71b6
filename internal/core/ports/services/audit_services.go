package services

import (
	"context"

	"github.com/civicdsi/budget_engagement_app/internal/core/domain"
	"github.com/civicdsi/budget_engagement_app/internal/core/ports/repositories"
)

// AuditSvcFacade exposes the audit trail.
type AuditSvcFacade interface {
	// ListAuditEntries retrieves audit entries matching the filter, newest first.
	ListAuditEntries(ctx context.Context, filter repositories.ListAuditFilter) ([]domain.AuditEntry, error)
}
