package services

import (
	"context"
	"log/slog"

	"github.com/civicdsi/budget_engagement_app/internal/core/domain"
	portsrepo "github.com/civicdsi/budget_engagement_app/internal/core/ports/repositories"
	portssvc "github.com/civicdsi/budget_engagement_app/internal/core/ports/services"
	"github.com/civicdsi/budget_engagement_app/internal/middleware"
)

// AuditService exposes the audit trail.
type AuditService struct {
	auditRepo portsrepo.AuditRepositoryFacade
}

func NewAuditService(auditRepo portsrepo.AuditRepositoryFacade) *AuditService {
	return &AuditService{auditRepo: auditRepo}
}

var _ portssvc.AuditSvcFacade = (*AuditService)(nil)

// ListAuditEntries retrieves audit entries matching the filter, newest first.
func (s *AuditService) ListAuditEntries(ctx context.Context, filter portsrepo.ListAuditFilter) ([]domain.AuditEntry, error) {
	entries, err := s.auditRepo.ListAuditEntries(ctx, filter)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list audit entries", slog.String("error", err.Error()))
		return nil, err
	}
	return entries, nil
}
