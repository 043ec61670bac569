package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/flowpay/flow_backend/internal/core/domain"
	portsrepo "github.com/flowpay/flow_backend/internal/core/ports/repositories"
	portssvc "github.com/flowpay/flow_backend/internal/core/ports/services"
	"github.com/flowpay/flow_backend/internal/middleware"
	"github.com/google/uuid"
)

// AuditService appends entries to the audit trail. It never fails its caller:
// a write error is logged and swallowed.
type AuditService struct {
	auditRepo portsrepo.AuditRepositoryFacade
	now       func() time.Time
}

// NewAuditService creates a new AuditService.
func NewAuditService(ar portsrepo.AuditRepositoryFacade) *AuditService {
	return &AuditService{auditRepo: ar, now: time.Now}
}

var _ portssvc.AuditSvcFacade = (*AuditService)(nil)

// Record appends one entry for a logical action. actorID is nil for
// system-triggered actions.
func (s *AuditService) Record(ctx context.Context, actorID *string, entityType, entityID, action string, oldValues, newValues map[string]any) {
	entry := domain.AuditEntry{
		AuditID:    uuid.NewString(),
		ActorID:    actorID,
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		OldValues:  oldValues,
		NewValues:  newValues,
		CreatedAt:  s.now(),
	}

	if err := s.auditRepo.SaveAuditEntry(ctx, entry); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to write audit entry",
			slog.String("error", err.Error()),
			slog.String("entity_type", entityType),
			slog.String("entity_id", entityID),
			slog.String("action", action),
		)
	}
}

// ListByEntity retrieves an entity's trail, newest first.
func (s *AuditService) ListByEntity(ctx context.Context, entityType, entityID string, limit int) ([]domain.AuditEntry, error) {
	entries, err := s.auditRepo.ListByEntity(ctx, entityType, entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	if entries == nil {
		return []domain.AuditEntry{}, nil
	}
	return entries, nil
}
