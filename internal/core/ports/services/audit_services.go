package services

import (
	"context"

	"github.com/flowpay/flow_backend/internal/core/domain"
)

// AuditRecorder is the side-effect sink every state-changing operation writes
// to. Recording is fire-and-forget: failures are logged by the implementation
// and never fail the calling operation.
type AuditRecorder interface {
	// Record appends one entry for a logical action. actorID is nil for
	// system-triggered actions.
	Record(ctx context.Context, actorID *string, entityType, entityID, action string, oldValues, newValues map[string]any)
}

// AuditReaderSvc serves the excluded reporting layer. Core logic never
// consults the trail for control decisions.
type AuditReaderSvc interface {
	ListByEntity(ctx context.Context, entityType, entityID string, limit int) ([]domain.AuditEntry, error)
}

// AuditSvcFacade combines the audit service interfaces
type AuditSvcFacade interface {
	AuditRecorder
	AuditReaderSvc
}
