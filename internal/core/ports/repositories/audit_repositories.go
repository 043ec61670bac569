package repositories

import (
	"context"

	"github.com/flowpay/flow_backend/internal/core/domain"
)

// AuditWriter defines the append-only write operation for audit entries.
type AuditWriter interface {
	// SaveAuditEntry appends one entry. Entries are never updated or deleted.
	SaveAuditEntry(ctx context.Context, entry domain.AuditEntry) error
}

// AuditReader serves the reporting surface; core logic never calls it.
type AuditReader interface {
	// ListByEntity retrieves entries for an entity, newest first.
	ListByEntity(ctx context.Context, entityType, entityID string, limit int) ([]domain.AuditEntry, error)
}

// AuditRepositoryFacade combines the audit repository interfaces
type AuditRepositoryFacade interface {
	AuditWriter
	AuditReader
}
