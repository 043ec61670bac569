package dto

import (
	"time"

	"github.com/flowpay/flow_backend/internal/core/domain"
)

// AuditEntryResponse defines the API shape of one recorded action.
type AuditEntryResponse struct {
	AuditID    string         `json:"auditID"`
	ActorID    *string        `json:"actorID,omitempty"`
	EntityType string         `json:"entityType"`
	EntityID   string         `json:"entityID"`
	Action     string         `json:"action"`
	OldValues  map[string]any `json:"oldValues,omitempty"`
	NewValues  map[string]any `json:"newValues,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}

// ToAuditEntryResponse converts a domain.AuditEntry to AuditEntryResponse.
func ToAuditEntryResponse(e *domain.AuditEntry) AuditEntryResponse {
	return AuditEntryResponse{
		AuditID:    e.AuditID,
		ActorID:    e.ActorID,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		Action:     e.Action,
		OldValues:  e.OldValues,
		NewValues:  e.NewValues,
		CreatedAt:  e.CreatedAt,
	}
}

// ToAuditEntryResponses converts a slice of audit entries.
func ToAuditEntryResponses(items []domain.AuditEntry) []AuditEntryResponse {
	responses := make([]AuditEntryResponse, len(items))
	for i := range items {
		responses[i] = ToAuditEntryResponse(&items[i])
	}
	return responses
}
