package domain

import "time"

// AuditEntry is one recorded action against any entity. Append-only; core
// components write entries as a side effect and never read them back for
// control decisions.
type AuditEntry struct {
	AuditID    string         `json:"auditID"` // Primary Key (UUID)
	ActorID    *string        `json:"actorID,omitempty"` // nil for system actions
	EntityType string         `json:"entityType"`
	EntityID   string         `json:"entityID"`
	Action     string         `json:"action"`
	OldValues  map[string]any `json:"oldValues,omitempty"`
	NewValues  map[string]any `json:"newValues,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}
