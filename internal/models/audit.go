package models

import "time"

// AuditEntry is one immutable row in the audit log. OldValues and NewValues
// are stored as JSONB.
type AuditEntry struct {
	AuditID    string    `db:"audit_id"`
	ActorID    *string   `db:"actor_id"`
	EntityType string    `db:"entity_type"`
	EntityID   string    `db:"entity_id"`
	Action     string    `db:"action"`
	OldValues  []byte    `db:"old_values"`
	NewValues  []byte    `db:"new_values"`
	CreatedAt  time.Time `db:"created_at"`
}
