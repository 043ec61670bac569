package pgsql

import (
	"context"
	"encoding/json"

	"github.com/flowpay/flow_backend/internal/apperrors"
	"github.com/flowpay/flow_backend/internal/core/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxAuditRepository implements the append-only audit trail using pgxpool.
// Snapshots are stored as JSONB; rows are never updated or deleted.
type PgxAuditRepository struct {
	BaseRepository
}

func newPgxAuditRepository(db *pgxpool.Pool) *PgxAuditRepository {
	return &PgxAuditRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// SaveAuditEntry appends one entry.
func (r *PgxAuditRepository) SaveAuditEntry(ctx context.Context, entry domain.AuditEntry) error {
	oldValues, err := marshalSnapshot(entry.OldValues)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode old values snapshot", err)
	}
	newValues, err := marshalSnapshot(entry.NewValues)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode new values snapshot", err)
	}

	_, err = r.Pool.Exec(ctx, `
		INSERT INTO audit_logs (audit_id, actor_id, entity_type, entity_id, action, old_values, new_values, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.AuditID, entry.ActorID, entry.EntityType, entry.EntityID, entry.Action, oldValues, newValues, entry.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save audit entry", err)
	}
	return nil
}

// ListByEntity retrieves entries for an entity, newest first.
func (r *PgxAuditRepository) ListByEntity(ctx context.Context, entityType, entityID string, limit int) ([]domain.AuditEntry, error) {
	query := `
		SELECT audit_id, actor_id, entity_type, entity_id, action, old_values, new_values, created_at
		FROM audit_logs
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at DESC`
	args := []interface{}{entityType, entityID}
	if limit > 0 {
		query += " LIMIT $3"
		args = append(args, limit)
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list audit entries", err)
	}
	defer rows.Close()

	var entries []domain.AuditEntry
	for rows.Next() {
		var entry domain.AuditEntry
		var oldValues, newValues []byte
		if err := rows.Scan(&entry.AuditID, &entry.ActorID, &entry.EntityType, &entry.EntityID, &entry.Action, &oldValues, &newValues, &entry.CreatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan audit entry", err)
		}
		if entry.OldValues, err = unmarshalSnapshot(oldValues); err != nil {
			return nil, apperrors.NewAppError(500, "failed to decode old values snapshot", err)
		}
		if entry.NewValues, err = unmarshalSnapshot(newValues); err != nil {
			return nil, apperrors.NewAppError(500, "failed to decode new values snapshot", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating audit entries", err)
	}
	return entries, nil
}

func marshalSnapshot(values map[string]any) ([]byte, error) {
	if values == nil {
		return nil, nil
	}
	return json.Marshal(values)
}

func unmarshalSnapshot(raw []byte) (map[string]any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var values map[string]any
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, err
	}
	return values, nil
}
