package models

import (
	"time"

	"github.com/flowpay/flow_backend/internal/core/domain"
)

// User is the persisted form of a platform user. DeletedAt marks a soft
// delete.
type User struct {
	UserID       string          `db:"user_id"`
	CompanyID    string          `db:"company_id"`
	Email        string          `db:"email"`
	Name         string          `db:"name"`
	Role         domain.UserRole `db:"role"`
	PasswordHash string          `db:"password_hash"`
	IsActive     bool            `db:"is_active"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
