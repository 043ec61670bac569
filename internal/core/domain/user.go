package domain

import "time"

// UserRole controls what a user may do in the payment workflow.
type UserRole string

const (
	RoleAdmin    UserRole = "ADMIN"
	RoleMaker    UserRole = "MAKER"
	RoleApprover UserRole = "APPROVER"
)

// CanDecide reports whether the role is allowed to approve or reject payments.
// Maker-checker segregation is enforced separately, per payment.
func (r UserRole) CanDecide() bool {
	return r == RoleApprover || r == RoleAdmin
}

// User represents a company-scoped user of the platform.
type User struct {
	UserID       string   `json:"userID"` // Primary Key (UUID)
	CompanyID    string   `json:"companyID"`
	Email        string   `json:"email"`
	Name         string   `json:"name"`
	Role         UserRole `json:"role"`
	PasswordHash string   `json:"-"`
	IsActive     bool     `json:"isActive"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}
