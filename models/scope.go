package models

import "github.com/google/uuid"

type Role string

const (
	RoleOwner Role = "owner"
	RoleStaff Role = "staff"
	// RoleViewer may preview reminders but never send or log them.
	RoleViewer Role = "viewer"
	// RolePlatformAdmin may act on any tenant but must name one explicitly.
	RolePlatformAdmin Role = "platform_admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleStaff, RoleViewer, RolePlatformAdmin:
		return true
	}
	return false
}

// Scope is the resolved identity a request acts under.
type Scope struct {
	UserID   string
	TenantID uuid.UUID
	Role     Role
}

func (s Scope) ReadOnly() bool {
	return s.Role == RoleViewer
}
