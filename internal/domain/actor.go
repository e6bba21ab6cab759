package domain

import "time"

// Role represents the role of a staff member.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleHousekeeper Role = "housekeeper"
)

// IsValid checks if the role is one of the allowed values.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleHousekeeper
}

// Actor represents a signed-in staff member.
type Actor struct {
	ID        string
	FullName  *string
	Role      Role
	PushToken *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin returns true if the actor has the admin role.
func (a *Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
