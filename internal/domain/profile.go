package domain

import "time"

// Role gates what a profile may do.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// Profile is the role-bearing identity record for an authenticated account.
type Profile struct {
	ID        string
	FullName  string
	Role      Role
	CreatedAt time.Time
}

// IsAdmin reports whether the profile holds the admin role.
func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}
