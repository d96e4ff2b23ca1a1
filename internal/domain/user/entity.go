package user

import "time"

type Role string

const (
	RoleOwner    Role = "owner"    // Organization owner - full access
	RoleAdmin    Role = "admin"    // Manages employees, geofence, reports
	RoleEmployee Role = "employee" // Marks own attendance, views own history
)

type User struct {
	ID              string
	OrganizationID  *string
	Email           string
	PasswordHash    *string
	Role            Role
	OAuthProvider   *string
	OAuthProviderID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsOwner checks if user owns the organization
func (u *User) IsOwner() bool {
	return u.Role == RoleOwner
}

// IsAdmin checks if user is admin or owner
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleOwner
}
