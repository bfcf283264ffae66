package models

import "time"

// UserRole is the closed set of roles a user may hold within its organization.
type UserRole string

const (
	RoleAdmin       UserRole = "Admin"
	RoleCoordinator UserRole = "Co-ordinator"
)

// Valid reports whether the role is one of the enumerated values.
func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleCoordinator
}

// UserRoles lists every accepted role value.
func UserRoles() []UserRole {
	return []UserRole{RoleAdmin, RoleCoordinator}
}

// User is a person record scoped to exactly one organization for its entire
// lifetime; no re-parenting operation is exposed.
type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name string   `gorm:"not null" json:"name"`
	Role UserRole `gorm:"type:varchar(16);not null" json:"role"`

	OrganizationID uint          `gorm:"not null;index" json:"organizationId"`
	Organization   *Organization `json:"organization,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserWithOrganizationName annotates a user with its owning organization's
// name only, for the global roster view.
type UserWithOrganizationName struct {
	ID               uint      `json:"id"`
	Name             string    `json:"name"`
	Role             UserRole  `json:"role"`
	OrganizationID   uint      `json:"organizationId"`
	OrganizationName string    `json:"organizationName"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
