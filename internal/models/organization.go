package models

import (
	"time"

	"gorm.io/datatypes"
)

// OrganizationStatus is the closed set of lifecycle states an organization
// moves through. Values are validated at the API boundary on every write, not
// just by the database enum.
type OrganizationStatus string

const (
	StatusActive   OrganizationStatus = "Active"
	StatusInactive OrganizationStatus = "Inactive"
	StatusBlocked  OrganizationStatus = "Blocked"
)

// Valid reports whether the status is one of the enumerated values.
func (s OrganizationStatus) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusBlocked:
		return true
	}
	return false
}

// OrganizationStatuses lists every accepted status value.
func OrganizationStatuses() []OrganizationStatus {
	return []OrganizationStatus{StatusActive, StatusInactive, StatusBlocked}
}

// Organization is a tenant-like entity owning zero or more users. Wire names
// are camelCase to match the public API contract.
type Organization struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name  string `gorm:"not null" json:"name"`
	Email string `gorm:"uniqueIndex;not null" json:"email"`
	// Slug is derived from Name at creation when the caller omits it.
	Slug string `gorm:"uniqueIndex" json:"slug"`

	Status          OrganizationStatus `gorm:"type:varchar(16);default:Active" json:"status"`
	PendingRequests int                `gorm:"default:0" json:"pendingRequests"`

	// Img carries an opaque data URL or reference; the server imposes no size
	// or content validation.
	Img string `gorm:"type:text" json:"img,omitempty"`

	Contact           string `json:"contact,omitempty"`
	PrimaryAdminName  string `json:"primaryAdminName,omitempty"`
	PrimaryAdminEmail string `json:"primaryAdminEmail,omitempty"`
	SupportEmail      string `json:"supportEmail,omitempty"`
	Phone             string `json:"phone,omitempty"`
	AltPhone          string `json:"altPhone,omitempty"`
	Website           string `json:"website,omitempty"`
	Timezone          string `json:"timezone,omitempty"`
	Language          string `json:"language,omitempty"`
	Region            string `json:"region,omitempty"`
	MaxCoordinators   int    `json:"maxCoordinators,omitempty"`

	Settings datatypes.JSON `json:"settings,omitempty"`

	Users []User `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"users,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OrganizationSummary is the reduced projection used by list views. It never
// carries profile or user-list fields.
type OrganizationSummary struct {
	ID              uint               `json:"id"`
	Name            string             `json:"name"`
	PendingRequests int                `json:"pendingRequests"`
	Status          OrganizationStatus `json:"status"`
}
