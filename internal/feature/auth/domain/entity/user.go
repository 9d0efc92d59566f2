// Package entity defines the domain entities for the auth feature.
package entity

import (
	"time"

	permissionentity "timetrack_backend/internal/feature/permission/domain/entity"
)

// User represents a registered user in the system.
// It contains authentication credentials and metadata for user management.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// FirstName and LastName are the user's display name parts.
	FirstName string `gorm:"size:100;not null"`
	LastName  string `gorm:"size:100;not null"`

	// Email is the user's email address used for authentication.
	// It must be unique within the owning organization.
	Email string `gorm:"size:255;not null;uniqueIndex:idx_org_email"`

	// Password is the hashed password for the user.
	// This should never store plaintext passwords.
	Password string `gorm:"size:255;not null"`

	// Active marks whether the user may sign in. Users are deactivated
	// instead of being deleted.
	Active bool `gorm:"not null;default:true"`

	// OrganizationID references the tenant the user belongs to.
	OrganizationID uint `gorm:"not null;uniqueIndex:idx_org_email"`

	// Permissions are the capabilities granted to the user.
	Permissions []permissionentity.Permission `gorm:"foreignKey:UserID"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}

// Name returns the user's display name.
func (u *User) Name() string {
	return u.FirstName + " " + u.LastName
}
