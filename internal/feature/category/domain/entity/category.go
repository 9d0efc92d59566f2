// Package entity defines the domain entities for the category feature.
package entity

import "time"

// Category is a label time entries are grouped under.
// A nil OrganizationID marks a global category shared by every tenant.
type Category struct {
	// ID is the unique identifier for the category.
	ID uint `gorm:"primaryKey"`

	// Name is the category name, at most 200 characters,
	// unique within its organization.
	Name string `gorm:"size:200;not null"`

	// Description is an optional free-form description.
	Description string `gorm:"size:1000"`

	// OrganizationID scopes the category to a tenant. Nil means global.
	OrganizationID *uint `gorm:"index"`

	// CreatedAt is the timestamp when the category was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the category was last updated.
	UpdatedAt time.Time
}
