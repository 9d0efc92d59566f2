// Package entity defines the domain entities for the organization feature.
package entity

import "time"

// Organization is the tenant boundary. It owns users and, optionally,
// categories scoped to it.
type Organization struct {
	// ID is the unique identifier for the organization.
	ID uint `gorm:"primaryKey"`

	// Name is the organization's name, unique across all tenants.
	Name string `gorm:"size:200;not null;uniqueIndex"`

	// Description is an optional free-form description.
	Description string `gorm:"size:1000"`

	// CreatedAt is the timestamp when the organization was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the organization was last updated.
	UpdatedAt time.Time
}
