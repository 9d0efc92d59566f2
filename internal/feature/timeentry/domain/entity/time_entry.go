// Package entity defines the domain entities for the timeentry feature.
package entity

import "time"

// TimeEntry is a span of time a user logged against a category.
// StartTime <= EndTime is enforced at validation time, not by the data layer.
type TimeEntry struct {
	// ID is the unique identifier for the time entry.
	ID uint `gorm:"primaryKey"`

	// StartTime and EndTime bound the logged span.
	StartTime time.Time `gorm:"not null;index"`
	EndTime   time.Time `gorm:"not null"`

	// Description says what the time was spent on.
	Description string `gorm:"size:1000"`

	// CategoryID references the category the entry is logged under.
	CategoryID uint `gorm:"not null;index"`

	// UserID references the user who owns the entry.
	UserID uint `gorm:"not null;index"`

	// CreatedAt is the timestamp when the entry was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the entry was last updated.
	UpdatedAt time.Time
}
