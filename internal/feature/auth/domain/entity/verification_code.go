package entity

import "time"

// VerificationCode is a one-time code issued to a user for verification flows.
// A code is consumed exactly once and becomes useless after its expiry.
type VerificationCode struct {
	// ID is the unique identifier for the code record.
	ID uint `gorm:"primaryKey"`

	// Code is the opaque code value handed to the user.
	Code string `gorm:"size:64;not null;uniqueIndex"`

	// Used marks whether the code has already been consumed.
	Used bool `gorm:"not null;default:false"`

	// ExpiresAt is the moment after which the code is no longer accepted.
	ExpiresAt time.Time `gorm:"not null"`

	// UserID references the user the code was issued for.
	UserID uint `gorm:"not null;index"`

	// CreatedAt is the timestamp when the code was issued.
	CreatedAt time.Time
}

// Expired reports whether the code's expiry has passed at the given time.
func (v *VerificationCode) Expired(now time.Time) bool {
	return now.After(v.ExpiresAt)
}
