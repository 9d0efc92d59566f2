// Package entity defines the domain entities for the permission feature.
package entity

import "time"

// Key is an enumerated capability that can be attached to a user.
type Key string

// The fixed set of permission keys known to the system.
const (
	// KeyEditOwnTimeEntry allows editing and deleting the user's own time entries.
	KeyEditOwnTimeEntry Key = "edit-own-time-entry"

	// KeyEditAnyTimeEntry allows editing and deleting any user's time entries.
	KeyEditAnyTimeEntry Key = "edit-any-time-entry"

	// KeyManageCategories allows creating, updating and deleting categories.
	KeyManageCategories Key = "manage-categories"

	// KeyManagePermissions allows granting and revoking permissions for users.
	KeyManagePermissions Key = "manage-permissions"
)

// Valid reports whether k is one of the known permission keys.
func (k Key) Valid() bool {
	switch k {
	case KeyEditOwnTimeEntry, KeyEditAnyTimeEntry, KeyManageCategories, KeyManagePermissions:
		return true
	}
	return false
}

// Permission grants a single capability to a single user.
// The (UserID, Key) pair is unique.
type Permission struct {
	// ID is the unique identifier for the permission.
	ID uint `gorm:"primaryKey"`

	// Key is the capability being granted.
	Key Key `gorm:"size:64;not null;uniqueIndex:idx_user_key"`

	// UserID references the user holding the permission.
	UserID uint `gorm:"not null;uniqueIndex:idx_user_key"`

	// CreatedAt is the timestamp when the permission was granted.
	CreatedAt time.Time
}

// Set is a user's permission keys, loaded once per request for
// authorization decisions.
type Set map[Key]struct{}

// NewSet builds a Set from a list of keys.
func NewSet(keys []Key) Set {
	s := make(Set, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

// Has reports whether the set contains the given key.
func (s Set) Has(k Key) bool {
	_, ok := s[k]
	return ok
}
