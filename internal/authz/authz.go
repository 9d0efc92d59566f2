// Package authz implements the own-vs-any permission check applied to every
// ownership-sensitive command.
package authz

import (
	"fmt"

	"timetrack_backend/internal/feature/permission/domain/entity"
)

// Error reports a denied action. It carries the acting user's email and the
// permission key that was missing so the HTTP layer can include both in the
// problem response.
type Error struct {
	Email      string
	Permission entity.Key
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("user %s is missing permission %s", e.Email, e.Permission)
}

// Actor is the authenticated user an authorization decision is made for.
type Actor struct {
	UserID      uint
	Email       string
	Permissions entity.Set
}

// Authorize decides whether the actor may perform an action on a resource
// owned by ownerID. The rule is uniform across all own-vs-any actions:
//
//   - the owner may act with either the own key or the any key,
//   - anyone else needs the any key.
//
// On denial it returns an *Error naming the specific key that was missing.
func Authorize(actor Actor, ownerID uint, ownKey, anyKey entity.Key) error {
	if actor.UserID == ownerID {
		if actor.Permissions.Has(ownKey) || actor.Permissions.Has(anyKey) {
			return nil
		}
		return &Error{Email: actor.Email, Permission: ownKey}
	}
	if actor.Permissions.Has(anyKey) {
		return nil
	}
	return &Error{Email: actor.Email, Permission: anyKey}
}

// Require permits the action only if the actor holds the given key.
// It is used for actions without an ownership dimension, such as
// category and permission management.
func Require(actor Actor, key entity.Key) error {
	if actor.Permissions.Has(key) {
		return nil
	}
	return &Error{Email: actor.Email, Permission: key}
}
