// Package usecase implements the business logic for the permission feature.
package usecase

import (
	"context"
	"errors"

	"timetrack_backend/internal/authz"
	authdomain "timetrack_backend/internal/feature/auth/domain"
	authentity "timetrack_backend/internal/feature/auth/domain/entity"
	"timetrack_backend/internal/feature/permission/domain/entity"
	"timetrack_backend/internal/validation"
)

var (
	// ErrDuplicatePermission is returned when granting a (user, key) pair that
	// already exists.
	ErrDuplicatePermission = errors.New("permission already granted")

	// ErrPermissionNotFound is returned when revoking a permission the user
	// does not hold.
	ErrPermissionNotFound = errors.New("permission not found")
)

// PermissionRepository abstracts the persistence layer for permission entities.
// Following Go convention, the interface is defined by the consumer (usecase),
// not the provider (adapters).
type PermissionRepository interface {
	// ListForUser retrieves every permission granted to the user.
	ListForUser(ctx context.Context, userID uint) ([]entity.Permission, error)

	// KeysForUser retrieves the user's permission keys.
	KeysForUser(ctx context.Context, userID uint) ([]entity.Key, error)

	// Grant persists a new permission.
	// It returns ErrDuplicatePermission if the (user, key) pair already exists.
	Grant(ctx context.Context, p *entity.Permission) error

	// Revoke removes the permission with the given key from the user.
	// It returns ErrPermissionNotFound if the user does not hold the key.
	Revoke(ctx context.Context, userID uint, key entity.Key) error
}

// UserReader looks up users for validation and actor resolution.
type UserReader interface {
	// FindByID retrieves a user matching the specified ID.
	// It returns an error if the user does not exist.
	FindByID(ctx context.Context, id uint) (*authentity.User, error)
}

// permissionUsecase implements permission administration.
// Each operation composes its steps explicitly: validate, authorize, mutate.
type permissionUsecase struct {
	perms PermissionRepository
	users UserReader
}

// NewPermissionUsecase creates a new instance of permissionUsecase.
func NewPermissionUsecase(perms PermissionRepository, users UserReader) *permissionUsecase {
	return &permissionUsecase{perms: perms, users: users}
}

// actorFor loads the acting user and their permission set for an
// authorization decision.
func (u *permissionUsecase) actorFor(ctx context.Context, actorID uint) (authz.Actor, *authentity.User, error) {
	user, err := u.users.FindByID(ctx, actorID)
	if err != nil {
		return authz.Actor{}, nil, err
	}
	keys, err := u.perms.KeysForUser(ctx, actorID)
	if err != nil {
		return authz.Actor{}, nil, err
	}
	return authz.Actor{UserID: user.ID, Email: user.Email, Permissions: entity.NewSet(keys)}, user, nil
}

// validateTarget runs the shared rules for a permission command: the key must
// be a known one and the target user must exist inside the actor's organization.
// It returns the target user when every rule passed.
func (u *permissionUsecase) validateTarget(ctx context.Context, actorOrg, userID uint, key entity.Key, checkKey bool) (*authentity.User, error) {
	var r validation.Result

	if checkKey && !key.Valid() {
		r.Fail("key", "Permission key is not valid")
	}

	target, err := u.users.FindByID(ctx, userID)
	switch {
	case err == nil:
		if target.OrganizationID != actorOrg {
			r.Fail("userId", "User does not belong to your organization")
		}
	case errors.Is(err, authdomain.ErrUserNotFound):
		r.FailKind(validation.KindNotFound, "userId", "User does not exist in system")
	default:
		return nil, err
	}

	if err := r.Err(); err != nil {
		return nil, err
	}
	return target, nil
}

// ListForUser returns the permissions granted to userID.
// The actor must hold the manage-permissions key.
func (u *permissionUsecase) ListForUser(ctx context.Context, actorID, userID uint) ([]entity.Permission, error) {
	actor, actorUser, err := u.actorFor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if _, err := u.validateTarget(ctx, actorUser.OrganizationID, userID, "", false); err != nil {
		return nil, err
	}
	if err := authz.Require(actor, entity.KeyManagePermissions); err != nil {
		return nil, err
	}
	return u.perms.ListForUser(ctx, userID)
}

// Grant attaches the key to userID.
// The actor must hold the manage-permissions key; a duplicate grant is a conflict.
func (u *permissionUsecase) Grant(ctx context.Context, actorID, userID uint, key entity.Key) error {
	actor, actorUser, err := u.actorFor(ctx, actorID)
	if err != nil {
		return err
	}
	if _, err := u.validateTarget(ctx, actorUser.OrganizationID, userID, key, true); err != nil {
		return err
	}
	if err := authz.Require(actor, entity.KeyManagePermissions); err != nil {
		return err
	}

	if err := u.perms.Grant(ctx, &entity.Permission{UserID: userID, Key: key}); err != nil {
		if errors.Is(err, ErrDuplicatePermission) {
			var r validation.Result
			r.FailKind(validation.KindConflict, "key", "Permission is already granted to user")
			return r.Err()
		}
		return err
	}
	return nil
}

// Revoke removes the key from userID.
// The actor must hold the manage-permissions key; revoking a key the user does
// not hold is a not-found validation failure.
func (u *permissionUsecase) Revoke(ctx context.Context, actorID, userID uint, key entity.Key) error {
	actor, actorUser, err := u.actorFor(ctx, actorID)
	if err != nil {
		return err
	}
	if _, err := u.validateTarget(ctx, actorUser.OrganizationID, userID, key, true); err != nil {
		return err
	}
	if err := authz.Require(actor, entity.KeyManagePermissions); err != nil {
		return err
	}

	if err := u.perms.Revoke(ctx, userID, key); err != nil {
		if errors.Is(err, ErrPermissionNotFound) {
			var r validation.Result
			r.FailKind(validation.KindNotFound, "key", "Permission is not granted to user")
			return r.Err()
		}
		return err
	}
	return nil
}
