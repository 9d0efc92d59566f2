// Package adapters provides the repository implementations for the permission feature.
package adapters

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"timetrack_backend/internal/feature/permission/domain/entity"
	"timetrack_backend/internal/feature/permission/usecase"
)

// uniqueViolation is the Postgres error code for a unique constraint violation.
const uniqueViolation = "23505"

// permissionPostgres is the Postgres implementation of PermissionRepository.
type permissionPostgres struct {
	db *gorm.DB
}

// Compile-time check that permissionPostgres implements PermissionRepository.
var _ usecase.PermissionRepository = (*permissionPostgres)(nil)

// NewPermissionPostgres creates a new instance of permissionPostgres with the
// given gorm.DB connection.
func NewPermissionPostgres(db *gorm.DB) *permissionPostgres {
	return &permissionPostgres{db: db}
}

// ListForUser retrieves every permission granted to the user.
func (r *permissionPostgres) ListForUser(ctx context.Context, userID uint) ([]entity.Permission, error) {
	var perms []entity.Permission
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("key").Find(&perms).Error; err != nil {
		return nil, err
	}
	return perms, nil
}

// KeysForUser retrieves the user's permission keys.
func (r *permissionPostgres) KeysForUser(ctx context.Context, userID uint) ([]entity.Key, error) {
	var keys []entity.Key
	if err := r.db.WithContext(ctx).Model(&entity.Permission{}).
		Where("user_id = ?", userID).Pluck("key", &keys).Error; err != nil {
		return nil, err
	}
	return keys, nil
}

// Grant persists a new permission.
// It returns usecase.ErrDuplicatePermission when the (user, key) pair exists.
func (r *permissionPostgres) Grant(ctx context.Context, p *entity.Permission) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return usecase.ErrDuplicatePermission
		}
		// SQLite (tests) reports constraint violations through gorm directly
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return usecase.ErrDuplicatePermission
		}
		return err
	}
	return nil
}

// Revoke removes the permission with the given key from the user.
// It returns usecase.ErrPermissionNotFound when the user does not hold the key.
func (r *permissionPostgres) Revoke(ctx context.Context, userID uint, key entity.Key) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND key = ?", userID, key).
		Delete(&entity.Permission{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrPermissionNotFound
	}
	return nil
}
