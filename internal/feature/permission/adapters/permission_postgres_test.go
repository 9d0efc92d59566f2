package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"timetrack_backend/internal/feature/permission/domain/entity"
	"timetrack_backend/internal/feature/permission/usecase"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&entity.Permission{})
	require.NoError(t, err, "failed to migrate tables")

	return db
}

func TestPermissionPostgres_Grant(t *testing.T) {
	t.Run("new grant is persisted", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewPermissionPostgres(db)

		err := repo.Grant(context.Background(), &entity.Permission{UserID: 1, Key: entity.KeyManageCategories})
		require.NoError(t, err)

		keys, err := repo.KeysForUser(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, []entity.Key{entity.KeyManageCategories}, keys)
	})

	t.Run("duplicate grant yields ErrDuplicatePermission", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewPermissionPostgres(db)

		require.NoError(t, repo.Grant(context.Background(),
			&entity.Permission{UserID: 1, Key: entity.KeyManageCategories}))

		err := repo.Grant(context.Background(),
			&entity.Permission{UserID: 1, Key: entity.KeyManageCategories})
		assert.ErrorIs(t, err, usecase.ErrDuplicatePermission)
	})

	t.Run("same key for another user is fine", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewPermissionPostgres(db)

		require.NoError(t, repo.Grant(context.Background(),
			&entity.Permission{UserID: 1, Key: entity.KeyManageCategories}))
		require.NoError(t, repo.Grant(context.Background(),
			&entity.Permission{UserID: 2, Key: entity.KeyManageCategories}))
	})
}

func TestPermissionPostgres_Revoke(t *testing.T) {
	t.Run("held key is removed", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewPermissionPostgres(db)

		require.NoError(t, repo.Grant(context.Background(),
			&entity.Permission{UserID: 1, Key: entity.KeyManageCategories}))

		err := repo.Revoke(context.Background(), 1, entity.KeyManageCategories)
		require.NoError(t, err)

		keys, err := repo.KeysForUser(context.Background(), 1)
		require.NoError(t, err)
		assert.Empty(t, keys)
	})

	t.Run("absent key yields ErrPermissionNotFound", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewPermissionPostgres(db)

		err := repo.Revoke(context.Background(), 1, entity.KeyManageCategories)
		assert.ErrorIs(t, err, usecase.ErrPermissionNotFound)
	})
}

func TestPermissionPostgres_ListForUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPermissionPostgres(db)

	require.NoError(t, repo.Grant(context.Background(),
		&entity.Permission{UserID: 1, Key: entity.KeyManagePermissions}))
	require.NoError(t, repo.Grant(context.Background(),
		&entity.Permission{UserID: 1, Key: entity.KeyEditOwnTimeEntry}))
	require.NoError(t, repo.Grant(context.Background(),
		&entity.Permission{UserID: 2, Key: entity.KeyEditAnyTimeEntry}))

	perms, err := repo.ListForUser(context.Background(), 1)
	require.NoError(t, err)

	// Only user 1's permissions, ordered by key.
	require.Len(t, perms, 2)
	assert.Equal(t, entity.KeyEditOwnTimeEntry, perms[0].Key)
	assert.Equal(t, entity.KeyManagePermissions, perms[1].Key)
}
