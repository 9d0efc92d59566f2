package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"timetrack_backend/internal/feature/auth/domain"
	"timetrack_backend/internal/feature/auth/domain/entity"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&entity.User{}, &entity.VerificationCode{})
	require.NoError(t, err, "failed to migrate tables")

	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *entity.User {
	t.Helper()

	u := &entity.User{
		FirstName:      "Jane",
		LastName:       "Doe",
		Email:          email,
		Password:       "hashed_password",
		Active:         true,
		OrganizationID: 1,
	}
	require.NoError(t, db.Create(u).Error, "failed to seed user")
	return u
}

func TestUserPostgres_FindByEmail(t *testing.T) {
	t.Run("existing user is found", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserPostgres(db)
		seeded := seedUser(t, db, "test@example.com")

		u, err := repo.FindByEmail(context.Background(), "test@example.com")

		require.NoError(t, err)
		assert.Equal(t, seeded.ID, u.ID)
		assert.Equal(t, "Jane Doe", u.Name())
	})

	t.Run("missing user returns ErrUserNotFound", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserPostgres(db)

		_, err := repo.FindByEmail(context.Background(), "nobody@example.com")

		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestUserPostgres_FindByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserPostgres(db)
	seeded := seedUser(t, db, "test@example.com")

	u, err := repo.FindByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, seeded.Email, u.Email)

	_, err = repo.FindByID(context.Background(), seeded.ID+100)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserPostgres_UpdatePassword(t *testing.T) {
	t.Run("hash is replaced", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserPostgres(db)
		seeded := seedUser(t, db, "test@example.com")

		err := repo.UpdatePassword(context.Background(), seeded.ID, "new_hash")
		require.NoError(t, err)

		u, err := repo.FindByID(context.Background(), seeded.ID)
		require.NoError(t, err)
		assert.Equal(t, "new_hash", u.Password)
	})

	t.Run("missing user returns ErrUserNotFound", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserPostgres(db)

		err := repo.UpdatePassword(context.Background(), 999, "new_hash")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestVerificationPostgres(t *testing.T) {
	t.Run("create and find by code", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewVerificationPostgres(db)
		user := seedUser(t, db, "test@example.com")

		code := &entity.VerificationCode{Code: "code-123", UserID: user.ID}
		require.NoError(t, repo.Create(context.Background(), code))
		assert.NotZero(t, code.ID, "ID is not set")

		found, err := repo.FindByCode(context.Background(), "code-123")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.UserID)
		assert.False(t, found.Used)
	})

	t.Run("missing code returns ErrCodeNotFound", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewVerificationPostgres(db)

		_, err := repo.FindByCode(context.Background(), "nope")
		assert.ErrorIs(t, err, domain.ErrCodeNotFound)
	})

	t.Run("mark used persists", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewVerificationPostgres(db)
		user := seedUser(t, db, "test@example.com")

		code := &entity.VerificationCode{Code: "code-456", UserID: user.ID}
		require.NoError(t, repo.Create(context.Background(), code))
		require.NoError(t, repo.MarkUsed(context.Background(), code.ID))

		found, err := repo.FindByCode(context.Background(), "code-456")
		require.NoError(t, err)
		assert.True(t, found.Used)
	})
}
