// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	categoryadapters "timetrack_backend/internal/feature/category/adapters"
	"timetrack_backend/internal/feature/category/usecase"
	"timetrack_backend/internal/platform/cache"
)

// NewCategoryRepository creates a CategoryRepository implementation.
// If Redis is available, list reads go through the caching decorator.
// Otherwise, the plain Postgres repository is used directly.
func NewCategoryRepository(rdb *redis.Client, db *gorm.DB, ttl time.Duration) usecase.CategoryRepository {
	repo := categoryadapters.NewCategoryPostgres(db)
	if rdb != nil {
		return cache.NewCachingCategoryRepository(rdb, ttl, repo, "categories")
	}
	return repo
}
