// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"timetrack_backend/internal/feature/category/domain/entity"
	"timetrack_backend/internal/feature/category/usecase"
)

// CachingCategoryRepository decorates a CategoryRepository with Redis caching
// of the per-organization list. It implements the decorator pattern,
// transparently adding caching without modifying the underlying repository.
type CachingCategoryRepository struct {
	inner     usecase.CategoryRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingCategoryRepository decorates a CategoryRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "categories".
func NewCachingCategoryRepository(rdb *redis.Client, ttl time.Duration, inner usecase.CategoryRepository, namespace string) *CachingCategoryRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "categories"
	}
	return &CachingCategoryRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// listKey returns the cache key for an organization's category list.
func (c *CachingCategoryRepository) listKey(organizationID uint) string {
	return fmt.Sprintf("%s:org:%d", c.namespace, organizationID)
}

// invalidate drops the cached lists a category write may have touched.
// Global categories appear in every organization's list, so a write to one
// flushes the whole namespace.
func (c *CachingCategoryRepository) invalidate(ctx context.Context, organizationID *uint) {
	if c.rdb == nil {
		return
	}
	if organizationID != nil {
		// Best effort: don't fail the write if cache deletion fails
		_ = c.rdb.Del(ctx, c.listKey(*organizationID)).Err()
		return
	}

	iter := c.rdb.Scan(ctx, 0, c.namespace+":org:*", 0).Iterator()
	for iter.Next(ctx) {
		_ = c.rdb.Del(ctx, iter.Val()).Err()
	}
}

// ListForOrganization retrieves categories, checking cache first then falling
// back to the database.
func (c *CachingCategoryRepository) ListForOrganization(ctx context.Context, organizationID uint) ([]entity.Category, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.ListForOrganization(ctx, organizationID)
	}

	key := c.listKey(organizationID)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Category
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.ListForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// FindByID delegates to the underlying repository. Single-category reads are
// cheap enough to skip the cache.
func (c *CachingCategoryRepository) FindByID(ctx context.Context, id uint) (*entity.Category, error) {
	return c.inner.FindByID(ctx, id)
}

// ExistsByName delegates to the underlying repository; uniqueness checks must
// never read stale data.
func (c *CachingCategoryRepository) ExistsByName(ctx context.Context, name string, organizationID *uint, excludeID uint) (bool, error) {
	return c.inner.ExistsByName(ctx, name, organizationID, excludeID)
}

// Create persists the category and invalidates the affected list.
func (c *CachingCategoryRepository) Create(ctx context.Context, cat *entity.Category) error {
	if err := c.inner.Create(ctx, cat); err != nil {
		return err
	}
	c.invalidate(ctx, cat.OrganizationID)
	return nil
}

// Update persists the category and invalidates the affected list.
func (c *CachingCategoryRepository) Update(ctx context.Context, cat *entity.Category) error {
	if err := c.inner.Update(ctx, cat); err != nil {
		return err
	}
	c.invalidate(ctx, cat.OrganizationID)
	return nil
}

// Delete removes the category and flushes the namespace; the deleted row's
// scope is no longer known here.
func (c *CachingCategoryRepository) Delete(ctx context.Context, id uint) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, nil)
	return nil
}
