// Package adapters provides the repository implementations for the category feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"timetrack_backend/internal/feature/category/domain/entity"
	"timetrack_backend/internal/feature/category/usecase"
	timeentryentity "timetrack_backend/internal/feature/timeentry/domain/entity"
)

// categoryPostgres is the Postgres implementation of CategoryRepository.
type categoryPostgres struct {
	db *gorm.DB
}

// Compile-time check that categoryPostgres implements CategoryRepository.
var _ usecase.CategoryRepository = (*categoryPostgres)(nil)

// NewCategoryPostgres creates a new instance of categoryPostgres with the
// given gorm.DB connection.
func NewCategoryPostgres(db *gorm.DB) *categoryPostgres {
	return &categoryPostgres{db: db}
}

// ListForOrganization retrieves the organization's categories together with
// the global (unscoped) ones, ordered by name.
func (r *categoryPostgres) ListForOrganization(ctx context.Context, organizationID uint) ([]entity.Category, error) {
	var categories []entity.Category
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? OR organization_id IS NULL", organizationID).
		Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// FindByID retrieves a category by ID.
// It returns usecase.ErrCategoryNotFound if the category does not exist.
func (r *categoryPostgres) FindByID(ctx context.Context, id uint) (*entity.Category, error) {
	var c entity.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrCategoryNotFound
		}
		return nil, err
	}
	return &c, nil
}

// ExistsByName reports whether another category with the same name exists in
// the given organization scope.
func (r *categoryPostgres) ExistsByName(ctx context.Context, name string, organizationID *uint, excludeID uint) (bool, error) {
	q := r.db.WithContext(ctx).Model(&entity.Category{}).Where("name = ?", name)
	if organizationID != nil {
		q = q.Where("organization_id = ?", *organizationID)
	} else {
		q = q.Where("organization_id IS NULL")
	}
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create persists a new category.
func (r *categoryPostgres) Create(ctx context.Context, c *entity.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

// Update persists changes to an existing category.
func (r *categoryPostgres) Update(ctx context.Context, c *entity.Category) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// Delete removes the category. Deletion is restricted while time entries
// still reference the category.
func (r *categoryPostgres) Delete(ctx context.Context, id uint) error {
	var inUse int64
	if err := r.db.WithContext(ctx).Model(&timeentryentity.TimeEntry{}).
		Where("category_id = ?", id).Count(&inUse).Error; err != nil {
		return err
	}
	if inUse > 0 {
		return usecase.ErrCategoryInUse
	}
	return r.db.WithContext(ctx).Delete(&entity.Category{}, id).Error
}

// Exists reports whether a category with the given ID exists.
// It backs the existence rule of the time entry validator.
func (r *categoryPostgres) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Category{}).
		Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
