// Package adapters provides the repository implementations for the organization feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"timetrack_backend/internal/feature/organization/domain/entity"
	"timetrack_backend/internal/feature/organization/usecase"
)

// organizationPostgres is the Postgres implementation of OrganizationRepository.
type organizationPostgres struct {
	db *gorm.DB
}

// Compile-time check that organizationPostgres implements OrganizationRepository.
var _ usecase.OrganizationRepository = (*organizationPostgres)(nil)

// NewOrganizationPostgres creates a new instance of organizationPostgres with
// the given gorm.DB connection.
func NewOrganizationPostgres(db *gorm.DB) *organizationPostgres {
	return &organizationPostgres{db: db}
}

// List retrieves all organizations ordered by name.
func (r *organizationPostgres) List(ctx context.Context) ([]entity.Organization, error) {
	var orgs []entity.Organization
	if err := r.db.WithContext(ctx).Order("name").Find(&orgs).Error; err != nil {
		return nil, err
	}
	return orgs, nil
}

// FindByID retrieves an organization by ID.
// It returns usecase.ErrOrganizationNotFound if the organization does not exist.
func (r *organizationPostgres) FindByID(ctx context.Context, id uint) (*entity.Organization, error) {
	var org entity.Organization
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&org).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrOrganizationNotFound
		}
		return nil, err
	}
	return &org, nil
}

// Exists reports whether an organization with the given ID exists.
// It backs the existence rules of other features' validators.
func (r *organizationPostgres) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Organization{}).
		Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
