// Package usecase implements the business logic for the organization feature.
package usecase

import (
	"context"
	"errors"

	"timetrack_backend/internal/feature/organization/domain/entity"
	"timetrack_backend/internal/validation"
)

// ErrOrganizationNotFound is returned when an organization cannot be found by ID.
var ErrOrganizationNotFound = errors.New("organization not found")

// OrganizationRepository abstracts the persistence layer for organization entities.
// Following Go convention, the interface is defined by the consumer (usecase),
// not the provider (adapters).
type OrganizationRepository interface {
	// List retrieves all organizations ordered by name.
	List(ctx context.Context) ([]entity.Organization, error)

	// FindByID retrieves an organization matching the specified ID.
	// It returns ErrOrganizationNotFound if the organization does not exist.
	FindByID(ctx context.Context, id uint) (*entity.Organization, error)
}

// organizationUsecase implements the read-only organization operations.
type organizationUsecase struct {
	orgs OrganizationRepository
}

// NewOrganizationUsecase creates a new instance of organizationUsecase.
func NewOrganizationUsecase(orgs OrganizationRepository) *organizationUsecase {
	return &organizationUsecase{orgs: orgs}
}

// List returns every organization.
func (u *organizationUsecase) List(ctx context.Context) ([]entity.Organization, error) {
	return u.orgs.List(ctx)
}

// GetByID returns a single organization. A missing ID surfaces as a
// not-found-classified validation error.
func (u *organizationUsecase) GetByID(ctx context.Context, id uint) (*entity.Organization, error) {
	org, err := u.orgs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrOrganizationNotFound) {
			var r validation.Result
			r.FailKind(validation.KindNotFound, "id", "Organization does not exist in system")
			return nil, r.Err()
		}
		return nil, err
	}
	return org, nil
}
