// Package usecase implements the business logic for the category feature.
package usecase

import (
	"context"
	"errors"
	"unicode/utf8"

	"timetrack_backend/internal/authz"
	authentity "timetrack_backend/internal/feature/auth/domain/entity"
	"timetrack_backend/internal/feature/category/domain/entity"
	permissionentity "timetrack_backend/internal/feature/permission/domain/entity"
	"timetrack_backend/internal/validation"
)

const maxNameLength = 200

var (
	// ErrCategoryNotFound is returned when a category cannot be found by ID.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrCategoryInUse is returned when deleting a category that still has
	// time entries logged against it.
	ErrCategoryInUse = errors.New("category has time entries")
)

// CategoryRepository abstracts the persistence layer for category entities.
// Following Go convention, the interface is defined by the consumer (usecase),
// not the provider (adapters).
type CategoryRepository interface {
	// ListForOrganization retrieves the organization's categories together
	// with the global (unscoped) ones, ordered by name.
	ListForOrganization(ctx context.Context, organizationID uint) ([]entity.Category, error)

	// FindByID retrieves a category matching the specified ID.
	// It returns ErrCategoryNotFound if the category does not exist.
	FindByID(ctx context.Context, id uint) (*entity.Category, error)

	// ExistsByName reports whether another category with the same name exists
	// in the given organization scope. excludeID skips the category being
	// updated.
	ExistsByName(ctx context.Context, name string, organizationID *uint, excludeID uint) (bool, error)

	// Create persists a new category.
	Create(ctx context.Context, c *entity.Category) error

	// Update persists changes to an existing category.
	Update(ctx context.Context, c *entity.Category) error

	// Delete removes the category.
	// It returns ErrCategoryInUse when time entries still reference it.
	Delete(ctx context.Context, id uint) error
}

// OrganizationChecker verifies that a referenced organization exists.
type OrganizationChecker interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

// UserReader looks up the acting user.
type UserReader interface {
	FindByID(ctx context.Context, id uint) (*authentity.User, error)
}

// PermissionReader loads the acting user's permission keys.
type PermissionReader interface {
	KeysForUser(ctx context.Context, userID uint) ([]permissionentity.Key, error)
}

// CreateCategoryInput carries the fields for creating or updating a category.
type CreateCategoryInput struct {
	Name           string
	Description    string
	OrganizationID *uint
}

// categoryUsecase implements the category CRUD operations.
// Each mutating operation composes its steps explicitly: validate, authorize,
// mutate.
type categoryUsecase struct {
	categories CategoryRepository
	orgs       OrganizationChecker
	users      UserReader
	perms      PermissionReader
}

// NewCategoryUsecase creates a new instance of categoryUsecase.
func NewCategoryUsecase(categories CategoryRepository, orgs OrganizationChecker,
	users UserReader, perms PermissionReader) *categoryUsecase {
	return &categoryUsecase{categories: categories, orgs: orgs, users: users, perms: perms}
}

// actorFor loads the acting user and their permission set.
func (u *categoryUsecase) actorFor(ctx context.Context, actorID uint) (authz.Actor, error) {
	user, err := u.users.FindByID(ctx, actorID)
	if err != nil {
		return authz.Actor{}, err
	}
	keys, err := u.perms.KeysForUser(ctx, actorID)
	if err != nil {
		return authz.Actor{}, err
	}
	return authz.Actor{UserID: user.ID, Email: user.Email, Permissions: permissionentity.NewSet(keys)}, nil
}

// validateInput runs the shared rule set for create and update. All rules are
// evaluated so independent field failures accumulate. excludeID skips the
// category being updated in the uniqueness check.
func (u *categoryUsecase) validateInput(ctx context.Context, in CreateCategoryInput, excludeID uint) error {
	var r validation.Result

	switch {
	case in.Name == "":
		r.Fail("name", "Category name is required")
	case utf8.RuneCountInString(in.Name) > maxNameLength:
		r.Fail("name", "Category name cannot exceed 200 characters.")
	}

	orgOK := true
	if in.OrganizationID != nil {
		exists, err := u.orgs.Exists(ctx, *in.OrganizationID)
		if err != nil {
			return err
		}
		if !exists {
			orgOK = false
			r.FailKind(validation.KindNotFound, "organizationId", "Organization does not exist in system")
		}
	}

	if in.Name != "" && len(in.Name) <= maxNameLength && orgOK {
		taken, err := u.categories.ExistsByName(ctx, in.Name, in.OrganizationID, excludeID)
		if err != nil {
			return err
		}
		if taken {
			r.FailKind(validation.KindConflict, "name", "Category with this name already exists")
		}
	}

	return r.Err()
}

// List returns the categories visible to the organization: its own plus the
// global ones.
func (u *categoryUsecase) List(ctx context.Context, organizationID uint) ([]entity.Category, error) {
	return u.categories.ListForOrganization(ctx, organizationID)
}

// GetByID returns a single category. A missing ID surfaces as a
// not-found-classified validation error.
func (u *categoryUsecase) GetByID(ctx context.Context, id uint) (*entity.Category, error) {
	c, err := u.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			var r validation.Result
			r.FailKind(validation.KindNotFound, "id", "Category does not exist in system")
			return nil, r.Err()
		}
		return nil, err
	}
	return c, nil
}

// Create validates and persists a new category.
// The actor must hold the manage-categories key.
func (u *categoryUsecase) Create(ctx context.Context, actorID uint, in CreateCategoryInput) (*entity.Category, error) {
	if err := u.validateInput(ctx, in, 0); err != nil {
		return nil, err
	}

	actor, err := u.actorFor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if err := authz.Require(actor, permissionentity.KeyManageCategories); err != nil {
		return nil, err
	}

	c := &entity.Category{
		Name:           in.Name,
		Description:    in.Description,
		OrganizationID: in.OrganizationID,
	}
	if err := u.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update validates and persists changes to an existing category.
// The actor must hold the manage-categories key.
func (u *categoryUsecase) Update(ctx context.Context, actorID, id uint, in CreateCategoryInput) (*entity.Category, error) {
	existing, err := u.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			var r validation.Result
			r.FailKind(validation.KindNotFound, "id", "Category does not exist in system")
			return nil, r.Err()
		}
		return nil, err
	}

	if err := u.validateInput(ctx, in, id); err != nil {
		return nil, err
	}

	actor, err := u.actorFor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if err := authz.Require(actor, permissionentity.KeyManageCategories); err != nil {
		return nil, err
	}

	existing.Name = in.Name
	existing.Description = in.Description
	existing.OrganizationID = in.OrganizationID
	if err := u.categories.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes a category. Deleting a missing ID is a not-found validation
// failure; deleting a category that still has time entries is a conflict.
// The actor must hold the manage-categories key.
func (u *categoryUsecase) Delete(ctx context.Context, actorID, id uint) error {
	if _, err := u.categories.FindByID(ctx, id); err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			var r validation.Result
			r.FailKind(validation.KindNotFound, "id", "Category does not exist in system")
			return r.Err()
		}
		return err
	}

	actor, err := u.actorFor(ctx, actorID)
	if err != nil {
		return err
	}
	if err := authz.Require(actor, permissionentity.KeyManageCategories); err != nil {
		return err
	}

	if err := u.categories.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrCategoryInUse) {
			var r validation.Result
			r.FailKind(validation.KindConflict, "id", "Category has time entries and cannot be deleted")
			return r.Err()
		}
		return err
	}
	return nil
}
