// Package usecase implements the application logic for the timeentry feature.
package usecase

import (
	"context"
	"errors"
	"time"

	"timetrack_backend/internal/authz"
	authentity "timetrack_backend/internal/feature/auth/domain/entity"
	permissionentity "timetrack_backend/internal/feature/permission/domain/entity"
	"timetrack_backend/internal/feature/timeentry/domain/entity"
	"timetrack_backend/internal/validation"
)

const (
	// maxRangeSpan caps a list query's date range.
	maxRangeSpan = 365 * 24 * time.Hour

	// futureAllowance tolerates clock skew on client-supplied timestamps.
	futureAllowance = 24 * time.Hour
)

// ErrTimeEntryNotFound is returned when a time entry does not exist.
var ErrTimeEntryNotFound = errors.New("time entry not found")

// TimeEntryRepository defines the persistence interface for time entries.
// Following Go convention, the interface is defined by the consumer (usecase).
type TimeEntryRepository interface {
	FindByID(ctx context.Context, id uint) (*entity.TimeEntry, error)
	ListForUser(ctx context.Context, userID uint, from, to time.Time) ([]entity.TimeEntry, error)
	Create(ctx context.Context, e *entity.TimeEntry) error
	Update(ctx context.Context, e *entity.TimeEntry) error
	Delete(ctx context.Context, id uint) error
}

// CategoryChecker reports whether a category exists. It is implemented by the
// category feature's repository.
type CategoryChecker interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

// UserReader loads users for actor resolution.
type UserReader interface {
	FindByID(ctx context.Context, id uint) (*authentity.User, error)
}

// PermissionReader loads the permission keys held by a user.
type PermissionReader interface {
	KeysForUser(ctx context.Context, userID uint) ([]permissionentity.Key, error)
}

// TimeEntryInput carries the client-supplied fields of a time entry.
type TimeEntryInput struct {
	StartTime   time.Time
	EndTime     time.Time
	Description string
	CategoryID  uint
}

// ListFilter narrows a range query. UserID is honored only for actors holding
// the edit-any-time-entry key; everyone else sees their own entries.
type ListFilter struct {
	From   time.Time
	To     time.Time
	UserID *uint
}

// timeEntryUsecase implements the time entry operations.
type timeEntryUsecase struct {
	entries    TimeEntryRepository
	categories CategoryChecker
	users      UserReader
	perms      PermissionReader
	now        func() time.Time
}

// NewTimeEntryUsecase creates a new instance of timeEntryUsecase.
func NewTimeEntryUsecase(entries TimeEntryRepository, categories CategoryChecker,
	users UserReader, perms PermissionReader) *timeEntryUsecase {
	return &timeEntryUsecase{
		entries:    entries,
		categories: categories,
		users:      users,
		perms:      perms,
		now:        time.Now,
	}
}

// actorFor loads the acting user and their permission set.
func (u *timeEntryUsecase) actorFor(ctx context.Context, actorID uint) (authz.Actor, error) {
	user, err := u.users.FindByID(ctx, actorID)
	if err != nil {
		return authz.Actor{}, err
	}
	keys, err := u.perms.KeysForUser(ctx, actorID)
	if err != nil {
		return authz.Actor{}, err
	}
	return authz.Actor{
		UserID:      user.ID,
		Email:       user.Email,
		Permissions: permissionentity.NewSet(keys),
	}, nil
}

// validateInput applies the field rules shared by create and update.
// All independent rules run; failures accumulate.
func (u *timeEntryUsecase) validateInput(ctx context.Context, in TimeEntryInput) error {
	var r validation.Result

	if in.Description == "" {
		r.Fail("description", "Description is required")
	}
	if in.StartTime.IsZero() {
		r.Fail("startTime", "Start time is required")
	}
	if in.EndTime.IsZero() {
		r.Fail("endTime", "End time is required")
	}

	if !in.StartTime.IsZero() && !in.EndTime.IsZero() && in.StartTime.After(in.EndTime) {
		r.Fail("startTime", "Start time must not be after end time")
	}
	limit := u.now().Add(futureAllowance)
	if !in.StartTime.IsZero() && in.StartTime.After(limit) {
		r.Fail("startTime", "Start time cannot be more than one day in the future")
	}
	if !in.EndTime.IsZero() && in.EndTime.After(limit) {
		r.Fail("endTime", "End time cannot be more than one day in the future")
	}

	if in.CategoryID == 0 {
		r.Fail("categoryId", "Category is required")
	} else {
		exists, err := u.categories.Exists(ctx, in.CategoryID)
		if err != nil {
			return err
		}
		if !exists {
			r.FailKind(validation.KindNotFound, "categoryId", "Category does not exist in system")
		}
	}

	return r.Err()
}

// validateRange applies the date-range policy shared by all list queries.
func (u *timeEntryUsecase) validateRange(from, to time.Time) error {
	var r validation.Result

	if from.IsZero() {
		r.Fail("from", "From date is required")
	}
	if to.IsZero() {
		r.Fail("to", "To date is required")
	}
	if !from.IsZero() && !to.IsZero() {
		if from.After(to) {
			r.Fail("from", "From date must not be after to date")
		} else if to.Sub(from) > maxRangeSpan {
			r.Fail("to", "Date range cannot exceed 365 days")
		}
	}
	limit := u.now().Add(futureAllowance)
	if !from.IsZero() && from.After(limit) {
		r.Fail("from", "From date cannot be more than one day in the future")
	}
	if !to.IsZero() && to.After(limit) {
		r.Fail("to", "To date cannot be more than one day in the future")
	}

	return r.Err()
}

// Create validates and persists a new time entry owned by the actor.
func (u *timeEntryUsecase) Create(ctx context.Context, actorID uint, in TimeEntryInput) (*entity.TimeEntry, error) {
	if err := u.validateInput(ctx, in); err != nil {
		return nil, err
	}

	actor, err := u.actorFor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	// On create the actor is the owner.
	if err := authz.Authorize(actor, actorID,
		permissionentity.KeyEditOwnTimeEntry, permissionentity.KeyEditAnyTimeEntry); err != nil {
		return nil, err
	}

	e := &entity.TimeEntry{
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		Description: in.Description,
		CategoryID:  in.CategoryID,
		UserID:      actorID,
	}
	if err := u.entries.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Update validates and persists changes to an existing time entry. The
// own-vs-any rule is applied against the entry's owner.
func (u *timeEntryUsecase) Update(ctx context.Context, actorID, id uint, in TimeEntryInput) (*entity.TimeEntry, error) {
	existing, err := u.entries.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrTimeEntryNotFound) {
			var r validation.Result
			r.FailKind(validation.KindNotFound, "id", "Time entry does not exist in system")
			return nil, r.Err()
		}
		return nil, err
	}

	if err := u.validateInput(ctx, in); err != nil {
		return nil, err
	}

	actor, err := u.actorFor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, existing.UserID,
		permissionentity.KeyEditOwnTimeEntry, permissionentity.KeyEditAnyTimeEntry); err != nil {
		return nil, err
	}

	existing.StartTime = in.StartTime
	existing.EndTime = in.EndTime
	existing.Description = in.Description
	existing.CategoryID = in.CategoryID
	if err := u.entries.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes a time entry after checking existence and the own-vs-any
// authorization rule: the owner needs edit-own-time-entry, anyone else needs
// edit-any-time-entry.
func (u *timeEntryUsecase) Delete(ctx context.Context, actorID, id uint) error {
	existing, err := u.entries.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrTimeEntryNotFound) {
			var r validation.Result
			r.FailKind(validation.KindNotFound, "id", "Time entry does not exist in system")
			return r.Err()
		}
		return err
	}

	actor, err := u.actorFor(ctx, actorID)
	if err != nil {
		return err
	}

	if err := authz.Authorize(actor, existing.UserID,
		permissionentity.KeyEditOwnTimeEntry, permissionentity.KeyEditAnyTimeEntry); err != nil {
		return err
	}

	return u.entries.Delete(ctx, id)
}

// List returns time entries within a date range. The actor sees their own
// entries; holders of edit-any-time-entry may target another user through
// the filter.
func (u *timeEntryUsecase) List(ctx context.Context, actorID uint, f ListFilter) ([]entity.TimeEntry, error) {
	if err := u.validateRange(f.From, f.To); err != nil {
		return nil, err
	}

	actor, err := u.actorFor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	target := actor.UserID
	if f.UserID != nil && *f.UserID != actor.UserID {
		if err := authz.Require(actor, permissionentity.KeyEditAnyTimeEntry); err != nil {
			return nil, err
		}
		target = *f.UserID
	}

	return u.entries.ListForUser(ctx, target, f.From, f.To)
}
