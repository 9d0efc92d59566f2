// Package adapters provides the repository implementations for the timeentry feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"timetrack_backend/internal/feature/timeentry/domain/entity"
	"timetrack_backend/internal/feature/timeentry/usecase"
)

// timeEntryPostgres is the Postgres implementation of TimeEntryRepository.
type timeEntryPostgres struct {
	db *gorm.DB
}

// Compile-time check that timeEntryPostgres implements TimeEntryRepository.
var _ usecase.TimeEntryRepository = (*timeEntryPostgres)(nil)

// NewTimeEntryPostgres creates a new instance of timeEntryPostgres with the
// given gorm.DB connection.
func NewTimeEntryPostgres(db *gorm.DB) *timeEntryPostgres {
	return &timeEntryPostgres{db: db}
}

// FindByID retrieves a time entry by ID.
// It returns usecase.ErrTimeEntryNotFound if the entry does not exist.
func (r *timeEntryPostgres) FindByID(ctx context.Context, id uint) (*entity.TimeEntry, error) {
	var e entity.TimeEntry
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrTimeEntryNotFound
		}
		return nil, err
	}
	return &e, nil
}

// ListForUser retrieves the user's time entries whose start falls inside the
// given range, newest first.
func (r *timeEntryPostgres) ListForUser(ctx context.Context, userID uint, from, to time.Time) ([]entity.TimeEntry, error) {
	var entries []entity.TimeEntry
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND start_time >= ? AND start_time <= ?", userID, from, to).
		Order("start_time DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Create persists a new time entry.
func (r *timeEntryPostgres) Create(ctx context.Context, e *entity.TimeEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

// Update persists changes to an existing time entry.
func (r *timeEntryPostgres) Update(ctx context.Context, e *entity.TimeEntry) error {
	return r.db.WithContext(ctx).Save(e).Error
}

// Delete removes the time entry.
func (r *timeEntryPostgres) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.TimeEntry{}, id).Error
}
