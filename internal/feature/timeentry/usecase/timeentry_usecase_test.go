package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"timetrack_backend/internal/authz"
	authentity "timetrack_backend/internal/feature/auth/domain/entity"
	permissionentity "timetrack_backend/internal/feature/permission/domain/entity"
	"timetrack_backend/internal/feature/timeentry/domain/entity"
	"timetrack_backend/internal/validation"
)

// mockTimeEntryRepository is a mock implementation of TimeEntryRepository.
type mockTimeEntryRepository struct {
	FindByIDFunc    func(id uint) (*entity.TimeEntry, error)
	ListForUserFunc func(userID uint, from, to time.Time) ([]entity.TimeEntry, error)
	CreateFunc      func(e *entity.TimeEntry) error
	UpdateFunc      func(e *entity.TimeEntry) error
	DeleteFunc      func(id uint) error
}

func (m *mockTimeEntryRepository) FindByID(_ context.Context, id uint) (*entity.TimeEntry, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(id)
	}
	return nil, ErrTimeEntryNotFound
}

func (m *mockTimeEntryRepository) ListForUser(_ context.Context, userID uint, from, to time.Time) ([]entity.TimeEntry, error) {
	if m.ListForUserFunc != nil {
		return m.ListForUserFunc(userID, from, to)
	}
	return nil, nil
}

func (m *mockTimeEntryRepository) Create(_ context.Context, e *entity.TimeEntry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(e)
	}
	e.ID = 10
	return nil
}

func (m *mockTimeEntryRepository) Update(_ context.Context, e *entity.TimeEntry) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(e)
	}
	return nil
}

func (m *mockTimeEntryRepository) Delete(_ context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(id)
	}
	return nil
}

// mockCategoryChecker is a mock CategoryChecker.
type mockCategoryChecker struct {
	ExistsFunc func(id uint) (bool, error)
}

func (m *mockCategoryChecker) Exists(_ context.Context, id uint) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(id)
	}
	return true, nil
}

// mockUserReader is a mock UserReader returning a fixed actor.
type mockUserReader struct{}

func (m *mockUserReader) FindByID(_ context.Context, id uint) (*authentity.User, error) {
	return &authentity.User{ID: id, Email: "actor@example.com", OrganizationID: 1, Active: true}, nil
}

// mockPermReader is a mock PermissionReader with a fixed key set.
type mockPermReader struct {
	keys []permissionentity.Key
}

func (m *mockPermReader) KeysForUser(_ context.Context, _ uint) ([]permissionentity.Key, error) {
	return m.keys, nil
}

// fixedNow pins the clock for the future-limit rules.
var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestUsecase(repo *mockTimeEntryRepository, keys ...permissionentity.Key) *timeEntryUsecase {
	uc := NewTimeEntryUsecase(repo, &mockCategoryChecker{}, &mockUserReader{}, &mockPermReader{keys: keys})
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func validInput() TimeEntryInput {
	return TimeEntryInput{
		StartTime:   fixedNow.Add(-2 * time.Hour),
		EndTime:     fixedNow.Add(-time.Hour),
		Description: "code review",
		CategoryID:  1,
	}
}

func TestTimeEntryUsecase_Create(t *testing.T) {
	t.Run("owner with own key creates the entry", func(t *testing.T) {
		uc := newTestUsecase(&mockTimeEntryRepository{}, permissionentity.KeyEditOwnTimeEntry)

		e, err := uc.Create(context.Background(), 1, validInput())

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if e.ID == 0 {
			t.Error("created entry should have a non-empty id")
		}
		if e.UserID != 1 {
			t.Errorf("entry should belong to the actor, got user %d", e.UserID)
		}
	})

	t.Run("actor without any edit key is denied with the own key named", func(t *testing.T) {
		uc := newTestUsecase(&mockTimeEntryRepository{})

		_, err := uc.Create(context.Background(), 1, validInput())

		var aerr *authz.Error
		if !errors.As(err, &aerr) {
			t.Fatalf("expected *authz.Error, got %v", err)
		}
		if aerr.Permission != permissionentity.KeyEditOwnTimeEntry {
			t.Errorf("expected edit-own-time-entry in error, got %s", aerr.Permission)
		}
	})

	t.Run("start after end fails", func(t *testing.T) {
		uc := newTestUsecase(&mockTimeEntryRepository{}, permissionentity.KeyEditOwnTimeEntry)

		in := validInput()
		in.StartTime, in.EndTime = in.EndTime, in.StartTime
		_, err := uc.Create(context.Background(), 1, in)

		var verr *validation.Error
		if !errors.As(err, &verr) {
			t.Fatalf("expected *validation.Error, got %v", err)
		}
	})

	t.Run("start more than one day in the future fails", func(t *testing.T) {
		uc := newTestUsecase(&mockTimeEntryRepository{}, permissionentity.KeyEditOwnTimeEntry)

		in := validInput()
		in.StartTime = fixedNow.Add(25 * time.Hour)
		in.EndTime = fixedNow.Add(26 * time.Hour)
		_, err := uc.Create(context.Background(), 1, in)

		var verr *validation.Error
		if !errors.As(err, &verr) {
			t.Fatalf("expected *validation.Error, got %v", err)
		}
	})

	t.Run("start within the one-day allowance passes", func(t *testing.T) {
		uc := newTestUsecase(&mockTimeEntryRepository{}, permissionentity.KeyEditOwnTimeEntry)

		in := validInput()
		in.StartTime = fixedNow.Add(20 * time.Hour)
		in.EndTime = fixedNow.Add(21 * time.Hour)
		_, err := uc.Create(context.Background(), 1, in)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("missing category is not found", func(t *testing.T) {
		uc := NewTimeEntryUsecase(&mockTimeEntryRepository{},
			&mockCategoryChecker{ExistsFunc: func(uint) (bool, error) { return false, nil }},
			&mockUserReader{},
			&mockPermReader{keys: []permissionentity.Key{permissionentity.KeyEditOwnTimeEntry}})
		uc.now = func() time.Time { return fixedNow }

		_, err := uc.Create(context.Background(), 1, validInput())

		var verr *validation.Error
		if !errors.As(err, &verr) {
			t.Fatalf("expected *validation.Error, got %v", err)
		}
		if verr.Kind != validation.KindNotFound {
			t.Errorf("expected not-found classification, got %v", verr.Kind)
		}
	})

	t.Run("independent failures accumulate", func(t *testing.T) {
		uc := newTestUsecase(&mockTimeEntryRepository{}, permissionentity.KeyEditOwnTimeEntry)

		_, err := uc.Create(context.Background(), 1, TimeEntryInput{})

		var verr *validation.Error
		if !errors.As(err, &verr) {
			t.Fatalf("expected *validation.Error, got %v", err)
		}
		if len(verr.Fields) < 3 {
			t.Errorf("expected description, times and category to fail together, got %v", verr.Fields)
		}
	})
}

func TestTimeEntryUsecase_Update(t *testing.T) {
	othersEntry := func(id uint) (*entity.TimeEntry, error) {
		return &entity.TimeEntry{ID: id, UserID: 2, CategoryID: 1}, nil
	}

	t.Run("non-owner without any key is denied with the any key named", func(t *testing.T) {
		uc := newTestUsecase(&mockTimeEntryRepository{FindByIDFunc: othersEntry},
			permissionentity.KeyEditOwnTimeEntry)

		_, err := uc.Update(context.Background(), 1, 5, validInput())

		var aerr *authz.Error
		if !errors.As(err, &aerr) {
			t.Fatalf("expected *authz.Error, got %v", err)
		}
		if aerr.Permission != permissionentity.KeyEditAnyTimeEntry {
			t.Errorf("expected edit-any-time-entry in error, got %s", aerr.Permission)
		}
	})

	t.Run("non-owner with any key updates the entry", func(t *testing.T) {
		var saved *entity.TimeEntry
		uc := newTestUsecase(&mockTimeEntryRepository{
			FindByIDFunc: othersEntry,
			UpdateFunc:   func(e *entity.TimeEntry) error { saved = e; return nil },
		}, permissionentity.KeyEditAnyTimeEntry)

		in := validInput()
		e, err := uc.Update(context.Background(), 1, 5, in)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if saved == nil || saved.Description != in.Description {
			t.Errorf("update did not apply fields: %+v", saved)
		}
		if e.UserID != 2 {
			t.Errorf("ownership must not change on update, got user %d", e.UserID)
		}
	})

	t.Run("missing entry is not found", func(t *testing.T) {
		uc := newTestUsecase(&mockTimeEntryRepository{}, permissionentity.KeyEditAnyTimeEntry)

		_, err := uc.Update(context.Background(), 1, 99, validInput())

		var verr *validation.Error
		if !errors.As(err, &verr) {
			t.Fatalf("expected *validation.Error, got %v", err)
		}
		if verr.Kind != validation.KindNotFound {
			t.Errorf("expected not-found classification, got %v", verr.Kind)
		}
	})
}

func TestTimeEntryUsecase_Delete(t *testing.T) {
	ownEntry := func(id uint) (*entity.TimeEntry, error) {
		return &entity.TimeEntry{ID: id, UserID: 1, CategoryID: 1}, nil
	}
	othersEntry := func(id uint) (*entity.TimeEntry, error) {
		return &entity.TimeEntry{ID: id, UserID: 2, CategoryID: 1}, nil
	}

	t.Run("owner with own key deletes", func(t *testing.T) {
		deleted := false
		uc := newTestUsecase(&mockTimeEntryRepository{
			FindByIDFunc: ownEntry,
			DeleteFunc:   func(id uint) error { deleted = id == 5; return nil },
		}, permissionentity.KeyEditOwnTimeEntry)

		if err := uc.Delete(context.Background(), 1, 5); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !deleted {
			t.Error("repository delete was not called")
		}
	})

	t.Run("non-owner without any key is denied with the any key named", func(t *testing.T) {
		uc := newTestUsecase(&mockTimeEntryRepository{FindByIDFunc: othersEntry},
			permissionentity.KeyEditOwnTimeEntry)

		err := uc.Delete(context.Background(), 1, 5)

		var aerr *authz.Error
		if !errors.As(err, &aerr) {
			t.Fatalf("expected *authz.Error, got %v", err)
		}
		if aerr.Permission != permissionentity.KeyEditAnyTimeEntry {
			t.Errorf("expected edit-any-time-entry in error, got %s", aerr.Permission)
		}
	})

	t.Run("missing entry is not found", func(t *testing.T) {
		uc := newTestUsecase(&mockTimeEntryRepository{}, permissionentity.KeyEditAnyTimeEntry)

		err := uc.Delete(context.Background(), 1, 99)

		var verr *validation.Error
		if !errors.As(err, &verr) {
			t.Fatalf("expected *validation.Error, got %v", err)
		}
		if verr.Kind != validation.KindNotFound {
			t.Errorf("expected not-found classification, got %v", verr.Kind)
		}
	})
}

func TestTimeEntryUsecase_List(t *testing.T) {
	from := fixedNow.AddDate(0, -1, 0)
	to := fixedNow

	t.Run("rejects from after to", func(t *testing.T) {
		uc := newTestUsecase(&mockTimeEntryRepository{})

		_, err := uc.List(context.Background(), 1, ListFilter{From: to, To: from})

		var verr *validation.Error
		if !errors.As(err, &verr) {
			t.Fatalf("expected *validation.Error, got %v", err)
		}
	})

	t.Run("rejects spans over 365 days", func(t *testing.T) {
		uc := newTestUsecase(&mockTimeEntryRepository{})

		_, err := uc.List(context.Background(), 1, ListFilter{
			From: fixedNow.Add(-366 * 24 * time.Hour),
			To:   fixedNow,
		})

		var verr *validation.Error
		if !errors.As(err, &verr) {
			t.Fatalf("expected *validation.Error, got %v", err)
		}
	})

	t.Run("rejects a range more than one day in the future", func(t *testing.T) {
		uc := newTestUsecase(&mockTimeEntryRepository{})

		_, err := uc.List(context.Background(), 1, ListFilter{
			From: fixedNow.Add(25 * time.Hour),
			To:   fixedNow.Add(26 * time.Hour),
		})

		var verr *validation.Error
		if !errors.As(err, &verr) {
			t.Fatalf("expected *validation.Error, got %v", err)
		}
	})

	t.Run("rejects a missing from and to together", func(t *testing.T) {
		uc := newTestUsecase(&mockTimeEntryRepository{})

		_, err := uc.List(context.Background(), 1, ListFilter{})

		var verr *validation.Error
		if !errors.As(err, &verr) {
			t.Fatalf("expected *validation.Error, got %v", err)
		}
		if len(verr.Fields) != 2 {
			t.Errorf("expected both from and to to fail, got %v", verr.Fields)
		}
	})

	t.Run("actor sees their own entries", func(t *testing.T) {
		var asked uint
		uc := newTestUsecase(&mockTimeEntryRepository{
			ListForUserFunc: func(userID uint, _, _ time.Time) ([]entity.TimeEntry, error) {
				asked = userID
				return []entity.TimeEntry{{ID: 1, UserID: userID}}, nil
			},
		})

		entries, err := uc.List(context.Background(), 1, ListFilter{From: from, To: to})

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if asked != 1 {
			t.Errorf("expected the actor's own entries, asked for user %d", asked)
		}
		if len(entries) != 1 {
			t.Errorf("expected 1 entry, got %d", len(entries))
		}
	})

	t.Run("userId filter needs the any key", func(t *testing.T) {
		target := uint(2)
		uc := newTestUsecase(&mockTimeEntryRepository{})

		_, err := uc.List(context.Background(), 1, ListFilter{From: from, To: to, UserID: &target})

		var aerr *authz.Error
		if !errors.As(err, &aerr) {
			t.Fatalf("expected *authz.Error, got %v", err)
		}
		if aerr.Permission != permissionentity.KeyEditAnyTimeEntry {
			t.Errorf("expected edit-any-time-entry in error, got %s", aerr.Permission)
		}
	})

	t.Run("any key holder may target another user", func(t *testing.T) {
		target := uint(2)
		var asked uint
		uc := newTestUsecase(&mockTimeEntryRepository{
			ListForUserFunc: func(userID uint, _, _ time.Time) ([]entity.TimeEntry, error) {
				asked = userID
				return nil, nil
			},
		}, permissionentity.KeyEditAnyTimeEntry)

		_, err := uc.List(context.Background(), 1, ListFilter{From: from, To: to, UserID: &target})

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if asked != 2 {
			t.Errorf("expected the filtered user's entries, asked for user %d", asked)
		}
	})
}
