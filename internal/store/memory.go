package store

import (
	"context"
	"sync"
	"time"

	"github.com/aekiratli/medicine-reminder/internal/domain"
)

// MemoryRepo is an in-memory Repo. Its primary purpose is testing:
// it enforces the same uniqueness and not-found semantics as the
// SQLite adapter without touching disk.
type MemoryRepo struct {
	mu        sync.Mutex
	users     map[int64]*domain.User // chatID -> user
	medicines map[int64]*domain.Medicine
	nextID    int64
}

// NewMemory returns an empty in-memory repository.
func NewMemory() *MemoryRepo {
	return &MemoryRepo{
		users:     make(map[int64]*domain.User),
		medicines: make(map[int64]*domain.Medicine),
	}
}

func (r *MemoryRepo) id() int64 {
	r.nextID++
	return r.nextID
}

func (r *MemoryRepo) GetUserByChatID(_ context.Context, chatID int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[chatID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *MemoryRepo) GetUserByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *MemoryRepo) CreateUser(_ context.Context, chatID int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := &domain.User{ID: r.id(), ChatID: chatID, CreatedAt: time.Now().UTC()}
	r.users[chatID] = u
	cp := *u
	return &cp, nil
}

func (r *MemoryRepo) DeleteUser(_ context.Context, chatID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[chatID]
	if !ok {
		return domain.ErrUserNotFound
	}
	for id, m := range r.medicines {
		if m.UserID == u.ID {
			delete(r.medicines, id)
		}
	}
	delete(r.users, chatID)
	return nil
}

func (r *MemoryRepo) CreateMedicine(_ context.Context, m *domain.Medicine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Uniqueness is on the triple across all users, as in the schema.
	for _, existing := range r.medicines {
		if existing.Name == m.Name && existing.TimeOfDay == m.TimeOfDay && existing.IntervalDays == m.IntervalDays {
			return domain.ErrDuplicateMedicine
		}
	}
	m.ID = r.id()
	cp := *m
	r.medicines[m.ID] = &cp
	return nil
}

func (r *MemoryRepo) ListAllMedicines(_ context.Context) ([]domain.Medicine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]domain.Medicine, 0, len(r.medicines))
	for _, m := range r.medicines {
		res = append(res, *m)
	}
	return res, nil
}

func (r *MemoryRepo) ListMedicinesForUser(_ context.Context, userID int64) ([]domain.Medicine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []domain.Medicine
	for _, m := range r.medicines {
		if m.UserID == userID {
			res = append(res, *m)
		}
	}
	return res, nil
}

func (r *MemoryRepo) FindMedicine(_ context.Context, userID int64, name string, intervalDays int, timeOfDay string) (*domain.Medicine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.medicines {
		if m.UserID == userID && m.Name == name && m.IntervalDays == intervalDays && m.TimeOfDay == timeOfDay {
			cp := *m
			return &cp, nil
		}
	}
	return nil, domain.ErrMedicineNotFound
}

func (r *MemoryRepo) DeleteMedicine(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.medicines[id]; !ok {
		return domain.ErrMedicineNotFound
	}
	delete(r.medicines, id)
	return nil
}

func (r *MemoryRepo) SetNextRun(_ context.Context, id int64, next time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.medicines[id]
	if !ok {
		return domain.ErrMedicineNotFound
	}
	m.NextRun = next
	return nil
}

func (r *MemoryRepo) Close() error { return nil }
