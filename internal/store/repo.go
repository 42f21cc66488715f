package store

import (
	"context"
	"time"

	"github.com/aekiratli/medicine-reminder/internal/domain"
)

// Repo defines storage operations for users and their medicines.
// Implementations must return the typed errors from the domain package
// (ErrUserNotFound, ErrMedicineNotFound, ErrDuplicateMedicine) so
// callers can branch without inspecting driver errors.
type Repo interface {
	GetUserByChatID(ctx context.Context, chatID int64) (*domain.User, error)
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
	CreateUser(ctx context.Context, chatID int64) (*domain.User, error)
	// DeleteUser removes a user and all medicines it owns.
	DeleteUser(ctx context.Context, chatID int64) error

	// CreateMedicine persists m and fills m.ID. A medicine with the
	// same (name, time, interval) triple anywhere in the store fails
	// with ErrDuplicateMedicine and persists nothing.
	CreateMedicine(ctx context.Context, m *domain.Medicine) error
	ListAllMedicines(ctx context.Context) ([]domain.Medicine, error)
	ListMedicinesForUser(ctx context.Context, userID int64) ([]domain.Medicine, error)
	FindMedicine(ctx context.Context, userID int64, name string, intervalDays int, timeOfDay string) (*domain.Medicine, error)
	DeleteMedicine(ctx context.Context, id int64) error
	// SetNextRun updates the due instant; the change is visible to the
	// next ListAllMedicines call.
	SetNextRun(ctx context.Context, id int64, next time.Time) error

	Close() error
}
