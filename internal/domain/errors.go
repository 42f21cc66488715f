package domain

import "errors"

var (
	// ErrUserNotFound means the chat has not called /start yet.
	ErrUserNotFound = errors.New("user not found")
	// ErrMedicineNotFound means no medicine matches the full
	// (name, interval, time) triple for the user.
	ErrMedicineNotFound = errors.New("medicine not found")
	// ErrDuplicateMedicine means a medicine with the same
	// (name, time, interval) triple already exists in the store.
	ErrDuplicateMedicine = errors.New("duplicate medicine")
)
