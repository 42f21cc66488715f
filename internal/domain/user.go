package domain

import "time"

// User is a registered chat that can own medicines.
type User struct {
	ID        int64
	ChatID    int64
	CreatedAt time.Time // UTC
}

// Medicine is one recurring reminder rule owned by a single user.
type Medicine struct {
	ID           int64
	UserID       int64
	Name         string
	IntervalDays int    // whole days, 1..15
	TimeOfDay    string // normalized "HH:MM", 24-hour
	NextRun      time.Time
}
