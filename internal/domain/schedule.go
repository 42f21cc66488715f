package domain

import "time"

// InitialNextRun computes the first due instant for a medicine created
// at "now" with the given time of day and interval.
// The candidate is today's date at hh:mm in now's location. If the
// candidate is strictly before now (truncated to the minute), the time
// of day has already passed today and the candidate is pushed forward
// by the full interval. A candidate equal to the current minute is
// scheduled today.
func InitialNextRun(now time.Time, hour, minute, intervalDays int) time.Time {
	now = now.Truncate(time.Minute)
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if next.Before(now) {
		next = next.AddDate(0, 0, intervalDays)
	}
	return next
}

// NextRun advances a just-fired medicine by its interval. It is
// additive on the previous due instant rather than on the current
// time, so the schedule stays on the day grid anchored at creation
// and delayed polling does not accumulate drift.
func NextRun(prev time.Time, intervalDays int) time.Time {
	return prev.AddDate(0, 0, intervalDays)
}
