package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const (
	// MinIntervalDays and MaxIntervalDays bound the accepted day interval.
	MinIntervalDays = 1
	MaxIntervalDays = 15
)

var (
	ErrInvalidInterval  = errors.New("invalid day interval")
	ErrInvalidTimeOfDay = errors.New("invalid time of day")
)

// timeOfDayRe accepts zero-padded 24-hour HH:MM, e.g. "09:00", "21:56".
var timeOfDayRe = regexp.MustCompile(`^(0[0-9]|1[0-9]|2[0-3]):[0-5][0-9]$`)

// ParseIntervalDays parses a day interval argument and enforces the
// 1..15 bound. The returned error wraps ErrInvalidInterval.
func ParseIntervalDays(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidInterval, s)
	}
	if n < MinIntervalDays || n > MaxIntervalDays {
		return 0, fmt.Errorf("%w: %d is out of range %d..%d", ErrInvalidInterval, n, MinIntervalDays, MaxIntervalDays)
	}
	return n, nil
}

// ParseTimeOfDay validates an "HH:MM" argument and returns its hour
// and minute components. The returned error wraps ErrInvalidTimeOfDay.
func ParseTimeOfDay(s string) (hour, minute int, err error) {
	if !timeOfDayRe.MatchString(s) {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	hour, _ = strconv.Atoi(s[:2])
	minute, _ = strconv.Atoi(s[3:])
	return hour, minute, nil
}

// FormatInstant renders an instant the way replies show it.
func FormatInstant(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}

// FormatUntil renders the distance from now to t as HH:MM, flooring
// to whole minutes. Used in the /new_medicine confirmation.
func FormatUntil(now, t time.Time) string {
	d := t.Sub(now.Truncate(time.Minute))
	if d < 0 {
		d = 0
	}
	mins := int(d / time.Minute)
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}
