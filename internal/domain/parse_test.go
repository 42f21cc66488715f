package domain

import (
	"testing"
	"time"
)

func TestParseIntervalDays(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"1", 1, true},
		{"15", 15, true},
		{"7", 7, true},
		{"0", 0, false},
		{"16", 0, false},
		{"-2", 0, false},
		{"two", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, err := ParseIntervalDays(c.in)
		if c.ok && (err != nil || got != c.want) {
			t.Fatalf("ParseIntervalDays(%q) = %d, %v; want %d", c.in, got, err, c.want)
		}
		if !c.ok && err == nil {
			t.Fatalf("ParseIntervalDays(%q) accepted, want error", c.in)
		}
	}
}

func TestParseTimeOfDay(t *testing.T) {
	valid := map[string][2]int{
		"00:00": {0, 0},
		"09:30": {9, 30},
		"21:56": {21, 56},
		"23:59": {23, 59},
	}
	for in, want := range valid {
		h, m, err := ParseTimeOfDay(in)
		if err != nil || h != want[0] || m != want[1] {
			t.Fatalf("ParseTimeOfDay(%q) = %d:%d, %v; want %d:%d", in, h, m, err, want[0], want[1])
		}
	}

	for _, in := range []string{"24:00", "9:00", "09:60", "0900", "09:0", "ab:cd", ""} {
		if _, _, err := ParseTimeOfDay(in); err == nil {
			t.Fatalf("ParseTimeOfDay(%q) accepted, want error", in)
		}
	}
}

func TestFormatUntil(t *testing.T) {
	now := time.Date(2024, time.January, 1, 10, 0, 0, 0, time.Local)
	next := time.Date(2024, time.January, 3, 9, 0, 0, 0, time.Local)
	if got := FormatUntil(now, next); got != "47:00" {
		t.Fatalf("want 47:00, got %s", got)
	}
}
