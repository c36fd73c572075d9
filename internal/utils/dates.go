package utils

import (
	"errors"
	"strings"
	"time"
)

// Wire layouts
const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02T15:04:05"
	ClockLayout     = "15:04:05"
)

var errEmptyDate = errors.New("empty date")

// ParseDate parses a calendar date (YYYY-MM-DD) into midnight UTC
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errEmptyDate
	}
	return time.Parse(DateLayout, s)
}

// ParseTimestamp accepts YYYY-MM-DD, YYYY-MM-DDTHH:MM:SS or RFC3339.
// RFC3339 values are converted to UTC wall-clock time.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errEmptyDate
	}
	if t, err := time.Parse(TimestampLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Parse(DateLayout, s)
}

// ParseClock validates an HH:MM:SS (or HH:MM) time of day and returns it as HH:MM:SS
func ParseClock(s string) (string, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(ClockLayout, s); err == nil {
		return t.Format(ClockLayout), nil
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return "", err
	}
	return t.Format(ClockLayout), nil
}

// SameDay reports whether a and b fall on the same calendar day
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// FormatDate formats t as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatTimestamp formats t as YYYY-MM-DDTHH:MM:SS
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}
