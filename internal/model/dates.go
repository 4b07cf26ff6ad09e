package model

import (
	"fmt"
	"time"
)

// Wire formats for dates and month keys. Dates are stored and exchanged as
// text in these fixed layouts.
const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

// ParseDate parses a calendar date in the fixed "YYYY-MM-DD" layout.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// ParseMonthKey parses a "YYYY-MM" month key and returns the first instant
// of that month.
func ParseMonthKey(s string) (time.Time, error) {
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse month key %q: %w", s, err)
	}
	return t, nil
}

// FormatMonthKey returns the "YYYY-MM" key for the month containing t.
func FormatMonthKey(t time.Time) string {
	return t.Format(MonthLayout)
}

// CurrentMonthKey returns the month key for the current wall-clock month.
func CurrentMonthKey() string {
	return FormatMonthKey(time.Now())
}
