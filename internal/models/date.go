package models

import "time"

// DateLayout is the wire and form layout for calendar dates.
const DateLayout = "2006-01-02"

// DateOf truncates t to its calendar date in t's own location and returns it
// as midnight UTC, so dates from different zones compare by day only.
func DateOf(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a UTC calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
