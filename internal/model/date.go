package model

import "time"

const dateLayout = "2006-01-02"

// DateKey formats t as the YYYY-MM-DD key used by daily logs, in local time.
func DateKey(t time.Time) string {
	return t.Format(dateLayout)
}

// Today returns the current local calendar date key.
func Today() string {
	return DateKey(time.Now())
}

// ParseDateKey parses a YYYY-MM-DD key back into a local midnight time.
func ParseDateKey(key string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, key, time.Local)
}

// SameDate reports whether t falls on the calendar date named by key.
func SameDate(t time.Time, key string) bool {
	return DateKey(t) == key
}
