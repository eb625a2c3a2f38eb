package utils

import (
	"fmt"
	"time"
)

// DateLayout is the wire and storage format for calendar dates.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date into a midnight-UTC time.Time.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return t, nil
}

// DateString renders t as YYYY-MM-DD.
func DateString(t time.Time) string {
	return t.Format(DateLayout)
}

// NightsBetween counts the chargeable nights in [checkIn, checkOut).
func NightsBetween(checkIn, checkOut time.Time) int {
	if !checkOut.After(checkIn) {
		return 0
	}
	return int(checkOut.Sub(checkIn).Hours() / 24)
}

// NextDay advances a calendar date by one day.
func NextDay(t time.Time) time.Time {
	return t.AddDate(0, 0, 1)
}
