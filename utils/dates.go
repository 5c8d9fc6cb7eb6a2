// utils/dates.go
package utils

import (
	"fmt"
	"log"
	"time"
)

// DateLayout is the civil-date format used by every date string in the store.
const DateLayout = "2006-01-02"

// DefaultTimezone is the zone "today" is computed in unless APP_TIMEZONE overrides it.
const DefaultTimezone = "Asia/Tokyo"

// LoadLocation resolves name, falling back to a fixed +09:00 zone when the
// host has no tzdata. An empty name means DefaultTimezone.
func LoadLocation(name string) *time.Location {
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("⚠️  [DATES] unknown timezone %q (%v), using fixed UTC+9", name, err)
		return time.FixedZone("JST", 9*60*60)
	}
	return loc
}

// CivilDate is t's calendar date in loc.
func CivilDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayout)
}

// Today returns the calendar date of now in loc.
func Today(now time.Time, loc *time.Location) string {
	return CivilDate(now, loc)
}

// Tomorrow returns the calendar date after Today.
func Tomorrow(now time.Time, loc *time.Location) string {
	return DaysFromToday(now, loc, 1)
}

// DaysFromToday returns Today shifted by n calendar days (n may be negative).
func DaysFromToday(now time.Time, loc *time.Location, n int) string {
	d, _ := AddDays(Today(now, loc), n)
	return d
}

// DateOnly trims a time component: "2024-05-01T19:00" and "2024-05-01 19:00" become "2024-05-01".
func DateOnly(s string) string {
	if len(s) > len(DateLayout) {
		return s[:len(DateLayout)]
	}
	return s
}

// ParseDate parses the civil-date part of s as midnight UTC, so differences
// between two parsed dates are whole days regardless of server zone.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, DateOnly(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// DaysBetween returns b - a in civil days. ok is false if either date is unparseable.
func DaysBetween(a, b string) (days int, ok bool) {
	ta, err := ParseDate(a)
	if err != nil {
		return 0, false
	}
	tb, err := ParseDate(b)
	if err != nil {
		return 0, false
	}
	return int(tb.Sub(ta).Hours() / 24), true
}

// AddDays shifts a civil date by n days.
func AddDays(date string, n int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(DateLayout), nil
}

// MonthRange returns the first and last civil dates of the month.
func MonthRange(year int, month time.Month) (first, last string) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start.Format(DateLayout), end.Format(DateLayout)
}

// storedDateLayouts are the accepted shapes of a date field: a civil date,
// optionally followed by a time of day.
var storedDateLayouts = []string{
	DateLayout,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// IsValidDate reports whether the whole of s is a YYYY-MM-DD civil date,
// optionally with a time component.
func IsValidDate(s string) bool {
	for _, layout := range storedDateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}
