// Package analytics aggregates journal trades into breakdowns, an equity
// curve, radar scores and a summary report. Every function is pure: it
// never mutates its input and always returns freshly allocated results.
package analytics

import (
	"strconv"
	"time"
)

// Weekdays lists weekday bucket names in Sunday-first order.
var Weekdays = []string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// All bucketing reads UTC calendar fields so results do not depend on the
// server's local zone.

// WeekdayName returns the UTC weekday name of t.
func WeekdayName(t time.Time) string {
	return Weekdays[t.UTC().Weekday()]
}

// MonthKey returns "Mon YYYY", e.g. "Feb 2026".
func MonthKey(t time.Time) string {
	return t.UTC().Format("Jan 2006")
}

// WeekKey labels the Sunday starting the UTC week of t, e.g. "Week of 08 Feb".
func WeekKey(t time.Time) string {
	u := t.UTC()
	start := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, -int(u.Weekday()))
	return "Week of " + start.Format("02 Jan")
}

// YearKey returns the 4-digit UTC year.
func YearKey(t time.Time) string {
	return strconv.Itoa(t.UTC().Year())
}

// DayKey returns the UTC date as YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// DayLabel returns the UTC date as "DD Mon", e.g. "13 Feb".
func DayLabel(t time.Time) string {
	return t.UTC().Format("02 Jan")
}
