// Package schedule holds the pure calendar arithmetic of the planner: week
// normalization and the visible day grid. Everything here is side-effect
// free and works on wall-clock dates only.
package schedule

import (
	"time"

	"github.com/praxisops/dienstplan-api/internal/model"
)

// StartOfWeek returns the Monday of t's week, truncated to midnight.
func StartOfWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -model.MondayWeekday(day))
}

// WeekDays returns count consecutive dates starting at anchor. Callers
// normalize anchor to a Monday first; count comes from practice settings and
// is already validated to 5, 6 or 7.
func WeekDays(anchor time.Time, count int) []time.Time {
	days := make([]time.Time, count)
	for i := range days {
		days[i] = anchor.AddDate(0, 0, i)
	}
	return days
}

// WeekDayStrings is WeekDays with each date formatted as yyyy-MM-dd, the
// representation shifts are stored and compared in.
func WeekDayStrings(anchor time.Time, count int) []string {
	days := WeekDays(anchor, count)
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = d.Format(model.DateLayout)
	}
	return out
}

// ParseDate parses a yyyy-MM-dd planner date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(model.DateLayout, s)
}

// WeekEnd returns the last visible date of the week starting at anchor.
func WeekEnd(anchor time.Time, count int) time.Time {
	return anchor.AddDate(0, 0, count-1)
}
