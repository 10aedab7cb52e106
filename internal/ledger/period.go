package ledger

import (
	"time"
)

// Period selects the dashboard aggregation window
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

// ParsePeriod never fails. Only the exact lowercase names are known; anything
// else, including other casings, resolves to no window.
func ParsePeriod(raw string) Period {
	return Period(raw)
}

// Known reports whether p selects a window
func (p Period) Known() bool {
	switch p {
	case PeriodDaily, PeriodMonthly, PeriodYearly:
		return true
	}
	return false
}

// Window is a half-open date range [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the calendar date of t falls inside w
func (w Window) Contains(t time.Time) bool {
	d := DateOf(t)
	return !d.Before(w.Start) && d.Before(w.End)
}

// Window returns the range covering now's day, month or year. ok is false for
// unrecognized periods, which aggregate to nothing.
func (p Period) Window(now time.Time) (Window, bool) {
	today := DateOf(now)
	switch p {
	case PeriodDaily:
		return Window{Start: today, End: today.AddDate(0, 0, 1)}, true
	case PeriodMonthly:
		start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		return Window{Start: start, End: start.AddDate(0, 1, 0)}, true
	case PeriodYearly:
		start := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		return Window{Start: start, End: start.AddDate(1, 0, 0)}, true
	default:
		return Window{}, false
	}
}
