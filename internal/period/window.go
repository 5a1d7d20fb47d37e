// Package period implements custom-month aggregation over a user's transactions.
//
// A custom month starts on a user-configured day of the month (1-28) instead of
// always on the 1st. Everything in this package is a pure function of its inputs:
// callers hand in a snapshot of one user's transactions and get back window bounds,
// totals, KPIs and ranked insights. Nothing here performs I/O or returns errors.
package period

import "time"

const (
	// MinStartDay and MaxStartDay bound the configurable month start day. 28 keeps
	// every month (including February) able to hold the start day.
	MinStartDay = 1
	MaxStartDay = 28
)

// MonthWindow is an inclusive [Start, End] range of calendar dates (UTC midnight).
type MonthWindow struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the calendar date of d falls inside the window.
func (w MonthWindow) Contains(d time.Time) bool {
	d = DateOf(d)
	return !d.Before(w.Start) && !d.After(w.End)
}

// Days returns the number of calendar days covered by the window.
func (w MonthWindow) Days() int {
	return int(w.End.Sub(w.Start).Hours()/24) + 1
}

// ClampStartDay forces a stored month start day into [MinStartDay, MaxStartDay].
// Malformed settings are clamped rather than rejected.
func ClampStartDay(day int) int {
	if day < MinStartDay {
		return MinStartDay
	}
	if day > MaxStartDay {
		return MaxStartDay
	}
	return day
}

// DateOf truncates t to its calendar date at UTC midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ComputeMonthWindow returns the custom month containing referenceDate.
//
// When the reference day is on or after startDay the window starts in the same
// calendar month, otherwise it starts on startDay of the previous month. The window
// ends the day before the following custom month starts.
//
// Example:
//
//	ComputeMonthWindow(2024-03-10, 25) // [2024-02-25, 2024-03-24]
func ComputeMonthWindow(referenceDate time.Time, startDay int) MonthWindow {
	startDay = ClampStartDay(startDay)
	y, m, d := DateOf(referenceDate).Date()
	if d < startDay {
		y, m = stepMonth(y, m, -1)
	}

	start := time.Date(y, m, startDay, 0, 0, 0, 0, time.UTC)
	ny, nm := stepMonth(y, m, 1)
	end := time.Date(ny, nm, startDay, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)

	return MonthWindow{Start: start, End: end}
}

// PreviousWindow returns the custom month immediately before current.
// Applying ComputeMonthWindow to any date inside the result yields the same bounds.
func PreviousWindow(current MonthWindow, startDay int) MonthWindow {
	startDay = ClampStartDay(startDay)
	py, pm := stepMonth(current.Start.Year(), current.Start.Month(), -1)

	return MonthWindow{
		Start: time.Date(py, pm, startDay, 0, 0, 0, 0, time.UTC),
		End:   current.Start.AddDate(0, 0, -1),
	}
}

// stepMonth moves (year, month) by delta months with year rollover.
func stepMonth(year int, month time.Month, delta int) (int, time.Month) {
	idx := year*12 + int(month) - 1 + delta
	return idx / 12, time.Month(idx%12 + 1)
}
