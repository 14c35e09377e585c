package validation

import "time"

// AddMonthsClamped shifts t by the given number of months, clamping to the
// last day of the target month when the source day does not exist there
// (Jan 31 + 1 month = Feb 28/29, never Mar 2/3).
func AddMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	lastDay := first.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(first.Year(), first.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// WithinMonths reports whether fecha falls inside the closed window
// [ref - months, ref + months], with clamped month arithmetic on both ends.
// Comparison is by calendar date.
func WithinMonths(fecha, ref time.Time, months int) bool {
	lower := DateOnly(AddMonthsClamped(ref, -months))
	upper := DateOnly(AddMonthsClamped(ref, months))
	f := DateOnly(fecha)
	return !f.Before(lower) && !f.After(upper)
}

// DateOnly truncates t to midnight in its own location.
func DateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
