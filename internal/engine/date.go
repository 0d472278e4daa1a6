package engine

import "time"

// DayLayout is the calendar-date format used for streak bookkeeping and the
// daily reset. Dates in this form compare correctly as plain strings.
const DayLayout = "2006-01-02"

// DayOf returns the calendar date of t in t's location.
func DayOf(t time.Time) string {
	return t.Format(DayLayout)
}

// ParseDay parses a YYYY-MM-DD date.
func ParseDay(day string) (time.Time, error) {
	return time.Parse(DayLayout, day)
}

// IsDayBefore reports whether a is the calendar day immediately before b.
// AddDate handles month, year and leap boundaries; DST shifts do not apply
// to bare dates.
func IsDayBefore(a, b string) bool {
	ta, err := ParseDay(a)
	if err != nil {
		return false
	}
	return ta.AddDate(0, 0, 1).Format(DayLayout) == b
}

// IsWeekend reports whether the given date falls on a Saturday or Sunday.
func IsWeekend(day string) bool {
	t, err := ParseDay(day)
	if err != nil {
		return false
	}
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// EndOfDay returns the last millisecond of t's calendar day, 23:59:59.999.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 999_000_000, t.Location())
}
