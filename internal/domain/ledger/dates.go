package ledger

import "time"

// DateLayout is the wire and storage format for calendar dates.
const DateLayout = "2006-01-02"

// DateOnly truncates t to a calendar date in UTC. All domain date
// arithmetic goes through this so that time-of-day and timezone never
// influence day distances.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DaysBetween returns the absolute number of calendar days between a
// and b, ignoring time of day.
func DaysBetween(a, b time.Time) int {
	d := int(DateOnly(a).Sub(DateOnly(b)).Hours() / 24)
	if d < 0 {
		d = -d
	}
	return d
}

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
