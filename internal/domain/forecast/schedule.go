package forecast

import (
	"time"

	"github.com/praktijkdash/cashflow-backend/internal/domain/ledger"
)

// Schedule is a monthly day-of-month recurrence (crediteur payments,
// recurring omzet). Day may be 1-31; months shorter than Day clip the
// occurrence to their last calendar day, so a day-31 schedule fires on
// Feb 28 (29 in leap years) and on the 30th of 30-day months.
type Schedule struct {
	Day int
}

// Occurrences returns a restartable generator over the dates on which
// the schedule falls within the half-open window [from, from+days).
// Each call to the returned function yields the next occurrence in
// ascending order; ok is false once the window is exhausted.
func (s Schedule) Occurrences(from time.Time, days int) func() (time.Time, bool) {
	start := ledger.DateOnly(from)
	end := start.AddDate(0, 0, days)

	year, month := start.Year(), start.Month()

	return func() (time.Time, bool) {
		for {
			occ := occurrenceIn(year, month, s.Day)
			year, month = nextMonth(year, month)

			if occ.Before(start) {
				continue
			}
			if !occ.Before(end) {
				return time.Time{}, false
			}
			return occ, true
		}
	}
}

// occurrenceIn places day in the given month, clipped to month length.
func occurrenceIn(year int, month time.Month, day int) time.Time {
	if max := ledger.DaysInMonth(year, month); day > max {
		day = max
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func nextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}
