package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(s Schedule, from time.Time, days int) []time.Time {
	var out []time.Time
	next := s.Occurrences(from, days)
	for occ, ok := next(); ok; occ, ok = next() {
		out = append(out, occ)
	}
	return out
}

func TestSchedule_MonthlyOccurrences(t *testing.T) {
	from := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	occs := collect(Schedule{Day: 15}, from, 90)
	require.Len(t, occs, 3)
	assert.Equal(t, time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC), occs[0])
	assert.Equal(t, time.Date(2025, time.April, 15, 0, 0, 0, 0, time.UTC), occs[1])
	assert.Equal(t, time.Date(2025, time.May, 15, 0, 0, 0, 0, time.UTC), occs[2])
}

func TestSchedule_ClipsToFebruary(t *testing.T) {
	from := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)

	occs := collect(Schedule{Day: 31}, from, 28)
	require.Len(t, occs, 1)
	assert.Equal(t, time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC), occs[0])
}

func TestSchedule_ClipsToLeapFebruary(t *testing.T) {
	from := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)

	occs := collect(Schedule{Day: 31}, from, 29)
	require.Len(t, occs, 1)
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), occs[0])
}

func TestSchedule_ClipsToThirtyDayMonth(t *testing.T) {
	from := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)

	occs := collect(Schedule{Day: 31}, from, 30)
	require.Len(t, occs, 1)
	assert.Equal(t, time.Date(2025, time.April, 30, 0, 0, 0, 0, time.UTC), occs[0])
}

func TestSchedule_SkipsPassedDayThisMonth(t *testing.T) {
	// Starting on the 20th, a day-15 schedule first fires next month.
	from := time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC)

	occs := collect(Schedule{Day: 15}, from, 30)
	require.Len(t, occs, 1)
	assert.Equal(t, time.Date(2025, time.April, 15, 0, 0, 0, 0, time.UTC), occs[0])
}

func TestSchedule_StartDayIncluded(t *testing.T) {
	from := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)

	occs := collect(Schedule{Day: 15}, from, 1)
	require.Len(t, occs, 1)
	assert.Equal(t, from, occs[0])
}

func TestSchedule_EmptyWindow(t *testing.T) {
	from := time.Date(2025, time.March, 16, 0, 0, 0, 0, time.UTC)

	occs := collect(Schedule{Day: 15}, from, 10)
	assert.Empty(t, occs)
}
