package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"attendance-portal-backend/internal/model"
)

func signIn(at time.Time) model.AttendanceEvent {
	return model.AttendanceEvent{Type: model.EventSignIn, RecordedAt: at}
}

func signOut(at time.Time) model.AttendanceEvent {
	return model.AttendanceEvent{Type: model.EventSignOut, RecordedAt: at}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeFullWeek(t *testing.T) {
	// 2025-04-21 (Monday) .. 2025-04-27 (Sunday), Sundays excluded.
	period := NewPeriod(date(2025, 4, 21), date(2025, 4, 27), time.UTC)
	today := date(2025, 5, 15)

	events := []model.AttendanceEvent{
		signIn(time.Date(2025, 4, 22, 7, 5, 0, 0, time.UTC)),
	}

	got := Compute(events, period, time.Sunday, today)
	assert.Equal(t, Statistics{
		EligibleDays: 6,
		PresentDays:  1,
		AbsentDays:   5,
		Percentage:   17,
	}, got)
}

func TestComputeTable(t *testing.T) {
	// 2025-04-21 is a Monday.
	monday := date(2025, 4, 21)
	sunday := date(2025, 4, 27)
	farFuture := date(2026, 1, 1)

	testCases := []struct {
		name     string
		events   []model.AttendanceEvent
		period   Period
		excluded time.Weekday
		today    time.Time
		expected Statistics
	}{
		{
			name:     "no events means every eligible day absent",
			events:   nil,
			period:   NewPeriod(monday, sunday, time.UTC),
			excluded: time.Sunday,
			today:    farFuture,
			expected: Statistics{EligibleDays: 6, PresentDays: 0, AbsentDays: 6, Percentage: 0},
		},
		{
			name: "sign-out alone does not count as presence",
			events: []model.AttendanceEvent{
				signOut(time.Date(2025, 4, 22, 12, 0, 0, 0, time.UTC)),
			},
			period:   NewPeriod(monday, sunday, time.UTC),
			excluded: time.Sunday,
			today:    farFuture,
			expected: Statistics{EligibleDays: 6, PresentDays: 0, AbsentDays: 6, Percentage: 0},
		},
		{
			name: "multiple sign-ins on one day count once",
			events: []model.AttendanceEvent{
				signIn(time.Date(2025, 4, 22, 7, 0, 0, 0, time.UTC)),
				signIn(time.Date(2025, 4, 22, 13, 0, 0, 0, time.UTC)),
			},
			period:   NewPeriod(monday, sunday, time.UTC),
			excluded: time.Sunday,
			today:    farFuture,
			expected: Statistics{EligibleDays: 6, PresentDays: 1, AbsentDays: 5, Percentage: 17},
		},
		{
			name: "events outside the period are ignored",
			events: []model.AttendanceEvent{
				signIn(time.Date(2025, 4, 10, 7, 0, 0, 0, time.UTC)),
				signIn(time.Date(2025, 5, 2, 7, 0, 0, 0, time.UTC)),
			},
			period:   NewPeriod(monday, sunday, time.UTC),
			excluded: time.Sunday,
			today:    farFuture,
			expected: Statistics{EligibleDays: 6, PresentDays: 0, AbsentDays: 6, Percentage: 0},
		},
		{
			name: "days after today do not exist yet",
			events: []model.AttendanceEvent{
				signIn(time.Date(2025, 4, 21, 7, 0, 0, 0, time.UTC)),
			},
			period:   NewPeriod(monday, sunday, time.UTC),
			excluded: time.Sunday,
			// Mid-period: only Monday through Wednesday have happened.
			today:    date(2025, 4, 23),
			expected: Statistics{EligibleDays: 3, PresentDays: 1, AbsentDays: 2, Percentage: 33},
		},
		{
			name:     "period entirely in the future",
			events:   nil,
			period:   NewPeriod(monday, sunday, time.UTC),
			excluded: time.Sunday,
			today:    date(2025, 4, 1),
			expected: Statistics{},
		},
		{
			name:     "inverted period degrades to zero eligible days",
			events:   nil,
			period:   NewPeriod(sunday, monday, time.UTC),
			excluded: time.Sunday,
			today:    farFuture,
			expected: Statistics{},
		},
		{
			name: "different excluded weekday",
			events: []model.AttendanceEvent{
				signIn(time.Date(2025, 4, 21, 7, 0, 0, 0, time.UTC)),
			},
			period:   NewPeriod(monday, sunday, time.UTC),
			excluded: time.Wednesday,
			today:    farFuture,
			expected: Statistics{EligibleDays: 6, PresentDays: 1, AbsentDays: 5, Percentage: 17},
		},
		{
			name: "single day period, present",
			events: []model.AttendanceEvent{
				signIn(time.Date(2025, 4, 21, 7, 0, 0, 0, time.UTC)),
			},
			period:   NewPeriod(monday, monday, time.UTC),
			excluded: time.Sunday,
			today:    farFuture,
			expected: Statistics{EligibleDays: 1, PresentDays: 1, AbsentDays: 0, Percentage: 100},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Compute(tc.events, tc.period, tc.excluded, tc.today)
			assert.Equal(t, tc.expected, got)
			assert.Equal(t, got.EligibleDays, got.PresentDays+got.AbsentDays)
			assert.GreaterOrEqual(t, got.Percentage, 0)
			assert.LessOrEqual(t, got.Percentage, 100)
		})
	}
}

// For a period containing exactly one excluded-weekday occurrence, the
// eligible count is the period's day count minus that one occurrence.
func TestComputeExcludedWeekdayOccurrence(t *testing.T) {
	// Wed 2025-04-23 .. Tue 2025-04-29 contains exactly one Sunday.
	period := NewPeriod(date(2025, 4, 23), date(2025, 4, 29), time.UTC)
	got := Compute(nil, period, time.Sunday, date(2026, 1, 1))
	assert.Equal(t, 6, got.EligibleDays)
}

func TestComputeMany(t *testing.T) {
	period := NewPeriod(date(2025, 4, 21), date(2025, 4, 27), time.UTC)
	today := date(2026, 1, 1)

	subjects := []SubjectEvents{
		{StudentID: 1, Events: []model.AttendanceEvent{
			signIn(time.Date(2025, 4, 21, 7, 0, 0, 0, time.UTC)),
			signIn(time.Date(2025, 4, 22, 7, 0, 0, 0, time.UTC)),
			signIn(time.Date(2025, 4, 23, 7, 0, 0, 0, time.UTC)),
			signIn(time.Date(2025, 4, 24, 7, 0, 0, 0, time.UTC)),
			signIn(time.Date(2025, 4, 25, 7, 0, 0, 0, time.UTC)),
			signIn(time.Date(2025, 4, 26, 7, 0, 0, 0, time.UTC)),
		}},
		{StudentID: 2, Events: []model.AttendanceEvent{
			signIn(time.Date(2025, 4, 21, 7, 0, 0, 0, time.UTC)),
		}},
	}

	perStudent, agg := ComputeMany(subjects, period, time.Sunday, today)

	assert.Equal(t, 100, perStudent[1].Percentage)
	assert.Equal(t, 17, perStudent[2].Percentage)

	// The aggregate is computed from summed day counts: 7 of 12, i.e. 58%.
	// It is intentionally not the mean of the per-student percentages
	// (which would be 59 here); small-N students must not skew the cohort.
	assert.Equal(t, Statistics{
		EligibleDays: 12,
		PresentDays:  7,
		AbsentDays:   5,
		Percentage:   58,
	}, agg)
}

func TestComputeManyEmptyCohort(t *testing.T) {
	period := NewPeriod(date(2025, 4, 21), date(2025, 4, 27), time.UTC)
	perStudent, agg := ComputeMany(nil, period, time.Sunday, date(2026, 1, 1))
	assert.Empty(t, perStudent)
	assert.Equal(t, Statistics{}, agg)
}

func TestPeriodNormalization(t *testing.T) {
	p := NewPeriod(
		time.Date(2025, 4, 21, 13, 45, 0, 0, time.UTC),
		time.Date(2025, 4, 27, 2, 0, 0, 0, time.UTC),
		time.UTC,
	)

	assert.Equal(t, time.Date(2025, 4, 21, 0, 0, 0, 0, time.UTC), p.Start)
	assert.True(t, p.Contains(time.Date(2025, 4, 27, 23, 59, 0, 0, time.UTC)))
	assert.False(t, p.Contains(time.Date(2025, 4, 28, 0, 0, 0, 0, time.UTC)))
	assert.True(t, p.Valid())
}
