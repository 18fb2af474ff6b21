package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attendance-portal-backend/internal/model"
	"attendance-portal-backend/internal/stats"
)

func event(studentID int64, typ model.EventType, at time.Time) model.AttendanceEvent {
	return model.AttendanceEvent{StudentID: studentID, Type: typ, RecordedAt: at}
}

func TestBuildRows(t *testing.T) {
	period := stats.NewPeriod(
		time.Date(2025, 4, 21, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 27, 0, 0, 0, 0, time.UTC),
		time.UTC,
	)

	students := []model.Student{
		{ID: 1, FirstName: "Ana", Surname: "Zidar"},
		{ID: 2, FirstName: "Boris", Surname: "Adamic"},
	}

	znIn := time.Date(2025, 4, 21, 7, 5, 0, 0, time.UTC)
	znOut := time.Date(2025, 4, 21, 12, 0, 0, 0, time.UTC)
	adIn := time.Date(2025, 4, 22, 7, 30, 0, 0, time.UTC)

	events := []model.AttendanceEvent{
		event(1, model.EventSignIn, znIn),
		event(1, model.EventSignOut, znOut),
		event(2, model.EventSignIn, adIn),
	}

	rows := BuildRows(students, events, period)
	require.Len(t, rows, 2)

	// Sorted by surname: Adamic before Zidar.
	assert.Equal(t, "Adamic", rows[0].Student.Surname)
	require.NotNil(t, rows[0].SignIn)
	assert.True(t, rows[0].SignIn.Equal(adIn))
	assert.Nil(t, rows[0].SignOut)

	assert.Equal(t, "Zidar", rows[1].Student.Surname)
	require.NotNil(t, rows[1].SignIn)
	require.NotNil(t, rows[1].SignOut)
	assert.True(t, rows[1].SignIn.Equal(znIn))
	assert.True(t, rows[1].SignOut.Equal(znOut))
}

func TestBuildRowsFirstInLastOut(t *testing.T) {
	period := stats.NewPeriod(
		time.Date(2025, 4, 21, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 21, 0, 0, 0, 0, time.UTC),
		time.UTC,
	)
	students := []model.Student{{ID: 1, FirstName: "Ana", Surname: "Petrov"}}

	first := time.Date(2025, 4, 21, 7, 0, 0, 0, time.UTC)
	events := []model.AttendanceEvent{
		event(1, model.EventSignIn, first.Add(time.Hour)),
		event(1, model.EventSignIn, first),
		event(1, model.EventSignOut, first.Add(5*time.Hour)),
		event(1, model.EventSignOut, first.Add(8*time.Hour)),
	}

	rows := BuildRows(students, events, period)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].SignIn.Equal(first))
	assert.True(t, rows[0].SignOut.Equal(first.Add(8*time.Hour)))
}

func TestBuildRowsOrdersDatesWithinStudent(t *testing.T) {
	period := stats.NewPeriod(
		time.Date(2025, 4, 21, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 27, 0, 0, 0, 0, time.UTC),
		time.UTC,
	)
	students := []model.Student{{ID: 1, FirstName: "Ana", Surname: "Petrov"}}

	events := []model.AttendanceEvent{
		event(1, model.EventSignIn, time.Date(2025, 4, 23, 7, 0, 0, 0, time.UTC)),
		event(1, model.EventSignIn, time.Date(2025, 4, 21, 7, 0, 0, 0, time.UTC)),
		event(1, model.EventSignIn, time.Date(2025, 4, 22, 7, 0, 0, 0, time.UTC)),
	}

	rows := BuildRows(students, events, period)
	require.Len(t, rows, 3)
	assert.Equal(t, 21, rows[0].Date.Day())
	assert.Equal(t, 22, rows[1].Date.Day())
	assert.Equal(t, 23, rows[2].Date.Day())
}

func TestBuildRowsSkipsOutsidePeriodAndUnknownStudents(t *testing.T) {
	period := stats.NewPeriod(
		time.Date(2025, 4, 21, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 27, 0, 0, 0, 0, time.UTC),
		time.UTC,
	)
	students := []model.Student{{ID: 1, FirstName: "Ana", Surname: "Petrov"}}

	events := []model.AttendanceEvent{
		event(1, model.EventSignIn, time.Date(2025, 5, 2, 7, 0, 0, 0, time.UTC)),   // outside
		event(99, model.EventSignIn, time.Date(2025, 4, 22, 7, 0, 0, 0, time.UTC)), // unknown
	}

	rows := BuildRows(students, events, period)
	assert.Empty(t, rows)
}
