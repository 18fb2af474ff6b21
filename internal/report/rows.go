package report

import (
	"sort"
	"time"

	"attendance-portal-backend/internal/model"
	"attendance-portal-backend/internal/stats"
)

// Row is one exportable line: a student on a date with the day's first
// sign-in and last sign-out, either of which may be missing. Rows carry no
// derived statistics; presence percentages come from the stats package.
type Row struct {
	Student model.Student `json:"student"`
	Date    time.Time     `json:"date"`
	SignIn  *time.Time    `json:"sign_in"`
	SignOut *time.Time    `json:"sign_out"`
}

type dayKey struct {
	studentID int64
	date      string
}

// BuildRows maps students and their raw events to export rows for one
// reporting period. Only days with at least one event produce a row.
// Ordering is stable: surname, then first name, then student ID, then date.
func BuildRows(students []model.Student, events []model.AttendanceEvent, period stats.Period) []Row {
	loc := period.Start.Location()

	byID := make(map[int64]model.Student, len(students))
	for _, s := range students {
		byID[s.ID] = s
	}

	days := make(map[dayKey]*Row)
	for _, ev := range events {
		student, ok := byID[ev.StudentID]
		if !ok {
			continue
		}
		if !period.Contains(ev.RecordedAt) {
			continue
		}

		local := ev.RecordedAt.In(loc)
		key := dayKey{studentID: ev.StudentID, date: local.Format("2006-01-02")}
		row, ok := days[key]
		if !ok {
			day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
			row = &Row{Student: student, Date: day}
			days[key] = row
		}

		at := ev.RecordedAt
		switch ev.Type {
		case model.EventSignIn:
			if row.SignIn == nil || at.Before(*row.SignIn) {
				row.SignIn = &at
			}
		case model.EventSignOut:
			if row.SignOut == nil || at.After(*row.SignOut) {
				row.SignOut = &at
			}
		}
	}

	rows := make([]Row, 0, len(days))
	for _, row := range days {
		rows = append(rows, *row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Student.Surname != b.Student.Surname {
			return a.Student.Surname < b.Student.Surname
		}
		if a.Student.FirstName != b.Student.FirstName {
			return a.Student.FirstName < b.Student.FirstName
		}
		if a.Student.ID != b.Student.ID {
			return a.Student.ID < b.Student.ID
		}
		return a.Date.Before(b.Date)
	})

	return rows
}
