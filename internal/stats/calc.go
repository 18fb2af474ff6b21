package stats

import (
	"math"
	"time"

	"attendance-portal-backend/internal/model"
)

const dayKeyLayout = "2006-01-02"

// Period is an inclusive calendar period, normalized so Start is local
// midnight and End is the last instant of its day.
type Period struct {
	Start time.Time
	End   time.Time
}

// NewPeriod builds a Period from two dates in the given zone. The inputs'
// time-of-day components are discarded. A start after end is kept as-is;
// the calculator reports zero eligible days for it instead of failing, so
// report pages stay usable while a user is still picking dates.
func NewPeriod(start, end time.Time, loc *time.Location) Period {
	s := start.In(loc)
	e := end.In(loc)
	return Period{
		Start: time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, loc),
		End:   time.Date(e.Year(), e.Month(), e.Day(), 23, 59, 59, 999999999, loc),
	}
}

// Valid reports whether the period's bounds are ordered.
func (p Period) Valid() bool {
	return !p.Start.After(p.End)
}

// Contains reports whether t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// Statistics is the result of one computation. It always satisfies
// EligibleDays == PresentDays + AbsentDays. It is derived on demand and
// never persisted.
type Statistics struct {
	EligibleDays int `json:"eligible_days"`
	PresentDays  int `json:"present_days"`
	AbsentDays   int `json:"absent_days"`
	Percentage   int `json:"percentage"`
}

// SubjectEvents pairs a student with their events for cohort computations.
type SubjectEvents struct {
	StudentID int64
	Events    []model.AttendanceEvent
}

// Compute derives presence statistics for one student over a period.
// A day counts as present when it has at least one sign-in event; a lone
// sign-out does not count, which favors under- over over-counting. Days
// after today are neither present nor absent, and the excluded weekday is
// skipped entirely. today is an explicit parameter so callers control the
// clock.
func Compute(events []model.AttendanceEvent, period Period, excluded time.Weekday, today time.Time) Statistics {
	loc := period.Start.Location()

	present := make(map[string]struct{})
	for _, ev := range events {
		if ev.Type != model.EventSignIn {
			continue
		}
		if !period.Contains(ev.RecordedAt) {
			continue
		}
		present[ev.RecordedAt.In(loc).Format(dayKeyLayout)] = struct{}{}
	}

	return countDays(present, period, excluded, today)
}

// ComputeMany derives per-student statistics plus one cohort aggregate.
// The aggregate sums day counts across students before computing a single
// percentage; it is deliberately not the mean of per-student percentages,
// which would let small-N students skew the cohort figure.
func ComputeMany(subjects []SubjectEvents, period Period, excluded time.Weekday, today time.Time) (map[int64]Statistics, Statistics) {
	perStudent := make(map[int64]Statistics, len(subjects))
	var agg Statistics

	for _, subj := range subjects {
		st := Compute(subj.Events, period, excluded, today)
		perStudent[subj.StudentID] = st
		agg.EligibleDays += st.EligibleDays
		agg.PresentDays += st.PresentDays
		agg.AbsentDays += st.AbsentDays
	}
	agg.Percentage = percentage(agg.PresentDays, agg.EligibleDays)

	return perStudent, agg
}

func countDays(present map[string]struct{}, period Period, excluded time.Weekday, today time.Time) Statistics {
	var st Statistics
	if !period.Valid() {
		return st
	}

	loc := period.Start.Location()
	ty, tm, td := today.In(loc).Date()
	endOfToday := time.Date(ty, tm, td, 23, 59, 59, 999999999, loc)

	end := period.End
	if end.After(endOfToday) {
		end = endOfToday
	}

	for day := period.Start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if day.Weekday() == excluded {
			continue
		}
		st.EligibleDays++
		if _, ok := present[day.Format(dayKeyLayout)]; ok {
			st.PresentDays++
		} else {
			st.AbsentDays++
		}
	}

	st.Percentage = percentage(st.PresentDays, st.EligibleDays)
	return st
}

func percentage(present, eligible int) int {
	if eligible == 0 {
		return 0
	}
	return int(math.Round(100 * float64(present) / float64(eligible)))
}
