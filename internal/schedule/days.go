package schedule

import (
	"sort"
	"strings"
	"time"
)

// tokenWeekdays maps every accepted weekday token (lowercased) to its
// weekday. Single letters follow the common timetable convention:
// "T" is Tuesday and "Th" is Thursday.
var tokenWeekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"sun":       time.Sunday,
	"su":        time.Sunday,
	"monday":    time.Monday,
	"mon":       time.Monday,
	"m":         time.Monday,
	"tuesday":   time.Tuesday,
	"tues":      time.Tuesday,
	"tue":       time.Tuesday,
	"tu":        time.Tuesday,
	"t":         time.Tuesday,
	"wednesday": time.Wednesday,
	"wed":       time.Wednesday,
	"w":         time.Wednesday,
	"thursday":  time.Thursday,
	"thurs":     time.Thursday,
	"thur":      time.Thursday,
	"thu":       time.Thursday,
	"th":        time.Thursday,
	"friday":    time.Friday,
	"fri":       time.Friday,
	"f":         time.Friday,
	"saturday":  time.Saturday,
	"sat":       time.Saturday,
	"sa":        time.Saturday,
}

// DaySet is a canonical set of scheduled weekdays.
type DaySet map[time.Weekday]struct{}

// ParseDays parses a free-text weekday specification ("Mon, Wed, Fri") into
// a DaySet. Tokens are case-insensitive and separated by commas or
// whitespace. Unrecognized tokens are ignored so a partially-typed schedule
// degrades gracefully rather than erroring.
func ParseDays(raw string) DaySet {
	return ParseDayList(strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t'
	}))
}

// ParseDayList parses a list of weekday tokens into a DaySet.
func ParseDayList(tokens []string) DaySet {
	set := make(DaySet)
	for _, tok := range tokens {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok == "" {
			continue
		}
		if day, ok := tokenWeekdays[tok]; ok {
			set[day] = struct{}{}
		}
	}
	return set
}

// Matches reports whether the date falls on a scheduled weekday. An empty
// set matches every date: an absent or unparseable day specification means
// the schedule applies daily, not never. Callers that want strict
// no-schedule-no-match semantics must check len(set) themselves.
func (s DaySet) Matches(date time.Time) bool {
	if len(s) == 0 {
		return true
	}
	_, ok := s[date.Weekday()]
	return ok
}

// Weekdays returns the set's members in Sunday-first order, for stable
// presentation in API responses.
func (s DaySet) Weekdays() []time.Weekday {
	days := make([]time.Weekday, 0, len(s))
	for d := range s {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	return days
}

// Names returns the full weekday names of the set's members, Sunday first.
func (s DaySet) Names() []string {
	days := s.Weekdays()
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.String()
	}
	return names
}
