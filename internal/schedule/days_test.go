package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDays(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected []time.Weekday
	}{
		{
			name:     "full names",
			raw:      "Monday, Wednesday, Friday",
			expected: []time.Weekday{time.Monday, time.Wednesday, time.Friday},
		},
		{
			name:     "common abbreviations",
			raw:      "Mon, Wed, Fri",
			expected: []time.Weekday{time.Monday, time.Wednesday, time.Friday},
		},
		{
			name:     "single letters, T is Tuesday",
			raw:      "M T W F",
			expected: []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Friday},
		},
		{
			name:     "Th is Thursday and does not collide with T",
			raw:      "TH",
			expected: []time.Weekday{time.Thursday},
		},
		{
			name:     "weekend abbreviations",
			raw:      "Sat,Sun",
			expected: []time.Weekday{time.Sunday, time.Saturday},
		},
		{
			name:     "mixed case and mixed separators",
			raw:      "mOnDaY; tue  THURS",
			expected: []time.Weekday{time.Monday, time.Tuesday, time.Thursday},
		},
		{
			name:     "unknown tokens are ignored",
			raw:      "Mon, Noday, 77, Fri",
			expected: []time.Weekday{time.Monday, time.Friday},
		},
		{
			name:     "duplicates collapse",
			raw:      "Mon Mon monday M",
			expected: []time.Weekday{time.Monday},
		},
		{
			name:     "empty input yields empty set",
			raw:      "",
			expected: []time.Weekday{},
		},
		{
			name:     "only garbage yields empty set",
			raw:      "banana, 3pm",
			expected: []time.Weekday{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			set := ParseDays(tc.raw)
			assert.ElementsMatch(t, tc.expected, set.Weekdays())
		})
	}
}

func TestParseDayList(t *testing.T) {
	set := ParseDayList([]string{"Mon", " wed ", "", "bogus", "F"})
	assert.ElementsMatch(t, []time.Weekday{time.Monday, time.Wednesday, time.Friday}, set.Weekdays())
}

func TestDaySetMatches(t *testing.T) {
	set := ParseDays("Mon, Wed, Fri")

	wednesday := time.Date(2025, 4, 23, 10, 0, 0, 0, time.UTC)
	thursday := time.Date(2025, 4, 24, 10, 0, 0, 0, time.UTC)

	assert.True(t, set.Matches(wednesday))
	assert.False(t, set.Matches(thursday))
}

func TestEmptySetMatchesEveryDate(t *testing.T) {
	set := ParseDays("")

	// A full week: the fallback policy treats no parsed days as "every day".
	start := time.Date(2025, 4, 21, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		assert.True(t, set.Matches(start.AddDate(0, 0, i)))
	}
}

func TestDaySetNames(t *testing.T) {
	set := ParseDays("Fri, Mon")
	assert.Equal(t, []string{"Monday", "Friday"}, set.Names())
}
