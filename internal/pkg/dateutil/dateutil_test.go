package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAddMonthsClampsToMonthEnd(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		months   int
		expected time.Time
	}{
		{"plain month", date(2025, time.January, 15), 1, date(2025, time.February, 15)},
		{"jan 31 to feb", date(2025, time.January, 31), 1, date(2025, time.February, 28)},
		{"jan 31 to feb leap", date(2024, time.January, 31), 1, date(2024, time.February, 29)},
		{"jan 31 to april", date(2025, time.January, 31), 3, date(2025, time.April, 30)},
		{"year rollover", date(2025, time.November, 30), 3, date(2026, time.February, 28)},
		{"negative", date(2025, time.March, 31), -1, date(2025, time.February, 28)},
		{"negative year rollover", date(2025, time.January, 15), -2, date(2024, time.November, 15)},
		{"zero", date(2025, time.July, 7), 0, date(2025, time.July, 7)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AddMonths(tt.start, tt.months))
		})
	}
}

func TestAddYears(t *testing.T) {
	assert.Equal(t, date(2026, time.March, 1), AddYears(date(2025, time.March, 1), 1))
	assert.Equal(t, date(2025, time.February, 28), AddYears(date(2024, time.February, 29), 1))
}

func TestYearsBetween(t *testing.T) {
	joining := date(2023, time.June, 15)

	assert.Equal(t, 0, YearsBetween(joining, date(2023, time.June, 15)))
	assert.Equal(t, 0, YearsBetween(joining, date(2024, time.June, 14)))
	assert.Equal(t, 1, YearsBetween(joining, date(2024, time.June, 15)))
	assert.Equal(t, 1, YearsBetween(joining, date(2025, time.June, 14)))
	assert.Equal(t, 2, YearsBetween(joining, date(2025, time.June, 15)))
	assert.Equal(t, 0, YearsBetween(joining, date(2023, time.January, 1)))
}

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 31, DaysIn(2025, time.January))
	assert.Equal(t, 28, DaysIn(2025, time.February))
	assert.Equal(t, 29, DaysIn(2024, time.February))
	assert.Equal(t, 30, DaysIn(2025, time.April))
}

func TestDateTruncates(t *testing.T) {
	ts := time.Date(2025, time.May, 3, 17, 45, 12, 999, time.UTC)
	assert.Equal(t, date(2025, time.May, 3), Date(ts))
}

func TestMonthBounds(t *testing.T) {
	assert.Equal(t, date(2025, time.February, 1), MonthStart(date(2025, time.February, 17)))
	assert.Equal(t, date(2025, time.February, 28), MonthEnd(date(2025, time.February, 17)))
	assert.Equal(t, date(2024, time.February, 29), MonthEnd(date(2024, time.February, 1)))
}
