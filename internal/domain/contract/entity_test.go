package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestProbationMonthsDefaultsWhenUnset(t *testing.T) {
	assert.Equal(t, DefaultProbationMonths, Contract{}.ProbationMonths())
	assert.Equal(t, 3, Contract{ProbationPeriodMonths: 3}.ProbationMonths())
}

func TestProbationEnd(t *testing.T) {
	c := Contract{StartDate: date(2025, time.January, 15), ProbationPeriodMonths: 6}
	assert.Equal(t, date(2025, time.July, 15), c.ProbationEnd())

	// Month-end start clamps rather than overflowing.
	c = Contract{StartDate: date(2025, time.August, 31), ProbationPeriodMonths: 6}
	assert.Equal(t, date(2026, time.February, 28), c.ProbationEnd())
}

func TestIsOpenDuring(t *testing.T) {
	end := date(2025, time.June, 30)
	c := Contract{
		StartDate: date(2025, time.January, 1),
		EndDate:   &end,
		State:     ContractStateOpen,
	}

	assert.True(t, c.IsOpenDuring(date(2025, time.March, 1), date(2025, time.March, 31)))
	assert.True(t, c.IsOpenDuring(date(2025, time.June, 30), date(2025, time.July, 31)))
	assert.True(t, c.IsOpenDuring(date(2024, time.December, 1), date(2025, time.January, 1)))
	assert.False(t, c.IsOpenDuring(date(2025, time.July, 1), date(2025, time.July, 31)))
	assert.False(t, c.IsOpenDuring(date(2024, time.November, 1), date(2024, time.December, 31)))

	c.State = ContractStateClosed
	assert.False(t, c.IsOpenDuring(date(2025, time.March, 1), date(2025, time.March, 31)))

	// Open-ended contract covers any later window.
	openEnded := Contract{StartDate: date(2025, time.January, 1), State: ContractStateOpen}
	assert.True(t, openEnded.IsOpenDuring(date(2030, time.January, 1), date(2030, time.December, 31)))
}
