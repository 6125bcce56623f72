package contract

import (
	"time"

	"github.com/kalibra-hr/workforce-backend-go/internal/pkg/dateutil"
)

type ContractState string

const (
	ContractStateOpen   ContractState = "open"
	ContractStateClosed ContractState = "closed"
)

const DefaultProbationMonths = 6

type Contract struct {
	ID                    string
	EmployeeID            string
	StartDate             time.Time
	EndDate               *time.Time
	State                 ContractState
	ProbationPeriodMonths int
	WorkScheduleID        *string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// ProbationMonths returns the contract's probation period, falling back to
// the default when the field was never set.
func (c Contract) ProbationMonths() int {
	if c.ProbationPeriodMonths <= 0 {
		return DefaultProbationMonths
	}
	return c.ProbationPeriodMonths
}

// ProbationEnd is the first day the employee is out of probation.
func (c Contract) ProbationEnd() time.Time {
	return dateutil.AddMonths(c.StartDate, c.ProbationMonths())
}

// IsOpenDuring reports whether the contract is open and covers any part of
// the [from, to] window.
func (c Contract) IsOpenDuring(from, to time.Time) bool {
	if c.State != ContractStateOpen {
		return false
	}
	if c.StartDate.After(to) {
		return false
	}
	if c.EndDate != nil && c.EndDate.Before(from) {
		return false
	}
	return true
}
