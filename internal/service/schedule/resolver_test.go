package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalibra-hr/workforce-backend-go/internal/domain/contract"
	"github.com/kalibra-hr/workforce-backend-go/internal/domain/schedule"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type fakeContractRepo struct {
	contracts []contract.Contract
}

func (f *fakeContractRepo) Create(ctx context.Context, c contract.Contract) (contract.Contract, error) {
	f.contracts = append(f.contracts, c)
	return c, nil
}

func (f *fakeContractRepo) GetOpenByEmployee(ctx context.Context, employeeID string) (contract.Contract, error) {
	for _, c := range f.contracts {
		if c.EmployeeID == employeeID && c.State == contract.ContractStateOpen {
			return c, nil
		}
	}
	return contract.Contract{}, contract.ErrNoOpenContract
}

func (f *fakeContractRepo) GetEarliestByEmployee(ctx context.Context, employeeID string) (contract.Contract, error) {
	return contract.Contract{}, contract.ErrContractNotFound
}

func (f *fakeContractRepo) ListOpen(ctx context.Context, asOf time.Time) ([]contract.Contract, error) {
	return f.contracts, nil
}

type fakeScheduleRepo struct {
	schedules  map[string]schedule.WorkSchedule
	exceptions []schedule.CalendarException
}

func (f *fakeScheduleRepo) Create(ctx context.Context, ws schedule.WorkSchedule) (schedule.WorkSchedule, error) {
	f.schedules[ws.ID] = ws
	return ws, nil
}

func (f *fakeScheduleRepo) GetByID(ctx context.Context, id string) (schedule.WorkSchedule, error) {
	ws, ok := f.schedules[id]
	if !ok {
		return schedule.WorkSchedule{}, schedule.ErrScheduleNotFound
	}
	return ws, nil
}

func (f *fakeScheduleRepo) ListExceptionsInRange(ctx context.Context, workScheduleID string, from, to time.Time) ([]schedule.CalendarException, error) {
	var out []schedule.CalendarException
	for _, exc := range f.exceptions {
		if exc.WorkScheduleID == workScheduleID && exc.Overlaps(from, to) {
			out = append(out, exc)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) AddException(ctx context.Context, exc schedule.CalendarException) (schedule.CalendarException, error) {
	f.exceptions = append(f.exceptions, exc)
	return exc, nil
}

func newResolverFixture() (*fakeContractRepo, *fakeScheduleRepo, *Resolver) {
	contracts := &fakeContractRepo{}
	schedules := &fakeScheduleRepo{schedules: make(map[string]schedule.WorkSchedule)}
	return contracts, schedules, NewResolver(contracts, schedules)
}

func TestWorkingWeekdaysFromScheduleLines(t *testing.T) {
	contracts, schedules, resolver := newResolverFixture()

	scheduleID := "ws-1"
	schedules.schedules[scheduleID] = schedule.WorkSchedule{
		ID:   scheduleID,
		Name: "Standard Week",
		Lines: []schedule.WorkScheduleLine{
			{DayOfWeek: 0, DurationDays: 1}, // Monday
			{DayOfWeek: 1, DurationDays: 1},
			{DayOfWeek: 2, DurationDays: 1},
			{DayOfWeek: 3, DurationDays: 1},
			{DayOfWeek: 4, DurationDays: 0.5}, // half-day Friday still works
			{DayOfWeek: 5, DurationDays: 0},   // Saturday off
		},
	}
	contracts.contracts = append(contracts.contracts, contract.Contract{
		ID:             "c-1",
		EmployeeID:     "emp-1",
		StartDate:      date(2025, time.January, 1),
		State:          contract.ContractStateOpen,
		WorkScheduleID: &scheduleID,
	})

	working, err := resolver.WorkingWeekdays(context.Background(), "emp-1", date(2025, time.June, 1))
	require.NoError(t, err)

	assert.True(t, working[time.Monday])
	assert.True(t, working[time.Friday])
	assert.False(t, working[time.Saturday])
	assert.False(t, working[time.Sunday])
	assert.Len(t, working, 5)
}

func TestWorkingWeekdaysNoOpenContract(t *testing.T) {
	_, _, resolver := newResolverFixture()

	working, err := resolver.WorkingWeekdays(context.Background(), "emp-1", date(2025, time.June, 1))
	require.NoError(t, err)
	assert.Empty(t, working)
}

func TestWorkingWeekdaysContractNotYetStarted(t *testing.T) {
	contracts, _, resolver := newResolverFixture()
	scheduleID := "ws-1"
	contracts.contracts = append(contracts.contracts, contract.Contract{
		ID:             "c-1",
		EmployeeID:     "emp-1",
		StartDate:      date(2025, time.September, 1),
		State:          contract.ContractStateOpen,
		WorkScheduleID: &scheduleID,
	})

	working, err := resolver.WorkingWeekdays(context.Background(), "emp-1", date(2025, time.June, 1))
	require.NoError(t, err)
	assert.Empty(t, working)
}

func TestPublicHolidayRanges(t *testing.T) {
	contracts, schedules, resolver := newResolverFixture()
	scheduleID := "ws-1"
	schedules.schedules[scheduleID] = schedule.WorkSchedule{ID: scheduleID}
	schedules.exceptions = []schedule.CalendarException{
		{ID: "e-1", WorkScheduleID: scheduleID, DateFrom: date(2025, time.June, 5), DateTo: date(2025, time.June, 6), Label: "Festival"},
		{ID: "e-2", WorkScheduleID: scheduleID, DateFrom: date(2025, time.August, 17), DateTo: date(2025, time.August, 17), Label: "Independence Day"},
	}
	contracts.contracts = append(contracts.contracts, contract.Contract{
		ID:             "c-1",
		EmployeeID:     "emp-1",
		StartDate:      date(2025, time.January, 1),
		State:          contract.ContractStateOpen,
		WorkScheduleID: &scheduleID,
	})

	excs, err := resolver.PublicHolidayRanges(context.Background(), "emp-1", date(2025, time.June, 1), date(2025, time.June, 30))
	require.NoError(t, err)
	require.Len(t, excs, 1)
	assert.Equal(t, "Festival", excs[0].Label)
}

func TestHasOpenContractWindowEdges(t *testing.T) {
	contracts, _, resolver := newResolverFixture()
	end := date(2025, time.March, 31)
	contracts.contracts = append(contracts.contracts, contract.Contract{
		ID:         "c-1",
		EmployeeID: "emp-1",
		StartDate:  date(2025, time.January, 1),
		EndDate:    &end,
		State:      contract.ContractStateOpen,
	})

	ctx := context.Background()

	ok, err := resolver.HasOpenContract(ctx, "emp-1", date(2025, time.February, 1), date(2025, time.February, 28))
	require.NoError(t, err)
	assert.True(t, ok)

	// Overlap on a single edge day still counts.
	ok, err = resolver.HasOpenContract(ctx, "emp-1", date(2025, time.March, 31), date(2025, time.April, 30))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = resolver.HasOpenContract(ctx, "emp-1", date(2025, time.April, 1), date(2025, time.April, 30))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = resolver.HasOpenContract(ctx, "emp-1", date(2024, time.November, 1), date(2024, time.November, 30))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = resolver.HasOpenContract(ctx, "emp-2", date(2025, time.February, 1), date(2025, time.February, 28))
	require.NoError(t, err)
	assert.False(t, ok)
}
