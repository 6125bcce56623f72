package accrual

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalibra-hr/workforce-backend-go/internal/domain/contract"
	"github.com/kalibra-hr/workforce-backend-go/internal/domain/employee"
	"github.com/kalibra-hr/workforce-backend-go/internal/domain/leave"
	"github.com/kalibra-hr/workforce-backend-go/internal/pkg/dateutil"
	"github.com/kalibra-hr/workforce-backend-go/internal/service/leavetype"
)

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range f.employees {
		if emp.Active {
			out = append(out, emp)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	f.employees[emp.ID] = emp
	return emp, nil
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
	var found *contract.Contract
	for i := range f.contracts {
		c := f.contracts[i]
		if c.EmployeeID != employeeID {
			continue
		}
		if found == nil || c.StartDate.Before(found.StartDate) {
			found = &c
		}
	}
	if found == nil {
		return contract.Contract{}, contract.ErrContractNotFound
	}
	return *found, nil
}

func (f *fakeContractRepo) ListOpen(ctx context.Context, asOf time.Time) ([]contract.Contract, error) {
	var out []contract.Contract
	for _, c := range f.contracts {
		if c.State != contract.ContractStateOpen || c.StartDate.After(asOf) {
			continue
		}
		if c.EndDate != nil && c.EndDate.Before(asOf) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

type fakeAllocationRepo struct {
	allocations []leave.LeaveAllocation
	failFor     string // employee ID whose creates fail
}

func (f *fakeAllocationRepo) Create(ctx context.Context, alloc leave.LeaveAllocation) (leave.LeaveAllocation, error) {
	if f.failFor != "" && alloc.EmployeeID == f.failFor {
		return leave.LeaveAllocation{}, errors.New("storage unavailable")
	}
	f.allocations = append(f.allocations, alloc)
	return alloc, nil
}

func (f *fakeAllocationRepo) ListValidatedAuto(ctx context.Context, employeeID, leaveTypeID string) ([]leave.LeaveAllocation, error) {
	var out []leave.LeaveAllocation
	for _, a := range f.allocations {
		if a.EmployeeID == employeeID && a.LeaveTypeID == leaveTypeID &&
			a.State == leave.AllocationStateValidate && a.IsAutoAllocated {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAllocationRepo) ExistsValidatedAutoInWindow(ctx context.Context, employeeID, leaveTypeID string, from, to time.Time) (bool, error) {
	for _, a := range f.allocations {
		if a.EmployeeID == employeeID && a.LeaveTypeID == leaveTypeID &&
			a.State == leave.AllocationStateValidate && a.IsAutoAllocated &&
			!a.DateFrom.Before(from) && a.DateFrom.Before(to) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAllocationRepo) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveAllocation, error) {
	var out []leave.LeaveAllocation
	for _, a := range f.allocations {
		if a.EmployeeID == employeeID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAllocationRepo) AddTakenDays(ctx context.Context, allocationID string, days decimal.Decimal) error {
	for i := range f.allocations {
		if f.allocations[i].ID == allocationID {
			f.allocations[i].LeavesTaken = f.allocations[i].LeavesTaken.Add(days)
			return nil
		}
	}
	return leave.ErrAllocationNotFound
}

type fakeLeaveTypeRepo struct {
	types map[string]leave.LeaveType // keyed by code
}

func (f *fakeLeaveTypeRepo) Create(ctx context.Context, lt leave.LeaveType) (leave.LeaveType, error) {
	f.types[lt.CodeOrEmpty()] = lt
	return lt, nil
}

func (f *fakeLeaveTypeRepo) GetByCode(ctx context.Context, code string) (leave.LeaveType, error) {
	lt, ok := f.types[code]
	if !ok {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	return lt, nil
}

func (f *fakeLeaveTypeRepo) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	for _, lt := range f.types {
		if lt.ID == id {
			return lt, nil
		}
	}
	return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
}

func (f *fakeLeaveTypeRepo) List(ctx context.Context) ([]leave.LeaveType, error) {
	var out []leave.LeaveType
	for _, lt := range f.types {
		out = append(out, lt)
	}
	return out, nil
}

type fixture struct {
	employees   *fakeEmployeeRepo
	contracts   *fakeContractRepo
	allocations *fakeAllocationRepo
	service     *Service
}

func newFixture() *fixture {
	employees := &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
	contracts := &fakeContractRepo{}
	allocations := &fakeAllocationRepo{}
	catalog := leavetype.NewCatalog(&fakeLeaveTypeRepo{types: make(map[string]leave.LeaveType)})
	return &fixture{
		employees:   employees,
		contracts:   contracts,
		allocations: allocations,
		service:     NewService(employees, contracts, allocations, catalog),
	}
}

func (f *fixture) addEmployee(id string, joining time.Time, probationMonths int) {
	f.employees.employees[id] = employee.Employee{ID: id, FullName: "Employee " + id, Active: true}
	f.contracts.contracts = append(f.contracts.contracts, contract.Contract{
		ID:                    "c-" + id,
		EmployeeID:            id,
		StartDate:             joining,
		State:                 contract.ContractStateOpen,
		ProbationPeriodMonths: probationMonths,
	})
}

func TestRunAnnualFirstYearSchedule(t *testing.T) {
	f := newFixture()
	f.addEmployee("emp-1", date(2025, time.January, 15), 6)

	result, err := f.service.RunAnnual(context.Background(), date(2025, time.December, 15))
	require.NoError(t, err)

	assert.Equal(t, 1, result.EmployeesProcessed)
	assert.True(t, result.TotalDaysAllocated.Equal(decimal.NewFromFloat(30.0)),
		"got %s", result.TotalDaysAllocated)

	require.Len(t, f.allocations.allocations, 12)
	for i, alloc := range f.allocations.allocations[:11] {
		assert.True(t, alloc.NumberOfDays.Equal(decimal.NewFromFloat(2.0)), "instant %d: %s", i, alloc.NumberOfDays)
	}
	// The 12th instant tops the first contract year up to the cap.
	topUp := f.allocations.allocations[11]
	assert.True(t, topUp.NumberOfDays.Equal(decimal.NewFromFloat(8.0)), "got %s", topUp.NumberOfDays)
	assert.Equal(t, leave.AllocationStateValidate, topUp.State)
	assert.True(t, topUp.IsAutoAllocated)
	require.NotNil(t, topUp.AnchorDate)
	assert.Equal(t, date(2025, time.December, 15), *topUp.AnchorDate)
}

func TestRunAnnualStandardRateAfterFirstYear(t *testing.T) {
	f := newFixture()
	f.addEmployee("emp-1", date(2023, time.June, 1), 3)

	result, err := f.service.RunAnnual(context.Background(), date(2024, time.August, 1))
	require.NoError(t, err)

	// Year 0: 11 x 2.0 + 8.0 = 30.0; year 1: three instants at 2.5.
	assert.True(t, result.TotalDaysAllocated.Equal(decimal.NewFromFloat(37.5)),
		"got %s", result.TotalDaysAllocated)
	require.Len(t, f.allocations.allocations, 15)
	for _, alloc := range f.allocations.allocations[12:] {
		assert.True(t, alloc.NumberOfDays.Equal(decimal.NewFromFloat(2.5)), "got %s", alloc.NumberOfDays)
	}
}

func TestRunAnnualRespectsYearlyCap(t *testing.T) {
	f := newFixture()
	f.addEmployee("emp-1", date(2024, time.March, 10), 3)

	ctx := context.Background()
	annualType, err := f.service.leaveTypeFor(ctx, leave.CodeAnnual)
	require.NoError(t, err)

	// The second contract year is already fully granted.
	anchor := date(2025, time.March, 10)
	_, err = f.allocations.Create(ctx, leave.LeaveAllocation{
		ID:              "manual",
		EmployeeID:      "emp-1",
		LeaveTypeID:     annualType.ID,
		NumberOfDays:    decimal.NewFromFloat(30.0),
		DateFrom:        anchor,
		DateTo:          date(2026, time.March, 10),
		State:           leave.AllocationStateValidate,
		IsAutoAllocated: true,
		AnchorDate:      &anchor,
	})
	require.NoError(t, err)

	result, err := f.service.RunAnnual(ctx, date(2025, time.June, 10))
	require.NoError(t, err)

	// Only the 12 first-year instants are granted; year 1 is at cap.
	assert.True(t, result.TotalDaysAllocated.Equal(decimal.NewFromFloat(30.0)),
		"got %s", result.TotalDaysAllocated)
	require.Len(t, f.allocations.allocations, 13)
}

func TestRunAnnualIdempotent(t *testing.T) {
	f := newFixture()
	f.addEmployee("emp-1", date(2025, time.January, 15), 6)
	asOf := date(2025, time.September, 20)

	first, err := f.service.RunAnnual(context.Background(), asOf)
	require.NoError(t, err)
	assert.True(t, first.TotalDaysAllocated.IsPositive())
	count := len(f.allocations.allocations)

	second, err := f.service.RunAnnual(context.Background(), asOf)
	require.NoError(t, err)
	assert.Equal(t, 0, second.EmployeesProcessed)
	assert.True(t, second.TotalDaysAllocated.IsZero())
	assert.Len(t, f.allocations.allocations, count)
}

func TestRunAnnualClampedAnchorsForMonthEndJoiner(t *testing.T) {
	f := newFixture()
	f.addEmployee("emp-1", date(2025, time.January, 31), 6)

	_, err := f.service.RunAnnual(context.Background(), date(2025, time.April, 30))
	require.NoError(t, err)

	require.Len(t, f.allocations.allocations, 4)
	var anchors []time.Time
	for _, alloc := range f.allocations.allocations {
		require.NotNil(t, alloc.AnchorDate)
		anchors = append(anchors, *alloc.AnchorDate)
	}
	assert.Equal(t, []time.Time{
		date(2025, time.January, 31),
		date(2025, time.February, 28),
		date(2025, time.March, 31),
		date(2025, time.April, 30),
	}, anchors)

	// A second run with the same clamped anchors grants nothing more.
	second, err := f.service.RunAnnual(context.Background(), date(2025, time.April, 30))
	require.NoError(t, err)
	assert.True(t, second.TotalDaysAllocated.IsZero())
}

func TestRunAnnualProbationShiftsValidity(t *testing.T) {
	f := newFixture()
	f.addEmployee("emp-1", date(2025, time.January, 15), 6)
	probationEnd := date(2025, time.July, 15)

	_, err := f.service.RunAnnual(context.Background(), date(2025, time.August, 15))
	require.NoError(t, err)

	require.Len(t, f.allocations.allocations, 8)
	for _, alloc := range f.allocations.allocations {
		require.NotNil(t, alloc.AnchorDate)
		if alloc.AnchorDate.Before(probationEnd) {
			assert.Equal(t, probationEnd, alloc.DateFrom, "anchor %s", alloc.AnchorDate)
			assert.Equal(t, dateutil.AddYears(probationEnd, 1), alloc.DateTo)
		} else {
			assert.Equal(t, *alloc.AnchorDate, alloc.DateFrom)
			assert.Equal(t, dateutil.AddYears(*alloc.AnchorDate, 1), alloc.DateTo)
		}
	}
}

func TestRunAnnualIsolatesEmployeeFailures(t *testing.T) {
	f := newFixture()
	f.addEmployee("emp-bad", date(2025, time.February, 1), 6)
	f.addEmployee("emp-good", date(2025, time.February, 1), 6)
	f.allocations.failFor = "emp-bad"

	result, err := f.service.RunAnnual(context.Background(), date(2025, time.May, 1))
	require.NoError(t, err)

	assert.Equal(t, 1, result.EmployeesProcessed)
	for _, alloc := range f.allocations.allocations {
		assert.Equal(t, "emp-good", alloc.EmployeeID)
	}
}

func TestRunAnnualSkipsInactiveEmployees(t *testing.T) {
	f := newFixture()
	f.addEmployee("emp-1", date(2025, time.January, 15), 6)
	emp := f.employees.employees["emp-1"]
	emp.Active = false
	f.employees.employees["emp-1"] = emp

	result, err := f.service.RunAnnual(context.Background(), date(2025, time.June, 15))
	require.NoError(t, err)
	assert.Equal(t, 0, result.EmployeesProcessed)
	assert.Empty(t, f.allocations.allocations)
}

func TestRunSickGrantsOncePerContractYear(t *testing.T) {
	f := newFixture()
	f.addEmployee("emp-1", date(2025, time.January, 10), 6)

	result, err := f.service.RunSick(context.Background(), date(2025, time.August, 1))
	require.NoError(t, err)

	assert.Equal(t, 1, result.EmployeesProcessed)
	assert.True(t, result.TotalDaysAllocated.Equal(decimal.NewFromFloat(15.0)))
	require.Len(t, f.allocations.allocations, 1)

	alloc := f.allocations.allocations[0]
	assert.Equal(t, date(2025, time.January, 10), alloc.DateFrom)
	assert.Equal(t, date(2026, time.January, 10), alloc.DateTo)
	assert.Nil(t, alloc.AnchorDate)

	second, err := f.service.RunSick(context.Background(), date(2025, time.November, 1))
	require.NoError(t, err)
	assert.True(t, second.TotalDaysAllocated.IsZero())
	assert.Len(t, f.allocations.allocations, 1)
}

func TestRunSickWaitsForProbationEnd(t *testing.T) {
	f := newFixture()
	f.addEmployee("emp-1", date(2025, time.January, 10), 6)

	result, err := f.service.RunSick(context.Background(), date(2025, time.July, 9))
	require.NoError(t, err)
	assert.True(t, result.TotalDaysAllocated.IsZero())
	assert.Empty(t, f.allocations.allocations)

	// The day probation ends, the entitlement appears.
	result, err = f.service.RunSick(context.Background(), date(2025, time.July, 10))
	require.NoError(t, err)
	assert.True(t, result.TotalDaysAllocated.Equal(decimal.NewFromFloat(15.0)))
}

func TestRunSickClipsValidityToContractEnd(t *testing.T) {
	f := newFixture()
	f.addEmployee("emp-1", date(2025, time.January, 10), 3)
	end := date(2025, time.October, 31)
	f.contracts.contracts[0].EndDate = &end

	_, err := f.service.RunSick(context.Background(), date(2025, time.June, 1))
	require.NoError(t, err)

	require.Len(t, f.allocations.allocations, 1)
	assert.Equal(t, end, f.allocations.allocations[0].DateTo)
}
