// Package accrual implements the leave entitlement engine: monthly
// anniversary-based annual leave accrual and yearly sick leave accrual.
// Every run is idempotent; the stored anchor date is the dedupe key, so the
// engine can be re-run on any cadence without double-allocating.
package accrual

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kalibra-hr/workforce-backend-go/internal/domain/contract"
	"github.com/kalibra-hr/workforce-backend-go/internal/domain/employee"
	"github.com/kalibra-hr/workforce-backend-go/internal/domain/leave"
	"github.com/kalibra-hr/workforce-backend-go/internal/fixtures"
	"github.com/kalibra-hr/workforce-backend-go/internal/pkg/dateutil"
	"github.com/kalibra-hr/workforce-backend-go/internal/service/leavetype"
)

var (
	firstYearMonthlyDays = decimal.NewFromFloat(2.0)
	standardMonthlyDays  = decimal.NewFromFloat(2.5)
	yearlyCapDays        = decimal.NewFromFloat(30.0)
	sickYearlyDays       = decimal.NewFromFloat(15.0)
)

// firstYearFullRateInstants is how many allocations of the first contract
// year are granted at the reduced rate before the 12th tops the year up to
// the cap (11 x 2.0 = 22.0, then 8.0).
const firstYearFullRateInstants = 11

type Service struct {
	employees   employee.EmployeeRepository
	contracts   contract.ContractRepository
	allocations leave.LeaveAllocationRepository
	catalog     *leavetype.Catalog
}

func NewService(
	employees employee.EmployeeRepository,
	contracts contract.ContractRepository,
	allocations leave.LeaveAllocationRepository,
	catalog *leavetype.Catalog,
) *Service {
	return &Service{
		employees:   employees,
		contracts:   contracts,
		allocations: allocations,
		catalog:     catalog,
	}
}

// RunResult summarizes one engine run for observability.
type RunResult struct {
	EmployeesProcessed int
	TotalDaysAllocated decimal.Decimal
}

// RunAnnual walks every employee with an open contract as of asOf and grants
// any monthly annual-leave instants not yet allocated. Failures on one
// employee are logged and do not abort the run.
func (s *Service) RunAnnual(ctx context.Context, asOf time.Time) (RunResult, error) {
	asOf = dateutil.Date(asOf)
	slog.Info("Accrual: Starting annual leave allocation", "as_of", asOf.Format("2006-01-02"))

	annualType, err := s.leaveTypeFor(ctx, leave.CodeAnnual)
	if err != nil {
		return RunResult{}, err
	}

	contracts, err := s.contracts.ListOpen(ctx, asOf)
	if err != nil {
		return RunResult{}, fmt.Errorf("failed to list open contracts: %w", err)
	}

	result := RunResult{TotalDaysAllocated: decimal.Zero}
	for _, c := range contracts {
		emp, err := s.employees.GetByID(ctx, c.EmployeeID)
		if err != nil || !emp.Active {
			continue
		}

		granted, err := s.allocateAnnualForEmployee(ctx, emp, annualType, asOf)
		if err != nil {
			slog.Error("Accrual: Annual allocation failed for employee",
				"employee_id", emp.ID, "employee", emp.FullName, "error", err)
			continue
		}
		if granted.IsPositive() {
			result.EmployeesProcessed++
			result.TotalDaysAllocated = result.TotalDaysAllocated.Add(granted)
		}
	}

	slog.Info("Accrual: Annual leave allocation completed",
		"employees", result.EmployeesProcessed,
		"days_allocated", result.TotalDaysAllocated.String())
	return result, nil
}

func (s *Service) allocateAnnualForEmployee(ctx context.Context, emp employee.Employee, annualType leave.LeaveType, asOf time.Time) (decimal.Decimal, error) {
	// Tenure is measured from first hire: the earliest contract's start
	// date drives anchors and contract years, not the current contract.
	first, err := s.contracts.GetEarliestByEmployee(ctx, emp.ID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get earliest contract: %w", err)
	}
	joining := dateutil.Date(first.StartDate)
	probationEnd := first.ProbationEnd()

	existing, err := s.allocations.ListValidatedAuto(ctx, emp.ID, annualType.ID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to list existing allocations: %w", err)
	}

	allocated := make(map[string]bool, len(existing))
	yearTotals := make(map[int]decimal.Decimal)
	yearCounts := make(map[int]int)
	for _, alloc := range existing {
		anchor := alloc.DateFrom
		if alloc.AnchorDate != nil {
			anchor = *alloc.AnchorDate
		}
		allocated[dateutil.Date(anchor).Format("2006-01-02")] = true
		yi := ContractYearIndex(joining, anchor)
		yearTotals[yi] = yearTotals[yi].Add(alloc.NumberOfDays)
		yearCounts[yi]++
	}

	granted := decimal.Zero
	for _, anchor := range AnchorDates(joining, asOf) {
		key := anchor.Format("2006-01-02")
		if allocated[key] {
			continue
		}

		yi := ContractYearIndex(joining, anchor)
		totalThisYear := yearTotals[yi]
		if totalThisYear.GreaterThanOrEqual(yearlyCapDays) {
			continue
		}

		var days decimal.Decimal
		if yi == 0 && yearCounts[yi] < firstYearFullRateInstants {
			days = firstYearMonthlyDays
		} else if yi == 0 {
			days = yearlyCapDays.Sub(totalThisYear)
		} else {
			days = standardMonthlyDays
		}
		if remaining := yearlyCapDays.Sub(totalThisYear); days.GreaterThan(remaining) {
			days = remaining
		}
		if !days.IsPositive() {
			continue
		}

		// Grants inside probation only become usable once probation ends.
		validityStart := anchor
		if anchor.Before(probationEnd) {
			validityStart = probationEnd
		}
		validityEnd := dateutil.AddYears(validityStart, 1)

		anchorCopy := anchor
		alloc := leave.LeaveAllocation{
			ID:              uuid.NewString(),
			Name:            fmt.Sprintf("Annual Leave - %s", anchor.Format("January 2006")),
			EmployeeID:      emp.ID,
			LeaveTypeID:     annualType.ID,
			NumberOfDays:    days,
			LeavesTaken:     decimal.Zero,
			DateFrom:        validityStart,
			DateTo:          validityEnd,
			State:           leave.AllocationStateValidate,
			IsAutoAllocated: true,
			AnchorDate:      &anchorCopy,
		}
		if _, err := s.allocations.Create(ctx, alloc); err != nil {
			slog.Error("Accrual: Failed to create annual allocation",
				"employee_id", emp.ID, "anchor", key, "error", err)
			continue
		}

		allocated[key] = true
		yearTotals[yi] = yearTotals[yi].Add(days)
		yearCounts[yi]++
		granted = granted.Add(days)

		slog.Debug("Accrual: Allocated annual leave",
			"employee_id", emp.ID,
			"anchor", key,
			"days", days.String(),
			"contract_year", yi+1,
			"valid_from", validityStart.Format("2006-01-02"),
			"valid_to", validityEnd.Format("2006-01-02"),
			"year_total", yearTotals[yi].String())
	}

	return granted, nil
}

// RunSick grants the yearly sick-leave entitlement (15 days per contract
// year) to every post-probation employee with an open contract. The grant
// happens once per contract year; the validity window is the contract year
// clipped to the contract's end date.
func (s *Service) RunSick(ctx context.Context, asOf time.Time) (RunResult, error) {
	asOf = dateutil.Date(asOf)
	slog.Info("Accrual: Starting sick leave allocation", "as_of", asOf.Format("2006-01-02"))

	sickType, err := s.leaveTypeFor(ctx, leave.CodeSick)
	if err != nil {
		return RunResult{}, err
	}

	contracts, err := s.contracts.ListOpen(ctx, asOf)
	if err != nil {
		return RunResult{}, fmt.Errorf("failed to list open contracts: %w", err)
	}

	result := RunResult{TotalDaysAllocated: decimal.Zero}
	for _, c := range contracts {
		emp, err := s.employees.GetByID(ctx, c.EmployeeID)
		if err != nil || !emp.Active {
			continue
		}

		granted, err := s.allocateSickForEmployee(ctx, emp, c, sickType, asOf)
		if err != nil {
			slog.Error("Accrual: Sick allocation failed for employee",
				"employee_id", emp.ID, "employee", emp.FullName, "error", err)
			continue
		}
		if granted.IsPositive() {
			result.EmployeesProcessed++
			result.TotalDaysAllocated = result.TotalDaysAllocated.Add(granted)
		}
	}

	slog.Info("Accrual: Sick leave allocation completed",
		"employees", result.EmployeesProcessed,
		"days_allocated", result.TotalDaysAllocated.String())
	return result, nil
}

func (s *Service) allocateSickForEmployee(ctx context.Context, emp employee.Employee, c contract.Contract, sickType leave.LeaveType, asOf time.Time) (decimal.Decimal, error) {
	start := dateutil.Date(c.StartDate)
	if asOf.Before(c.ProbationEnd()) {
		slog.Debug("Accrual: Employee still in probation, no sick leave",
			"employee_id", emp.ID, "probation_end", c.ProbationEnd().Format("2006-01-02"))
		return decimal.Zero, nil
	}

	yearIndex := dateutil.YearsBetween(start, asOf)
	yearStart, yearEnd := ContractYearWindow(start, yearIndex)

	exists, err := s.allocations.ExistsValidatedAutoInWindow(ctx, emp.ID, sickType.ID, yearStart, yearEnd)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to check existing sick allocation: %w", err)
	}
	if exists {
		return decimal.Zero, nil
	}

	validityEnd := yearEnd
	if c.EndDate != nil && c.EndDate.Before(validityEnd) {
		validityEnd = dateutil.Date(*c.EndDate)
	}

	alloc := leave.LeaveAllocation{
		ID:              uuid.NewString(),
		Name:            fmt.Sprintf("Sick Leave - Contract Year %d", yearIndex+1),
		EmployeeID:      emp.ID,
		LeaveTypeID:     sickType.ID,
		NumberOfDays:    sickYearlyDays,
		LeavesTaken:     decimal.Zero,
		DateFrom:        yearStart,
		DateTo:          validityEnd,
		State:           leave.AllocationStateValidate,
		IsAutoAllocated: true,
	}
	if _, err := s.allocations.Create(ctx, alloc); err != nil {
		return decimal.Zero, fmt.Errorf("failed to create sick allocation: %w", err)
	}

	slog.Debug("Accrual: Allocated sick leave",
		"employee_id", emp.ID,
		"contract_year", yearIndex+1,
		"valid_from", yearStart.Format("2006-01-02"),
		"valid_to", validityEnd.Format("2006-01-02"))
	return sickYearlyDays, nil
}

func (s *Service) leaveTypeFor(ctx context.Context, code string) (leave.LeaveType, error) {
	for _, def := range fixtures.DefaultLeaveTypes {
		if def.Code == code {
			return s.catalog.GetOrCreate(ctx, def.Code, def.Name, def.Color)
		}
	}
	lt, err := s.catalog.GetByCode(ctx, code)
	if err != nil {
		return leave.LeaveType{}, fmt.Errorf("failed to resolve leave type %s: %w", code, err)
	}
	return lt, nil
}
