package leave

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type LeaveTypeRepository interface {
	Create(ctx context.Context, lt LeaveType) (LeaveType, error)
	GetByCode(ctx context.Context, code string) (LeaveType, error)
	GetByID(ctx context.Context, id string) (LeaveType, error)
	List(ctx context.Context) ([]LeaveType, error)
}

type LeaveAllocationRepository interface {
	// Create persists the allocation in its given state. Auto-allocated
	// rows are created already validated; there is no draft phase.
	Create(ctx context.Context, alloc LeaveAllocation) (LeaveAllocation, error)

	// ListValidatedAuto returns every validated, auto-allocated allocation
	// of the given type for the employee, ordered by anchor date.
	ListValidatedAuto(ctx context.Context, employeeID, leaveTypeID string) ([]LeaveAllocation, error)

	// ExistsValidatedAutoInWindow reports whether a validated auto-allocated
	// row of the type has DateFrom within [from, to).
	ExistsValidatedAutoInWindow(ctx context.Context, employeeID, leaveTypeID string, from, to time.Time) (bool, error)

	ListByEmployee(ctx context.Context, employeeID string) ([]LeaveAllocation, error)

	// AddTakenDays increments the consumed balance of an allocation.
	AddTakenDays(ctx context.Context, allocationID string, days decimal.Decimal) error
}

type LeaveRequestRepository interface {
	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	UpdateState(ctx context.Context, id string, state RequestState) error

	// ListValidatedOverlapping returns requests in the terminal validate
	// state whose [DateFrom, DateTo] overlaps [from, to], with the leave
	// type's code and name joined in.
	ListValidatedOverlapping(ctx context.Context, from, to time.Time) ([]LeaveRequest, error)
}
