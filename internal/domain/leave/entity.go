package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

// Leave type codes are the only reliable discriminator across the catalogue.
// Matching on display names is a fallback for legacy rows without a code.
const (
	CodeAnnual  = "ANNUAL"
	CodeSick    = "SICK"
	CodeUnpaid  = "UNPAID"
	CodeHoliday = "HOLIDAY"
)

type LeaveType struct {
	ID          string
	Name        string
	Code        *string
	Description *string
	Color       *int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CodeOrEmpty returns the type code, or "" when none is set.
func (t LeaveType) CodeOrEmpty() string {
	if t.Code == nil {
		return ""
	}
	return *t.Code
}

type AllocationState string

const (
	AllocationStateConfirm  AllocationState = "confirm"
	AllocationStateValidate AllocationState = "validate"
)

// LeaveAllocation is one grant of leave days. System-generated rows carry
// IsAutoAllocated and, for monthly annual accrual, the exact AnchorDate the
// grant was produced for; re-runs detect "already allocated" through it.
type LeaveAllocation struct {
	ID              string
	Name            string
	EmployeeID      string
	LeaveTypeID     string
	NumberOfDays    decimal.Decimal
	LeavesTaken     decimal.Decimal
	DateFrom        time.Time
	DateTo          time.Time
	State           AllocationState
	IsAutoAllocated bool
	AnchorDate      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type RequestState string

const (
	RequestStateConfirm  RequestState = "confirm"
	RequestStateValidate RequestState = "validate"
	RequestStateRefuse   RequestState = "refuse"
)

// LeaveRequest is owned by the approval workflow; the engines only read
// requests in the terminal validate state.
type LeaveRequest struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string
	DateFrom    time.Time
	DateTo      time.Time
	State       RequestState
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined for consumers
	LeaveTypeCode *string
	LeaveTypeName *string
}
