package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/kalibra-hr/workforce-backend-go/internal/domain/leave"
	"github.com/kalibra-hr/workforce-backend-go/internal/pkg/database"
)

type leaveAllocationRepository struct {
	db *database.DB
}

func NewLeaveAllocationRepository(db *database.DB) leave.LeaveAllocationRepository {
	return &leaveAllocationRepository{db: db}
}

// Day quantities are NUMERIC in the database. They cross the wire as text so
// the decimal values stay exact in both directions.
const allocationColumns = `
	id, name, employee_id, leave_type_id,
	number_of_days::text, leaves_taken::text,
	date_from, date_to, state, is_auto_allocated, anchor_date,
	created_at, updated_at
`

func scanAllocation(row pgx.Row) (leave.LeaveAllocation, error) {
	var (
		alloc       leave.LeaveAllocation
		numberOfDays string
		leavesTaken  string
	)
	err := row.Scan(
		&alloc.ID, &alloc.Name, &alloc.EmployeeID, &alloc.LeaveTypeID,
		&numberOfDays, &leavesTaken,
		&alloc.DateFrom, &alloc.DateTo, &alloc.State, &alloc.IsAutoAllocated, &alloc.AnchorDate,
		&alloc.CreatedAt, &alloc.UpdatedAt,
	)
	if err != nil {
		return leave.LeaveAllocation{}, err
	}
	if alloc.NumberOfDays, err = decimal.NewFromString(numberOfDays); err != nil {
		return leave.LeaveAllocation{}, fmt.Errorf("failed to parse number_of_days: %w", err)
	}
	if alloc.LeavesTaken, err = decimal.NewFromString(leavesTaken); err != nil {
		return leave.LeaveAllocation{}, fmt.Errorf("failed to parse leaves_taken: %w", err)
	}
	return alloc, nil
}

// Create implements leave.LeaveAllocationRepository.
func (r *leaveAllocationRepository) Create(ctx context.Context, alloc leave.LeaveAllocation) (leave.LeaveAllocation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_allocations (
			id, name, employee_id, leave_type_id,
			number_of_days, leaves_taken,
			date_from, date_to, state, is_auto_allocated, anchor_date,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5::numeric, $6::numeric, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		alloc.ID, alloc.Name, alloc.EmployeeID, alloc.LeaveTypeID,
		alloc.NumberOfDays.String(), alloc.LeavesTaken.String(),
		alloc.DateFrom, alloc.DateTo, alloc.State, alloc.IsAutoAllocated, alloc.AnchorDate,
	).Scan(&alloc.CreatedAt, &alloc.UpdatedAt)
	if err != nil {
		return leave.LeaveAllocation{}, fmt.Errorf("failed to create leave allocation: %w", err)
	}
	return alloc, nil
}

// ListValidatedAuto implements leave.LeaveAllocationRepository.
func (r *leaveAllocationRepository) ListValidatedAuto(ctx context.Context, employeeID, leaveTypeID string) ([]leave.LeaveAllocation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + allocationColumns + `
		FROM leave_allocations
		WHERE employee_id = $1
		  AND leave_type_id = $2
		  AND state = 'validate'
		  AND is_auto_allocated = TRUE
		ORDER BY anchor_date NULLS LAST, date_from
	`

	rows, err := q.Query(ctx, query, employeeID, leaveTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list auto allocations: %w", err)
	}
	defer rows.Close()

	allocations := make([]leave.LeaveAllocation, 0)
	for rows.Next() {
		alloc, err := scanAllocation(rows)
		if err != nil {
			return nil, err
		}
		allocations = append(allocations, alloc)
	}
	return allocations, rows.Err()
}

// ExistsValidatedAutoInWindow implements leave.LeaveAllocationRepository.
func (r *leaveAllocationRepository) ExistsValidatedAutoInWindow(ctx context.Context, employeeID, leaveTypeID string, from, to time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM leave_allocations
			WHERE employee_id = $1
			  AND leave_type_id = $2
			  AND state = 'validate'
			  AND is_auto_allocated = TRUE
			  AND date_from >= $3
			  AND date_from < $4
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, leaveTypeID, from, to).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check allocation window: %w", err)
	}
	return exists, nil
}

// ListByEmployee implements leave.LeaveAllocationRepository.
func (r *leaveAllocationRepository) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveAllocation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + allocationColumns + `
		FROM leave_allocations
		WHERE employee_id = $1
		ORDER BY date_from
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}
	defer rows.Close()

	allocations := make([]leave.LeaveAllocation, 0)
	for rows.Next() {
		alloc, err := scanAllocation(rows)
		if err != nil {
			return nil, err
		}
		allocations = append(allocations, alloc)
	}
	return allocations, rows.Err()
}

// AddTakenDays implements leave.LeaveAllocationRepository.
func (r *leaveAllocationRepository) AddTakenDays(ctx context.Context, allocationID string, days decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_allocations
		SET leaves_taken = leaves_taken + $2::numeric, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, allocationID, days.String())
	if err != nil {
		return fmt.Errorf("failed to add taken days: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrAllocationNotFound
	}
	return nil
}
