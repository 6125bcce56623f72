package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kalibra-hr/workforce-backend-go/internal/domain/leave"
	"github.com/kalibra-hr/workforce-backend-go/internal/pkg/database"
)

type leaveRequestRepository struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepository{db: db}
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, employee_id, leave_type_id, date_from, date_to,
			state, description, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.ID, req.EmployeeID, req.LeaveTypeID, req.DateFrom, req.DateTo,
		req.State, req.Description,
	).Scan(&req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return req, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lr.id, lr.employee_id, lr.leave_type_id, lr.date_from, lr.date_to,
		       lr.state, lr.description, lr.created_at, lr.updated_at,
		       lt.code, lt.name
		FROM leave_requests lr
		JOIN leave_types lt ON lt.id = lr.leave_type_id
		WHERE lr.id = $1
	`

	var req leave.LeaveRequest
	err := q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.EmployeeID, &req.LeaveTypeID, &req.DateFrom, &req.DateTo,
		&req.State, &req.Description, &req.CreatedAt, &req.UpdatedAt,
		&req.LeaveTypeCode, &req.LeaveTypeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return req, nil
}

// UpdateState implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) UpdateState(ctx context.Context, id string, state leave.RequestState) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET state = $2, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, state)
	if err != nil {
		return fmt.Errorf("failed to update leave request state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrRequestNotFound
	}
	return nil
}

// ListValidatedOverlapping implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) ListValidatedOverlapping(ctx context.Context, from, to time.Time) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lr.id, lr.employee_id, lr.leave_type_id, lr.date_from, lr.date_to,
		       lr.state, lr.description, lr.created_at, lr.updated_at,
		       lt.code, lt.name
		FROM leave_requests lr
		JOIN leave_types lt ON lt.id = lr.leave_type_id
		WHERE lr.state = 'validate'
		  AND lr.date_from <= $2
		  AND lr.date_to >= $1
		ORDER BY lr.employee_id, lr.date_from
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list validated leave requests: %w", err)
	}
	defer rows.Close()

	requests := make([]leave.LeaveRequest, 0)
	for rows.Next() {
		var req leave.LeaveRequest
		if err := rows.Scan(
			&req.ID, &req.EmployeeID, &req.LeaveTypeID, &req.DateFrom, &req.DateTo,
			&req.State, &req.Description, &req.CreatedAt, &req.UpdatedAt,
			&req.LeaveTypeCode, &req.LeaveTypeName,
		); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}
