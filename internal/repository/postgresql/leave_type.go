package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kalibra-hr/workforce-backend-go/internal/domain/leave"
	"github.com/kalibra-hr/workforce-backend-go/internal/pkg/database"
)

type leaveTypeRepository struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.LeaveTypeRepository {
	return &leaveTypeRepository{db: db}
}

// Create implements leave.LeaveTypeRepository.
func (r *leaveTypeRepository) Create(ctx context.Context, lt leave.LeaveType) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_types (id, name, code, description, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query, lt.ID, lt.Name, lt.Code, lt.Description, lt.Color).
		Scan(&lt.CreatedAt, &lt.UpdatedAt)
	if err != nil {
		return leave.LeaveType{}, fmt.Errorf("failed to create leave type: %w", err)
	}
	return lt, nil
}

// GetByCode implements leave.LeaveTypeRepository.
func (r *leaveTypeRepository) GetByCode(ctx context.Context, code string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, code, description, color, created_at, updated_at
		FROM leave_types
		WHERE code = $1
	`

	var lt leave.LeaveType
	err := q.QueryRow(ctx, query, code).Scan(
		&lt.ID, &lt.Name, &lt.Code, &lt.Description, &lt.Color,
		&lt.CreatedAt, &lt.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, fmt.Errorf("failed to get leave type by code: %w", err)
	}
	return lt, nil
}

// GetByID implements leave.LeaveTypeRepository.
func (r *leaveTypeRepository) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, code, description, color, created_at, updated_at
		FROM leave_types
		WHERE id = $1
	`

	var lt leave.LeaveType
	err := q.QueryRow(ctx, query, id).Scan(
		&lt.ID, &lt.Name, &lt.Code, &lt.Description, &lt.Color,
		&lt.CreatedAt, &lt.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, fmt.Errorf("failed to get leave type: %w", err)
	}
	return lt, nil
}

// List implements leave.LeaveTypeRepository.
func (r *leaveTypeRepository) List(ctx context.Context) ([]leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, code, description, color, created_at, updated_at
		FROM leave_types
		ORDER BY name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}
	defer rows.Close()

	types := make([]leave.LeaveType, 0)
	for rows.Next() {
		var lt leave.LeaveType
		if err := rows.Scan(
			&lt.ID, &lt.Name, &lt.Code, &lt.Description, &lt.Color,
			&lt.CreatedAt, &lt.UpdatedAt,
		); err != nil {
			return nil, err
		}
		types = append(types, lt)
	}
	return types, rows.Err()
}
