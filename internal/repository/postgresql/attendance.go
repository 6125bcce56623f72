package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kalibra-hr/workforce-backend-go/internal/domain/attendance"
	"github.com/kalibra-hr/workforce-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	id, employee_id, day, check_in, check_out, working_type, note,
	created_at, updated_at
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.Day, &att.CheckIn, &att.CheckOut,
		&att.WorkingType, &att.Note, &att.CreatedAt, &att.UpdatedAt,
	)
	return att, err
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	if !att.WorkingType.Valid() {
		return attendance.Attendance{}, attendance.ErrInvalidWorkingType
	}

	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (
			id, employee_id, day, check_in, check_out, working_type, note,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.ID, att.EmployeeID, att.Day, att.CheckIn, att.CheckOut,
		att.WorkingType, att.Note,
	).Scan(&att.CreatedAt, &att.UpdatedAt)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	return att, nil
}

// GetByEmployeeAndDay implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByEmployeeAndDay(ctx context.Context, employeeID string, day time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1 AND day = $2
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, day))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance: %w", err)
	}
	return &att, nil
}

// UpsertDay implements attendance.AttendanceRepository. One statement covers
// the whole reconciler rule: insert when the day is unclassified, rewrite in
// place only when the existing row is a weekend fill-in, otherwise no-op.
// xmax = 0 distinguishes a fresh insert from an in-place promotion.
func (r *attendanceRepository) UpsertDay(ctx context.Context, att attendance.Attendance) (attendance.UpsertOutcome, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (
			id, employee_id, day, check_in, check_out, working_type, note,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		ON CONFLICT (employee_id, day) DO UPDATE
		SET working_type = EXCLUDED.working_type,
		    note = EXCLUDED.note,
		    updated_at = NOW()
		WHERE attendances.working_type = 'weekend'
		  AND EXCLUDED.working_type <> 'weekend'
		RETURNING (xmax = 0)
	`

	var inserted bool
	err := q.QueryRow(ctx, query,
		att.ID, att.EmployeeID, att.Day, att.CheckIn, att.CheckOut,
		att.WorkingType, att.Note,
	).Scan(&inserted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.UpsertSkipped, nil
		}
		return attendance.UpsertSkipped, fmt.Errorf("failed to upsert attendance day: %w", err)
	}
	if inserted {
		return attendance.UpsertCreated, nil
	}
	return attendance.UpsertUpdated, nil
}

// ListByEmployeeRange implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByEmployeeRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1
		  AND day >= $2
		  AND day <= $3
		ORDER BY day
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	attendances := make([]attendance.Attendance, 0)
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		attendances = append(attendances, att)
	}
	return attendances, rows.Err()
}
