package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kalibra-hr/workforce-backend-go/internal/domain/schedule"
	"github.com/kalibra-hr/workforce-backend-go/internal/pkg/database"
)

type workScheduleRepository struct {
	db *database.DB
}

func NewWorkScheduleRepository(db *database.DB) schedule.WorkScheduleRepository {
	return &workScheduleRepository{db: db}
}

// Create implements schedule.WorkScheduleRepository. The schedule and its
// weekly lines are inserted in one transaction.
func (r *workScheduleRepository) Create(ctx context.Context, ws schedule.WorkSchedule) (schedule.WorkSchedule, error) {
	err := WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		query := `
			INSERT INTO work_schedules (id, name, created_at, updated_at)
			VALUES ($1, $2, NOW(), NOW())
			RETURNING created_at, updated_at
		`
		if err := q.QueryRow(txCtx, query, ws.ID, ws.Name).Scan(&ws.CreatedAt, &ws.UpdatedAt); err != nil {
			return fmt.Errorf("failed to create work schedule: %w", err)
		}

		lineQuery := `
			INSERT INTO work_schedule_lines (id, work_schedule_id, day_of_week, duration_days)
			VALUES ($1, $2, $3, $4)
		`
		for i := range ws.Lines {
			ws.Lines[i].WorkScheduleID = ws.ID
			line := ws.Lines[i]
			if _, err := q.Exec(txCtx, lineQuery, line.ID, line.WorkScheduleID, line.DayOfWeek, line.DurationDays); err != nil {
				return fmt.Errorf("failed to create work schedule line: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return schedule.WorkSchedule{}, err
	}
	return ws, nil
}

// GetByID implements schedule.WorkScheduleRepository.
func (r *workScheduleRepository) GetByID(ctx context.Context, id string) (schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, created_at, updated_at
		FROM work_schedules
		WHERE id = $1
	`

	var ws schedule.WorkSchedule
	err := q.QueryRow(ctx, query, id).Scan(&ws.ID, &ws.Name, &ws.CreatedAt, &ws.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.WorkSchedule{}, schedule.ErrScheduleNotFound
		}
		return schedule.WorkSchedule{}, fmt.Errorf("failed to get work schedule: %w", err)
	}

	lineQuery := `
		SELECT id, work_schedule_id, day_of_week, duration_days
		FROM work_schedule_lines
		WHERE work_schedule_id = $1
		ORDER BY day_of_week
	`

	rows, err := q.Query(ctx, lineQuery, id)
	if err != nil {
		return schedule.WorkSchedule{}, fmt.Errorf("failed to list work schedule lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line schedule.WorkScheduleLine
		if err := rows.Scan(&line.ID, &line.WorkScheduleID, &line.DayOfWeek, &line.DurationDays); err != nil {
			return schedule.WorkSchedule{}, err
		}
		ws.Lines = append(ws.Lines, line)
	}
	return ws, rows.Err()
}

// ListExceptionsInRange implements schedule.WorkScheduleRepository.
func (r *workScheduleRepository) ListExceptionsInRange(ctx context.Context, workScheduleID string, from, to time.Time) ([]schedule.CalendarException, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, work_schedule_id, date_from, date_to, label
		FROM calendar_exceptions
		WHERE work_schedule_id = $1
		  AND date_from <= $3
		  AND date_to >= $2
		ORDER BY date_from
	`

	rows, err := q.Query(ctx, query, workScheduleID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar exceptions: %w", err)
	}
	defer rows.Close()

	exceptions := make([]schedule.CalendarException, 0)
	for rows.Next() {
		var exc schedule.CalendarException
		if err := rows.Scan(&exc.ID, &exc.WorkScheduleID, &exc.DateFrom, &exc.DateTo, &exc.Label); err != nil {
			return nil, err
		}
		exceptions = append(exceptions, exc)
	}
	return exceptions, rows.Err()
}

// AddException implements schedule.WorkScheduleRepository.
func (r *workScheduleRepository) AddException(ctx context.Context, exc schedule.CalendarException) (schedule.CalendarException, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO calendar_exceptions (id, work_schedule_id, date_from, date_to, label)
		VALUES ($1, $2, $3, $4, $5)
	`

	if _, err := q.Exec(ctx, query, exc.ID, exc.WorkScheduleID, exc.DateFrom, exc.DateTo, exc.Label); err != nil {
		return schedule.CalendarException{}, fmt.Errorf("failed to add calendar exception: %w", err)
	}
	return exc, nil
}
