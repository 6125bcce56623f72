package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kalibra-hr/workforce-backend-go/internal/domain/contract"
	"github.com/kalibra-hr/workforce-backend-go/internal/pkg/database"
)

type contractRepository struct {
	db *database.DB
}

func NewContractRepository(db *database.DB) contract.ContractRepository {
	return &contractRepository{db: db}
}

const contractColumns = `
	id, employee_id, start_date, end_date, state,
	probation_period_months, work_schedule_id, created_at, updated_at
`

func scanContract(row pgx.Row) (contract.Contract, error) {
	var c contract.Contract
	err := row.Scan(
		&c.ID, &c.EmployeeID, &c.StartDate, &c.EndDate, &c.State,
		&c.ProbationPeriodMonths, &c.WorkScheduleID, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

// Create implements contract.ContractRepository.
func (r *contractRepository) Create(ctx context.Context, c contract.Contract) (contract.Contract, error) {
	if c.ProbationPeriodMonths < 1 || c.ProbationPeriodMonths > 6 {
		return contract.Contract{}, contract.ErrInvalidProbationPeriod
	}

	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO contracts (
			id, employee_id, start_date, end_date, state,
			probation_period_months, work_schedule_id, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		c.ID, c.EmployeeID, c.StartDate, c.EndDate, c.State,
		c.ProbationPeriodMonths, c.WorkScheduleID,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return contract.Contract{}, fmt.Errorf("failed to create contract: %w", err)
	}
	return c, nil
}

// GetOpenByEmployee implements contract.ContractRepository.
func (r *contractRepository) GetOpenByEmployee(ctx context.Context, employeeID string) (contract.Contract, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + contractColumns + `
		FROM contracts
		WHERE employee_id = $1 AND state = 'open'
		ORDER BY start_date DESC
		LIMIT 1
	`

	c, err := scanContract(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return contract.Contract{}, contract.ErrNoOpenContract
		}
		return contract.Contract{}, fmt.Errorf("failed to get open contract: %w", err)
	}
	return c, nil
}

// GetEarliestByEmployee implements contract.ContractRepository.
func (r *contractRepository) GetEarliestByEmployee(ctx context.Context, employeeID string) (contract.Contract, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + contractColumns + `
		FROM contracts
		WHERE employee_id = $1
		ORDER BY start_date ASC
		LIMIT 1
	`

	c, err := scanContract(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return contract.Contract{}, contract.ErrContractNotFound
		}
		return contract.Contract{}, fmt.Errorf("failed to get earliest contract: %w", err)
	}
	return c, nil
}

// ListOpen implements contract.ContractRepository.
func (r *contractRepository) ListOpen(ctx context.Context, asOf time.Time) ([]contract.Contract, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + contractColumns + `
		FROM contracts
		WHERE state = 'open'
		  AND start_date <= $1
		  AND (end_date IS NULL OR end_date >= $1)
		ORDER BY employee_id, start_date
	`

	rows, err := q.Query(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to list open contracts: %w", err)
	}
	defer rows.Close()

	contracts := make([]contract.Contract, 0)
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		contracts = append(contracts, c)
	}
	return contracts, rows.Err()
}
