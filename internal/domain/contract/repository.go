package contract

import (
	"context"
	"time"
)

type ContractRepository interface {
	Create(ctx context.Context, c Contract) (Contract, error)

	// GetOpenByEmployee returns the employee's open contract, or
	// ErrNoOpenContract. At most one open contract exists per employee;
	// callers apply window checks through Contract.IsOpenDuring.
	GetOpenByEmployee(ctx context.Context, employeeID string) (Contract, error)

	// GetEarliestByEmployee returns the employee's first contract ever.
	// Tenure is measured from its start date regardless of renewals.
	GetEarliestByEmployee(ctx context.Context, employeeID string) (Contract, error)

	// ListOpen returns every contract that is open and effective at asOf.
	ListOpen(ctx context.Context, asOf time.Time) ([]Contract, error)
}
