package employee

import "context"

type EmployeeRepository interface {
	// ListActive returns every employee whose active flag is set.
	ListActive(ctx context.Context) ([]Employee, error)

	GetByID(ctx context.Context, id string) (Employee, error)

	Create(ctx context.Context, emp Employee) (Employee, error)
}
