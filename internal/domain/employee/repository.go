package employee

import "context"

// EmployeeRepository - read path into the externally owned employee directory,
// plus the single administrative write this core needs (allowance updates).
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)

	// GetByIDForUpdate loads the employee with a row lock. Only meaningful
	// inside a transaction; used to serialize balance checks per employee.
	GetByIDForUpdate(ctx context.Context, id string) (Employee, error)

	List(ctx context.Context, filter Filter) ([]Employee, int64, error)
	UpdateAllowance(ctx context.Context, id string, allowanceDays float64) (Employee, error)
}
