package employee

import "context"

// EmployeeRepository defines data access for the employee directory.
// All methods include orgID to prevent cross-tenant access.
type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)

	GetByID(ctx context.Context, id string, orgID string) (Employee, error)

	GetByUserID(ctx context.Context, userID string, orgID string) (Employee, error)

	List(ctx context.Context, orgID string) ([]Employee, error)

	Update(ctx context.Context, emp Employee) error
}
