package employee

import "context"

type EmployeeService interface {
	Create(ctx context.Context, orgID string, req CreateEmployeeRequest) (EmployeeResponse, error)

	Get(ctx context.Context, id string, orgID string) (EmployeeResponse, error)

	List(ctx context.Context, orgID string) ([]EmployeeResponse, error)

	Update(ctx context.Context, id string, orgID string, req UpdateEmployeeRequest) (EmployeeResponse, error)
}
