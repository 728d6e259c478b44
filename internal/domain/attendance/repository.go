package attendance

import "context"

// RequestRepository - interface over one request table. Time-off and WFH
// requests are structurally identical, so both stores implement this with a
// different table and not-found error.
type RequestRepository interface {
	Create(ctx context.Context, request Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	GetByIDAndEmployee(ctx context.Context, id, employeeID string) (Request, error)
	List(ctx context.Context, filter RequestFilter) ([]Request, int64, error)
	UpdateStatus(ctx context.Context, id string, status RequestStatus) (Request, error)
	AttachFile(ctx context.Context, id, fileRef string) error
	Delete(ctx context.Context, id string) error

	// SumApprovedHours aggregates TotalHours over the employee's approved
	// requests. Backs balance computation; always hits the store.
	SumApprovedHours(ctx context.Context, employeeID string) (float64, error)
}
