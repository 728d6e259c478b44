package attendance

import (
	"context"

	"github.com/nimbushr/hrm-backend-go/internal/domain/employee"
)

type TimeOffService interface {
	CreateRequest(ctx context.Context, employeeID string, payload CreateRequestPayload) (Request, error)
	DeleteRequest(ctx context.Context, employeeID, requestID string) error
	GetRequestDetails(ctx context.Context, employeeID, requestID string) (Request, error)
	ListMyRequests(ctx context.Context, employeeID string, filter RequestFilter) (RequestPage, error)
	ListAllRequests(ctx context.Context, filter RequestFilter) (RequestPage, error)
	AttachFile(ctx context.Context, requestID, fileRef string) error

	// Balance surface
	ListVacationBalances(ctx context.Context, filter employee.Filter) ([]VacationBalance, int64, error)
	UpdateAllowance(ctx context.Context, req UpdateAllowanceRequest) (VacationBalance, error)
}

type WfhService interface {
	CreateRequest(ctx context.Context, employeeID string, payload CreateRequestPayload) (Request, error)
	DeleteRequest(ctx context.Context, employeeID, requestID string) error
	GetRequestDetails(ctx context.Context, employeeID, requestID string) (Request, error)
	ListMyRequests(ctx context.Context, employeeID string, filter RequestFilter) (RequestPage, error)
	ListAllRequests(ctx context.Context, filter RequestFilter) (RequestPage, error)
	AttachFile(ctx context.Context, requestID, fileRef string) error

	// Admin-only status transitions
	ApproveRequest(ctx context.Context, requestID string) (Request, error)
	RejectRequest(ctx context.Context, requestID string) (Request, error)
}
