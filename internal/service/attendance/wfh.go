package attendance

import (
	"context"

	"github.com/nimbushr/hrm-backend-go/internal/domain/attendance"
	"github.com/nimbushr/hrm-backend-go/internal/domain/employee"
	"github.com/nimbushr/hrm-backend-go/internal/pkg/database"
)

type wfhServiceImpl struct {
	engine    *requestEngine
	employees employee.EmployeeRepository
}

// NewWfhService wires the WFH request lifecycle. WFH requests share the
// time-off date rules but carry no balance guard.
func NewWfhService(
	repo attendance.RequestRepository,
	employees employee.EmployeeRepository,
	transactor database.Transactor,
	validator *DateValidator,
) attendance.WfhService {
	return &wfhServiceImpl{
		engine: &requestEngine{
			repo:       repo,
			transactor: transactor,
			validator:  validator,
		},
		employees: employees,
	}
}

func (s *wfhServiceImpl) CreateRequest(ctx context.Context, employeeID string, payload attendance.CreateRequestPayload) (attendance.Request, error) {
	if _, err := s.employees.GetByID(ctx, employeeID); err != nil {
		return attendance.Request{}, err
	}

	return s.engine.create(ctx, employeeID, payload)
}

func (s *wfhServiceImpl) DeleteRequest(ctx context.Context, employeeID, requestID string) error {
	return s.engine.delete(ctx, employeeID, requestID)
}

func (s *wfhServiceImpl) GetRequestDetails(ctx context.Context, employeeID, requestID string) (attendance.Request, error) {
	return s.engine.details(ctx, employeeID, requestID)
}

func (s *wfhServiceImpl) ListMyRequests(ctx context.Context, employeeID string, filter attendance.RequestFilter) (attendance.RequestPage, error) {
	requests, total, err := s.engine.listMine(ctx, employeeID, filter)
	if err != nil {
		return attendance.RequestPage{}, err
	}

	return attendance.RequestPage{Items: requests, Total: total}, nil
}

func (s *wfhServiceImpl) ListAllRequests(ctx context.Context, filter attendance.RequestFilter) (attendance.RequestPage, error) {
	requests, total, err := s.engine.listAll(ctx, filter)
	if err != nil {
		return attendance.RequestPage{}, err
	}

	return attendance.RequestPage{Items: requests, Total: total}, nil
}

func (s *wfhServiceImpl) AttachFile(ctx context.Context, requestID, fileRef string) error {
	return s.engine.attachFile(ctx, requestID, fileRef)
}

// ApproveRequest sets the request to approved. The transition is applied to
// whatever state the request is currently in; there is no pending pre-check,
// so re-approving or flipping a rejected request succeeds.
func (s *wfhServiceImpl) ApproveRequest(ctx context.Context, requestID string) (attendance.Request, error) {
	return s.engine.repo.UpdateStatus(ctx, requestID, attendance.RequestStatusApproved)
}

// RejectRequest sets the request to rejected, with the same unconditional
// transition semantics as ApproveRequest.
func (s *wfhServiceImpl) RejectRequest(ctx context.Context, requestID string) (attendance.Request, error) {
	return s.engine.repo.UpdateStatus(ctx, requestID, attendance.RequestStatusRejected)
}
