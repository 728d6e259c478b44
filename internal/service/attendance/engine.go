package attendance

import (
	"context"
	"fmt"

	"github.com/nimbushr/hrm-backend-go/internal/domain/attendance"
	"github.com/nimbushr/hrm-backend-go/internal/pkg/database"
)

// createHook runs inside the create transaction after date validation and
// before the insert. The time-off engine uses it for the balance guard; WFH
// has no hook.
type createHook func(ctx context.Context, employeeID string, payload attendance.CreateRequestPayload) error

// requestEngine implements the request lifecycle shared by time-off and WFH
// requests. The two services wrap one engine each, bound to their own
// repository.
type requestEngine struct {
	repo         attendance.RequestRepository
	transactor   database.Transactor
	validator    *DateValidator
	beforeCreate createHook
}

func (e *requestEngine) create(ctx context.Context, employeeID string, payload attendance.CreateRequestPayload) (attendance.Request, error) {
	dateFrom, dateTo, err := payload.Dates()
	if err != nil {
		return attendance.Request{}, fmt.Errorf("parse dates: %w", err)
	}

	dateType := attendance.DateType(payload.DateType)
	if err := e.validator.ValidateDateRange(dateFrom, dateTo, dateType); err != nil {
		return attendance.Request{}, err
	}

	request := attendance.Request{
		EmployeeID: employeeID,
		DateFrom:   dateFrom,
		DateTo:     dateTo,
		DateType:   dateType,
		TotalHours: payload.TotalHours,
		Details:    payload.Details,
		Status:     attendance.RequestStatusPending,
	}

	if e.beforeCreate == nil {
		return e.repo.Create(ctx, request)
	}

	var created attendance.Request
	err = e.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := e.beforeCreate(ctx, employeeID, payload); err != nil {
			return err
		}
		created, err = e.repo.Create(ctx, request)
		return err
	})
	if err != nil {
		return attendance.Request{}, err
	}

	return created, nil
}

// delete removes an owner's pending request. The status check and the delete
// run in one transaction so a concurrent approval cannot slip in between.
func (e *requestEngine) delete(ctx context.Context, employeeID, requestID string) error {
	return e.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		request, err := e.repo.GetByIDAndEmployee(ctx, requestID, employeeID)
		if err != nil {
			return err
		}

		if request.Status != attendance.RequestStatusPending {
			return attendance.ErrOnlyPendingDeletable
		}

		return e.repo.Delete(ctx, request.ID)
	})
}

func (e *requestEngine) details(ctx context.Context, employeeID, requestID string) (attendance.Request, error) {
	return e.repo.GetByIDAndEmployee(ctx, requestID, employeeID)
}

func (e *requestEngine) listMine(ctx context.Context, employeeID string, filter attendance.RequestFilter) ([]attendance.Request, int64, error) {
	// Owner scope overrides whatever the caller put in the filter.
	filter.EmployeeIDs = []string{employeeID}
	return e.repo.List(ctx, filter)
}

func (e *requestEngine) listAll(ctx context.Context, filter attendance.RequestFilter) ([]attendance.Request, int64, error) {
	return e.repo.List(ctx, filter)
}

func (e *requestEngine) attachFile(ctx context.Context, requestID, fileRef string) error {
	return e.repo.AttachFile(ctx, requestID, fileRef)
}
