package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/nimbushr/hrm-backend-go/internal/domain/attendance"
	"github.com/nimbushr/hrm-backend-go/internal/domain/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Frozen clock for every service test: 2026-03-02 is "today".
var testNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func testValidator() *DateValidator {
	return &DateValidator{Now: func() time.Time { return testNow }}
}

type timeOffFixture struct {
	service   attendance.TimeOffService
	requests  *fakeRequestRepo
	employees *fakeEmployeeRepo
}

func newTimeOffFixture(employees ...employee.Employee) *timeOffFixture {
	requests := newFakeRequestRepo(attendance.ErrTimeOffRequestNotFound)
	employeeRepo := newFakeEmployeeRepo(employees...)
	service := NewTimeOffService(requests, employeeRepo, passthroughTransactor{}, testValidator())
	return &timeOffFixture{
		service:   service,
		requests:  requests,
		employees: employeeRepo,
	}
}

func testEmployee(id string, allowanceDays float64) employee.Employee {
	return employee.Employee{
		ID:            id,
		FullName:      "Employee " + id,
		Email:         id + "@example.com",
		Role:          employee.RoleUser,
		AllowanceDays: allowanceDays,
	}
}

func fullDayPayload(dateFrom, dateTo string, totalHours float64) attendance.CreateRequestPayload {
	return attendance.CreateRequestPayload{
		DateFrom:   dateFrom,
		DateTo:     dateTo,
		DateType:   string(attendance.DateTypeFullDay),
		TotalHours: totalHours,
		Details:    "family matters",
	}
}

func TestTimeOffCreateRequest(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("creates pending request", func(t *testing.T) {
		t.Parallel()
		f := newTimeOffFixture(testEmployee("emp-1", 10))

		request, err := f.service.CreateRequest(ctx, "emp-1", fullDayPayload("2026-03-03", "2026-03-03", 8))
		require.NoError(t, err)

		assert.NotEmpty(t, request.ID)
		assert.Equal(t, "emp-1", request.EmployeeID)
		assert.Equal(t, attendance.RequestStatusPending, request.Status)
		assert.Equal(t, float64(8), request.TotalHours)
		assert.Equal(t, attendance.DateTypeFullDay, request.DateType)
	})

	t.Run("rejects past date from", func(t *testing.T) {
		t.Parallel()
		f := newTimeOffFixture(testEmployee("emp-1", 10))

		_, err := f.service.CreateRequest(ctx, "emp-1", fullDayPayload("2026-03-01", "2026-03-03", 8))
		assert.ErrorIs(t, err, attendance.ErrDateFromInvalid)
	})

	t.Run("rejects unordered range", func(t *testing.T) {
		t.Parallel()
		f := newTimeOffFixture(testEmployee("emp-1", 10))

		_, err := f.service.CreateRequest(ctx, "emp-1", fullDayPayload("2026-03-05", "2026-03-03", 8))
		assert.ErrorIs(t, err, attendance.ErrDateToBeforeDateFrom)
	})

	t.Run("rejects half day across days", func(t *testing.T) {
		t.Parallel()
		f := newTimeOffFixture(testEmployee("emp-1", 10))

		payload := fullDayPayload("2026-03-03", "2026-03-04", 4)
		payload.DateType = string(attendance.DateTypeHalfDay)

		_, err := f.service.CreateRequest(ctx, "emp-1", payload)
		assert.ErrorIs(t, err, attendance.ErrInvalidHalfDaySelection)
	})

	t.Run("rejects zero balance", func(t *testing.T) {
		t.Parallel()
		f := newTimeOffFixture(testEmployee("emp-1", 0))

		_, err := f.service.CreateRequest(ctx, "emp-1", fullDayPayload("2026-03-03", "2026-03-03", 8))
		assert.ErrorIs(t, err, attendance.ErrBalanceZero)
	})

	t.Run("rejects duration above balance", func(t *testing.T) {
		t.Parallel()
		f := newTimeOffFixture(testEmployee("emp-1", 1))

		_, err := f.service.CreateRequest(ctx, "emp-1", fullDayPayload("2026-03-03", "2026-03-04", 16))
		assert.ErrorIs(t, err, attendance.ErrDurationExceedsBalance)
	})

	t.Run("unknown employee", func(t *testing.T) {
		t.Parallel()
		f := newTimeOffFixture()

		_, err := f.service.CreateRequest(ctx, "ghost", fullDayPayload("2026-03-03", "2026-03-03", 8))
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})

	t.Run("pending requests do not consume balance", func(t *testing.T) {
		t.Parallel()
		f := newTimeOffFixture(testEmployee("emp-1", 1))

		// Two 8h requests against an 8h balance: both pass the guard because
		// only approved hours count.
		_, err := f.service.CreateRequest(ctx, "emp-1", fullDayPayload("2026-03-03", "2026-03-03", 8))
		require.NoError(t, err)
		_, err = f.service.CreateRequest(ctx, "emp-1", fullDayPayload("2026-03-04", "2026-03-04", 8))
		require.NoError(t, err)
	})

	t.Run("negative balance reports exceeded, not zero", func(t *testing.T) {
		t.Parallel()
		f := newTimeOffFixture(testEmployee("emp-1", 1))

		request, err := f.service.CreateRequest(ctx, "emp-1", fullDayPayload("2026-03-03", "2026-03-03", 8))
		require.NoError(t, err)
		_, err = f.requests.UpdateStatus(ctx, request.ID, attendance.RequestStatusApproved)
		require.NoError(t, err)

		// Cutting the allowance below the approved usage drives the balance
		// negative. The zero-balance error is reserved for exactly zero.
		_, err = f.employees.UpdateAllowance(ctx, "emp-1", 0.5)
		require.NoError(t, err)

		_, err = f.service.CreateRequest(ctx, "emp-1", fullDayPayload("2026-03-04", "2026-03-04", 2))
		assert.ErrorIs(t, err, attendance.ErrDurationExceedsBalance)
	})

	t.Run("approved hours block further requests", func(t *testing.T) {
		t.Parallel()
		f := newTimeOffFixture(testEmployee("emp-1", 1))

		request, err := f.service.CreateRequest(ctx, "emp-1", fullDayPayload("2026-03-03", "2026-03-03", 8))
		require.NoError(t, err)
		_, err = f.requests.UpdateStatus(ctx, request.ID, attendance.RequestStatusApproved)
		require.NoError(t, err)

		_, err = f.service.CreateRequest(ctx, "emp-1", fullDayPayload("2026-03-04", "2026-03-04", 8))
		assert.ErrorIs(t, err, attendance.ErrBalanceZero)
	})
}

func TestTimeOffDeleteRequest(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newTimeOffFixture(testEmployee("emp-1", 10), testEmployee("emp-2", 10))

	pending, err := f.service.CreateRequest(ctx, "emp-1", fullDayPayload("2026-03-03", "2026-03-03", 8))
	require.NoError(t, err)

	approved, err := f.service.CreateRequest(ctx, "emp-1", fullDayPayload("2026-03-04", "2026-03-04", 8))
	require.NoError(t, err)
	_, err = f.requests.UpdateStatus(ctx, approved.ID, attendance.RequestStatusApproved)
	require.NoError(t, err)

	t.Run("other employee cannot delete", func(t *testing.T) {
		err := f.service.DeleteRequest(ctx, "emp-2", pending.ID)
		assert.ErrorIs(t, err, attendance.ErrTimeOffRequestNotFound)
	})

	t.Run("approved request is not deletable", func(t *testing.T) {
		err := f.service.DeleteRequest(ctx, "emp-1", approved.ID)
		assert.ErrorIs(t, err, attendance.ErrOnlyPendingDeletable)
	})

	t.Run("owner deletes pending request", func(t *testing.T) {
		err := f.service.DeleteRequest(ctx, "emp-1", pending.ID)
		require.NoError(t, err)

		_, err = f.service.GetRequestDetails(ctx, "emp-1", pending.ID)
		assert.ErrorIs(t, err, attendance.ErrTimeOffRequestNotFound)
	})
}

func TestTimeOffDeleteRunsInTransaction(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	requests := newFakeRequestRepo(attendance.ErrTimeOffRequestNotFound)
	employees := newFakeEmployeeRepo(testEmployee("emp-1", 10))
	transactor := &recordingTransactor{}
	service := NewTimeOffService(requests, employees, transactor, testValidator())

	request, err := service.CreateRequest(ctx, "emp-1", fullDayPayload("2026-03-03", "2026-03-03", 8))
	require.NoError(t, err)
	afterCreate := transactor.calls

	// The pending check and the delete share one transaction so a concurrent
	// status change cannot land between them.
	require.NoError(t, service.DeleteRequest(ctx, "emp-1", request.ID))
	assert.Equal(t, afterCreate+1, transactor.calls)
}

func TestTimeOffListMyRequests(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newTimeOffFixture(testEmployee("emp-1", 10), testEmployee("emp-2", 10))

	mine, err := f.service.CreateRequest(ctx, "emp-1", fullDayPayload("2026-03-03", "2026-03-03", 8))
	require.NoError(t, err)
	_, err = f.requests.UpdateStatus(ctx, mine.ID, attendance.RequestStatusApproved)
	require.NoError(t, err)

	_, err = f.service.CreateRequest(ctx, "emp-2", fullDayPayload("2026-03-03", "2026-03-03", 8))
	require.NoError(t, err)

	page, err := f.service.ListMyRequests(ctx, "emp-1", attendance.RequestFilter{})
	require.NoError(t, err)

	require.Len(t, page.Items, 1)
	assert.Equal(t, "emp-1", page.Items[0].EmployeeID)
	assert.Equal(t, int64(1), page.Total)

	// Allowance rides along in day view.
	require.NotNil(t, page.Allowance)
	assert.Equal(t, attendance.Allowance{Total: 10, Taken: 1, Balance: 9}, *page.Allowance)
}

func TestTimeOffListAllRequests(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newTimeOffFixture(testEmployee("emp-1", 10), testEmployee("emp-2", 10))

	_, err := f.service.CreateRequest(ctx, "emp-1", fullDayPayload("2026-03-03", "2026-03-05", 24))
	require.NoError(t, err)
	rejected, err := f.service.CreateRequest(ctx, "emp-2", fullDayPayload("2026-03-10", "2026-03-10", 8))
	require.NoError(t, err)
	_, err = f.requests.UpdateStatus(ctx, rejected.ID, attendance.RequestStatusRejected)
	require.NoError(t, err)

	t.Run("unfiltered", func(t *testing.T) {
		page, err := f.service.ListAllRequests(ctx, attendance.RequestFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), page.Total)
		assert.Nil(t, page.Allowance)
	})

	t.Run("status filter", func(t *testing.T) {
		page, err := f.service.ListAllRequests(ctx, attendance.RequestFilter{
			Statuses: []string{string(attendance.RequestStatusRejected)},
		})
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, rejected.ID, page.Items[0].ID)
	})

	t.Run("overlap window", func(t *testing.T) {
		from := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)
		page, err := f.service.ListAllRequests(ctx, attendance.RequestFilter{
			DateFrom: &from,
			DateTo:   &to,
		})
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "emp-1", page.Items[0].EmployeeID)
	})
}

func TestTimeOffAttachFile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newTimeOffFixture(testEmployee("emp-1", 10))

	request, err := f.service.CreateRequest(ctx, "emp-1", fullDayPayload("2026-03-03", "2026-03-03", 8))
	require.NoError(t, err)

	err = f.service.AttachFile(ctx, request.ID, "time-off-attachments/emp-1/doc.pdf")
	require.NoError(t, err)

	stored, err := f.service.GetRequestDetails(ctx, "emp-1", request.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.AttachedFile)
	assert.Equal(t, "time-off-attachments/emp-1/doc.pdf", *stored.AttachedFile)

	err = f.service.AttachFile(ctx, "missing", "x.pdf")
	assert.ErrorIs(t, err, attendance.ErrTimeOffRequestNotFound)
}

func TestVacationBalances(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newTimeOffFixture(testEmployee("emp-1", 10), testEmployee("emp-2", 5))

	approved, err := f.service.CreateRequest(ctx, "emp-1", fullDayPayload("2026-03-03", "2026-03-03", 8))
	require.NoError(t, err)
	_, err = f.requests.UpdateStatus(ctx, approved.ID, attendance.RequestStatusApproved)
	require.NoError(t, err)

	t.Run("list", func(t *testing.T) {
		balances, total, err := f.service.ListVacationBalances(ctx, employee.Filter{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, balances, 2)
	})

	t.Run("list filtered to one employee", func(t *testing.T) {
		balances, total, err := f.service.ListVacationBalances(ctx, employee.Filter{
			EmployeeIDs: []string{"emp-1"},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, balances, 1)
		assert.Equal(t, float64(10), balances[0].AllowanceDays)
		assert.Equal(t, attendance.Allowance{Total: 10, Taken: 1, Balance: 9}, balances[0].Allowance)
	})

	t.Run("admin view of an employee's requests", func(t *testing.T) {
		page, err := f.service.ListMyRequests(ctx, "emp-1", attendance.RequestFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Total)
		require.NotNil(t, page.Allowance)

		_, err = f.service.ListMyRequests(ctx, "ghost", attendance.RequestFilter{})
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})

	t.Run("update allowance recomputes balance", func(t *testing.T) {
		balance, err := f.service.UpdateAllowance(ctx, attendance.UpdateAllowanceRequest{
			EmployeeID: "emp-1",
			Total:      0.5,
		})
		require.NoError(t, err)
		assert.Equal(t, 0.5, balance.AllowanceDays)
		// Approved usage exceeds the new allowance; nothing clamps the result.
		assert.Equal(t, attendance.Allowance{Total: 0.5, Taken: 1, Balance: -0.5}, balance.Allowance)

		_, err = f.service.UpdateAllowance(ctx, attendance.UpdateAllowanceRequest{
			EmployeeID: "ghost",
			Total:      3,
		})
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})
}
