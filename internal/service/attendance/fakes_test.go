package attendance

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/nimbushr/hrm-backend-go/internal/domain/attendance"
	"github.com/nimbushr/hrm-backend-go/internal/domain/employee"
	"github.com/nimbushr/hrm-backend-go/internal/pkg/database"
)

// passthroughTransactor satisfies database.Transactor without a database. The
// in-memory fakes below are already atomic enough for these tests.
type passthroughTransactor struct{}

func (passthroughTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// recordingTransactor delegates like the passthrough but counts invocations.
type recordingTransactor struct {
	mu    sync.Mutex
	calls int
}

func (t *recordingTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	t.calls++
	t.mu.Unlock()
	return fn(ctx)
}

type fakeEmployeeRepo struct {
	mu        sync.Mutex
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo(employees ...employee.Employee) *fakeEmployeeRepo {
	r := &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
	for _, emp := range employees {
		r.employees[emp.ID] = emp
	}
	return r
}

func (r *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	emp, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *fakeEmployeeRepo) GetByIDForUpdate(ctx context.Context, id string) (employee.Employee, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeEmployeeRepo) List(ctx context.Context, filter employee.Filter) ([]employee.Employee, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []employee.Employee
	for _, emp := range r.employees {
		if len(filter.EmployeeIDs) > 0 && !containsString(filter.EmployeeIDs, emp.ID) {
			continue
		}
		result = append(result, emp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].FullName < result[j].FullName })
	return result, int64(len(result)), nil
}

func (r *fakeEmployeeRepo) UpdateAllowance(ctx context.Context, id string, allowanceDays float64) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	emp, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	emp.AllowanceDays = allowanceDays
	r.employees[id] = emp
	return emp, nil
}

type fakeRequestRepo struct {
	mu          sync.Mutex
	nextID      int
	requests    map[string]attendance.Request
	errNotFound error
}

func newFakeRequestRepo(errNotFound error) *fakeRequestRepo {
	return &fakeRequestRepo{
		requests:    make(map[string]attendance.Request),
		errNotFound: errNotFound,
	}
}

func (r *fakeRequestRepo) Create(ctx context.Context, request attendance.Request) (attendance.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	request.ID = fmt.Sprintf("req-%d", r.nextID)
	request.CreatedAt = time.Now()
	request.UpdatedAt = request.CreatedAt
	r.requests[request.ID] = request
	return request, nil
}

func (r *fakeRequestRepo) GetByID(ctx context.Context, id string) (attendance.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	request, ok := r.requests[id]
	if !ok {
		return attendance.Request{}, r.errNotFound
	}
	return request, nil
}

func (r *fakeRequestRepo) GetByIDAndEmployee(ctx context.Context, id, employeeID string) (attendance.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	request, ok := r.requests[id]
	if !ok || request.EmployeeID != employeeID {
		return attendance.Request{}, r.errNotFound
	}
	return request, nil
}

func (r *fakeRequestRepo) List(ctx context.Context, filter attendance.RequestFilter) ([]attendance.Request, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []attendance.Request
	for _, request := range r.requests {
		if len(filter.EmployeeIDs) > 0 && !containsString(filter.EmployeeIDs, request.EmployeeID) {
			continue
		}
		if len(filter.Statuses) > 0 && !containsString(filter.Statuses, string(request.Status)) {
			continue
		}
		if filter.DateFrom != nil && filter.DateTo != nil &&
			!attendance.Overlaps(*filter.DateFrom, *filter.DateTo, request.DateFrom, request.DateTo) {
			continue
		}
		result = append(result, request)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].DateFrom.Equal(result[j].DateFrom) {
			return result[i].DateFrom.After(result[j].DateFrom)
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	total := int64(len(result))
	if filter.Limit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		start := (page - 1) * filter.Limit
		if start > len(result) {
			start = len(result)
		}
		end := start + filter.Limit
		if end > len(result) {
			end = len(result)
		}
		result = result[start:end]
	}

	return result, total, nil
}

func (r *fakeRequestRepo) UpdateStatus(ctx context.Context, id string, status attendance.RequestStatus) (attendance.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	request, ok := r.requests[id]
	if !ok {
		return attendance.Request{}, r.errNotFound
	}
	request.Status = status
	request.UpdatedAt = time.Now()
	r.requests[id] = request
	return request, nil
}

func (r *fakeRequestRepo) AttachFile(ctx context.Context, id, fileRef string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	request, ok := r.requests[id]
	if !ok {
		return r.errNotFound
	}
	request.AttachedFile = &fileRef
	r.requests[id] = request
	return nil
}

func (r *fakeRequestRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.requests[id]; !ok {
		return r.errNotFound
	}
	delete(r.requests, id)
	return nil
}

func (r *fakeRequestRepo) SumApprovedHours(ctx context.Context, employeeID string) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum float64
	for _, request := range r.requests {
		if request.EmployeeID == employeeID && request.Status == attendance.RequestStatusApproved {
			sum += request.TotalHours
		}
	}
	return sum, nil
}

func containsString(slice []string, value string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

var _ database.Transactor = passthroughTransactor{}
var _ database.Transactor = (*recordingTransactor)(nil)
var _ employee.EmployeeRepository = (*fakeEmployeeRepo)(nil)
var _ attendance.RequestRepository = (*fakeRequestRepo)(nil)
