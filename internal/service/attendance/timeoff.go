package attendance

import (
	"context"
	"fmt"

	"github.com/nimbushr/hrm-backend-go/internal/domain/attendance"
	"github.com/nimbushr/hrm-backend-go/internal/domain/employee"
	"github.com/nimbushr/hrm-backend-go/internal/pkg/database"
)

type timeOffServiceImpl struct {
	engine    *requestEngine
	employees employee.EmployeeRepository
	balance   *BalanceCalculator
}

// NewTimeOffService wires the time-off request lifecycle. Creation runs a
// balance guard inside the transaction: the employee row is locked, the
// remaining balance recomputed, and the insert refused when the balance is
// zero or smaller than the requested hours.
func NewTimeOffService(
	repo attendance.RequestRepository,
	employees employee.EmployeeRepository,
	transactor database.Transactor,
	validator *DateValidator,
) attendance.TimeOffService {
	balance := NewBalanceCalculator(repo)

	s := &timeOffServiceImpl{
		employees: employees,
		balance:   balance,
	}
	s.engine = &requestEngine{
		repo:         repo,
		transactor:   transactor,
		validator:    validator,
		beforeCreate: s.checkBalance,
	}
	return s
}

// checkBalance runs inside the create transaction. The FOR UPDATE read
// serializes concurrent creates for the same employee so both see the same
// approved-hours sum.
func (s *timeOffServiceImpl) checkBalance(ctx context.Context, employeeID string, payload attendance.CreateRequestPayload) error {
	emp, err := s.employees.GetByIDForUpdate(ctx, employeeID)
	if err != nil {
		return err
	}

	allowance, err := s.balance.Allowance(ctx, employeeID, emp.AllowanceDays)
	if err != nil {
		return err
	}

	// Exactly zero reports the zero-balance error; a negative balance (allowance
	// reduced below already-approved usage) falls through to the exceeds check.
	if allowance.Balance == 0 {
		return attendance.ErrBalanceZero
	}
	if payload.TotalHours > allowance.Balance {
		return attendance.ErrDurationExceedsBalance
	}

	return nil
}

func (s *timeOffServiceImpl) CreateRequest(ctx context.Context, employeeID string, payload attendance.CreateRequestPayload) (attendance.Request, error) {
	return s.engine.create(ctx, employeeID, payload)
}

func (s *timeOffServiceImpl) DeleteRequest(ctx context.Context, employeeID, requestID string) error {
	return s.engine.delete(ctx, employeeID, requestID)
}

func (s *timeOffServiceImpl) GetRequestDetails(ctx context.Context, employeeID, requestID string) (attendance.Request, error) {
	return s.engine.details(ctx, employeeID, requestID)
}

// ListMyRequests returns the employee's own requests together with their
// current allowance figures.
func (s *timeOffServiceImpl) ListMyRequests(ctx context.Context, employeeID string, filter attendance.RequestFilter) (attendance.RequestPage, error) {
	requests, total, err := s.engine.listMine(ctx, employeeID, filter)
	if err != nil {
		return attendance.RequestPage{}, err
	}

	emp, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.RequestPage{}, err
	}

	allowance, err := s.balance.Allowance(ctx, employeeID, emp.AllowanceDays)
	if err != nil {
		return attendance.RequestPage{}, err
	}

	days := allowance.ToDays()
	return attendance.RequestPage{
		Items:     requests,
		Total:     total,
		Allowance: &days,
	}, nil
}

func (s *timeOffServiceImpl) ListAllRequests(ctx context.Context, filter attendance.RequestFilter) (attendance.RequestPage, error) {
	requests, total, err := s.engine.listAll(ctx, filter)
	if err != nil {
		return attendance.RequestPage{}, err
	}

	return attendance.RequestPage{Items: requests, Total: total}, nil
}

func (s *timeOffServiceImpl) AttachFile(ctx context.Context, requestID, fileRef string) error {
	return s.engine.attachFile(ctx, requestID, fileRef)
}

func (s *timeOffServiceImpl) vacationBalance(ctx context.Context, emp employee.Employee) (attendance.VacationBalance, error) {
	allowance, err := s.balance.Allowance(ctx, emp.ID, emp.AllowanceDays)
	if err != nil {
		return attendance.VacationBalance{}, fmt.Errorf("allowance for employee %s: %w", emp.ID, err)
	}

	return attendance.VacationBalance{
		EmployeeID:    emp.ID,
		FullName:      emp.FullName,
		Email:         emp.Email,
		AllowanceDays: emp.AllowanceDays,
		Allowance:     allowance.ToDays(),
	}, nil
}

func (s *timeOffServiceImpl) ListVacationBalances(ctx context.Context, filter employee.Filter) ([]attendance.VacationBalance, int64, error) {
	employees, total, err := s.employees.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	balances := make([]attendance.VacationBalance, 0, len(employees))
	for _, emp := range employees {
		vb, err := s.vacationBalance(ctx, emp)
		if err != nil {
			return nil, 0, err
		}
		balances = append(balances, vb)
	}

	return balances, total, nil
}

func (s *timeOffServiceImpl) UpdateAllowance(ctx context.Context, req attendance.UpdateAllowanceRequest) (attendance.VacationBalance, error) {
	emp, err := s.employees.UpdateAllowance(ctx, req.EmployeeID, req.Total)
	if err != nil {
		return attendance.VacationBalance{}, err
	}

	return s.vacationBalance(ctx, emp)
}
