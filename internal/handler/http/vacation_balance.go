package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/nimbushr/hrm-backend-go/internal/domain/attendance"
	"github.com/nimbushr/hrm-backend-go/internal/domain/employee"
	"github.com/nimbushr/hrm-backend-go/internal/handler/http/response"
)

type VacationBalanceHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	UpdateAllowance(w http.ResponseWriter, r *http.Request)
}

type VacationBalanceHandlerImpl struct {
	timeOffService attendance.TimeOffService
}

func NewVacationBalanceHandler(timeOffService attendance.TimeOffService) VacationBalanceHandler {
	return &VacationBalanceHandlerImpl{timeOffService: timeOffService}
}

// List implements VacationBalanceHandler.
func (h *VacationBalanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := employee.Filter{
		EmployeeIDs: query["employee_id"],
		Page:        defaultPage,
		Limit:       defaultLimit,
	}
	if raw := query.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			response.BadRequest(w, "page must be a positive integer", nil)
			return
		}
		filter.Page = page
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			response.BadRequest(w, "limit must be a positive integer", nil)
			return
		}
		filter.Limit = limit
	}

	balances, total, err := h.timeOffService.ListVacationBalances(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, balances, pageMeta(filter.Page, filter.Limit, total))
}

// Get implements VacationBalanceHandler. Returns the employee's time-off
// requests together with their allowance, the same page shape the employee
// sees on their own listing.
func (h *VacationBalanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	filter, err := parseRequestFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	page, err := h.timeOffService.ListMyRequests(r.Context(), employeeID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, page, pageMeta(filter.Page, filter.Limit, page.Total))
}

// UpdateAllowance implements VacationBalanceHandler.
func (h *VacationBalanceHandlerImpl) UpdateAllowance(w http.ResponseWriter, r *http.Request) {
	var req attendance.UpdateAllowanceRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateAllowance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	balance, err := h.timeOffService.UpdateAllowance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Allowance updated successfully", balance)
}
