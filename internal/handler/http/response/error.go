package response

import (
	"errors"
	"net/http"

	"github.com/nimbushr/hrm-backend-go/internal/domain/attendance"
	"github.com/nimbushr/hrm-backend-go/internal/domain/employee"
	"github.com/nimbushr/hrm-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, employee.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Request date rules
	case errors.Is(err, attendance.ErrDateFromInvalid),
		errors.Is(err, attendance.ErrDateToInvalid),
		errors.Is(err, attendance.ErrDateToBeforeDateFrom),
		errors.Is(err, attendance.ErrInvalidHalfDaySelection):
		BadRequest(w, err.Error(), nil)

	// Balance guard
	case errors.Is(err, attendance.ErrBalanceZero),
		errors.Is(err, attendance.ErrDurationExceedsBalance):
		BadRequest(w, err.Error(), nil)

	// Lifecycle
	case errors.Is(err, attendance.ErrOnlyPendingDeletable):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrTimeOffRequestNotFound):
		NotFound(w, "Time-off request not found")
	case errors.Is(err, attendance.ErrWfhRequestNotFound):
		NotFound(w, "WFH request not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
