package attendance

import (
	"time"

	"github.com/nimbushr/hrm-backend-go/internal/pkg/validator"
)

const dateLayout = "2006-01-02"

type CreateRequestPayload struct {
	DateFrom   string  `json:"date_from"`
	DateTo     string  `json:"date_to"`
	DateType   string  `json:"date_type"`
	TotalHours float64 `json:"total_hours"`
	Details    string  `json:"details"`
}

// Validate checks field shape only. Date-rule validation (past dates, range
// order, half-day consistency) happens in the service layer.
func (r *CreateRequestPayload) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.DateFrom) {
		errs = append(errs, validator.ValidationError{
			Field:   "date_from",
			Message: "date_from is required",
		})
	} else if _, ok := validator.IsValidDate(r.DateFrom); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date_from",
			Message: "date_from must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.DateTo) {
		errs = append(errs, validator.ValidationError{
			Field:   "date_to",
			Message: "date_to is required",
		})
	} else if _, ok := validator.IsValidDate(r.DateTo); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date_to",
			Message: "date_to must be in YYYY-MM-DD format",
		})
	}

	if !validator.IsInSlice(r.DateType, []string{string(DateTypeFullDay), string(DateTypeHalfDay)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "date_type",
			Message: "date_type must be full_day or half_day",
		})
	}

	if r.TotalHours <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "total_hours",
			Message: "total_hours must be a positive number",
		})
	}

	if validator.IsEmpty(r.Details) {
		errs = append(errs, validator.ValidationError{
			Field:   "details",
			Message: "details is required",
		})
	}
	if len(r.Details) > 1024 {
		errs = append(errs, validator.ValidationError{
			Field:   "details",
			Message: "details must not exceed 1024 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Dates returns the parsed date range. Call Validate first; parse errors here
// mean the payload was not validated.
func (r *CreateRequestPayload) Dates() (time.Time, time.Time, error) {
	dateFrom, err := time.Parse(dateLayout, r.DateFrom)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	dateTo, err := time.Parse(dateLayout, r.DateTo)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return dateFrom, dateTo, nil
}

// RequestFilter narrows request listings. DateFrom/DateTo select requests
// whose range overlaps the window; both must be set together.
type RequestFilter struct {
	EmployeeIDs []string
	Statuses    []string
	DateFrom    *time.Time
	DateTo      *time.Time
	Page        int
	Limit       int
}

func (f *RequestFilter) Validate() error {
	var errs validator.ValidationErrors

	for _, status := range f.Statuses {
		if !validator.IsInSlice(status, []string{
			string(RequestStatusPending),
			string(RequestStatusApproved),
			string(RequestStatusRejected),
		}) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be pending, approved or rejected",
			})
			break
		}
	}

	if (f.DateFrom == nil) != (f.DateTo == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "date_from",
			Message: "date_from and date_to must be provided together",
		})
	}
	if f.DateFrom != nil && f.DateTo != nil && f.DateTo.Before(*f.DateFrom) {
		errs = append(errs, validator.ValidationError{
			Field:   "date_to",
			Message: "date_to must be equal to or after date_from",
		})
	}

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must not be negative",
		})
	}
	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateAllowanceRequest struct {
	EmployeeID string `json:"employee_id"`
	// Total is the new allowance in days.
	Total float64 `json:"total"`
}

func (r *UpdateAllowanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	} else if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	if r.Total < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "total",
			Message: "total must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
