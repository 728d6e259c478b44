package http

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/nimbushr/hrm-backend-go/internal/domain/attendance"
	"github.com/nimbushr/hrm-backend-go/internal/handler/http/response"
	"github.com/nimbushr/hrm-backend-go/internal/pkg/validator"
	"github.com/nimbushr/hrm-backend-go/internal/service/file"
)

const (
	defaultPage  = 1
	defaultLimit = 20

	maxAttachmentMemory = 10 << 20 // 10 MB

	attachmentURLTTL = 15 * time.Minute
)

// employeeIDFromClaims extracts the authenticated employee from the verified
// token. An empty return means the error response was already written.
func employeeIDFromClaims(w http.ResponseWriter, r *http.Request) string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Failed to extract claims from context")
		return ""
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		response.Unauthorized(w, "employee_id claim is missing or invalid")
		return ""
	}

	return employeeID
}

// parseRequestFilter reads the shared listing query parameters: repeatable
// employee_id and status, an optional date_from/date_to overlap window, and
// page/limit pagination.
func parseRequestFilter(r *http.Request) (attendance.RequestFilter, error) {
	query := r.URL.Query()

	filter := attendance.RequestFilter{
		EmployeeIDs: query["employee_id"],
		Statuses:    query["status"],
		Page:        defaultPage,
		Limit:       defaultLimit,
	}

	var errs validator.ValidationErrors

	if raw := query.Get("date_from"); raw != "" {
		date, ok := validator.IsValidDate(raw)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date_from",
				Message: "date_from must be in YYYY-MM-DD format",
			})
		} else {
			filter.DateFrom = &date
		}
	}
	if raw := query.Get("date_to"); raw != "" {
		date, ok := validator.IsValidDate(raw)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date_to",
				Message: "date_to must be in YYYY-MM-DD format",
			})
		} else {
			filter.DateTo = &date
		}
	}

	if raw := query.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			errs = append(errs, validator.ValidationError{
				Field:   "page",
				Message: "page must be a positive integer",
			})
		} else {
			filter.Page = page
		}
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			errs = append(errs, validator.ValidationError{
				Field:   "limit",
				Message: "limit must be a positive integer",
			})
		} else {
			filter.Limit = limit
		}
	}

	if len(errs) > 0 {
		return attendance.RequestFilter{}, errs
	}

	if err := filter.Validate(); err != nil {
		return attendance.RequestFilter{}, err
	}

	return filter, nil
}

// resolveAttachmentURL swaps the stored attachment path for a servable URL on
// detail responses. On failure the raw path is kept and the error logged.
func resolveAttachmentURL(ctx context.Context, files file.FileService, request *attendance.Request) {
	if request.AttachedFile == nil {
		return
	}

	url, err := files.GetFileURL(ctx, *request.AttachedFile, attachmentURLTTL)
	if err != nil {
		slog.Error("Failed to resolve attachment URL", "error", err, "request_id", request.ID)
		return
	}
	request.AttachedFile = &url
}

func pageMeta(page, limit int, total int64) *response.Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return &response.Meta{
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: totalPages,
	}
}
