package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nimbushr/hrm-backend-go/internal/domain/attendance"
	"github.com/nimbushr/hrm-backend-go/internal/handler/http/response"
	"github.com/nimbushr/hrm-backend-go/internal/service/file"
)

type TimeOffHandler interface {
	CreateRequest(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	DeleteRequest(w http.ResponseWriter, r *http.Request)
	AttachFile(w http.ResponseWriter, r *http.Request)

	ListRequests(w http.ResponseWriter, r *http.Request)
}

type TimeOffHandlerImpl struct {
	timeOffService attendance.TimeOffService
	fileService    file.FileService
}

func NewTimeOffHandler(timeOffService attendance.TimeOffService, fileService file.FileService) TimeOffHandler {
	return &TimeOffHandlerImpl{
		timeOffService: timeOffService,
		fileService:    fileService,
	}
}

// CreateRequest implements TimeOffHandler.
func (h *TimeOffHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	employeeID := employeeIDFromClaims(w, r)
	if employeeID == "" {
		return
	}

	if err := r.ParseMultipartForm(maxAttachmentMemory); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	dataJSON := r.FormValue("data")
	if dataJSON == "" {
		response.BadRequest(w, "Field 'data' is required", nil)
		return
	}

	var payload attendance.CreateRequestPayload
	if err := json.Unmarshal([]byte(dataJSON), &payload); err != nil {
		slog.Error("Failed to unmarshal JSON data", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := payload.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	attachment, fileHeader, err := r.FormFile("attachment")
	if err != nil && err != http.ErrMissingFile {
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}

	request, err := h.timeOffService.CreateRequest(r.Context(), employeeID, payload)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if attachment != nil {
		defer attachment.Close()
		fileRef, err := h.fileService.UploadTimeOffAttachment(r.Context(), employeeID, attachment, fileHeader.Filename)
		if err != nil {
			slog.Error("Failed to upload attachment", "error", err, "request_id", request.ID)
			response.BadRequest(w, "Failed to upload attachment", nil)
			return
		}
		if err := h.timeOffService.AttachFile(r.Context(), request.ID, fileRef); err != nil {
			response.HandleError(w, err)
			return
		}
		request.AttachedFile = &fileRef
	}

	response.Created(w, "Time-off request created successfully", request)
}

// GetMyRequests implements TimeOffHandler.
func (h *TimeOffHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	employeeID := employeeIDFromClaims(w, r)
	if employeeID == "" {
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

// GetRequest implements TimeOffHandler.
func (h *TimeOffHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	employeeID := employeeIDFromClaims(w, r)
	if employeeID == "" {
		return
	}

	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	request, err := h.timeOffService.GetRequestDetails(r.Context(), employeeID, requestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resolveAttachmentURL(r.Context(), h.fileService, &request)
	response.Success(w, request)
}

// DeleteRequest implements TimeOffHandler. The stored attachment, if any, is
// removed best-effort after the row is gone.
func (h *TimeOffHandlerImpl) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	employeeID := employeeIDFromClaims(w, r)
	if employeeID == "" {
		return
	}

	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	request, err := h.timeOffService.GetRequestDetails(r.Context(), employeeID, requestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.timeOffService.DeleteRequest(r.Context(), employeeID, requestID); err != nil {
		response.HandleError(w, err)
		return
	}

	if request.AttachedFile != nil {
		if err := h.fileService.DeleteFile(r.Context(), *request.AttachedFile); err != nil {
			slog.Error("Failed to delete attachment file", "error", err, "request_id", requestID)
		}
	}

	response.SuccessWithMessage(w, "Time-off request deleted successfully", nil)
}

// AttachFile implements TimeOffHandler. The request is looked up by id only;
// any authenticated employee can attach to any request.
func (h *TimeOffHandlerImpl) AttachFile(w http.ResponseWriter, r *http.Request) {
	employeeID := employeeIDFromClaims(w, r)
	if employeeID == "" {
		return
	}

	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	if err := r.ParseMultipartForm(maxAttachmentMemory); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	attachment, fileHeader, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "Field 'file' is required", nil)
		return
	}
	defer attachment.Close()

	fileRef, err := h.fileService.UploadTimeOffAttachment(r.Context(), employeeID, attachment, fileHeader.Filename)
	if err != nil {
		slog.Error("Failed to upload attachment", "error", err, "request_id", requestID)
		response.BadRequest(w, "Failed to upload attachment", nil)
		return
	}

	if err := h.timeOffService.AttachFile(r.Context(), requestID, fileRef); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attachment uploaded successfully", map[string]string{"attached_file": fileRef})
}

// ListRequests implements TimeOffHandler.
func (h *TimeOffHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	filter, err := parseRequestFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	page, err := h.timeOffService.ListAllRequests(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, page, pageMeta(filter.Page, filter.Limit, page.Total))
}
