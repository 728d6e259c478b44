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

type WfhHandler interface {
	CreateRequest(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	DeleteRequest(w http.ResponseWriter, r *http.Request)
	AttachFile(w http.ResponseWriter, r *http.Request)

	ListRequests(w http.ResponseWriter, r *http.Request)
	GetEmployeeRequest(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)
}

type WfhHandlerImpl struct {
	wfhService  attendance.WfhService
	fileService file.FileService
}

func NewWfhHandler(wfhService attendance.WfhService, fileService file.FileService) WfhHandler {
	return &WfhHandlerImpl{
		wfhService:  wfhService,
		fileService: fileService,
	}
}

// CreateRequest implements WfhHandler.
func (h *WfhHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
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

	request, err := h.wfhService.CreateRequest(r.Context(), employeeID, payload)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if attachment != nil {
		defer attachment.Close()
		fileRef, err := h.fileService.UploadWfhAttachment(r.Context(), employeeID, attachment, fileHeader.Filename)
		if err != nil {
			slog.Error("Failed to upload attachment", "error", err, "request_id", request.ID)
			response.BadRequest(w, "Failed to upload attachment", nil)
			return
		}
		if err := h.wfhService.AttachFile(r.Context(), request.ID, fileRef); err != nil {
			response.HandleError(w, err)
			return
		}
		request.AttachedFile = &fileRef
	}

	response.Created(w, "WFH request created successfully", request)
}

// GetMyRequests implements WfhHandler.
func (h *WfhHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	employeeID := employeeIDFromClaims(w, r)
	if employeeID == "" {
		return
	}

	filter, err := parseRequestFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	page, err := h.wfhService.ListMyRequests(r.Context(), employeeID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, page, pageMeta(filter.Page, filter.Limit, page.Total))
}

// GetRequest implements WfhHandler.
func (h *WfhHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	employeeID := employeeIDFromClaims(w, r)
	if employeeID == "" {
		return
	}

	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	request, err := h.wfhService.GetRequestDetails(r.Context(), employeeID, requestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resolveAttachmentURL(r.Context(), h.fileService, &request)
	response.Success(w, request)
}

// DeleteRequest implements WfhHandler. The stored attachment, if any, is
// removed best-effort after the row is gone.
func (h *WfhHandlerImpl) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	employeeID := employeeIDFromClaims(w, r)
	if employeeID == "" {
		return
	}

	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	request, err := h.wfhService.GetRequestDetails(r.Context(), employeeID, requestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.wfhService.DeleteRequest(r.Context(), employeeID, requestID); err != nil {
		response.HandleError(w, err)
		return
	}

	if request.AttachedFile != nil {
		if err := h.fileService.DeleteFile(r.Context(), *request.AttachedFile); err != nil {
			slog.Error("Failed to delete attachment file", "error", err, "request_id", requestID)
		}
	}

	response.SuccessWithMessage(w, "WFH request deleted successfully", nil)
}

// AttachFile implements WfhHandler. Same lookup-by-id-only semantics as the
// time-off variant.
func (h *WfhHandlerImpl) AttachFile(w http.ResponseWriter, r *http.Request) {
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

	fileRef, err := h.fileService.UploadWfhAttachment(r.Context(), employeeID, attachment, fileHeader.Filename)
	if err != nil {
		slog.Error("Failed to upload attachment", "error", err, "request_id", requestID)
		response.BadRequest(w, "Failed to upload attachment", nil)
		return
	}

	if err := h.wfhService.AttachFile(r.Context(), requestID, fileRef); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attachment uploaded successfully", map[string]string{"attached_file": fileRef})
}

// ListRequests implements WfhHandler.
func (h *WfhHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	filter, err := parseRequestFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	page, err := h.wfhService.ListAllRequests(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, page, pageMeta(filter.Page, filter.Limit, page.Total))
}

// GetEmployeeRequest implements WfhHandler.
func (h *WfhHandlerImpl) GetEmployeeRequest(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")
	requestID := chi.URLParam(r, "id")
	if employeeID == "" || requestID == "" {
		response.BadRequest(w, "Employee ID and request ID are required", nil)
		return
	}

	request, err := h.wfhService.GetRequestDetails(r.Context(), employeeID, requestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resolveAttachmentURL(r.Context(), h.fileService, &request)
	response.Success(w, request)
}

// ApproveRequest implements WfhHandler.
func (h *WfhHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	request, err := h.wfhService.ApproveRequest(r.Context(), requestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "WFH request approved successfully", request)
}

// RejectRequest implements WfhHandler.
func (h *WfhHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	request, err := h.wfhService.RejectRequest(r.Context(), requestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "WFH request rejected successfully", request)
}
