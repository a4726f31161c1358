package attach_document

import (
	"errors"
	"net/http"

	"github.com/govconn-lk/GovConn-BookingFlowService/internal/api/handlers"
	"github.com/govconn-lk/GovConn-BookingFlowService/internal/api/middleware"
	"github.com/govconn-lk/GovConn-BookingFlowService/internal/service/flow"
)

const (
	msgInvalidBody         = "invalid request body"
	msgInvalidDocumentType = "document_type_id must be positive"
	msgMissingFileName     = "filename is required"
	msgInvalidFile         = "file must be valid base64 content"
	msgServiceNotSelected  = "select a service first"
	msgDocumentNotRequired = "document type is not required by the selected service"
	msgDocumentTooLarge    = "file exceeds the maximum allowed size of 10MB"
	msgUnsupportedType     = "only PDF, JPEG and PNG files are supported"
	msgUploadFailed        = "file upload failed, try again"
	msgDraftConflict       = "booking flow was modified by another request, reload the state"
)

type Handler struct {
	service FlowService
	logger  Logger
}

func NewHandler(service FlowService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/booking-flow/documents
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	citizenNIC, ok := middleware.CitizenNIC(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "citizen is not authenticated")
		return
	}

	var req AttachDocumentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking-flow/documents - Invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}
	if req.DocumentTypeID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidDocumentType)
		return
	}
	if req.FileName == "" {
		handlers.RespondBadRequest(w, msgMissingFileName)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /booking-flow/documents - Invalid file content: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFile)
		return
	}

	state, err := h.service.AttachDocument(r.Context(), citizenNIC, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, flow.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidFile)

		case errors.Is(err, flow.ErrStepIncomplete):
			handlers.RespondUnprocessable(w, msgServiceNotSelected)

		case errors.Is(err, flow.ErrDocumentNotRequired):
			h.logger.Warn("POST /booking-flow/documents - Document not required: document_type_id=%d", req.DocumentTypeID)
			handlers.RespondUnprocessable(w, msgDocumentNotRequired)

		case errors.Is(err, flow.ErrDocumentTooLarge):
			handlers.RespondError(w, http.StatusRequestEntityTooLarge, msgDocumentTooLarge)

		case errors.Is(err, flow.ErrUnsupportedDocumentType):
			handlers.RespondError(w, http.StatusUnsupportedMediaType, msgUnsupportedType)

		case errors.Is(err, flow.ErrUploadFailed):
			h.logger.Warn("POST /booking-flow/documents - Upload failed: citizen=%s, error=%v", citizenNIC, err)
			handlers.RespondBadGateway(w, msgUploadFailed)

		case errors.Is(err, flow.ErrDraftConflict):
			handlers.RespondConflict(w, msgDraftConflict)

		default:
			h.logger.Error("POST /booking-flow/documents - Failed: citizen=%s, error=%v", citizenNIC, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, state)
}
