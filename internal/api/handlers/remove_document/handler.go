package remove_document

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/govconn-lk/GovConn-BookingFlowService/internal/api/handlers"
	"github.com/govconn-lk/GovConn-BookingFlowService/internal/api/middleware"
	"github.com/govconn-lk/GovConn-BookingFlowService/internal/service/flow"
	"github.com/govconn-lk/GovConn-BookingFlowService/internal/service/flow/models"
)

const (
	msgInvalidDocumentType = "invalid document type ID"
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

// Handle DELETE /api/v1/booking-flow/documents/{documentTypeId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	citizenNIC, ok := middleware.CitizenNIC(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "citizen is not authenticated")
		return
	}

	vars := mux.Vars(r)
	documentTypeID, err := strconv.ParseInt(vars["documentTypeId"], 10, 64)
	if err != nil || documentTypeID <= 0 {
		h.logger.Warn("DELETE /booking-flow/documents/{id} - Invalid document type ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDocumentType)
		return
	}

	state, err := h.service.RemoveDocument(r.Context(), citizenNIC, &models.RemoveDocumentRequest{
		DocumentTypeID: documentTypeID,
	})
	if err != nil {
		switch {
		case errors.Is(err, flow.ErrDraftConflict):
			handlers.RespondConflict(w, msgDraftConflict)

		default:
			h.logger.Error("DELETE /booking-flow/documents/{id} - Failed: citizen=%s, error=%v", citizenNIC, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, state)
}
