package select_office

import (
	"errors"
	"net/http"

	"github.com/govconn-lk/GovConn-BookingFlowService/internal/api/handlers"
	"github.com/govconn-lk/GovConn-BookingFlowService/internal/api/middleware"
	"github.com/govconn-lk/GovConn-BookingFlowService/internal/service/flow"
	"github.com/govconn-lk/GovConn-BookingFlowService/internal/service/flow/models"
)

const (
	msgInvalidBody        = "invalid request body"
	msgInvalidOfficeID    = "office_id must be positive"
	msgOfficeNotFound     = "office not found"
	msgCatalogUnavailable = "office catalog is temporarily unavailable, try again"
	msgDraftConflict      = "booking flow was modified by another request, reload the state"
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

// Handle POST /api/v1/booking-flow/office
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	citizenNIC, ok := middleware.CitizenNIC(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "citizen is not authenticated")
		return
	}

	var req models.SelectOfficeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking-flow/office - Invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}
	if req.OfficeID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidOfficeID)
		return
	}

	state, err := h.service.SelectOffice(r.Context(), citizenNIC, &req)
	if err != nil {
		switch {
		case errors.Is(err, flow.ErrOfficeNotFound):
			h.logger.Warn("POST /booking-flow/office - Office not found: office_id=%d", req.OfficeID)
			handlers.RespondNotFound(w, msgOfficeNotFound)

		case errors.Is(err, flow.ErrCatalogUnavailable):
			h.logger.Warn("POST /booking-flow/office - Catalog unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgCatalogUnavailable)

		case errors.Is(err, flow.ErrDraftConflict):
			handlers.RespondConflict(w, msgDraftConflict)

		default:
			h.logger.Error("POST /booking-flow/office - Failed: citizen=%s, error=%v", citizenNIC, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, state)
}
