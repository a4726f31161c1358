package select_service

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
	msgInvalidServiceID   = "service_id must be positive"
	msgServiceNotFound    = "service not found or inactive"
	msgOfficeNotSelected  = "select an office first"
	msgCatalogUnavailable = "service catalog is temporarily unavailable, try again"
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

// Handle POST /api/v1/booking-flow/service
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	citizenNIC, ok := middleware.CitizenNIC(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "citizen is not authenticated")
		return
	}

	var req models.SelectServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking-flow/service - Invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}
	if req.ServiceID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	state, err := h.service.SelectService(r.Context(), citizenNIC, &req)
	if err != nil {
		switch {
		case errors.Is(err, flow.ErrStepIncomplete):
			handlers.RespondUnprocessable(w, msgOfficeNotSelected)

		case errors.Is(err, flow.ErrServiceNotFound):
			h.logger.Warn("POST /booking-flow/service - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, flow.ErrCatalogUnavailable):
			h.logger.Warn("POST /booking-flow/service - Catalog unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgCatalogUnavailable)

		case errors.Is(err, flow.ErrDraftConflict):
			handlers.RespondConflict(w, msgDraftConflict)

		default:
			h.logger.Error("POST /booking-flow/service - Failed: citizen=%s, error=%v", citizenNIC, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, state)
}
