package select_date

import (
	"errors"
	"net/http"

	"github.com/govconn-lk/GovConn-BookingFlowService/internal/api/handlers"
	"github.com/govconn-lk/GovConn-BookingFlowService/internal/api/middleware"
	"github.com/govconn-lk/GovConn-BookingFlowService/internal/service/flow"
)

const (
	msgInvalidBody        = "invalid request body"
	msgInvalidDate        = "invalid date format, expected YYYY-MM-DD"
	msgDateInPast         = "date must not be in the past"
	msgServiceNotSelected = "select a service first"
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

// Handle POST /api/v1/booking-flow/date
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	citizenNIC, ok := middleware.CitizenNIC(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "citizen is not authenticated")
		return
	}

	var req SelectDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking-flow/date - Invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /booking-flow/date - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	state, err := h.service.SelectDate(r.Context(), citizenNIC, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, flow.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, flow.ErrStepIncomplete):
			handlers.RespondUnprocessable(w, msgServiceNotSelected)

		case errors.Is(err, flow.ErrDraftConflict):
			handlers.RespondConflict(w, msgDraftConflict)

		default:
			h.logger.Error("POST /booking-flow/date - Failed: citizen=%s, error=%v", citizenNIC, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, state)
}
