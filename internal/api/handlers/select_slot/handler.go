package select_slot

import (
	"errors"
	"net/http"

	"github.com/govconn-lk/GovConn-BookingFlowService/internal/api/handlers"
	"github.com/govconn-lk/GovConn-BookingFlowService/internal/api/middleware"
	"github.com/govconn-lk/GovConn-BookingFlowService/internal/service/flow"
	"github.com/govconn-lk/GovConn-BookingFlowService/internal/service/flow/models"
)

const (
	msgInvalidBody         = "invalid request body"
	msgInvalidSlotID       = "slot_id must be positive"
	msgDateNotSelected     = "select a date first"
	msgSlotNotFound        = "slot not found for the selected date"
	msgSlotFull            = "slot has no available spots"
	msgScheduleUnavailable = "slot schedule is temporarily unavailable, try again"
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

// Handle POST /api/v1/booking-flow/slot
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	citizenNIC, ok := middleware.CitizenNIC(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "citizen is not authenticated")
		return
	}

	var req models.SelectSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking-flow/slot - Invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}
	if req.SlotID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	state, err := h.service.SelectSlot(r.Context(), citizenNIC, &req)
	if err != nil {
		switch {
		case errors.Is(err, flow.ErrStepIncomplete):
			handlers.RespondUnprocessable(w, msgDateNotSelected)

		case errors.Is(err, flow.ErrSlotNotFound):
			h.logger.Warn("POST /booking-flow/slot - Slot not found: slot_id=%d", req.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, flow.ErrSlotFull):
			h.logger.Warn("POST /booking-flow/slot - Slot is full: slot_id=%d", req.SlotID)
			handlers.RespondConflict(w, msgSlotFull)

		case errors.Is(err, flow.ErrScheduleUnavailable):
			h.logger.Warn("POST /booking-flow/slot - Schedule unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgScheduleUnavailable)

		case errors.Is(err, flow.ErrDraftConflict):
			handlers.RespondConflict(w, msgDraftConflict)

		default:
			h.logger.Error("POST /booking-flow/slot - Failed: citizen=%s, error=%v", citizenNIC, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, state)
}
