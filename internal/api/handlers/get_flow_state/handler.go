package get_flow_state

import (
	"net/http"

	"github.com/govconn-lk/GovConn-BookingFlowService/internal/api/handlers"
	"github.com/govconn-lk/GovConn-BookingFlowService/internal/api/middleware"
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

// Handle GET /api/v1/booking-flow
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	citizenNIC, ok := middleware.CitizenNIC(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "citizen is not authenticated")
		return
	}

	state, err := h.service.GetState(r.Context(), citizenNIC)
	if err != nil {
		h.logger.Error("GET /booking-flow - Failed to get state: citizen=%s, error=%v", citizenNIC, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, state)
}
