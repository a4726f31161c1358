package restart_flow

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

// Handle POST /api/v1/booking-flow/restart
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	citizenNIC, ok := middleware.CitizenNIC(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "citizen is not authenticated")
		return
	}

	state, err := h.service.Restart(r.Context(), citizenNIC)
	if err != nil {
		h.logger.Error("POST /booking-flow/restart - Failed: citizen=%s, error=%v", citizenNIC, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /booking-flow/restart - Flow restarted: citizen=%s", citizenNIC)
	handlers.RespondJSON(w, http.StatusOK, state)
}
