package commit_reservation

import (
	"errors"
	"net/http"

	"github.com/govconn-lk/GovConn-BookingFlowService/internal/api/handlers"
	"github.com/govconn-lk/GovConn-BookingFlowService/internal/api/middleware"
	commitReservation "github.com/govconn-lk/GovConn-BookingFlowService/internal/usecase/commit_reservation"
)

const (
	msgFlowIncomplete = "booking flow is not complete"
	msgSlotConflict   = "slot is no longer available, pick another slot"
	msgReserveFailed  = "reservation temporarily failed, try again"
	msgIndeterminate  = "reservation outcome is unknown, retry the commit"
	msgDraftConflict  = "booking flow was modified by another request, reload the state"
)

type Handler struct {
	useCase CommitReservationUseCase
	logger  Logger
}

func NewHandler(useCase CommitReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/booking-flow/commit
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	citizenNIC, ok := middleware.CitizenNIC(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "citizen is not authenticated")
		return
	}

	result, err := h.useCase.Execute(r.Context(), &commitReservation.Request{
		CitizenNIC: citizenNIC,
	})
	if err != nil {
		switch {
		case errors.Is(err, commitReservation.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgFlowIncomplete)

		case errors.Is(err, commitReservation.ErrFlowIncomplete):
			h.logger.Warn("POST /booking-flow/commit - Flow incomplete: citizen=%s, error=%v", citizenNIC, err)
			handlers.RespondUnprocessable(w, msgFlowIncomplete)

		case errors.Is(err, commitReservation.ErrSlotConflict):
			h.logger.Warn("POST /booking-flow/commit - Slot conflict: citizen=%s", citizenNIC)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, commitReservation.ErrReserveTransient):
			h.logger.Warn("POST /booking-flow/commit - Transient failure: citizen=%s, error=%v", citizenNIC, err)
			handlers.RespondServiceUnavailable(w, msgReserveFailed)

		case errors.Is(err, commitReservation.ErrCommitIndeterminate):
			h.logger.Warn("POST /booking-flow/commit - Indeterminate outcome: citizen=%s", citizenNIC)
			handlers.RespondServiceUnavailable(w, msgIndeterminate)

		case errors.Is(err, commitReservation.ErrDraftConflict):
			handlers.RespondConflict(w, msgDraftConflict)

		default:
			h.logger.Error("POST /booking-flow/commit - Failed: citizen=%s, error=%v", citizenNIC, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /booking-flow/commit - Reservation committed: citizen=%s, slot_id=%d", citizenNIC, result.SlotID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
