package commit_reservation

import (
	"fmt"

	"github.com/govconn-lk/GovConn-BookingFlowService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CitizenNIC == "" {
		return fmt.Errorf("%w: citizen NIC is required", ErrInvalidInput)
	}
	return nil
}

// validateDraftComplete проверяет, что все шаги потока завершены
// и черновик готов к подтверждению
func validateDraftComplete(draft *domain.DraftBooking) error {
	if draft.Office == nil {
		return fmt.Errorf("%w: office is not selected", ErrFlowIncomplete)
	}
	if draft.Service == nil || !draft.RequirementsLoaded {
		return fmt.Errorf("%w: service is not selected", ErrFlowIncomplete)
	}
	if !draft.DocumentsComplete() {
		return fmt.Errorf("%w: required documents are not uploaded", ErrFlowIncomplete)
	}
	if draft.AppointmentDate == nil || draft.Slot == nil {
		return fmt.Errorf("%w: date and slot are not selected", ErrFlowIncomplete)
	}
	if draft.CommitKey == "" {
		return fmt.Errorf("%w: draft has no commit key", ErrFlowIncomplete)
	}
	return nil
}
