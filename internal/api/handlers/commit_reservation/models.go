package commit_reservation

import (
	commitReservation "github.com/govconn-lk/GovConn-BookingFlowService/internal/usecase/commit_reservation"
)

// CommitResponse HTTP response model подтвержденного бронирования.
// reference_id отсутствует, когда резервирование подтверждено косвенно
// и номер брони неизвестен
type CommitResponse struct {
	ReferenceID *int64 `json:"reference_id,omitempty"`
	SlotID      int64  `json:"slot_id"`
	CitizenNIC  string `json:"citizen_nic"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *commitReservation.Response) *CommitResponse {
	return &CommitResponse{
		ReferenceID: resp.ReferenceID,
		SlotID:      resp.SlotID,
		CitizenNIC:  resp.CitizenNIC,
	}
}
