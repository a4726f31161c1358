package get_available_slots

import (
	"time"

	"github.com/govconn-lk/GovConn-BookingFlowService/internal/domain"
	getAvailableSlots "github.com/govconn-lk/GovConn-BookingFlowService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	ServiceID int64           `json:"service_id"`
	Date      string          `json:"date"`
	Slots     []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота с классификацией доступности
type AvailableSlot struct {
	SlotID         int64  `json:"slot_id"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	MaxCapacity    int    `json:"max_capacity"`
	ReservedCount  int    `json:"reserved_count"`
	AvailableSpots int    `json:"available_spots"`
	Availability   string `json:"availability"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			SlotID:         slot.SlotID,
			StartTime:      slot.StartTime.String(),
			EndTime:        slot.EndTime.String(),
			MaxCapacity:    slot.MaxCapacity,
			ReservedCount:  slot.ReservedCount,
			AvailableSpots: slot.AvailableSpots,
			Availability:   slot.Availability,
		}
	}

	return &AvailableSlotsResponse{
		ServiceID: resp.ServiceID,
		Date:      resp.Date.Format(domain.DateFormat),
		Slots:     slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(serviceID int64, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		ServiceID: serviceID,
		Date:      date,
	}, nil
}
