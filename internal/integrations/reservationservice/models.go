package reservationservice

import (
	"fmt"
	"time"

	"github.com/govconn-lk/GovConn-BookingFlowService/internal/domain"
	"github.com/govconn-lk/GovConn-BookingFlowService/pkg/types"
)

// Slot модель слота у авторитетного сервиса резервирования
type Slot struct {
	SlotID         int64  `json:"slot_id"`
	ReservationID  int64  `json:"reservation_id"` // ID услуги, владеющей слотом
	StartTime      string `json:"start_time"`     // "HH:MM:SS"
	EndTime        string `json:"end_time"`       // "HH:MM:SS"
	MaxCapacity    int    `json:"max_capacity"`
	ReservedCount  int    `json:"reserved_count"`
	Status         string `json:"status"`
	BookingDate    string `json:"booking_date"` // "YYYY-MM-DD"
	RecurrentCount int    `json:"recurrent_count"`
}

// ToDomain конвертирует модель сервиса резервирования в доменную модель
func (s *Slot) ToDomain() (domain.TimeSlot, error) {
	bookingDate, err := time.Parse(domain.DateFormat, s.BookingDate)
	if err != nil {
		return domain.TimeSlot{}, fmt.Errorf("%w: invalid booking_date %q: %v", ErrInvalidResponse, s.BookingDate, err)
	}

	startTime, err := types.NewTimeStringFromString(s.StartTime)
	if err != nil {
		return domain.TimeSlot{}, fmt.Errorf("%w: invalid start_time %q: %v", ErrInvalidResponse, s.StartTime, err)
	}

	endTime, err := types.NewTimeStringFromString(s.EndTime)
	if err != nil {
		return domain.TimeSlot{}, fmt.Errorf("%w: invalid end_time %q: %v", ErrInvalidResponse, s.EndTime, err)
	}

	return domain.TimeSlot{
		ID:            s.SlotID,
		ServiceID:     s.ReservationID,
		BookingDate:   bookingDate,
		StartTime:     startTime,
		EndTime:       endTime,
		MaxCapacity:   s.MaxCapacity,
		ReservedCount: s.ReservedCount,
		Status:        domain.SlotStatus(s.Status),
	}, nil
}

// reserveRequest тело запроса резервирования
type reserveRequest struct {
	SlotID     int64  `json:"slot_id"`
	CitizenNIC string `json:"citizen_nic"`
}

// ReservedUser подтвержденное резервирование от авторитетного сервиса
type ReservedUser struct {
	ReferenceID int64  `json:"reference_id"`
	SlotID      int64  `json:"slot_id"`
	CitizenNIC  string `json:"citizen_nic"`
}

// ToDomain конвертирует подтвержденное резервирование в доменную модель
func (r *ReservedUser) ToDomain() domain.Reservation {
	return domain.Reservation{
		ReferenceID: r.ReferenceID,
		CitizenNIC:  r.CitizenNIC,
		SlotID:      r.SlotID,
	}
}

// ErrorResponse модель ошибки от сервиса резервирования
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail"`
}
