package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/govconn-lk/GovConn-BookingFlowService/internal/domain"
	reservationClient "github.com/govconn-lk/GovConn-BookingFlowService/internal/integrations/reservationservice"
)

// UseCase use case для получения слотов услуги с классификацией доступности
type UseCase struct {
	reservation  ReservationClient
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(reservation ReservationClient, logger Logger) *UseCase {
	return &UseCase{
		reservation:  reservation,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%d, date=%s", req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}
	if err := validateDate(req.Date, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем расписание у авторитетного сервиса резервирования
	wireSlots, err := uc.reservation.GetAvailableSlots(ctx, req.ServiceID, req.Date)
	if err != nil {
		// Отсутствие расписания на дату не является ошибкой
		if errors.Is(err, reservationClient.ErrSlotNotFound) {
			uc.logger.Info("GetAvailableSlots: no schedule for service=%d, date=%s", req.ServiceID, req.Date.Format(domain.DateFormat))
			return &Response{ServiceID: req.ServiceID, Date: req.Date, Slots: []Slot{}}, nil
		}
		uc.logger.Error("GetAvailableSlots: reservation service error: %v", err)
		return nil, fmt.Errorf("%w: failed to fetch slots: %v", ErrScheduleUnavailable, err)
	}

	// 3. Классифицируем каждый слот по оставшейся вместимости
	slots := make([]Slot, 0, len(wireSlots))
	for i := range wireSlots {
		timeSlot, err := wireSlots[i].ToDomain()
		if err != nil {
			uc.logger.Error("GetAvailableSlots: decode slot=%d: %v", wireSlots[i].SlotID, err)
			return nil, fmt.Errorf("%w: failed to decode slot: %v", ErrInternal, err)
		}
		slots = append(slots, Slot{
			SlotID:         timeSlot.ID,
			StartTime:      timeSlot.StartTime,
			EndTime:        timeSlot.EndTime,
			MaxCapacity:    timeSlot.MaxCapacity,
			ReservedCount:  timeSlot.ReservedCount,
			AvailableSpots: timeSlot.AvailableSpots(),
			Availability:   string(timeSlot.Availability()),
		})
	}

	uc.logger.Info("GetAvailableSlots: returning %d slots for service=%d, date=%s",
		len(slots), req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		ServiceID: req.ServiceID,
		Date:      req.Date,
		Slots:     slots,
	}, nil
}
