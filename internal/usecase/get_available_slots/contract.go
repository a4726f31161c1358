package get_available_slots

import (
	"context"
	"time"

	"github.com/govconn-lk/GovConn-BookingFlowService/internal/integrations/reservationservice"
)

// ReservationClient интерфейс клиента сервиса резервирования
type ReservationClient interface {
	GetAvailableSlots(ctx context.Context, serviceID int64, date time.Time) ([]reservationservice.Slot, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
