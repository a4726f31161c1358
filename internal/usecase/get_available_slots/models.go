package get_available_slots

import (
	"time"

	"github.com/govconn-lk/GovConn-BookingFlowService/pkg/types"
)

// Request модель запроса на получение слотов услуги на дату
type Request struct {
	ServiceID int64     // ID услуги у сервиса резервирования
	Date      time.Time // Дата, на которую запрашиваются слоты (без времени)
}

// Response модель ответа со списком слотов и их классификацией
type Response struct {
	ServiceID int64
	Date      time.Time
	Slots     []Slot
}

// Slot временной слот с вычисленной классификацией доступности
type Slot struct {
	SlotID         int64
	StartTime      types.TimeString
	EndTime        types.TimeString
	MaxCapacity    int
	ReservedCount  int
	AvailableSpots int
	Availability   string // available | filling_fast | full
}
