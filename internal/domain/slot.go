package domain

import (
	"fmt"
	"time"

	"github.com/govconn-lk/GovConn-BookingFlowService/pkg/types"
)

// SlotStatus статус слота у авторитетного сервиса резервирования
type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "available"
	SlotStatusFull      SlotStatus = "full"
)

// SlotAvailability классификация доступности слота для отображения
type SlotAvailability string

const (
	AvailabilityFull        SlotAvailability = "full"
	AvailabilityFillingFast SlotAvailability = "filling_fast"
	AvailabilityAvailable   SlotAvailability = "available"
)

// TimeSlot is a read-only projection of a bookable time slot.
// The authoritative reserved count lives with the reservation authority
// and is never advanced locally.
type TimeSlot struct {
	ID            int64
	ServiceID     int64
	BookingDate   time.Time
	StartTime     types.TimeString
	EndTime       types.TimeString
	MaxCapacity   int
	ReservedCount int
	Status        SlotStatus
}

// AvailableSpots returns max_capacity - reserved_count, never below zero
func (s *TimeSlot) AvailableSpots() int {
	available := s.MaxCapacity - s.ReservedCount
	if available < 0 {
		return 0
	}
	return available
}

// IsFull returns true if the slot cannot accept another reservation
func (s *TimeSlot) IsFull() bool {
	return s.Status == SlotStatusFull || s.AvailableSpots() == 0
}

// Availability classifies the slot by its remaining capacity:
// 0 spots -> full, 1..FillingFastThreshold -> filling_fast, else available
func (s *TimeSlot) Availability() SlotAvailability {
	available := s.AvailableSpots()
	switch {
	case s.IsFull():
		return AvailabilityFull
	case available <= FillingFastThreshold:
		return AvailabilityFillingFast
	default:
		return AvailabilityAvailable
	}
}

// Validate проверяет инвариант capacity слота
func (s *TimeSlot) Validate() error {
	if s.MaxCapacity <= 0 {
		return fmt.Errorf("slot %d: max_capacity must be positive, got %d", s.ID, s.MaxCapacity)
	}
	if s.ReservedCount < 0 || s.ReservedCount > s.MaxCapacity {
		return fmt.Errorf("slot %d: reserved_count %d out of range [0, %d]", s.ID, s.ReservedCount, s.MaxCapacity)
	}
	return nil
}
