package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeSlot_AvailableSpots(t *testing.T) {
	slot := &TimeSlot{MaxCapacity: 10, ReservedCount: 7}
	assert.Equal(t, 3, slot.AvailableSpots())

	slot.ReservedCount = 10
	assert.Equal(t, 0, slot.AvailableSpots())

	// reserved_count выше capacity не должен давать отрицательное значение
	slot.ReservedCount = 12
	assert.Equal(t, 0, slot.AvailableSpots())
}

func TestTimeSlot_Availability_Classification(t *testing.T) {
	tests := []struct {
		name          string
		maxCapacity   int
		reservedCount int
		status        SlotStatus
		want          SlotAvailability
	}{
		{"seven of ten reserved is filling fast", 10, 7, SlotStatusAvailable, AvailabilityFillingFast},
		{"fully reserved is full", 10, 10, SlotStatusFull, AvailabilityFull},
		{"one spot left is filling fast", 10, 9, SlotStatusAvailable, AvailabilityFillingFast},
		{"three spots left is filling fast", 10, 7, SlotStatusAvailable, AvailabilityFillingFast},
		{"four spots left is available", 10, 6, SlotStatusAvailable, AvailabilityAvailable},
		{"empty slot is available", 10, 0, SlotStatusAvailable, AvailabilityAvailable},
		{"capacity one untouched is filling fast", 1, 0, SlotStatusAvailable, AvailabilityFillingFast},
		{"authority status full wins over count", 10, 5, SlotStatusFull, AvailabilityFull},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot := &TimeSlot{MaxCapacity: tt.maxCapacity, ReservedCount: tt.reservedCount, Status: tt.status}
			assert.Equal(t, tt.want, slot.Availability())
		})
	}
}

func TestTimeSlot_IsFull(t *testing.T) {
	slot := &TimeSlot{MaxCapacity: 1, ReservedCount: 0, Status: SlotStatusAvailable}
	assert.False(t, slot.IsFull())

	slot.ReservedCount = 1
	assert.True(t, slot.IsFull())
}

func TestTimeSlot_Validate(t *testing.T) {
	valid := &TimeSlot{ID: 1, MaxCapacity: 10, ReservedCount: 5}
	require.NoError(t, valid.Validate())

	boundary := &TimeSlot{ID: 2, MaxCapacity: 10, ReservedCount: 10}
	require.NoError(t, boundary.Validate())

	overbooked := &TimeSlot{ID: 3, MaxCapacity: 10, ReservedCount: 11}
	require.Error(t, overbooked.Validate())

	negative := &TimeSlot{ID: 4, MaxCapacity: 10, ReservedCount: -1}
	require.Error(t, negative.Validate())

	zeroCapacity := &TimeSlot{ID: 5, MaxCapacity: 0, ReservedCount: 0}
	require.Error(t, zeroCapacity.Validate())
}
