package domain

import (
	"fmt"

	"github.com/m04kA/SMC-FieldBookingService/pkg/types"
)

// ConflictPolicy какие существующие бронирования блокируют создание нового
type ConflictPolicy string

const (
	// ConflictAnyStatus блокируют бронирования в любом статусе, включая отменённые
	ConflictAnyStatus ConflictPolicy = "any_status"
	// ConflictActiveOnly отменённые бронирования слот не занимают
	ConflictActiveOnly ConflictPolicy = "active_only"
)

// IsValid returns true for a known policy
func (p ConflictPolicy) IsValid() bool {
	return p == ConflictAnyStatus || p == ConflictActiveOnly
}

// Blocks решает, мешает ли существующее бронирование созданию нового
func (p ConflictPolicy) Blocks(b *Booking) bool {
	if p == ConflictActiveOnly {
		return b.IsActive()
	}
	return true
}

// ScheduleConfig сетка слотов и правила бронирования
type ScheduleConfig struct {
	FirstSlotHour       int
	SlotCount           int
	SlotDurationMinutes int
	ConflictPolicy      ConflictPolicy
}

// DefaultScheduleConfig сетка 08:00..21:00, 14 часовых слотов
func DefaultScheduleConfig() ScheduleConfig {
	return ScheduleConfig{
		FirstSlotHour:       DefaultFirstSlotHour,
		SlotCount:           DefaultSlotCount,
		SlotDurationMinutes: SlotDurationMinutes,
		ConflictPolicy:      DefaultConflictPolicy,
	}
}

// Validate проверяет, что сетка укладывается в сутки
func (c ScheduleConfig) Validate() error {
	if c.FirstSlotHour < 0 || c.FirstSlotHour > 23 {
		return fmt.Errorf("%w: first slot hour must be in [0, 23], got %d", ErrInvalidSchedule, c.FirstSlotHour)
	}
	if c.SlotDurationMinutes <= 0 {
		return fmt.Errorf("%w: slot duration must be positive, got %d", ErrInvalidSchedule, c.SlotDurationMinutes)
	}
	if c.SlotCount <= 0 {
		return fmt.Errorf("%w: slot count must be positive, got %d", ErrInvalidSchedule, c.SlotCount)
	}
	if c.FirstSlotHour*60+c.SlotCount*c.SlotDurationMinutes > 24*60 {
		return fmt.Errorf("%w: %d slots from %02d:00 run past midnight", ErrInvalidSchedule, c.SlotCount, c.FirstSlotHour)
	}
	if !c.ConflictPolicy.IsValid() {
		return fmt.Errorf("%w: unknown conflict policy %q", ErrInvalidSchedule, c.ConflictPolicy)
	}
	return nil
}

// CanonicalSlots упорядоченный список времени начала слотов
func (c ScheduleConfig) CanonicalSlots() []types.TimeString {
	slots := make([]types.TimeString, 0, c.SlotCount)
	for i := 0; i < c.SlotCount; i++ {
		slots = append(slots, types.NewTimeStringFromMinutes(c.FirstSlotHour*60+i*c.SlotDurationMinutes))
	}
	return slots
}
