package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FieldBookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking бронирование часового слота на поле
type Booking struct {
	ID        uuid.UUID
	FieldID   uuid.UUID
	UserID    uuid.UUID
	Date      time.Time // календарный день, без перевода часовых поясов
	StartTime types.TimeString
	EndTime   types.TimeString
	Status    BookingStatus

	// Цена фиксируется при создании и не зависит от последующих изменений цены поля
	TotalPrice float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its slot
func (b *Booking) IsActive() bool {
	return slices.Contains(ActiveStatuses, b.Status)
}

// IsTerminal returns true if no further transitions are possible
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusConfirmed || b.Status == StatusCancelled
}

// CanTransitionTo проверяет допустимость перехода: только pending -> confirmed | cancelled
func (b *Booking) CanTransitionTo(target BookingStatus) bool {
	if b.IsTerminal() {
		return false
	}
	return target == StatusConfirmed || target == StatusCancelled
}

// Overlaps true, если бронирование пересекается с интервалом [start, end).
// Граничные случаи (конец одного = начало другого) пересечением не считаются.
// Конец, не превышающий начало, означает переход через полночь (23:00-00:00 = [1380, 1440)).
func (b *Booking) Overlaps(start, end types.TimeString) bool {
	existingStart, existingEnd, ok := minuteSpan(b.StartTime, b.EndTime)
	if !ok {
		return false
	}
	newStart, newEnd, ok := minuteSpan(start, end)
	if !ok {
		return false
	}
	return existingStart < newEnd && existingEnd > newStart
}

// minuteSpan интервал в минутах от полуночи дня бронирования
func minuteSpan(start, end types.TimeString) (int, int, bool) {
	s, err := start.Minutes()
	if err != nil {
		return 0, 0, false
	}
	e, err := end.Minutes()
	if err != nil {
		return 0, 0, false
	}
	if e <= s {
		e += minutesPerDay
	}
	return s, e, true
}

// ParseBookingStatus конвертирует строку в BookingStatus с валидацией
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !slices.Contains(AllStatuses, status) {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// BookingsFilter фильтр для списка бронирований
type BookingsFilter struct {
	UserID  *uuid.UUID     // nil - бронирования всех пользователей
	FieldID *uuid.UUID     // nil - все поля
	Date    *time.Time     // nil - без ограничения по дате
	Status  *BookingStatus // nil - любой статус
}
