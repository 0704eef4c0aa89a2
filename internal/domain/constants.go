package domain

import "errors"

// Default schedule values
const (
	DefaultFirstSlotHour  = 8
	DefaultSlotCount      = 14
	SlotDurationMinutes   = 60
	DefaultConflictPolicy = ConflictAnyStatus

	minutesPerDay = 24 * 60
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

var (
	// ErrInvalidStatus неизвестный статус бронирования
	ErrInvalidStatus = errors.New("domain: invalid booking status")

	// ErrInvalidSchedule некорректная сетка слотов
	ErrInvalidSchedule = errors.New("domain: invalid schedule config")
)

// ActiveStatuses статусы, в которых бронирование занимает слот
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// AllStatuses все статусы бронирования
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCancelled,
}
