package create_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/pkg/slotlock"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ListByFieldAndDate(ctx context.Context, fieldID uuid.UUID, date time.Time, statuses []domain.BookingStatus) ([]*domain.Booking, error)
}

// FieldRepository интерфейс репозитория полей
type FieldRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Field, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// SlotLocker advisory-блокировка слота между экземплярами сервиса
type SlotLocker interface {
	Acquire(ctx context.Context, key string) (slotlock.ReleaseFunc, error)
}

// EventPublisher публикует события бронирований
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, booking *domain.Booking) error
}

// Metrics счётчики результатов бронирования
type Metrics interface {
	IncBooking(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
