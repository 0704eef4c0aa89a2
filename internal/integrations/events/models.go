package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// Routing keys событий бронирования
const (
	BookingCreated   = "booking.created"
	BookingConfirmed = "booking.confirmed"
	BookingCancelled = "booking.cancelled"
)

// DefaultExchange topic-exchange событий бронирования
const DefaultExchange = "booking.events"

// BookingEvent тело сообщения о бронировании
type BookingEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Type       string    `json:"type"`
	BookingID  uuid.UUID `json:"booking_id"`
	FieldID    uuid.UUID `json:"field_id"`
	UserID     uuid.UUID `json:"user_id"`
	Date       string    `json:"date"`
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
	Status     string    `json:"status"`
	TotalPrice float64   `json:"total_price"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewBookingEvent собирает событие из бронирования
func NewBookingEvent(eventType string, b *domain.Booking, now time.Time) BookingEvent {
	return BookingEvent{
		EventID:    uuid.New(),
		Type:       eventType,
		BookingID:  b.ID,
		FieldID:    b.FieldID,
		UserID:     b.UserID,
		Date:       b.Date.Format(domain.DateFormat),
		StartTime:  b.StartTime.String(),
		EndTime:    b.EndTime.String(),
		Status:     string(b.Status),
		TotalPrice: b.TotalPrice,
		OccurredAt: now.UTC(),
	}
}

// EventTypeForStatus routing key для перехода в статус
func EventTypeForStatus(status domain.BookingStatus) string {
	switch status {
	case domain.StatusConfirmed:
		return BookingConfirmed
	case domain.StatusCancelled:
		return BookingCancelled
	default:
		return BookingCreated
	}
}
