package transition_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/pkg/types"
)

// Request модель запроса на смену статуса бронирования
type Request struct {
	Identity     domain.Identity
	BookingID    uuid.UUID
	TargetStatus string // "confirmed" или "cancelled"
}

// Response модель ответа с обновлённым бронированием
type Response struct {
	ID             uuid.UUID
	FieldID        uuid.UUID
	UserID         uuid.UUID
	Date           time.Time
	StartTime      types.TimeString
	EndTime        types.TimeString
	PreviousStatus domain.BookingStatus
	Status         domain.BookingStatus
	TotalPrice     float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func newResponse(b *domain.Booking, previous domain.BookingStatus) *Response {
	return &Response{
		ID:             b.ID,
		FieldID:        b.FieldID,
		UserID:         b.UserID,
		Date:           b.Date,
		StartTime:      b.StartTime,
		EndTime:        b.EndTime,
		PreviousStatus: previous,
		Status:         b.Status,
		TotalPrice:     b.TotalPrice,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}
