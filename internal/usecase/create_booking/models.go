package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	Identity  domain.Identity // Вызывающий; анонимный запрос отклоняется
	FieldID   uuid.UUID
	Date      time.Time // Дата бронирования (без времени)
	StartTime string    // "10:00", "10:00:00" или "10:00 AM"
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         uuid.UUID
	FieldID    uuid.UUID
	UserID     uuid.UUID
	Date       time.Time
	StartTime  types.TimeString
	EndTime    types.TimeString
	Status     domain.BookingStatus
	TotalPrice float64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func newResponse(b *domain.Booking) *Response {
	return &Response{
		ID:         b.ID,
		FieldID:    b.FieldID,
		UserID:     b.UserID,
		Date:       b.Date,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		Status:     b.Status,
		TotalPrice: b.TotalPrice,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}
