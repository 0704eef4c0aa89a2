package transition_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	transitionBooking "github.com/m04kA/SMC-FieldBookingService/internal/usecase/transition_booking"
)

// TransitionBookingRequest HTTP request model
type TransitionBookingRequest struct {
	Status string `json:"status" validate:"required"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID             uuid.UUID `json:"id"`
	FieldID        uuid.UUID `json:"field_id"`
	UserID         uuid.UUID `json:"user_id"`
	Date           string    `json:"date"`
	StartTime      string    `json:"start_time"`
	EndTime        string    `json:"end_time"`
	PreviousStatus string    `json:"previous_status"`
	Status         string    `json:"status"`
	TotalPrice     float64   `json:"total_price"`
	CreatedAt      string    `json:"created_at"`
	UpdatedAt      string    `json:"updated_at"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *TransitionBookingRequest) ToUseCaseRequest(identity domain.Identity, bookingID uuid.UUID) *transitionBooking.Request {
	return &transitionBooking.Request{
		Identity:     identity,
		BookingID:    bookingID,
		TargetStatus: r.Status,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *transitionBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:             resp.ID,
		FieldID:        resp.FieldID,
		UserID:         resp.UserID,
		Date:           resp.Date.Format(domain.DateFormat),
		StartTime:      resp.StartTime.String(),
		EndTime:        resp.EndTime.String(),
		PreviousStatus: string(resp.PreviousStatus),
		Status:         string(resp.Status),
		TotalPrice:     resp.TotalPrice,
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      resp.UpdatedAt.Format(time.RFC3339),
	}
}
