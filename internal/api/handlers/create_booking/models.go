package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-FieldBookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	FieldID   string `json:"field_id" validate:"required,uuid"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"` // "2025-05-15"
	StartTime string `json:"start_time" validate:"required,slot_time"`    // "10:00", "10:00:00", "10:00 AM"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID         uuid.UUID `json:"id"`
	FieldID    uuid.UUID `json:"field_id"`
	UserID     uuid.UUID `json:"user_id"`
	Date       string    `json:"date"`
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
	Status     string    `json:"status"`
	TotalPrice float64   `json:"total_price"`
	CreatedAt  string    `json:"created_at"`
	UpdatedAt  string    `json:"updated_at"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(identity domain.Identity) (*createBooking.Request, error) {
	fieldID, err := uuid.Parse(r.FieldID)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		Identity:  identity,
		FieldID:   fieldID,
		Date:      date,
		StartTime: r.StartTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:         resp.ID,
		FieldID:    resp.FieldID,
		UserID:     resp.UserID,
		Date:       resp.Date.Format(domain.DateFormat),
		StartTime:  resp.StartTime.String(),
		EndTime:    resp.EndTime.String(),
		Status:     string(resp.Status),
		TotalPrice: resp.TotalPrice,
		CreatedAt:  resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  resp.UpdatedAt.Format(time.RFC3339),
	}
}
