package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

var (
	// ErrInvalidFilter возвращается при некорректном фильтре
	ErrInvalidFilter = errors.New("invalid bookings filter")
)

// Request модели

// ListBookingsRequest фильтры списка бронирований (для администратора)
type ListBookingsRequest struct {
	FieldID *string `json:"field_id,omitempty"`
	Date    *string `json:"date,omitempty"`   // "2025-05-15"
	Status  *string `json:"status,omitempty"` // pending | confirmed | cancelled
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	var filter domain.BookingsFilter
	if r == nil {
		return filter, nil
	}

	if r.FieldID != nil {
		id, err := uuid.Parse(*r.FieldID)
		if err != nil {
			return filter, fmt.Errorf("%w: field_id: %v", ErrInvalidFilter, err)
		}
		filter.FieldID = &id
	}

	if r.Date != nil {
		date, err := time.Parse(domain.DateFormat, *r.Date)
		if err != nil {
			return filter, fmt.Errorf("%w: date: %v", ErrInvalidFilter, err)
		}
		filter.Date = &date
	}

	if r.Status != nil {
		status, err := domain.ParseBookingStatus(*r.Status)
		if err != nil {
			return filter, fmt.Errorf("%w: status %q", ErrInvalidFilter, *r.Status)
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID         uuid.UUID `json:"id"`
	FieldID    uuid.UUID `json:"field_id"`
	UserID     uuid.UUID `json:"user_id"`
	Date       string    `json:"date"`       // "2025-05-15"
	StartTime  string    `json:"start_time"` // "10:00:00"
	EndTime    string    `json:"end_time"`   // "11:00:00"
	Status     string    `json:"status"`
	TotalPrice float64   `json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:         b.ID,
		FieldID:    b.FieldID,
		UserID:     b.UserID,
		Date:       b.Date.Format(domain.DateFormat),
		StartTime:  b.StartTime.String(),
		EndTime:    b.EndTime.String(),
		Status:     string(b.Status),
		TotalPrice: b.TotalPrice,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}

	return resp
}
