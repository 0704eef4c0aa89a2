package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/bookings/models"
)

// Service сервис чтения бронирований
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID.
// Владелец видит своё бронирование, администратор видит любое.
func (s *Service) GetByID(ctx context.Context, identity domain.Identity, id uuid.UUID) (*models.BookingResponse, error) {
	if !identity.IsAuthenticated() {
		return nil, ErrUnauthorized
	}

	s.logger.Info("GetByID: fetching booking id=%s for user=%s", id, identity.UserID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !identity.IsAdmin() && booking.UserID != identity.UserID {
		s.logger.Warn("GetByID: access denied for user=%s to booking id=%s", identity.UserID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// List получает бронирования. Администратор видит все бронирования с фильтрами,
// пользователь только свои.
func (s *Service) List(ctx context.Context, identity domain.Identity, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	if !identity.IsAuthenticated() {
		return nil, ErrUnauthorized
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter from user=%s: %v", identity.UserID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if !identity.IsAdmin() {
		filter.UserID = &identity.UserID
	}

	s.logger.Info("List: fetching bookings for user=%s, admin=%t", identity.UserID, identity.IsAdmin())

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d bookings for user=%s", len(bookings), identity.UserID)
	return models.FromDomainBookingList(bookings), nil
}
