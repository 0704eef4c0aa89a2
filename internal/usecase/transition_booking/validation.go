package transition_booking

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// validateRequest проверяет входные данные и разбирает целевой статус
func validateRequest(req *Request) (domain.BookingStatus, error) {
	if req.BookingID == uuid.Nil {
		return "", fmt.Errorf("%w: bookingID is required", ErrInvalidInput)
	}

	target, err := domain.ParseBookingStatus(req.TargetStatus)
	if err != nil {
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.TargetStatus)
	}

	return target, nil
}
