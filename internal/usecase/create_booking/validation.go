package create_booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/pkg/types"
)

// validateRequest валидирует входные данные и возвращает нормализованное время начала
func validateRequest(req *Request) (types.TimeString, error) {
	if req.FieldID == uuid.Nil {
		return "", fmt.Errorf("%w: fieldID is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return "", fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime == "" {
		return "", fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	start, err := types.NormalizeTime(req.StartTime)
	if err != nil {
		return "", fmt.Errorf("%w: invalid startTime %q: %v", ErrInvalidInput, req.StartTime, err)
	}

	return start, nil
}

// dateOnly отбрасывает время, сохраняя календарный день без перевода часовых поясов
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// findConflict возвращает первое бронирование, которое по политике блокирует интервал [start, end)
func findConflict(
	policy domain.ConflictPolicy,
	start, end types.TimeString,
	bookings []*domain.Booking,
) *domain.Booking {
	for _, b := range bookings {
		if !policy.Blocks(b) {
			continue
		}
		// Строгие неравенства: граничащие интервалы не пересекаются
		if b.Overlaps(start, end) {
			return b
		}
	}
	return nil
}
