package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	fieldRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/field"
	"github.com/m04kA/SMC-FieldBookingService/pkg/types"
)

// UseCase use case расчёта доступности слотов поля на дату
type UseCase struct {
	bookingRepo BookingRepository
	fieldRepo   FieldRepository
	schedule    domain.ScheduleConfig
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	fieldRepo FieldRepository,
	schedule domain.ScheduleConfig,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		fieldRepo:   fieldRepo,
		schedule:    schedule,
		logger:      logger,
	}
}

// Execute возвращает все слоты сетки. Слот недоступен только при подтверждённом
// бронировании с тем же временем начала; pending и cancelled слот не занимают.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("GetAvailability: field=%s, date=%s", req.FieldID, req.Date.Format(domain.DateFormat))

	if _, err := uc.fieldRepo.GetByID(ctx, req.FieldID); err != nil {
		if errors.Is(err, fieldRepo.ErrFieldNotFound) {
			uc.logger.Warn("GetAvailability: field id=%s not found", req.FieldID)
			return nil, ErrFieldNotFound
		}
		uc.logger.Error("GetAvailability: failed to get field id=%s: %v", req.FieldID, err)
		return nil, fmt.Errorf("%w: failed to get field: %v", ErrInternal, err)
	}

	confirmed, err := uc.bookingRepo.ListByFieldAndDate(ctx, req.FieldID, req.Date,
		[]domain.BookingStatus{domain.StatusConfirmed})
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	slots := buildSlots(uc.schedule, confirmed)

	uc.logger.Info("GetAvailability: field=%s, date=%s, confirmed=%d, slots=%d",
		req.FieldID, req.Date.Format(domain.DateFormat), len(confirmed), len(slots))

	return &Response{
		FieldID: req.FieldID,
		Date:    req.Date,
		Slots:   slots,
	}, nil
}

// buildSlots помечает занятыми слоты, время начала которых совпадает с подтверждённым бронированием
func buildSlots(schedule domain.ScheduleConfig, confirmed []*domain.Booking) []domain.AvailableSlot {
	taken := make(map[types.TimeString]struct{}, len(confirmed))
	for _, b := range confirmed {
		if b.Status != domain.StatusConfirmed {
			continue
		}
		taken[b.StartTime] = struct{}{}
	}

	starts := schedule.CanonicalSlots()
	slots := make([]domain.AvailableSlot, 0, len(starts))
	for _, start := range starts {
		end, _ := start.AddMinutes(schedule.SlotDurationMinutes)
		_, isTaken := taken[start]
		slots = append(slots, domain.AvailableSlot{
			StartTime: start,
			EndTime:   end,
			Available: !isTaken,
		})
	}

	return slots
}
