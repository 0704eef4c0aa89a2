package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/booking"
	fieldRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/field"
	"github.com/m04kA/SMC-FieldBookingService/internal/integrations/events"
	"github.com/m04kA/SMC-FieldBookingService/pkg/metrics"
	"github.com/m04kA/SMC-FieldBookingService/pkg/slotlock"
	"github.com/m04kA/SMC-FieldBookingService/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo BookingRepository
	fieldRepo   FieldRepository
	txManager   TransactionManager
	locker      SlotLocker
	publisher   EventPublisher
	metrics     Metrics
	schedule    domain.ScheduleConfig
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	fieldRepo FieldRepository,
	txManager TransactionManager,
	locker SlotLocker,
	publisher EventPublisher,
	metrics Metrics,
	schedule domain.ScheduleConfig,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		fieldRepo:   fieldRepo,
		txManager:   txManager,
		locker:      locker,
		publisher:   publisher,
		metrics:     metrics,
		schedule:    schedule,
		logger:      logger,
	}
}

// Execute создает бронирование в статусе pending на один слот.
// Проверка конфликтов и вставка выполняются в сериализуемой транзакции,
// поэтому из N одновременных запросов на один слот успешен ровно один.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp, err := uc.execute(ctx, req)
	uc.metrics.IncBooking(bookingResult(err))
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Аутентификация проверяется до всего остального
	if !req.Identity.IsAuthenticated() {
		uc.logger.Warn("CreateBooking: anonymous request rejected")
		return nil, ErrUnauthorized
	}

	// 2. Валидация входных данных
	startTime, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}
	date := dateOnly(req.Date)

	uc.logger.Info("CreateBooking: user=%s, field=%s, date=%s, time=%s",
		req.Identity.UserID, req.FieldID, date.Format(domain.DateFormat), startTime)

	endTime, err := startTime.AddMinutes(uc.schedule.SlotDurationMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	// 3. Поле должно существовать, цена фиксируется сейчас
	field, err := uc.fieldRepo.GetByID(ctx, req.FieldID)
	if err != nil {
		if errors.Is(err, fieldRepo.ErrFieldNotFound) {
			uc.logger.Warn("CreateBooking: field id=%s not found", req.FieldID)
			return nil, ErrFieldNotFound
		}
		uc.logger.Error("CreateBooking: failed to get field id=%s: %v", req.FieldID, err)
		return nil, fmt.Errorf("%w: failed to get field: %w", ErrStore, err)
	}

	// 4. Advisory-блокировка слота (Redis); при недоступности Redis полагаемся на БД
	lockKey := slotlock.Key(req.FieldID.String(), date.Format(domain.DateFormat), startTime.String())
	release, err := uc.locker.Acquire(ctx, lockKey)
	switch {
	case errors.Is(err, slotlock.ErrLockHeld):
		uc.logger.Warn("CreateBooking: slot %s is being booked by another request", lockKey)
		return nil, ErrSlotNotAvailable
	case err != nil:
		uc.logger.Warn("CreateBooking: slot lock unavailable, continuing without it: %v", err)
	default:
		defer func() {
			if err := release(context.WithoutCancel(ctx)); err != nil {
				uc.logger.Warn("CreateBooking: failed to release slot lock %s: %v", lockKey, err)
			}
		}()
	}

	var result *domain.Booking

	// 5. Проверка конфликтов и вставка в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		bookings, err := uc.bookingRepo.ListByFieldAndDate(txCtx, req.FieldID, date, nil)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrStore, err)
		}

		if conflict := findConflict(uc.schedule.ConflictPolicy, startTime, endTime, bookings); conflict != nil {
			uc.logger.Warn("CreateBooking: slot %s-%s conflicts with booking id=%s status=%s",
				startTime, endTime, conflict.ID, conflict.Status)
			return ErrSlotNotAvailable
		}

		booking := &domain.Booking{
			FieldID:    field.ID,
			UserID:     req.Identity.UserID,
			Date:       date,
			StartTime:  startTime,
			EndTime:    endTime,
			Status:     domain.StatusPending,
			TotalPrice: field.PricePerHour,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: slot taken on insert: %v", err)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrStore, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Конкурентная транзакция зафиксировала бронирование раньше
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("CreateBooking: serialization conflict for %s: %v", lockKey, err)
			return nil, ErrSlotNotAvailable
		}
		if errors.Is(err, ErrSlotNotAvailable) || errors.Is(err, ErrStore) {
			return nil, err
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s", result.ID)

	// 6. Событие публикуется после фиксации, ошибка публикации не отменяет бронирование
	if err := uc.publisher.Publish(ctx, events.BookingCreated, result); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish event for booking id=%s: %v", result.ID, err)
	}

	return newResponse(result), nil
}

func bookingResult(err error) string {
	switch {
	case err == nil:
		return metrics.BookingResultCreated
	case errors.Is(err, ErrSlotNotAvailable):
		return metrics.BookingResultConflict
	case errors.Is(err, ErrUnauthorized):
		return metrics.BookingResultUnauthorized
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrFieldNotFound):
		return metrics.BookingResultInvalid
	default:
		return metrics.BookingResultError
	}
}
