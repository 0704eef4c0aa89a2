package transition_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-FieldBookingService/internal/integrations/events"
)

// Результаты для метрики переходов
const (
	resultApplied  = "applied"
	resultRejected = "rejected"
	resultError    = "error"
)

// UseCase use case смены статуса бронирования администратором
type UseCase struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	publisher   EventPublisher
	metrics     Metrics
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		publisher:   publisher,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute переводит бронирование из pending в confirmed или cancelled.
// Любой другой переход, а также запрос не от администратора, отклоняется.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp, err := uc.execute(ctx, req)
	uc.metrics.IncTransition(statusLabel(req.TargetStatus), transitionResult(err))
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Только администратор может менять статус
	if !req.Identity.IsAdmin() {
		uc.logger.Warn("TransitionBooking: user=%s is not an admin, booking=%s",
			req.Identity.UserID, req.BookingID)
		return nil, ErrActorNotAdmin
	}

	// 2. Валидация входных данных
	target, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("TransitionBooking: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("TransitionBooking: admin=%s, booking=%s, target=%s",
		req.Identity.UserID, req.BookingID, target)

	var (
		updated  *domain.Booking
		previous domain.BookingStatus
	)

	// 3. Чтение с блокировкой строки и обновление в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("TransitionBooking: booking id=%s not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("TransitionBooking: failed to get booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %w", ErrStore, err)
		}

		previous = booking.Status

		if !booking.CanTransitionTo(target) {
			uc.logger.Warn("TransitionBooking: booking id=%s cannot move %s -> %s",
				booking.ID, booking.Status, target)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, target)
		}

		updated, err = uc.bookingRepo.UpdateStatus(txCtx, booking.ID, target)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("TransitionBooking: failed to update booking id=%s: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update status: %w", ErrStore, err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, ErrInvalidTransition) || errors.Is(err, ErrBookingNotFound) || errors.Is(err, ErrStore) {
			return nil, err
		}
		uc.logger.Error("TransitionBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}

	uc.logger.Info("TransitionBooking: booking id=%s moved %s -> %s", updated.ID, previous, updated.Status)

	if err := uc.publisher.Publish(ctx, events.EventTypeForStatus(updated.Status), updated); err != nil {
		uc.logger.Warn("TransitionBooking: failed to publish event for booking id=%s: %v", updated.ID, err)
	}

	return newResponse(updated, previous), nil
}

func transitionResult(err error) string {
	switch {
	case err == nil:
		return resultApplied
	case errors.Is(err, ErrStore):
		return resultError
	default:
		return resultRejected
	}
}

// statusLabel ограничивает значения метки известными статусами
func statusLabel(status string) string {
	if _, err := domain.ParseBookingStatus(status); err != nil {
		return "unknown"
	}
	return status
}
