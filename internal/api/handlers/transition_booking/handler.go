package transition_booking

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	transitionBooking "github.com/m04kA/SMC-FieldBookingService/internal/usecase/transition_booking"
	"github.com/m04kA/SMC-FieldBookingService/pkg/validator"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStatus      = "некорректный целевой статус"
	msgUnauthorized       = "требуется авторизация"
	msgForbidden          = "менять статус бронирования может только администратор"
	msgNotFound           = "бронирование не найдено"
	msgInvalidTransition  = "недопустимая смена статуса бронирования"
)

type Handler struct {
	useCase TransitionBookingUseCase
	logger  Logger
}

func NewHandler(useCase TransitionBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingIDStr := mux.Vars(r)["bookingId"]

	bookingID, err := uuid.Parse(bookingIDStr)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	identity := middleware.Identity(r.Context())
	if !identity.IsAuthenticated() {
		h.logger.Warn("PATCH /bookings/{id}/status - Unauthorized request: booking_id=%s", bookingID)
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req TransitionBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if fieldErrors := validator.Validate(req); fieldErrors != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Validation failed: booking_id=%s, errors=%v", bookingID, fieldErrors)
		handlers.RespondValidationError(w, msgInvalidStatus, fieldErrors)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(identity, bookingID))
	if err != nil {
		switch {
		// ErrActorNotAdmin оборачивает ErrInvalidTransition, проверяем первым
		case errors.Is(err, transitionBooking.ErrActorNotAdmin):
			h.logger.Warn("PATCH /bookings/{id}/status - Actor is not admin: booking_id=%s, user_id=%s",
				bookingID, identity.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, transitionBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/status - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, transitionBooking.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings/{id}/status - Invalid transition: booking_id=%s, target=%s, error=%v",
				bookingID, req.Status, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, transitionBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/status - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("PATCH /bookings/{id}/status - Failed to transition booking: booking_id=%s, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/status - Booking transitioned: booking_id=%s, %s -> %s",
		result.ID, result.PreviousStatus, result.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
