package list_bookings

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-FieldBookingService/pkg/ptr"
)

const (
	msgUnauthorized  = "требуется авторизация"
	msgInvalidFilter = "некорректные параметры фильтра"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings
// Query params: field_id, date (YYYY-MM-DD), status; все опциональны.
// Пользователь видит только свои бронирования, администратор - все.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity := middleware.Identity(r.Context())
	query := r.URL.Query()

	serviceReq := &models.ListBookingsRequest{
		FieldID: optional(query, "field_id"),
		Date:    optional(query, "date"),
		Status:  optional(query, "status"),
	}

	result, err := h.service.List(r.Context(), identity, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrUnauthorized):
			h.logger.Warn("GET /bookings - Unauthorized request")
			handlers.RespondUnauthorized(w, msgUnauthorized)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /bookings - Failed to list bookings: user_id=%s, error=%v", identity.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings - Bookings retrieved successfully: user_id=%s, count=%d",
		identity.UserID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}

func optional(query url.Values, key string) *string {
	value := query.Get(key)
	if value == "" {
		return nil
	}
	return ptr.Ptr(value)
}
