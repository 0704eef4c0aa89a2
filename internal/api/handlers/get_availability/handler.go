package get_availability

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	getAvailability "github.com/m04kA/SMC-FieldBookingService/internal/usecase/get_availability"
)

const (
	msgMissingDate   = "дата обязательна"
	msgInvalidParams = "некорректный ID поля или формат даты, ожидается YYYY-MM-DD"
	msgFieldNotFound = "поле не найдено"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/fields/{fieldId}/availability
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	fieldIDStr := mux.Vars(r)["fieldId"]

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /fields/{id}/availability - Missing date: field_id=%s", fieldIDStr)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(fieldIDStr, dateStr)
	if err != nil {
		h.logger.Warn("GET /fields/{id}/availability - Invalid params: field_id=%s, date=%s, error=%v",
			fieldIDStr, dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrFieldNotFound):
			h.logger.Warn("GET /fields/{id}/availability - Field not found: field_id=%s", fieldIDStr)
			handlers.RespondNotFound(w, msgFieldNotFound)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /fields/{id}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /fields/{id}/availability - Failed to get availability: field_id=%s, date=%s, error=%v",
				fieldIDStr, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /fields/{id}/availability - Availability retrieved: field_id=%s, date=%s, slots=%d",
		fieldIDStr, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
