package get_availability

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// Request модель запроса доступности поля на дату
type Request struct {
	FieldID uuid.UUID
	Date    time.Time // Дата без времени
}

// Response модель ответа: все слоты сетки в каноническом порядке
type Response struct {
	FieldID uuid.UUID
	Date    time.Time
	Slots   []domain.AvailableSlot
}
