package transition_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("transition_booking: invalid status transition")

	// ErrActorNotAdmin возвращается, когда переход запрашивает не администратор.
	// Является частным случаем ErrInvalidTransition.
	ErrActorNotAdmin = fmt.Errorf("%w: actor is not an admin", ErrInvalidTransition)

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("transition_booking: booking not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("transition_booking: invalid input data")

	// ErrStore возвращается при ошибках хранилища
	ErrStore = errors.New("transition_booking: store error")
)
