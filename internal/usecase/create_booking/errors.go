package create_booking

import "errors"

var (
	// ErrUnauthorized возвращается, когда вызывающий не аутентифицирован
	ErrUnauthorized = errors.New("create_booking: unauthorized")

	// ErrFieldNotFound возвращается, когда поле не найдено
	ErrFieldNotFound = errors.New("create_booking: field not found")

	// ErrSlotNotAvailable возвращается, когда слот уже занят
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrStore возвращается при ошибках хранилища, исходная ошибка сохраняется в цепочке
	ErrStore = errors.New("create_booking: store error")
)
