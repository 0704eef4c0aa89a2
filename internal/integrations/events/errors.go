package events

import "errors"

var (
	// ErrConnect возвращается, если не удалось подключиться к брокеру
	ErrConnect = errors.New("events publisher: failed to connect")

	// ErrPublish возвращается при ошибке публикации сообщения
	ErrPublish = errors.New("events publisher: failed to publish")

	// ErrClosed возвращается при публикации после Close
	ErrClosed = errors.New("events publisher: closed")
)
