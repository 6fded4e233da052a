package admin

import "errors"

var (
	// ErrSessionRequired возвращается, если сессии нет, она истекла или бэкенд отклонил токен
	ErrSessionRequired = errors.New("admin session required")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrNotFound возвращается, если запись или окно не найдены
	ErrNotFound = errors.New("not found")

	// ErrRejected возвращается, если бэкенд отклонил операцию (ok=false)
	ErrRejected = errors.New("rejected by backend")

	// ErrBackendUnavailable возвращается при ошибках связи с бэкендом
	ErrBackendUnavailable = errors.New("booking backend unavailable")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("admin service: internal error")
)
