package admin_access

import "errors"

var (
	// ErrIncorrectKey возвращается, если бэкенд не принял ключ администратора
	ErrIncorrectKey = errors.New("incorrect admin key")

	// ErrBackendUnavailable возвращается, если ключ не удалось проверить из-за связи
	ErrBackendUnavailable = errors.New("booking backend unavailable")

	// ErrSessionExpired возвращается из Watch, когда срок сессии истек
	ErrSessionExpired = errors.New("admin session expired")

	// ErrNoSession возвращается из Watch, если сессия завершилась иначе (выход, очистка)
	ErrNoSession = errors.New("no admin session")

	// ErrInternal возвращается при ошибках хранилища сессий
	ErrInternal = errors.New("admin access: internal error")
)
