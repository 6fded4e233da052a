package session

import "errors"

var (
	// ErrInvalidInput возвращается при пустом токене или ключе
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = errors.New("session service: internal error")
)
