package get_available_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректной дате запроса
	ErrInvalidInput = errors.New("invalid input")
)
