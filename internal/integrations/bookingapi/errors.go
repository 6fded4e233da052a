package bookingapi

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable возвращается, когда бэкенд недоступен (сеть, таймаут, отмена)
	ErrUnavailable = errors.New("bookingapi client: backend unavailable")

	// ErrInvalidResponse возвращается, когда тело ответа не является JSON ожидаемой формы
	ErrInvalidResponse = errors.New("bookingapi client: invalid response")

	// ErrNotFound возвращается на HTTP 404 без бизнес-кода
	ErrNotFound = errors.New("bookingapi client: not found")

	// ErrUnauthorized возвращается на HTTP 401/403 (неверный или просроченный токен администратора);
	// на 401/403 с бизнес-кодом возвращается *APIError, который разворачивается в ErrUnauthorized
	ErrUnauthorized = errors.New("bookingapi client: unauthorized")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("bookingapi client: internal error")
)

// StatusError неожиданный HTTP статус без бизнес-кода
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("bookingapi client: unexpected status code %d: %s", e.StatusCode, e.Body)
}

// APIError ответ бэкенда с ok=false
// Code может быть пустым, если бэкенд не сообщил причину
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Meta       map[string]interface{}
}

func (e *APIError) Error() string {
	code := e.Code
	if code == "" {
		code = "<none>"
	}
	return fmt.Sprintf("bookingapi client: request rejected (status=%d, code=%s): %s", e.StatusCode, code, e.Message)
}

// Unwrap отказ с 401/403 считается и ErrUnauthorized
func (e *APIError) Unwrap() error {
	if isAuthStatus(e.StatusCode) {
		return ErrUnauthorized
	}
	return nil
}

// MetaString возвращает строковое значение из meta
func (e *APIError) MetaString(key string) string {
	if e.Meta == nil {
		return ""
	}
	if s, ok := e.Meta[key].(string); ok {
		return s
	}
	return ""
}
