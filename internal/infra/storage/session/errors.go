package session

import "errors"

var (
	// ErrSessionNotFound возвращается, когда для ключа нет ни токена, ни срока
	ErrSessionNotFound = errors.New("session.storage: session not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("session.storage: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения запроса к хранилищу
	ErrExecQuery = errors.New("session.storage: failed to execute query")

	// ErrScanRow возвращается при ошибке чтения результата
	ErrScanRow = errors.New("session.storage: failed to scan row")

	// ErrCorruptedValue возвращается, когда сохраненный срок не удается разобрать
	ErrCorruptedValue = errors.New("session.storage: corrupted value")
)
