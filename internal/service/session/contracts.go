package session

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
)

// Store хранилище пары токен/срок по ключу сессии портала
// Отсутствующая половина пары возвращается нулевым значением
type Store interface {
	Load(ctx context.Context, key string) (*domain.AdminSession, error)
	Save(ctx context.Context, key string, s domain.AdminSession) error
	Delete(ctx context.Context, key string) error
}

// MetricsRecorder интерфейс для учета переходов сессии
type MetricsRecorder interface {
	ObserveAdminSession(event string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
