package admin_access

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	"github.com/m04kA/SMC-BookingPortal/internal/service/session"
)

// TokenValidator проверка токена администратора на бэкенде
// Отдельного эндпоинта нет: используется список записей на сегодня
type TokenValidator interface {
	ListAppointments(ctx context.Context, token, date string) ([]domain.Appointment, error)
}

// SessionService источник трекеров сессий (реализуется session.Service)
type SessionService interface {
	ForKey(key string) *session.Tracker
	Observe(event string)
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
