package admin

import (
	"context"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	"github.com/m04kA/SMC-BookingPortal/internal/service/session"
)

// BookingAPIClient административные методы клиента API записей
type BookingAPIClient interface {
	ListAppointments(ctx context.Context, token, date string) ([]domain.Appointment, error)
	GetAppointment(ctx context.Context, token string, id int64) (*domain.Appointment, error)
	UpdateAppointment(ctx context.Context, token string, id int64, patch domain.AppointmentPatch) (*domain.Appointment, error)
	DeleteAppointment(ctx context.Context, token string, id int64) error
	BulkDeleteAppointments(ctx context.Context, token string, ids []int64) (int, error)
	MarkShipped(ctx context.Context, token string, id int64, info domain.ShipmentInfo) (*domain.Appointment, error)
	UploadGuide(ctx context.Context, token string, id int64, file domain.GuideFile) (string, error)

	ListWindows(ctx context.Context, token, date string) ([]domain.AvailabilityWindow, error)
	CreateWindow(ctx context.Context, token string, w domain.AvailabilityWindow) (*domain.AvailabilityWindow, error)
	UpdateWindow(ctx context.Context, token string, w domain.AvailabilityWindow) (*domain.AvailabilityWindow, error)
	DeleteWindow(ctx context.Context, token string, id int64) error
}

// SessionService источник трекеров сессий (реализуется session.Service)
type SessionService interface {
	ForKey(key string) *session.Tracker
	Observe(event string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
