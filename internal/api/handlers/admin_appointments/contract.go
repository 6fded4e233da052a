package admin_appointments

import (
	"context"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
)

type AdminService interface {
	ListAppointments(ctx context.Context, key, date string) ([]domain.Appointment, error)
	GetAppointment(ctx context.Context, key string, id int64) (*domain.Appointment, error)
	UpdateAppointment(ctx context.Context, key string, id int64, patch domain.AppointmentPatch) (*domain.Appointment, error)
	DeleteAppointment(ctx context.Context, key string, id int64) error
	BulkDeleteAppointments(ctx context.Context, key string, ids []int64) (int, error)
	MarkShipped(ctx context.Context, key string, id int64, info domain.ShipmentInfo) (*domain.Appointment, error)
	UploadGuide(ctx context.Context, key string, id int64, file domain.GuideFile) (string, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
