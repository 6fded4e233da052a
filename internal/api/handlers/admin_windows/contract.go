package admin_windows

import (
	"context"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
)

type AdminService interface {
	ListWindows(ctx context.Context, key, date string) ([]domain.AvailabilityWindow, error)
	CreateWindow(ctx context.Context, key string, w domain.AvailabilityWindow) (*domain.AvailabilityWindow, error)
	UpdateWindow(ctx context.Context, key string, w domain.AvailabilityWindow) (*domain.AvailabilityWindow, error)
	DeleteWindow(ctx context.Context, key string, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
