package admin_auth

import (
	"context"
	"time"

	adminAccess "github.com/m04kA/SMC-BookingPortal/internal/usecase/admin_access"
)

type AdminAccessUseCase interface {
	Mount(ctx context.Context, key string) (*adminAccess.MountResult, error)
	Login(ctx context.Context, key, secret string) (time.Time, error)
	Logout(ctx context.Context, key string) error
	Status(ctx context.Context, key string) (*adminAccess.Status, error)
	Watch(ctx context.Context, key string, onTick func(remaining time.Duration)) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
