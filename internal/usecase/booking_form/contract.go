package booking_form

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	"github.com/m04kA/SMC-BookingPortal/internal/integrations/bookingapi"
	"github.com/m04kA/SMC-BookingPortal/internal/usecase/get_available_slots"
)

// AppointmentClient интерфейс клиента API записей
type AppointmentClient interface {
	// CreateAppointment создает запись; бизнес-отказ возвращается как *bookingapi.APIError
	CreateAppointment(ctx context.Context, req domain.AppointmentRequest) error
	// GetCustomerByID данные клиента из предыдущих записей
	GetCustomerByID(ctx context.Context, idNumber string) (*bookingapi.CustomerProfile, error)
}

// SlotSource список слотов формы (реализуется get_available_slots.SlotList)
type SlotSource interface {
	Refresh(ctx context.Context, date string, method domain.Method) bool
	Clear()
	View(now time.Time) get_available_slots.View
	Contains(slot domain.TimeSlot, now time.Time) bool
}

// MetricsRecorder интерфейс для учета результатов отправки
type MetricsRecorder interface {
	ObserveSubmission(outcome string)
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
