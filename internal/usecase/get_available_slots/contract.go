package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
)

// AvailabilityClient интерфейс клиента API записей
type AvailabilityClient interface {
	// GetAvailability получает слоты на дату для способа TRYOUT или PICKUP
	GetAvailability(ctx context.Context, date string, method domain.Method) ([]domain.TimeSlot, error)
}

// MetricsRecorder интерфейс для учета результатов загрузки
type MetricsRecorder interface {
	ObserveSlotFetch(status string)
}

// Fetcher источник слотов для SlotList (реализуется UseCase)
type Fetcher interface {
	Execute(ctx context.Context, req *Request) (*Response, error)
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
