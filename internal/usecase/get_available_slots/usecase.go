package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	"github.com/m04kA/SMC-BookingPortal/internal/integrations/bookingapi"
)

// UseCase use case для получения слотов на дату
type UseCase struct {
	client       AvailabilityClient
	metrics      MetricsRecorder
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// location часовой пояс магазина, в нем определяется "сегодня"
func NewUseCase(
	client AvailabilityClient,
	metrics MetricsRecorder,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		client:       client,
		metrics:      metrics,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Location часовой пояс магазина
func (uc *UseCase) Location() *time.Location {
	return uc.location
}

// Now текущее время в часовом поясе магазина
func (uc *UseCase) Now() time.Time {
	return uc.timeProvider.Now().In(uc.location)
}

// Execute выполняет use case получения слотов
// Если дата не задана или способу не нужен слот, запрос не выполняется (StatusIdle)
// Ошибки бэкенда не возвращаются как error, а классифицируются в Status
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	date := strings.TrimSpace(req.Date)
	if date == "" || !req.Method.NeedsSlot() {
		return &Response{Slots: []domain.TimeSlot{}, Status: StatusIdle}, nil
	}

	if _, err := domain.ParseDate(date, uc.location); err != nil {
		uc.logger.Warn("GetAvailableSlots: invalid date %q: %v", req.Date, err)
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	uc.logger.Info("GetAvailableSlots: date=%s, method=%s", date, req.Method)

	slots, err := uc.client.GetAvailability(ctx, date, req.Method)
	if err != nil {
		status := classify(err)
		if status == StatusNetwork {
			uc.logger.Error("GetAvailableSlots: backend unreachable for date=%s: %v", date, err)
		} else {
			uc.logger.Warn("GetAvailableSlots: backend rejected date=%s, method=%s: %v", date, req.Method, err)
		}
		uc.observe(status)
		return &Response{Slots: []domain.TimeSlot{}, Status: status}, nil
	}

	status := StatusOK
	if len(slots) == 0 {
		status = StatusEmpty
	}
	uc.observe(status)

	uc.logger.Info("GetAvailableSlots: received %d slots for date=%s, method=%s", len(slots), date, req.Method)

	return &Response{Slots: slots, Status: status}, nil
}

// Visible отфильтрованные слоты на текущий момент
func (uc *UseCase) Visible(date string, slots []domain.TimeSlot) []domain.TimeSlot {
	return FilterPastSlots(slots, date, uc.Now())
}

func (uc *UseCase) observe(status Status) {
	if uc.metrics != nil {
		uc.metrics.ObserveSlotFetch(string(status))
	}
}

// classify сводит ошибку клиента к статусу загрузки
func classify(err error) Status {
	var (
		apiErr    *bookingapi.APIError
		statusErr *bookingapi.StatusError
	)

	switch {
	case errors.Is(err, bookingapi.ErrNotFound):
		return StatusNotFound
	case errors.As(err, &apiErr):
		if apiErr.StatusCode == http.StatusNotFound {
			return StatusNotFound
		}
		return StatusServer
	case errors.As(err, &statusErr), errors.Is(err, bookingapi.ErrUnauthorized):
		return StatusServer
	default:
		// ErrUnavailable, ErrInvalidResponse и все неизвестное
		return StatusNetwork
	}
}
