package bookingapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
)

// GetAvailability получает слоты на дату для способа TRYOUT или PICKUP
func (c *Client) GetAvailability(ctx context.Context, date string, method domain.Method) ([]domain.TimeSlot, error) {
	env, err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/api/availability",
		query:  url.Values{"date": {date}, "type": {string(method)}},
	})
	if err != nil {
		return nil, err
	}

	var data availabilityData
	if err := decodeData(env, &data); err != nil {
		return nil, err
	}

	slots := make([]domain.TimeSlot, 0, len(data.Slots))
	for _, s := range data.Slots {
		slots = append(slots, domain.TimeSlot{
			Start: normalizeTime(s.Start),
			End:   normalizeTime(s.End),
		})
	}
	return slots, nil
}

// CreateAppointment отправляет нормализованную запись
// Бизнес-отказ возвращается как *APIError с кодом и meta
func (c *Client) CreateAppointment(ctx context.Context, req domain.AppointmentRequest) error {
	c.log.Info("Creating appointment type=%s date=%s start=%s", req.TypeCode, req.Date, req.StartTime)

	_, err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/api/appointments",
		body:   newCreateAppointmentBody(req),
	})
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			c.log.Warn("Appointment rejected by backend: code=%s status=%d", apiErr.Code, apiErr.StatusCode)
		} else {
			c.log.Error("Failed to create appointment: %v", err)
		}
		return err
	}
	return nil
}

// GetCustomerByID ищет данные клиента по номеру документа
// Возвращает ErrNotFound, если клиент не найден (found=false)
func (c *Client) GetCustomerByID(ctx context.Context, idNumber string) (*CustomerProfile, error) {
	env, err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/api/customer-by-id",
		query:  url.Values{"id_number": {idNumber}},
	})
	if err != nil {
		return nil, err
	}

	if env.Found != nil && !*env.Found {
		return nil, ErrNotFound
	}

	var profile CustomerProfile
	if err := decodeData(env, &profile); err != nil {
		return nil, fmt.Errorf("customer-by-id: %w", err)
	}
	return &profile, nil
}
