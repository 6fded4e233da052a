package bookingapi

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
)

const (
	pathAdminAppointments = "/api/admin/appointments"
	pathAdminWindows      = "/api/admin/windows"
)

// ListAppointments записи на дату
// Используется и для проверки токена администратора (401/403 -> ErrUnauthorized)
func (c *Client) ListAppointments(ctx context.Context, token, date string) ([]domain.Appointment, error) {
	env, err := c.do(ctx, call{
		method: http.MethodGet,
		path:   pathAdminAppointments,
		query:  url.Values{"date": {date}},
		token:  token,
	})
	if err != nil {
		return nil, err
	}

	var rows []AppointmentDTO
	if err := decodeData(env, &rows); err != nil {
		return nil, err
	}

	result := make([]domain.Appointment, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.toDomain())
	}
	return result, nil
}

// GetAppointment запись по ID
func (c *Client) GetAppointment(ctx context.Context, token string, id int64) (*domain.Appointment, error) {
	env, err := c.do(ctx, call{
		method: http.MethodGet,
		path:   appointmentPath(id),
		token:  token,
	})
	if err != nil {
		return nil, err
	}
	return decodeAppointment(env)
}

// UpdateAppointment частичное обновление записи
func (c *Client) UpdateAppointment(ctx context.Context, token string, id int64, patch domain.AppointmentPatch) (*domain.Appointment, error) {
	env, err := c.do(ctx, call{
		method: http.MethodPatch,
		path:   appointmentPath(id),
		body:   newPatchBody(patch),
		token:  token,
	})
	if err != nil {
		return nil, err
	}
	return decodeAppointment(env)
}

// DeleteAppointment удаляет запись
func (c *Client) DeleteAppointment(ctx context.Context, token string, id int64) error {
	_, err := c.do(ctx, call{
		method: http.MethodDelete,
		path:   appointmentPath(id),
		token:  token,
	})
	return err
}

// BulkDeleteAppointments удаляет записи по списку ID, возвращает количество удаленных
func (c *Client) BulkDeleteAppointments(ctx context.Context, token string, ids []int64) (int, error) {
	env, err := c.do(ctx, call{
		method: http.MethodPost,
		path:   pathAdminAppointments + "/bulk-delete",
		body:   bulkDeleteBody{IDs: ids},
		token:  token,
	})
	if err != nil {
		return 0, err
	}

	var data struct {
		Deleted int `json:"deleted"`
	}
	if len(env.Data) == 0 {
		// Бэкенд может не сообщать количество
		return len(ids), nil
	}
	if err := decodeData(env, &data); err != nil {
		return 0, err
	}
	return data.Deleted, nil
}

// MarkShipped отмечает запись как отправленную
func (c *Client) MarkShipped(ctx context.Context, token string, id int64, info domain.ShipmentInfo) (*domain.Appointment, error) {
	env, err := c.do(ctx, call{
		method: http.MethodPost,
		path:   appointmentPath(id) + "/ship",
		body: ShipBody{
			Carrier:        string(info.Carrier),
			TrackingNumber: info.TrackingNumber,
			TripLink:       info.TripLink,
			Cost:           info.Cost,
		},
		token: token,
	})
	if err != nil {
		return nil, err
	}
	return decodeAppointment(env)
}

// UploadGuide загружает файл накладной (base64 в JSON)
func (c *Client) UploadGuide(ctx context.Context, token string, id int64, file domain.GuideFile) (string, error) {
	env, err := c.do(ctx, call{
		method: http.MethodPost,
		path:   appointmentPath(id) + "/guide",
		body: GuideBody{
			Filename:    file.Filename,
			ContentType: file.ContentType,
			DataBase64:  base64.StdEncoding.EncodeToString(file.Data),
		},
		token: token,
	})
	if err != nil {
		return "", err
	}

	var data struct {
		GuideURL string `json:"guide_url"`
	}
	if err := decodeData(env, &data); err != nil {
		return "", err
	}
	return data.GuideURL, nil
}

// ListWindows окна доступности на дату
func (c *Client) ListWindows(ctx context.Context, token, date string) ([]domain.AvailabilityWindow, error) {
	env, err := c.do(ctx, call{
		method: http.MethodGet,
		path:   pathAdminWindows,
		query:  url.Values{"date": {date}},
		token:  token,
	})
	if err != nil {
		return nil, err
	}

	var rows []WindowDTO
	if err := decodeData(env, &rows); err != nil {
		return nil, err
	}

	result := make([]domain.AvailabilityWindow, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.toDomain())
	}
	return result, nil
}

// CreateWindow открывает окно доступности
func (c *Client) CreateWindow(ctx context.Context, token string, w domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	body := newWindowDTO(w)
	body.ID = 0

	env, err := c.do(ctx, call{
		method: http.MethodPost,
		path:   pathAdminWindows,
		body:   body,
		token:  token,
	})
	if err != nil {
		return nil, err
	}
	return decodeWindow(env)
}

// UpdateWindow изменяет окно доступности
func (c *Client) UpdateWindow(ctx context.Context, token string, w domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	env, err := c.do(ctx, call{
		method: http.MethodPatch,
		path:   windowPath(w.ID),
		body:   newWindowDTO(w),
		token:  token,
	})
	if err != nil {
		return nil, err
	}
	return decodeWindow(env)
}

// DeleteWindow удаляет окно доступности
func (c *Client) DeleteWindow(ctx context.Context, token string, id int64) error {
	_, err := c.do(ctx, call{
		method: http.MethodDelete,
		path:   windowPath(id),
		token:  token,
	})
	return err
}

func appointmentPath(id int64) string {
	return pathAdminAppointments + "/" + strconv.FormatInt(id, 10)
}

func windowPath(id int64) string {
	return pathAdminWindows + "/" + strconv.FormatInt(id, 10)
}

func decodeAppointment(env *envelope) (*domain.Appointment, error) {
	var row AppointmentDTO
	if err := decodeData(env, &row); err != nil {
		return nil, fmt.Errorf("appointment: %w", err)
	}
	a := row.toDomain()
	return &a, nil
}

func decodeWindow(env *envelope) (*domain.AvailabilityWindow, error) {
	var row WindowDTO
	if err := decodeData(env, &row); err != nil {
		return nil, fmt.Errorf("window: %w", err)
	}
	w := row.toDomain()
	return &w, nil
}
