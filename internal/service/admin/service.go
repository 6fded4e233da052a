package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	"github.com/m04kA/SMC-BookingPortal/internal/integrations/bookingapi"
	"github.com/m04kA/SMC-BookingPortal/internal/service/session"
)

// Service административные операции от имени сессии портала
// Токен читается через трекер на каждый вызов; 401/403 от бэкенда завершает сессию
type Service struct {
	client   BookingAPIClient
	sessions SessionService
	logger   Logger
}

// NewService создает новый экземпляр сервиса
func NewService(client BookingAPIClient, sessions SessionService, logger Logger) *Service {
	return &Service{
		client:   client,
		sessions: sessions,
		logger:   logger,
	}
}

// ListAppointments записи на дату
func (s *Service) ListAppointments(ctx context.Context, key, date string) ([]domain.Appointment, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}
	token, err := s.token(ctx, key)
	if err != nil {
		return nil, err
	}

	list, err := s.client.ListAppointments(ctx, token, date)
	if err != nil {
		return nil, s.handle(ctx, key, "ListAppointments", err)
	}

	s.logger.Info("ListAppointments: %d appointments on %s", len(list), date)
	return list, nil
}

// GetAppointment запись по ID
func (s *Service) GetAppointment(ctx context.Context, key string, id int64) (*domain.Appointment, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	token, err := s.token(ctx, key)
	if err != nil {
		return nil, err
	}

	a, err := s.client.GetAppointment(ctx, token, id)
	if err != nil {
		return nil, s.handle(ctx, key, "GetAppointment", err)
	}
	return a, nil
}

// UpdateAppointment частичное обновление записи
func (s *Service) UpdateAppointment(ctx context.Context, key string, id int64, patch domain.AppointmentPatch) (*domain.Appointment, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	if err := validatePatch(patch); err != nil {
		s.logger.Warn("UpdateAppointment: invalid patch for id=%d: %v", id, err)
		return nil, err
	}
	token, err := s.token(ctx, key)
	if err != nil {
		return nil, err
	}

	a, err := s.client.UpdateAppointment(ctx, token, id, patch)
	if err != nil {
		return nil, s.handle(ctx, key, "UpdateAppointment", err)
	}

	s.logger.Info("UpdateAppointment: appointment id=%d updated", id)
	return a, nil
}

// DeleteAppointment удаляет запись
func (s *Service) DeleteAppointment(ctx context.Context, key string, id int64) error {
	if err := validateID(id); err != nil {
		return err
	}
	token, err := s.token(ctx, key)
	if err != nil {
		return err
	}

	if err := s.client.DeleteAppointment(ctx, token, id); err != nil {
		return s.handle(ctx, key, "DeleteAppointment", err)
	}

	s.logger.Info("DeleteAppointment: appointment id=%d deleted", id)
	return nil
}

// BulkDeleteAppointments удаляет записи по списку; дубликаты убираются
func (s *Service) BulkDeleteAppointments(ctx context.Context, key string, ids []int64) (int, error) {
	ids, err := normalizeIDs(ids)
	if err != nil {
		return 0, err
	}
	token, err := s.token(ctx, key)
	if err != nil {
		return 0, err
	}

	n, err := s.client.BulkDeleteAppointments(ctx, token, ids)
	if err != nil {
		return 0, s.handle(ctx, key, "BulkDeleteAppointments", err)
	}

	s.logger.Info("BulkDeleteAppointments: %d of %d appointments deleted", n, len(ids))
	return n, nil
}

// MarkShipped отмечает отправку
func (s *Service) MarkShipped(ctx context.Context, key string, id int64, info domain.ShipmentInfo) (*domain.Appointment, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	info.TrackingNumber = strings.TrimSpace(info.TrackingNumber)
	info.TripLink = strings.TrimSpace(info.TripLink)
	if err := validateShipment(info); err != nil {
		s.logger.Warn("MarkShipped: invalid shipment for id=%d: %v", id, err)
		return nil, err
	}
	token, err := s.token(ctx, key)
	if err != nil {
		return nil, err
	}

	a, err := s.client.MarkShipped(ctx, token, id, info)
	if err != nil {
		return nil, s.handle(ctx, key, "MarkShipped", err)
	}

	s.logger.Info("MarkShipped: appointment id=%d shipped with %s", id, info.Carrier)
	return a, nil
}

// UploadGuide загружает накладную; тип определяется по содержимому
func (s *Service) UploadGuide(ctx context.Context, key string, id int64, file domain.GuideFile) (string, error) {
	if err := validateID(id); err != nil {
		return "", err
	}
	contentType, err := detectGuide(file)
	if err != nil {
		s.logger.Warn("UploadGuide: rejected file %q for id=%d: %v", file.Filename, id, err)
		return "", err
	}
	file.ContentType = contentType

	token, err := s.token(ctx, key)
	if err != nil {
		return "", err
	}

	guideURL, err := s.client.UploadGuide(ctx, token, id, file)
	if err != nil {
		return "", s.handle(ctx, key, "UploadGuide", err)
	}

	s.logger.Info("UploadGuide: guide for appointment id=%d uploaded (%s, %d bytes)", id, contentType, len(file.Data))
	return guideURL, nil
}

// ListWindows окна доступности на дату
func (s *Service) ListWindows(ctx context.Context, key, date string) ([]domain.AvailabilityWindow, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}
	token, err := s.token(ctx, key)
	if err != nil {
		return nil, err
	}

	list, err := s.client.ListWindows(ctx, token, date)
	if err != nil {
		return nil, s.handle(ctx, key, "ListWindows", err)
	}
	return list, nil
}

// CreateWindow открывает окно доступности
func (s *Service) CreateWindow(ctx context.Context, key string, w domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	if err := validateWindow(w); err != nil {
		s.logger.Warn("CreateWindow: invalid window: %v", err)
		return nil, err
	}
	token, err := s.token(ctx, key)
	if err != nil {
		return nil, err
	}

	created, err := s.client.CreateWindow(ctx, token, w)
	if err != nil {
		return nil, s.handle(ctx, key, "CreateWindow", err)
	}

	s.logger.Info("CreateWindow: window id=%d %s %s-%s on %s",
		created.ID, created.Type, created.StartTime, created.EndTime, created.Date)
	return created, nil
}

// UpdateWindow изменяет окно доступности
func (s *Service) UpdateWindow(ctx context.Context, key string, w domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	if err := validateID(w.ID); err != nil {
		return nil, err
	}
	if err := validateWindow(w); err != nil {
		s.logger.Warn("UpdateWindow: invalid window id=%d: %v", w.ID, err)
		return nil, err
	}
	token, err := s.token(ctx, key)
	if err != nil {
		return nil, err
	}

	updated, err := s.client.UpdateWindow(ctx, token, w)
	if err != nil {
		return nil, s.handle(ctx, key, "UpdateWindow", err)
	}

	s.logger.Info("UpdateWindow: window id=%d updated", w.ID)
	return updated, nil
}

// DeleteWindow удаляет окно доступности
func (s *Service) DeleteWindow(ctx context.Context, key string, id int64) error {
	if err := validateID(id); err != nil {
		return err
	}
	token, err := s.token(ctx, key)
	if err != nil {
		return err
	}

	if err := s.client.DeleteWindow(ctx, token, id); err != nil {
		return s.handle(ctx, key, "DeleteWindow", err)
	}

	s.logger.Info("DeleteWindow: window id=%d deleted", id)
	return nil
}

// token токен активной сессии; истекшая сессия очищается трекером
func (s *Service) token(ctx context.Context, key string) (string, error) {
	token, err := s.sessions.ForKey(key).GetToken(ctx)
	if err != nil {
		s.logger.Error("admin: failed to read session key=%s: %v", key, err)
		return "", fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if token == "" {
		return "", ErrSessionRequired
	}
	return token, nil
}

// handle сводит ошибку клиента к ошибке сервиса
func (s *Service) handle(ctx context.Context, key, op string, err error) error {
	var (
		apiErr    *bookingapi.APIError
		statusErr *bookingapi.StatusError
	)

	switch {
	case errors.Is(err, bookingapi.ErrUnauthorized):
		s.logger.Warn("%s: admin token rejected for key=%s, clearing session", op, key)
		if clearErr := s.sessions.ForKey(key).ClearSession(ctx); clearErr != nil {
			s.logger.Error("%s: failed to clear session key=%s: %v", op, key, clearErr)
		}
		s.sessions.Observe(session.EventRejected)
		return ErrSessionRequired
	case errors.Is(err, bookingapi.ErrNotFound):
		return ErrNotFound
	case errors.As(err, &apiErr):
		s.logger.Warn("%s: rejected by backend: %v", op, err)
		if apiErr.Message != "" {
			return fmt.Errorf("%w: %s", ErrRejected, apiErr.Message)
		}
		return fmt.Errorf("%w: code %q", ErrRejected, apiErr.Code)
	case bookingapi.IsTransport(err), errors.As(err, &statusErr):
		s.logger.Error("%s: backend error: %v", op, err)
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	default:
		s.logger.Error("%s: unexpected error: %v", op, err)
		return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
	}
}
