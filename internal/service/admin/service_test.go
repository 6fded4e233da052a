package admin

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	sessionRepo "github.com/m04kA/SMC-BookingPortal/internal/infra/storage/session"
	"github.com/m04kA/SMC-BookingPortal/internal/integrations/bookingapi"
	"github.com/m04kA/SMC-BookingPortal/internal/service/session"
	"github.com/m04kA/SMC-BookingPortal/pkg/ptr"
	"github.com/m04kA/SMC-BookingPortal/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// fakeClient запоминает токены и отдает заранее заданную ошибку
type fakeClient struct {
	err     error
	tokens  []string
	deleted []int64
	guide   domain.GuideFile
	shipped domain.ShipmentInfo
}

func (c *fakeClient) record(token string) error {
	c.tokens = append(c.tokens, token)
	return c.err
}

func (c *fakeClient) ListAppointments(_ context.Context, token, date string) ([]domain.Appointment, error) {
	if err := c.record(token); err != nil {
		return nil, err
	}
	return []domain.Appointment{{ID: 1, Date: date, Type: domain.MethodTryout}}, nil
}

func (c *fakeClient) GetAppointment(_ context.Context, token string, id int64) (*domain.Appointment, error) {
	if err := c.record(token); err != nil {
		return nil, err
	}
	return &domain.Appointment{ID: id}, nil
}

func (c *fakeClient) UpdateAppointment(_ context.Context, token string, id int64, patch domain.AppointmentPatch) (*domain.Appointment, error) {
	if err := c.record(token); err != nil {
		return nil, err
	}
	return &domain.Appointment{ID: id, Status: ptr.Value(patch.Status)}, nil
}

func (c *fakeClient) DeleteAppointment(_ context.Context, token string, id int64) error {
	if err := c.record(token); err != nil {
		return err
	}
	c.deleted = append(c.deleted, id)
	return nil
}

func (c *fakeClient) BulkDeleteAppointments(_ context.Context, token string, ids []int64) (int, error) {
	if err := c.record(token); err != nil {
		return 0, err
	}
	c.deleted = append(c.deleted, ids...)
	return len(ids), nil
}

func (c *fakeClient) MarkShipped(_ context.Context, token string, id int64, info domain.ShipmentInfo) (*domain.Appointment, error) {
	if err := c.record(token); err != nil {
		return nil, err
	}
	c.shipped = info
	return &domain.Appointment{ID: id, Status: domain.AppointmentShipped}, nil
}

func (c *fakeClient) UploadGuide(_ context.Context, token string, id int64, file domain.GuideFile) (string, error) {
	if err := c.record(token); err != nil {
		return "", err
	}
	c.guide = file
	return fmt.Sprintf("https://files.example.com/guides/%d", id), nil
}

func (c *fakeClient) ListWindows(_ context.Context, token, date string) ([]domain.AvailabilityWindow, error) {
	if err := c.record(token); err != nil {
		return nil, err
	}
	return []domain.AvailabilityWindow{}, nil
}

func (c *fakeClient) CreateWindow(_ context.Context, token string, w domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	if err := c.record(token); err != nil {
		return nil, err
	}
	w.ID = 42
	return &w, nil
}

func (c *fakeClient) UpdateWindow(_ context.Context, token string, w domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	if err := c.record(token); err != nil {
		return nil, err
	}
	return &w, nil
}

func (c *fakeClient) DeleteWindow(_ context.Context, token string, id int64) error {
	if err := c.record(token); err != nil {
		return err
	}
	c.deleted = append(c.deleted, id)
	return nil
}

type events struct{ seen []string }

func (e *events) ObserveAdminSession(event string) { e.seen = append(e.seen, event) }

const portalKey = "portal-1"

func newService(t *testing.T, loggedIn bool) (*Service, *fakeClient, *session.Service, *events) {
	t.Helper()
	ev := &events{}
	sessions := session.NewService(sessionRepo.NewMemoryStore(), 8, ev, nopLogger{})
	if loggedIn {
		_, err := sessions.ForKey(portalKey).SetSession(context.Background(), "secret", 0)
		require.NoError(t, err)
	}
	client := &fakeClient{}
	return NewService(client, sessions, nopLogger{}), client, sessions, ev
}

func validWindow() domain.AvailabilityWindow {
	return domain.AvailabilityWindow{
		Date:        "2025-12-26",
		Type:        domain.MethodPickup,
		StartTime:   types.TimeString("10:00"),
		EndTime:     types.TimeString("12:00"),
		SlotMinutes: 30,
	}
}

func TestService_RequiresSession(t *testing.T) {
	svc, client, _, _ := newService(t, false)

	_, err := svc.ListAppointments(context.Background(), portalKey, "2025-12-26")
	assert.ErrorIs(t, err, ErrSessionRequired)
	assert.Empty(t, client.tokens, "без сессии запрос к бэкенду не отправляется")
}

func TestService_SendsSessionToken(t *testing.T) {
	svc, client, _, _ := newService(t, true)
	ctx := context.Background()

	list, err := svc.ListAppointments(ctx, portalKey, "2025-12-26")
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = svc.GetAppointment(ctx, portalKey, 7)
	require.NoError(t, err)

	assert.Equal(t, []string{"secret", "secret"}, client.tokens)
}

func TestService_UnauthorizedClearsSession(t *testing.T) {
	testCases := []struct {
		name      string
		clientErr error
	}{
		{name: "401 без кода", clientErr: fmt.Errorf("%w: status 401", bookingapi.ErrUnauthorized)},
		{name: "403 с кодом", clientErr: &bookingapi.APIError{StatusCode: 403, Code: "TOKEN_REVOKED"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, client, sessions, ev := newService(t, true)
			ctx := context.Background()
			client.err = tc.clientErr

			err := svc.DeleteAppointment(ctx, portalKey, 3)
			assert.ErrorIs(t, err, ErrSessionRequired)

			state, err := sessions.ForKey(portalKey).State(ctx)
			require.NoError(t, err)
			assert.Equal(t, domain.SessionNone, state)
			assert.Contains(t, ev.seen, session.EventRejected)
		})
	}
}

func TestService_ErrorMapping(t *testing.T) {
	testCases := []struct {
		name      string
		clientErr error
		expected  error
	}{
		{
			name:      "не найдено",
			clientErr: bookingapi.ErrNotFound,
			expected:  ErrNotFound,
		},
		{
			name:      "бизнес-ошибка",
			clientErr: &bookingapi.APIError{StatusCode: 409, Code: "SLOT_TAKEN", Message: "slot is taken"},
			expected:  ErrRejected,
		},
		{
			name:      "неожиданный статус",
			clientErr: &bookingapi.StatusError{StatusCode: 502},
			expected:  ErrBackendUnavailable,
		},
		{
			name:      "сеть",
			clientErr: fmt.Errorf("%w: dial tcp", bookingapi.ErrUnavailable),
			expected:  ErrBackendUnavailable,
		},
		{
			name:      "неизвестная ошибка",
			clientErr: errors.New("boom"),
			expected:  ErrInternal,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, client, sessions, _ := newService(t, true)
			client.err = tc.clientErr

			_, err := svc.GetAppointment(context.Background(), portalKey, 1)
			assert.ErrorIs(t, err, tc.expected)

			// Сессия сохраняется для всего, кроме 401/403
			state, stateErr := sessions.ForKey(portalKey).State(context.Background())
			require.NoError(t, stateErr)
			assert.Equal(t, domain.SessionActive, state)
		})
	}
}

func TestService_UpdateAppointmentValidation(t *testing.T) {
	svc, client, _, _ := newService(t, true)
	ctx := context.Background()

	_, err := svc.UpdateAppointment(ctx, portalKey, 1, domain.AppointmentPatch{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateAppointment(ctx, portalKey, 1, domain.AppointmentPatch{
		Status: ptr.Ptr(domain.AppointmentStatus("LOST")),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateAppointment(ctx, portalKey, 1, domain.AppointmentPatch{
		StartTime: ptr.Ptr(types.TimeString("12:00")),
		EndTime:   ptr.Ptr(types.TimeString("11:00")),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, client.tokens)

	updated, err := svc.UpdateAppointment(ctx, portalKey, 1, domain.AppointmentPatch{
		Status: ptr.Ptr(domain.AppointmentConfirmed),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.AppointmentConfirmed, updated.Status)
}

func TestService_BulkDeleteDeduplicates(t *testing.T) {
	svc, client, _, _ := newService(t, true)
	ctx := context.Background()

	n, err := svc.BulkDeleteAppointments(ctx, portalKey, []int64{3, 1, 3, 2, 1})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []int64{3, 1, 2}, client.deleted)

	_, err = svc.BulkDeleteAppointments(ctx, portalKey, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.BulkDeleteAppointments(ctx, portalKey, []int64{1, 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_MarkShipped(t *testing.T) {
	testCases := []struct {
		name    string
		info    domain.ShipmentInfo
		wantErr bool
	}{
		{
			name: "interrapidisimo с накладной",
			info: domain.ShipmentInfo{Carrier: domain.CarrierInterrapidisimo, TrackingNumber: " 700012345 ", Cost: ptr.Ptr(12000.0)},
		},
		{
			name:    "interrapidisimo без накладной",
			info:    domain.ShipmentInfo{Carrier: domain.CarrierInterrapidisimo},
			wantErr: true,
		},
		{
			name: "picap со ссылкой",
			info: domain.ShipmentInfo{Carrier: domain.CarrierPicap, TripLink: "https://picap.app/trip/abc"},
		},
		{
			name:    "picap без схемы",
			info:    domain.ShipmentInfo{Carrier: domain.CarrierPicap, TripLink: "picap trip abc"},
			wantErr: true,
		},
		{
			name:    "отрицательная стоимость",
			info:    domain.ShipmentInfo{Carrier: domain.CarrierInterrapidisimo, TrackingNumber: "1", Cost: ptr.Ptr(-1.0)},
			wantErr: true,
		},
		{
			name:    "неизвестная служба",
			info:    domain.ShipmentInfo{Carrier: domain.Carrier("DHL"), TrackingNumber: "1"},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, client, _, _ := newService(t, true)

			_, err := svc.MarkShipped(context.Background(), portalKey, 5, tc.info)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				assert.Empty(t, client.tokens)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.info.Carrier, client.shipped.Carrier)
		})
	}
}

func TestService_MarkShippedTrimsTracking(t *testing.T) {
	svc, client, _, _ := newService(t, true)

	_, err := svc.MarkShipped(context.Background(), portalKey, 5, domain.ShipmentInfo{
		Carrier:        domain.CarrierInterrapidisimo,
		TrackingNumber: " 700012345 ",
	})
	require.NoError(t, err)
	assert.Equal(t, "700012345", client.shipped.TrackingNumber)
}

func TestService_UploadGuide(t *testing.T) {
	pdf := []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n")
	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

	t.Run("pdf определяется по содержимому", func(t *testing.T) {
		svc, client, _, _ := newService(t, true)

		guideURL, err := svc.UploadGuide(context.Background(), portalKey, 9, domain.GuideFile{
			Filename:    "guia.pdf",
			ContentType: "text/plain",
			Data:        pdf,
		})
		require.NoError(t, err)
		assert.Equal(t, "https://files.example.com/guides/9", guideURL)
		assert.Equal(t, "application/pdf", client.guide.ContentType)
	})

	t.Run("png", func(t *testing.T) {
		svc, client, _, _ := newService(t, true)

		_, err := svc.UploadGuide(context.Background(), portalKey, 9, domain.GuideFile{Filename: "guia.png", Data: png})
		require.NoError(t, err)
		assert.Equal(t, "image/png", client.guide.ContentType)
	})

	t.Run("текст отклоняется", func(t *testing.T) {
		svc, client, _, _ := newService(t, true)

		_, err := svc.UploadGuide(context.Background(), portalKey, 9, domain.GuideFile{
			Filename: "guia.pdf",
			Data:     []byte("just some text"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Empty(t, client.tokens)
	})

	t.Run("пустой файл", func(t *testing.T) {
		svc, _, _, _ := newService(t, true)

		_, err := svc.UploadGuide(context.Background(), portalKey, 9, domain.GuideFile{Filename: "guia.pdf"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("слишком большой файл", func(t *testing.T) {
		svc, _, _, _ := newService(t, true)

		big := make([]byte, domain.MaxGuideFileBytes+1)
		copy(big, pdf)
		_, err := svc.UploadGuide(context.Background(), portalKey, 9, domain.GuideFile{Filename: "guia.pdf", Data: big})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_Windows(t *testing.T) {
	ctx := context.Background()

	t.Run("создание", func(t *testing.T) {
		svc, _, _, _ := newService(t, true)

		created, err := svc.CreateWindow(ctx, portalKey, validWindow())
		require.NoError(t, err)
		assert.Equal(t, int64(42), created.ID)
	})

	testCases := []struct {
		name   string
		mutate func(w *domain.AvailabilityWindow)
	}{
		{name: "доставка не использует окна", mutate: func(w *domain.AvailabilityWindow) { w.Type = domain.MethodShipping }},
		{name: "неверная дата", mutate: func(w *domain.AvailabilityWindow) { w.Date = "26/12/2025" }},
		{name: "начало после конца", mutate: func(w *domain.AvailabilityWindow) { w.StartTime = "13:00" }},
		{name: "слот меньше минимума", mutate: func(w *domain.AvailabilityWindow) { w.SlotMinutes = 1 }},
		{name: "слот длиннее окна", mutate: func(w *domain.AvailabilityWindow) { w.SlotMinutes = 180 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, client, _, _ := newService(t, true)
			w := validWindow()
			tc.mutate(&w)

			_, err := svc.CreateWindow(ctx, portalKey, w)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, client.tokens)
		})
	}

	t.Run("изменение без ID", func(t *testing.T) {
		svc, _, _, _ := newService(t, true)

		_, err := svc.UpdateWindow(ctx, portalKey, validWindow())
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("удаление", func(t *testing.T) {
		svc, client, _, _ := newService(t, true)

		require.NoError(t, svc.DeleteWindow(ctx, portalKey, 4))
		assert.Equal(t, []int64{4}, client.deleted)
	})
}

func TestService_ExpiredSessionIsRequired(t *testing.T) {
	ev := &events{}
	store := sessionRepo.NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), portalKey, domain.AdminSession{
		Token:     "secret",
		ExpiresAt: time.Now().Add(-time.Minute),
	}))
	sessions := session.NewService(store, 8, ev, nopLogger{})
	client := &fakeClient{}
	svc := NewService(client, sessions, nopLogger{})

	_, err := svc.ListWindows(context.Background(), portalKey, "2025-12-26")
	assert.ErrorIs(t, err, ErrSessionRequired)
	assert.Empty(t, client.tokens)
	assert.Equal(t, 0, store.Len())
}
