package admin_appointments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingPortal/internal/api/middleware"
	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	adminService "github.com/m04kA/SMC-BookingPortal/internal/service/admin"
	"github.com/m04kA/SMC-BookingPortal/pkg/types"
)

const portalKey = "6f1d2c3b-0000-4000-8000-000000000002"

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	err   error
	keys  []string
	patch domain.AppointmentPatch
	ship  domain.ShipmentInfo
	guide domain.GuideFile
	ids   []int64
}

func (s *fakeService) seen(key string) error {
	s.keys = append(s.keys, key)
	return s.err
}

func (s *fakeService) ListAppointments(_ context.Context, key, date string) ([]domain.Appointment, error) {
	if err := s.seen(key); err != nil {
		return nil, err
	}
	return []domain.Appointment{
		{ID: 1, Type: domain.MethodTryout, Date: date, StartTime: "10:00", EndTime: "10:30", Status: domain.AppointmentPending},
		{ID: 2, Type: domain.MethodShipping, Date: date, Shipping: domain.Shipping{City: "Cali", Carrier: domain.CarrierInterrapidisimo}},
	}, nil
}

func (s *fakeService) GetAppointment(_ context.Context, key string, id int64) (*domain.Appointment, error) {
	if err := s.seen(key); err != nil {
		return nil, err
	}
	return &domain.Appointment{ID: id, Type: domain.MethodPickup}, nil
}

func (s *fakeService) UpdateAppointment(_ context.Context, key string, id int64, patch domain.AppointmentPatch) (*domain.Appointment, error) {
	if err := s.seen(key); err != nil {
		return nil, err
	}
	s.patch = patch
	return &domain.Appointment{ID: id}, nil
}

func (s *fakeService) DeleteAppointment(_ context.Context, key string, id int64) error {
	if err := s.seen(key); err != nil {
		return err
	}
	s.ids = append(s.ids, id)
	return nil
}

func (s *fakeService) BulkDeleteAppointments(_ context.Context, key string, ids []int64) (int, error) {
	if err := s.seen(key); err != nil {
		return 0, err
	}
	s.ids = append(s.ids, ids...)
	return len(ids), nil
}

func (s *fakeService) MarkShipped(_ context.Context, key string, id int64, info domain.ShipmentInfo) (*domain.Appointment, error) {
	if err := s.seen(key); err != nil {
		return nil, err
	}
	s.ship = info
	return &domain.Appointment{ID: id, Status: domain.AppointmentShipped}, nil
}

func (s *fakeService) UploadGuide(_ context.Context, key string, id int64, file domain.GuideFile) (string, error) {
	if err := s.seen(key); err != nil {
		return "", err
	}
	s.guide = file
	return fmt.Sprintf("https://files.example.com/%d.pdf", id), nil
}

func newRouter(svc AdminService) *mux.Router {
	h := NewHandler(svc, nopLogger{})
	r := mux.NewRouter()
	r.HandleFunc("/admin/appointments", h.List).Methods(http.MethodGet)
	r.HandleFunc("/admin/appointments/bulk-delete", h.BulkDelete).Methods(http.MethodPost)
	r.HandleFunc("/admin/appointments/{id}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/admin/appointments/{id}", h.Update).Methods(http.MethodPatch)
	r.HandleFunc("/admin/appointments/{id}", h.Delete).Methods(http.MethodDelete)
	r.HandleFunc("/admin/appointments/{id}/ship", h.Ship).Methods(http.MethodPost)
	r.HandleFunc("/admin/appointments/{id}/guide", h.UploadGuide).Methods(http.MethodPost)
	return r
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	req = req.WithContext(middleware.WithSessionKey(req.Context(), portalKey))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_List(t *testing.T) {
	svc := &fakeService{}

	rec := serve(newRouter(svc), httptest.NewRequest(http.MethodGet, "/admin/appointments?date=2025-12-26", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp []AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "10:00", resp[0].StartTime)
	assert.Empty(t, resp[0].City, "у очной записи нет адреса")
	assert.Equal(t, "Cali", resp[1].City)
	assert.Equal(t, []string{portalKey}, svc.keys)
}

func TestHandler_ErrorMapping(t *testing.T) {
	testCases := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{name: "нет сессии", err: adminService.ErrSessionRequired, expectedStatus: http.StatusUnauthorized},
		{name: "некорректные данные", err: fmt.Errorf("%w: date must be YYYY-MM-DD", adminService.ErrInvalidInput), expectedStatus: http.StatusBadRequest},
		{name: "не найдено", err: adminService.ErrNotFound, expectedStatus: http.StatusNotFound},
		{name: "отклонено", err: fmt.Errorf("%w: slot is taken", adminService.ErrRejected), expectedStatus: http.StatusConflict},
		{name: "бэкенд недоступен", err: fmt.Errorf("%w: timeout", adminService.ErrBackendUnavailable), expectedStatus: http.StatusBadGateway},
		{name: "внутренняя ошибка", err: adminService.ErrInternal, expectedStatus: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(newRouter(&fakeService{err: tc.err}), httptest.NewRequest(http.MethodGet, "/admin/appointments/7", nil))
			assert.Equal(t, tc.expectedStatus, rec.Code)
		})
	}
}

func TestHandler_RejectedMessage(t *testing.T) {
	svc := &fakeService{err: fmt.Errorf("%w: slot is taken", adminService.ErrRejected)}

	rec := serve(newRouter(svc), httptest.NewRequest(http.MethodDelete, "/admin/appointments/7", nil))

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"slot is taken"}`, rec.Body.String())
}

func TestHandler_InvalidID(t *testing.T) {
	svc := &fakeService{}

	for _, target := range []string{"/admin/appointments/abc", "/admin/appointments/0", "/admin/appointments/-3"} {
		rec := serve(newRouter(svc), httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
	assert.Empty(t, svc.keys)
}

func TestHandler_Update(t *testing.T) {
	svc := &fakeService{}
	body := `{"status": "confirmed", "startTime": "11:00:00", "endTime": "11:30"}`

	rec := serve(newRouter(svc), httptest.NewRequest(http.MethodPatch, "/admin/appointments/3", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.patch.Status)
	assert.Equal(t, domain.AppointmentConfirmed, *svc.patch.Status)
	require.NotNil(t, svc.patch.StartTime)
	assert.Equal(t, types.TimeString("11:00"), *svc.patch.StartTime)
	assert.Nil(t, svc.patch.Date)

	rec = serve(newRouter(svc), httptest.NewRequest(http.MethodPatch, "/admin/appointments/3", strings.NewReader(`{"startTime": "11h"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_BulkDeleteAndShip(t *testing.T) {
	svc := &fakeService{}
	r := newRouter(svc)

	rec := serve(r, httptest.NewRequest(http.MethodPost, "/admin/appointments/bulk-delete", strings.NewReader(`{"ids": [4, 5]}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"deleted": 2}`, rec.Body.String())

	rec = serve(r, httptest.NewRequest(http.MethodPost, "/admin/appointments/4/ship",
		strings.NewReader(`{"carrier": "picap", "tripLink": "https://picap.app/t/1"}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.CarrierPicap, svc.ship.Carrier)

	rec = serve(r, httptest.NewRequest(http.MethodPost, "/admin/appointments/4/ship", strings.NewReader(`{"carrier": "DHL"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_UploadGuide(t *testing.T) {
	pdf := []byte("%PDF-1.4\n%guide\n")

	newUpload := func(field string, data []byte) *http.Request {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile(field, "guia.pdf")
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/admin/appointments/9/guide", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		return req
	}

	t.Run("файл передается сервису", func(t *testing.T) {
		svc := &fakeService{}

		rec := serve(newRouter(svc), newUpload("file", pdf))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"guideUrl": "https://files.example.com/9.pdf"}`, rec.Body.String())
		assert.Equal(t, "guia.pdf", svc.guide.Filename)
		assert.Equal(t, pdf, svc.guide.Data)
	})

	t.Run("нет поля file", func(t *testing.T) {
		svc := &fakeService{}

		rec := serve(newRouter(svc), newUpload("attachment", pdf))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, svc.keys)
	})

	t.Run("слишком большой файл", func(t *testing.T) {
		svc := &fakeService{}

		rec := serve(newRouter(svc), newUpload("file", make([]byte, domain.MaxGuideFileBytes+128<<10)))

		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		assert.Empty(t, svc.keys)
	})
}
