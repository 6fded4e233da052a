package lookup_customer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	"github.com/m04kA/SMC-BookingPortal/internal/integrations/bookingapi"
	bookingForm "github.com/m04kA/SMC-BookingPortal/internal/usecase/booking_form"
	getAvailableSlots "github.com/m04kA/SMC-BookingPortal/internal/usecase/get_available_slots"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeBackend struct {
	profiles map[string]*bookingapi.CustomerProfile
}

func (b *fakeBackend) GetAvailability(context.Context, string, domain.Method) ([]domain.TimeSlot, error) {
	return []domain.TimeSlot{}, nil
}

func (b *fakeBackend) CreateAppointment(context.Context, domain.AppointmentRequest) error {
	return nil
}

func (b *fakeBackend) GetCustomerByID(_ context.Context, idNumber string) (*bookingapi.CustomerProfile, error) {
	if p, ok := b.profiles[idNumber]; ok {
		return p, nil
	}
	return nil, bookingapi.ErrNotFound
}

func newHandler() *Handler {
	backend := &fakeBackend{profiles: map[string]*bookingapi.CustomerProfile{
		"1020304050": {
			CustomerName:  "Ana Gómez",
			CustomerPhone: "3001234567",
			CustomerEmail: "ana@example.com",
			ShippingCity:  "Bogotá",
		},
	}}
	zone := time.FixedZone("COT", -5*60*60)
	slotsUC := getAvailableSlots.NewUseCase(backend, nil, zone, nopLogger{})
	return NewHandler(func() BookingForm {
		return bookingForm.NewController(backend, getAvailableSlots.NewSlotList(slotsUC), nil, zone, nopLogger{})
	}, nopLogger{})
}

func post(t *testing.T, h *Handler, body string) (*httptest.ResponseRecorder, LookupCustomerResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/portal/v1/customers/lookup", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	var resp LookupCustomerResponse
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func TestHandler_FillsEmptyFields(t *testing.T) {
	rec, resp := post(t, newHandler(), `{
		"idNumber": "1020304050",
		"draft": {"method": "SHIPPING", "customer": {"fullName": "Ana María Gómez"}}
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Found)
	assert.Equal(t, "Ana María Gómez", resp.Form.Draft.Customer.FullName, "введенное имя не перезаписывается")
	assert.Equal(t, "3001234567", resp.Form.Draft.Customer.Phone)
	assert.Equal(t, "1020304050", resp.Form.Draft.Customer.IDNumber)
	assert.Equal(t, "Bogotá", resp.Form.Draft.Shipping.City)
	assert.Equal(t, []string{"PICAP", "INTERRAPIDISIMO"}, resp.Form.Carriers)
}

func TestHandler_NotFoundIsSilent(t *testing.T) {
	rec, resp := post(t, newHandler(), `{"idNumber": "999", "draft": {}}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, resp.Found)
	assert.Nil(t, resp.Form.Notice)
	assert.Equal(t, domain.MethodTryout, resp.Form.Draft.Method)
}

func TestHandler_BadRequest(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{name: "пустой документ", body: `{"idNumber": "  "}`},
		{name: "неизвестный способ", body: `{"idNumber": "1", "draft": {"method": "DRONE"}}`},
		{name: "не JSON", body: `id=1`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec, _ := post(t, newHandler(), tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
