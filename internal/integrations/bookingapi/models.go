package bookingapi

import (
	"encoding/json"
	"time"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	"github.com/m04kA/SMC-BookingPortal/pkg/types"
)

// envelope общий конверт ответов бэкенда
type envelope struct {
	OK      bool                   `json:"ok"`
	Error   string                 `json:"error,omitempty"`
	Message string                 `json:"message,omitempty"`
	Meta    map[string]interface{} `json:"meta,omitempty"`
	Found   *bool                  `json:"found,omitempty"`
	Data    json.RawMessage        `json:"data,omitempty"`
}

// SlotDTO слот в ответе /api/availability
type SlotDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type availabilityData struct {
	Slots []SlotDTO `json:"slots"`
}

// CreateAppointmentBody тело POST /api/appointments
type CreateAppointmentBody struct {
	TypeCode             string `json:"type_code"`
	Date                 string `json:"date"`
	StartTime            string `json:"start_time"`
	EndTime              string `json:"end_time"`
	Product              string `json:"product"`
	CustomerName         string `json:"customer_name"`
	CustomerEmail        string `json:"customer_email"`
	CustomerPhone        string `json:"customer_phone"`
	CustomerIDNumber     string `json:"customer_id_number"`
	DeliveryMethod       string `json:"delivery_method"`
	Notes                string `json:"notes"`
	ShippingAddress      string `json:"shipping_address"`
	ShippingNeighborhood string `json:"shipping_neighborhood"`
	ShippingCity         string `json:"shipping_city"`
	ShippingCarrier      string `json:"shipping_carrier"`
}

// CustomerProfile данные клиента из предыдущих записей (/api/customer-by-id)
type CustomerProfile struct {
	CustomerName         string `json:"customer_name"`
	CustomerPhone        string `json:"customer_phone"`
	CustomerEmail        string `json:"customer_email"`
	ShippingAddress      string `json:"shipping_address"`
	ShippingNeighborhood string `json:"shipping_neighborhood"`
	ShippingCity         string `json:"shipping_city"`
}

// AppointmentDTO запись в ответах административного API
type AppointmentDTO struct {
	ID                   int64    `json:"id"`
	TypeCode             string   `json:"type_code"`
	Date                 string   `json:"date"`
	StartTime            string   `json:"start_time"`
	EndTime              string   `json:"end_time"`
	Status               string   `json:"status"`
	Product              string   `json:"product"`
	CustomerName         string   `json:"customer_name"`
	CustomerEmail        string   `json:"customer_email"`
	CustomerPhone        string   `json:"customer_phone"`
	CustomerIDNumber     string   `json:"customer_id_number"`
	DeliveryMethod       string   `json:"delivery_method"`
	Notes                string   `json:"notes"`
	ShippingAddress      string   `json:"shipping_address"`
	ShippingNeighborhood string   `json:"shipping_neighborhood"`
	ShippingCity         string   `json:"shipping_city"`
	ShippingCarrier      string   `json:"shipping_carrier"`
	TrackingNumber       *string  `json:"tracking_number,omitempty"`
	TripLink             *string  `json:"trip_link,omitempty"`
	ShippingCost         *float64 `json:"shipping_cost,omitempty"`
	GuideURL             *string  `json:"guide_url,omitempty"`
	CreatedAt            string   `json:"created_at"`
}

// AppointmentPatchBody тело PATCH /api/admin/appointments/{id}
type AppointmentPatchBody struct {
	Status    *string `json:"status,omitempty"`
	Date      *string `json:"date,omitempty"`
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`
	Product   *string `json:"product,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

type bulkDeleteBody struct {
	IDs []int64 `json:"ids"`
}

// ShipBody тело POST /api/admin/appointments/{id}/ship
type ShipBody struct {
	Carrier        string   `json:"carrier"`
	TrackingNumber string   `json:"tracking_number,omitempty"`
	TripLink       string   `json:"trip_link,omitempty"`
	Cost           *float64 `json:"cost,omitempty"`
}

// GuideBody тело POST /api/admin/appointments/{id}/guide
type GuideBody struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	DataBase64  string `json:"data_base64"`
}

// WindowDTO окно доступности
type WindowDTO struct {
	ID          int64  `json:"id,omitempty"`
	Date        string `json:"date"`
	Type        string `json:"type"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	SlotMinutes int    `json:"slot_minutes"`
}

func newCreateAppointmentBody(r domain.AppointmentRequest) CreateAppointmentBody {
	return CreateAppointmentBody{
		TypeCode:             string(r.TypeCode),
		Date:                 r.Date,
		StartTime:            r.StartTime,
		EndTime:              r.EndTime,
		Product:              r.Product,
		CustomerName:         r.CustomerName,
		CustomerEmail:        r.CustomerEmail,
		CustomerPhone:        r.CustomerPhone,
		CustomerIDNumber:     r.CustomerIDNumber,
		DeliveryMethod:       r.DeliveryMethod,
		Notes:                r.Notes,
		ShippingAddress:      r.ShippingAddress,
		ShippingNeighborhood: r.ShippingNeighborhood,
		ShippingCity:         r.ShippingCity,
		ShippingCarrier:      r.ShippingCarrier,
	}
}

func (d AppointmentDTO) toDomain() domain.Appointment {
	a := domain.Appointment{
		ID:        d.ID,
		Type:      domain.Method(d.TypeCode),
		Date:      d.Date,
		StartTime: normalizeTime(d.StartTime),
		EndTime:   normalizeTime(d.EndTime),
		Status:    domain.AppointmentStatus(d.Status),
		Product:   d.Product,
		Customer: domain.Customer{
			FullName: d.CustomerName,
			IDNumber: d.CustomerIDNumber,
			Phone:    d.CustomerPhone,
			Email:    d.CustomerEmail,
			Product:  d.Product,
			Notes:    d.Notes,
		},
		DeliveryMethod: d.DeliveryMethod,
		Shipping: domain.Shipping{
			Address:      d.ShippingAddress,
			Neighborhood: d.ShippingNeighborhood,
			City:         d.ShippingCity,
			Carrier:      domain.Carrier(d.ShippingCarrier),
		},
		TrackingNumber: d.TrackingNumber,
		TripLink:       d.TripLink,
		ShippingCost:   d.ShippingCost,
		GuideURL:       d.GuideURL,
	}
	if t, err := time.Parse(time.RFC3339, d.CreatedAt); err == nil {
		a.CreatedAt = t
	}
	return a
}

func newPatchBody(p domain.AppointmentPatch) AppointmentPatchBody {
	body := AppointmentPatchBody{
		Date:    p.Date,
		Product: p.Product,
		Notes:   p.Notes,
	}
	if p.Status != nil {
		s := string(*p.Status)
		body.Status = &s
	}
	if p.StartTime != nil {
		s := p.StartTime.String()
		body.StartTime = &s
	}
	if p.EndTime != nil {
		s := p.EndTime.String()
		body.EndTime = &s
	}
	return body
}

func newWindowDTO(w domain.AvailabilityWindow) WindowDTO {
	return WindowDTO{
		ID:          w.ID,
		Date:        w.Date,
		Type:        string(w.Type),
		StartTime:   w.StartTime.String(),
		EndTime:     w.EndTime.String(),
		SlotMinutes: w.SlotMinutes,
	}
}

func (d WindowDTO) toDomain() domain.AvailabilityWindow {
	return domain.AvailabilityWindow{
		ID:          d.ID,
		Date:        d.Date,
		Type:        domain.Method(d.Type),
		StartTime:   normalizeTime(d.StartTime),
		EndTime:     normalizeTime(d.EndTime),
		SlotMinutes: d.SlotMinutes,
	}
}

// normalizeTime приводит "10:00:00" к "10:00"; некорректное значение сохраняется как есть
func normalizeTime(s string) types.TimeString {
	ts, err := types.NewTimeStringFromString(s)
	if err != nil {
		return types.TimeString(s)
	}
	return ts
}
