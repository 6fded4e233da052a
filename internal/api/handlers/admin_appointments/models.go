package admin_appointments

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	"github.com/m04kA/SMC-BookingPortal/pkg/ptr"
	"github.com/m04kA/SMC-BookingPortal/pkg/types"
)

// ListQuery query параметры списка
type ListQuery struct {
	Date string `schema:"date"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID             int64    `json:"id"`
	Type           string   `json:"type"`
	Date           string   `json:"date"`
	StartTime      string   `json:"startTime,omitempty"`
	EndTime        string   `json:"endTime,omitempty"`
	Status         string   `json:"status"`
	Product        string   `json:"product"`
	FullName       string   `json:"fullName"`
	IDNumber       string   `json:"idNumber"`
	Phone          string   `json:"phone"`
	Email          string   `json:"email"`
	Notes          string   `json:"notes,omitempty"`
	DeliveryMethod string   `json:"deliveryMethod"`
	Address        string   `json:"address,omitempty"`
	Neighborhood   string   `json:"neighborhood,omitempty"`
	City           string   `json:"city,omitempty"`
	Carrier        string   `json:"carrier,omitempty"`
	TrackingNumber *string  `json:"trackingNumber,omitempty"`
	TripLink       *string  `json:"tripLink,omitempty"`
	ShippingCost   *float64 `json:"shippingCost,omitempty"`
	GuideURL       *string  `json:"guideUrl,omitempty"`
	CreatedAt      string   `json:"createdAt,omitempty"`
}

// UpdateAppointmentRequest частичное обновление; отсутствующее поле не меняется
type UpdateAppointmentRequest struct {
	Status    *string `json:"status,omitempty"`
	Date      *string `json:"date,omitempty"`
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
	Product   *string `json:"product,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

// BulkDeleteRequest HTTP request model
type BulkDeleteRequest struct {
	IDs []int64 `json:"ids"`
}

// BulkDeleteResponse HTTP response model
type BulkDeleteResponse struct {
	Deleted int `json:"deleted"`
}

// ShipRequest HTTP request model
type ShipRequest struct {
	Carrier        string   `json:"carrier"`
	TrackingNumber string   `json:"trackingNumber,omitempty"`
	TripLink       string   `json:"tripLink,omitempty"`
	Cost           *float64 `json:"cost,omitempty"`
}

// GuideResponse HTTP response model
type GuideResponse struct {
	GuideURL string `json:"guideUrl"`
}

// ToPatch конвертирует запрос в модель сервиса
func (r *UpdateAppointmentRequest) ToPatch() (domain.AppointmentPatch, error) {
	patch := domain.AppointmentPatch{
		Date:    r.Date,
		Product: r.Product,
		Notes:   r.Notes,
	}
	if r.Status != nil {
		patch.Status = ptr.Ptr(domain.AppointmentStatus(strings.ToUpper(strings.TrimSpace(*r.Status))))
	}
	if r.StartTime != nil {
		ts, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return patch, err
		}
		patch.StartTime = &ts
	}
	if r.EndTime != nil {
		ts, err := types.NewTimeStringFromString(*r.EndTime)
		if err != nil {
			return patch, err
		}
		patch.EndTime = &ts
	}
	return patch, nil
}

// ToShipmentInfo конвертирует запрос в модель сервиса
func (r *ShipRequest) ToShipmentInfo() (domain.ShipmentInfo, error) {
	carrier, err := domain.ParseCarrier(r.Carrier)
	if err != nil {
		return domain.ShipmentInfo{}, err
	}
	return domain.ShipmentInfo{
		Carrier:        carrier,
		TrackingNumber: r.TrackingNumber,
		TripLink:       r.TripLink,
		Cost:           r.Cost,
	}, nil
}

// FromAppointment конвертирует запись в HTTP response
func FromAppointment(a *domain.Appointment) *AppointmentResponse {
	resp := &AppointmentResponse{
		ID:             a.ID,
		Type:           a.Type.String(),
		Date:           a.Date,
		StartTime:      a.StartTime.String(),
		EndTime:        a.EndTime.String(),
		Status:         string(a.Status),
		Product:        a.Product,
		FullName:       a.Customer.FullName,
		IDNumber:       a.Customer.IDNumber,
		Phone:          a.Customer.Phone,
		Email:          a.Customer.Email,
		Notes:          a.Customer.Notes,
		DeliveryMethod: a.DeliveryMethod,
		TrackingNumber: a.TrackingNumber,
		TripLink:       a.TripLink,
		ShippingCost:   a.ShippingCost,
		GuideURL:       a.GuideURL,
	}
	if a.IsShipping() {
		resp.Address = a.Shipping.Address
		resp.Neighborhood = a.Shipping.Neighborhood
		resp.City = a.Shipping.City
		resp.Carrier = string(a.Shipping.Carrier)
	}
	if !a.CreatedAt.IsZero() {
		resp.CreatedAt = a.CreatedAt.Format(time.RFC3339)
	}
	return resp
}

// FromAppointments конвертирует список
func FromAppointments(list []domain.Appointment) []*AppointmentResponse {
	result := make([]*AppointmentResponse, len(list))
	for i := range list {
		result[i] = FromAppointment(&list[i])
	}
	return result
}
