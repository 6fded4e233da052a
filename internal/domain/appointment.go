package domain

import (
	"time"

	"github.com/m04kA/SMC-BookingPortal/pkg/types"
)

// AppointmentStatus статус записи на стороне бэкенда
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "PENDING"
	AppointmentConfirmed AppointmentStatus = "CONFIRMED"
	AppointmentShipped   AppointmentStatus = "SHIPPED"
	AppointmentCompleted AppointmentStatus = "COMPLETED"
	AppointmentCancelled AppointmentStatus = "CANCELLED"
)

// Appointment запись клиента, как ее видит администратор
type Appointment struct {
	ID             int64
	Type           Method
	Date           string
	StartTime      types.TimeString
	EndTime        types.TimeString
	Status         AppointmentStatus
	Product        string
	Customer       Customer
	DeliveryMethod string
	Shipping       Shipping

	// Данные об отправке (только для SHIPPING)
	TrackingNumber *string
	TripLink       *string
	ShippingCost   *float64
	GuideURL       *string

	CreatedAt time.Time
}

// IsShipping true для записей с доставкой
func (a *Appointment) IsShipping() bool {
	return a.Type == MethodShipping
}

// IsShipped true, если отправка уже оформлена
func (a *Appointment) IsShipped() bool {
	return a.Status == AppointmentShipped
}

// AppointmentPatch частичное обновление записи администратором
// nil означает "не менять"
type AppointmentPatch struct {
	Status    *AppointmentStatus
	Date      *string
	StartTime *types.TimeString
	EndTime   *types.TimeString
	Product   *string
	Notes     *string
}

// IsEmpty true, если ни одно поле не задано
func (p AppointmentPatch) IsEmpty() bool {
	return p.Status == nil && p.Date == nil && p.StartTime == nil &&
		p.EndTime == nil && p.Product == nil && p.Notes == nil
}

// ShipmentInfo данные для отметки об отправке
// INTERRAPIDISIMO требует номер накладной, PICAP требует ссылку на поездку
type ShipmentInfo struct {
	Carrier        Carrier
	TrackingNumber string
	TripLink       string
	Cost           *float64
}

// GuideFile файл накладной, который загружает администратор
type GuideFile struct {
	Filename    string
	ContentType string
	Data        []byte
}
