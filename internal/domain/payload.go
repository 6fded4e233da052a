package domain

import "strings"

// Payload вариант бронирования для конкретного способа
// Валидация и нормализация реализованы на каждом варианте отдельно
type Payload interface {
	Method() Method
	Validate() ValidationErrors
	Normalize() AppointmentRequest
}

// AppointmentRequest нормализованное тело запроса на создание записи
type AppointmentRequest struct {
	TypeCode             Method
	Date                 string
	StartTime            string
	EndTime              string
	Product              string
	CustomerName         string
	CustomerEmail        string
	CustomerPhone        string
	CustomerIDNumber     string
	DeliveryMethod       string
	Notes                string
	ShippingAddress      string
	ShippingNeighborhood string
	ShippingCity         string
	ShippingCarrier      string
}

// inPersonPayload общая часть очных визитов (примерка и самовывоз)
type inPersonPayload struct {
	Customer Customer
	Date     string
	Slot     *TimeSlot
}

func (p inPersonPayload) validate() ValidationErrors {
	errs := ValidationErrors{}
	validateCustomer(p.Customer, errs)
	validateDate(p.Date, errs)
	if p.Slot == nil || p.Slot.Start.IsZero() {
		errs[FieldSlot] = msgSlotRequired
	}
	return errs
}

func (p inPersonPayload) normalize(m Method) AppointmentRequest {
	req := baseRequest(m, p.Customer, p.Date)
	if p.Slot != nil {
		req.StartTime = p.Slot.Start.String()
		req.EndTime = p.Slot.End.String()
	}
	return req
}

// TryoutPayload примерка в магазине
type TryoutPayload struct {
	inPersonPayload
}

func (TryoutPayload) Method() Method { return MethodTryout }

func (p TryoutPayload) Validate() ValidationErrors { return p.validate() }

func (p TryoutPayload) Normalize() AppointmentRequest { return p.normalize(MethodTryout) }

// PickupPayload самовывоз из магазина
type PickupPayload struct {
	inPersonPayload
}

func (PickupPayload) Method() Method { return MethodPickup }

func (p PickupPayload) Validate() ValidationErrors { return p.validate() }

func (p PickupPayload) Normalize() AppointmentRequest { return p.normalize(MethodPickup) }

// ShippingPayload доставка: слот не нужен, обязательны данные доставки
type ShippingPayload struct {
	Customer Customer
	Date     string
	Shipping Shipping
}

func (ShippingPayload) Method() Method { return MethodShipping }

func (p ShippingPayload) Validate() ValidationErrors {
	errs := ValidationErrors{}
	validateCustomer(p.Customer, errs)
	validateDate(p.Date, errs)
	validateShipping(p.Shipping, errs)
	return errs
}

func (p ShippingPayload) Normalize() AppointmentRequest {
	req := baseRequest(MethodShipping, p.Customer, p.Date)
	req.StartTime = ShippingTimeSentinel
	req.EndTime = ShippingTimeSentinel
	req.ShippingAddress = strings.TrimSpace(p.Shipping.Address)
	req.ShippingNeighborhood = strings.TrimSpace(p.Shipping.Neighborhood)
	req.ShippingCity = strings.TrimSpace(p.Shipping.City)
	req.ShippingCarrier = string(p.Shipping.Carrier)
	return req
}

// baseRequest заполняет общие поля; поля доставки остаются пустыми
func baseRequest(m Method, c Customer, date string) AppointmentRequest {
	return AppointmentRequest{
		TypeCode:         m,
		Date:             strings.TrimSpace(date),
		Product:          strings.TrimSpace(c.Product),
		CustomerName:     strings.TrimSpace(c.FullName),
		CustomerEmail:    strings.TrimSpace(c.Email),
		CustomerPhone:    NormalizePhone(c.Phone),
		CustomerIDNumber: strings.TrimSpace(c.IDNumber),
		DeliveryMethod:   m.DeliveryMethod(),
		Notes:            strings.TrimSpace(c.Notes),
	}
}
