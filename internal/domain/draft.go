package domain

import "strings"

// Customer данные клиента, общие для всех способов
type Customer struct {
	FullName string `json:"fullName"`
	IDNumber string `json:"idNumber"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Product  string `json:"product"`
	Notes    string `json:"notes,omitempty"` // опционально
}

// Shipping данные доставки, обязательны только для SHIPPING
type Shipping struct {
	Address      string  `json:"address"`
	Neighborhood string  `json:"neighborhood"`
	City         string  `json:"city"`
	Carrier      Carrier `json:"carrier"`
}

// ReservationDraft черновик бронирования, который заполняет пользователь
// Создается пустым, сбрасывается после успешной отправки, никогда не сохраняется
type ReservationDraft struct {
	Method   Method    `json:"method"`
	Date     string    `json:"date"` // YYYY-MM-DD
	Slot     *TimeSlot `json:"selectedSlot,omitempty"`
	Customer Customer  `json:"customer"`
	Shipping Shipping  `json:"shipping"`
}

// EmptyDraft черновик в состоянии по умолчанию
func EmptyDraft() ReservationDraft {
	return ReservationDraft{Method: MethodTryout}
}

// Payload возвращает вариант полезной нагрузки для текущего способа
// Метод проверяется на границе (ParseMethod), пустой считается TRYOUT
func (d ReservationDraft) Payload() Payload {
	switch d.Method {
	case MethodPickup:
		return PickupPayload{inPersonPayload{Customer: d.Customer, Date: d.Date, Slot: d.Slot}}
	case MethodShipping:
		return ShippingPayload{Customer: d.Customer, Date: d.Date, Shipping: d.Shipping}
	default:
		return TryoutPayload{inPersonPayload{Customer: d.Customer, Date: d.Date, Slot: d.Slot}}
	}
}

// Validate проверяет черновик целиком (validateForm)
func (d ReservationDraft) Validate() ValidationErrors {
	return d.Payload().Validate()
}

// NormalizePhone убирает все пробельные символы из номера
func NormalizePhone(phone string) string {
	return strings.Join(strings.Fields(phone), "")
}
