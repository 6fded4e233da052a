package handlers

import (
	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	"github.com/m04kA/SMC-BookingPortal/internal/usecase/booking_form"
	"github.com/m04kA/SMC-BookingPortal/internal/usecase/get_available_slots"
)

// SlotResponse временной слот
type SlotResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// SlotsViewResponse состояние списка слотов
type SlotsViewResponse struct {
	Date    string         `json:"date"`
	Method  string         `json:"method"`
	Status  string         `json:"status"`
	Slots   []SlotResponse `json:"slots"`
	Message string         `json:"message,omitempty"`
	Hint    string         `json:"hint,omitempty"`
}

// FormResponse состояние формы бронирования
type FormResponse struct {
	Draft    domain.ReservationDraft `json:"draft"`
	Errors   map[string]string       `json:"errors,omitempty"`
	Notice   *booking_form.Notice    `json:"notice,omitempty"`
	Carriers []string                `json:"carriers"`
	Slots    SlotsViewResponse       `json:"slots"`
}

// FromSlotsView конвертирует состояние списка слотов
func FromSlotsView(v get_available_slots.View) SlotsViewResponse {
	slots := make([]SlotResponse, len(v.Slots))
	for i, s := range v.Slots {
		slots[i] = SlotResponse{Start: s.Start.String(), End: s.End.String()}
	}
	return SlotsViewResponse{
		Date:    v.Date,
		Method:  v.Method.String(),
		Status:  string(v.Status),
		Slots:   slots,
		Message: v.Message,
		Hint:    v.Hint,
	}
}

// FromSnapshot конвертирует снимок формы
func FromSnapshot(s booking_form.Snapshot) FormResponse {
	resp := FormResponse{
		Draft:    s.Draft,
		Notice:   s.Notice,
		Carriers: CarrierNames(s.Carriers),
		Slots:    FromSlotsView(s.Slots),
	}
	if len(s.Errors) > 0 {
		resp.Errors = make(map[string]string, len(s.Errors))
		for field, msg := range s.Errors {
			resp.Errors[string(field)] = msg
		}
	}
	return resp
}

// CarrierNames коды служб в порядке отображения
func CarrierNames(set domain.CarrierSet) []string {
	names := make([]string, len(set))
	for i, c := range set {
		names[i] = string(c)
	}
	return names
}
