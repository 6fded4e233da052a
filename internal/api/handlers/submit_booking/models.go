package submit_booking

import (
	"strings"

	"github.com/m04kA/SMC-BookingPortal/internal/api/handlers"
	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	bookingForm "github.com/m04kA/SMC-BookingPortal/internal/usecase/booking_form"
	"github.com/m04kA/SMC-BookingPortal/pkg/types"
)

// SubmitBookingRequest HTTP request model
type SubmitBookingRequest struct {
	Method       string       `json:"method"` // TRYOUT | PICKUP | SHIPPING, пусто = TRYOUT
	Date         string       `json:"date"`   // YYYY-MM-DD
	Slot         *SlotRequest `json:"selectedSlot,omitempty"`
	FullName     string       `json:"fullName"`
	IDNumber     string       `json:"idNumber"`
	Phone        string       `json:"phone"`
	Email        string       `json:"email"`
	Product      string       `json:"product"`
	Notes        string       `json:"notes,omitempty"`
	Address      string       `json:"address,omitempty"`
	Neighborhood string       `json:"neighborhood,omitempty"`
	City         string       `json:"city,omitempty"`
	Carrier      string       `json:"carrier,omitempty"`
}

type SlotRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// SubmitBookingResponse HTTP response model
type SubmitBookingResponse struct {
	Outcome string                `json:"outcome"`
	Form    handlers.FormResponse `json:"form"`
}

// ToDraft конвертирует HTTP запрос в черновик
// Слот не входит в черновик: он выбирается отдельно после загрузки списка
func (r *SubmitBookingRequest) ToDraft() (domain.ReservationDraft, *domain.TimeSlot, error) {
	draft := domain.EmptyDraft()

	if strings.TrimSpace(r.Method) != "" {
		m, err := domain.ParseMethod(r.Method)
		if err != nil {
			return draft, nil, err
		}
		draft.Method = m
	}

	var carrier domain.Carrier
	if strings.TrimSpace(r.Carrier) != "" {
		c, err := domain.ParseCarrier(r.Carrier)
		if err != nil {
			return draft, nil, err
		}
		carrier = c
	}

	var slot *domain.TimeSlot
	if r.Slot != nil {
		start, err := types.NewTimeStringFromString(r.Slot.Start)
		if err != nil {
			return draft, nil, err
		}
		end, err := types.NewTimeStringFromString(r.Slot.End)
		if err != nil {
			return draft, nil, err
		}
		slot = &domain.TimeSlot{Start: start, End: end}
	}

	draft.Date = strings.TrimSpace(r.Date)
	draft.Customer = domain.Customer{
		FullName: r.FullName,
		IDNumber: r.IDNumber,
		Phone:    r.Phone,
		Email:    r.Email,
		Product:  r.Product,
		Notes:    r.Notes,
	}
	draft.Shipping = domain.Shipping{
		Address:      r.Address,
		Neighborhood: r.Neighborhood,
		City:         r.City,
		Carrier:      carrier,
	}
	return draft, slot, nil
}

// FromOutcome формирует ответ по результату отправки
func FromOutcome(outcome bookingForm.Outcome, snapshot bookingForm.Snapshot) *SubmitBookingResponse {
	return &SubmitBookingResponse{
		Outcome: string(outcome),
		Form:    handlers.FromSnapshot(snapshot),
	}
}
