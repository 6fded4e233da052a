package submit_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BookingPortal/internal/api/handlers"
	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	bookingForm "github.com/m04kA/SMC-BookingPortal/internal/usecase/booking_form"
)

const (
	msgInvalidRequestBody = "Solicitud no válida"
	msgInvalidFields      = "Revisa el tipo de cita, la transportadora y el horario"
	msgSlotUnavailable    = "El horario seleccionado ya no está disponible. Elige otro"
	msgCarrierNotOffered  = "La transportadora seleccionada no está disponible en tu ciudad"
	msgSubmitInFlight     = "Tu solicitud ya se está procesando"
)

type Handler struct {
	newForm FormFactory
	logger  Logger
}

func NewHandler(newForm FormFactory, logger Logger) *Handler {
	return &Handler{
		newForm: newForm,
		logger:  logger,
	}
}

// Handle POST /portal/v1/bookings
// 201 успех, 422 ошибки полей, 409 отказ бэкенда или занятый слот, 502 нет связи с бэкендом
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SubmitBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	draft, slot, err := req.ToDraft()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFields)
		return
	}

	form := h.newForm()
	form.Load(r.Context(), draft)

	// Служба должна быть доступна для города
	if draft.Shipping.Carrier != "" && draft.Method == domain.MethodShipping {
		if err := form.SetCarrier(draft.Shipping.Carrier); err != nil {
			h.logger.Warn("POST /bookings - %v", err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgCarrierNotOffered)
			return
		}
	}

	// Слот должен быть среди видимых на текущий момент
	if slot != nil && draft.Method.NeedsSlot() {
		if err := form.SelectSlot(*slot); err != nil {
			h.logger.Warn("POST /bookings - Slot rejected: %v", err)
			resp := FromOutcome(bookingForm.OutcomeRejected, form.Snapshot())
			resp.Form.Notice = &bookingForm.Notice{Kind: bookingForm.NoticeError, Message: msgSlotUnavailable}
			handlers.RespondJSON(w, http.StatusConflict, resp)
			return
		}
	}

	outcome, err := form.Submit(r.Context())
	if err != nil {
		if errors.Is(err, bookingForm.ErrSubmitInFlight) {
			handlers.RespondError(w, http.StatusConflict, msgSubmitInFlight)
			return
		}
		h.logger.Error("POST /bookings - Failed to submit: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	response := FromOutcome(outcome, form.Snapshot())

	switch outcome {
	case bookingForm.OutcomeSuccess:
		h.logger.Info("POST /bookings - Booking created: method=%s, date=%s", draft.Method, draft.Date)
		handlers.RespondJSON(w, http.StatusCreated, response)
	case bookingForm.OutcomeInvalid:
		handlers.RespondJSON(w, http.StatusUnprocessableEntity, response)
	case bookingForm.OutcomeRejected:
		handlers.RespondJSON(w, http.StatusConflict, response)
	default:
		handlers.RespondJSON(w, http.StatusBadGateway, response)
	}
}
