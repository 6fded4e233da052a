package get_available_slots

import (
	"net/http"
	"strings"

	"github.com/m04kA/SMC-BookingPortal/internal/api/handlers"
	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-BookingPortal/internal/usecase/get_available_slots"
)

const (
	msgInvalidQuery  = "Parámetros de consulta no válidos"
	msgInvalidMethod = "Tipo de cita no válido"
	msgMissingDate   = "Selecciona una fecha"
	msgInvalidDate   = "La fecha no es válida"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /portal/v1/slots?date=YYYY-MM-DD&method=TRYOUT
// Ошибки бэкенда не являются ошибками HTTP: статус и сообщение приходят в теле
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var query AvailableSlotsQuery
	if err := handlers.DecodeQuery(r, &query); err != nil {
		h.logger.Warn("GET /slots - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	method, err := query.ParseMethod()
	if err != nil {
		h.logger.Warn("GET /slots - Invalid method: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMethod)
		return
	}

	date := strings.TrimSpace(query.Date)
	if date == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}
	if _, err := domain.ParseDate(date, h.useCase.Location()); err != nil {
		h.logger.Warn("GET /slots - Invalid date %q: %v", query.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Список на один запрос: фильтрация и сообщения те же, что в форме
	list := getAvailableSlots.NewSlotList(h.useCase)
	list.Refresh(r.Context(), date, method)
	view := list.View(h.useCase.Now())

	h.logger.Info("GET /slots - date=%s, method=%s, status=%s, visible=%d", date, method, view.Status, len(view.Slots))
	handlers.RespondJSON(w, http.StatusOK, handlers.FromSlotsView(view))
}
