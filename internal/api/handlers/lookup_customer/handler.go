package lookup_customer

import (
	"net/http"
	"strings"

	"github.com/m04kA/SMC-BookingPortal/internal/api/handlers"
	"github.com/m04kA/SMC-BookingPortal/internal/domain"
)

const (
	msgInvalidRequestBody = "Solicitud no válida"
	msgMissingIDNumber    = "Ingresa tu número de documento"
	msgInvalidMethod      = "Tipo de cita no válido"
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

// Handle POST /portal/v1/customers/lookup
// "Не найден" и ошибки бэкенда не показываются: found=false, форма без изменений
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req LookupCustomerRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /customers/lookup - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	idNumber := strings.TrimSpace(req.IDNumber)
	if idNumber == "" {
		handlers.RespondBadRequest(w, msgMissingIDNumber)
		return
	}

	if req.Draft.Method != "" {
		m, err := domain.ParseMethod(string(req.Draft.Method))
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidMethod)
			return
		}
		req.Draft.Method = m
	}

	form := h.newForm()
	form.Load(r.Context(), req.Draft)
	found := form.LookupCustomer(r.Context(), idNumber)

	h.logger.Info("POST /customers/lookup - found=%t", found)
	handlers.RespondJSON(w, http.StatusOK, &LookupCustomerResponse{
		Found: found,
		Form:  handlers.FromSnapshot(form.Snapshot()),
	})
}
