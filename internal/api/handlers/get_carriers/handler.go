package get_carriers

import (
	"net/http"

	"github.com/m04kA/SMC-BookingPortal/internal/api/handlers"
	"github.com/m04kA/SMC-BookingPortal/internal/domain"
)

const msgInvalidQuery = "Parámetros de consulta no válidos"

type Handler struct {
	logger Logger
}

func NewHandler(logger Logger) *Handler {
	return &Handler{logger: logger}
}

// Handle GET /portal/v1/carriers?city=...
// Пустой город дает набор для остальных городов
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var query CarriersQuery
	if err := handlers.DecodeQuery(r, &query); err != nil {
		h.logger.Warn("GET /carriers - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &CarriersResponse{
		City:     query.City,
		Carriers: handlers.CarrierNames(domain.CarriersForCity(query.City)),
	})
}
