package admin_windows

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingPortal/internal/api/handlers"
	"github.com/m04kA/SMC-BookingPortal/internal/api/middleware"
)

const (
	msgInvalidRequestBody = "Solicitud no válida"
	msgInvalidQuery       = "Parámetros de consulta no válidos"
	msgInvalidID          = "ID de ventana no válido"
	msgInvalidWindow      = "Revisa el tipo y el formato de las horas (HH:MM)"
)

type Handler struct {
	service AdminService
	logger  Logger
}

func NewHandler(service AdminService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /portal/v1/admin/windows?date=YYYY-MM-DD
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var query ListQuery
	if err := handlers.DecodeQuery(r, &query); err != nil {
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	list, err := h.service.ListWindows(r.Context(), middleware.SessionKey(r.Context()), query.Date)
	if err != nil {
		handlers.RespondAdminError(w, h.logger, "GET /admin/windows", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, FromWindows(list))
}

// Create POST /portal/v1/admin/windows
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req WindowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/windows - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	window, err := req.ToDomain(0)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidWindow)
		return
	}

	created, err := h.service.CreateWindow(r.Context(), middleware.SessionKey(r.Context()), window)
	if err != nil {
		handlers.RespondAdminError(w, h.logger, "POST /admin/windows", err)
		return
	}

	h.logger.Info("POST /admin/windows - Window created: id=%d", created.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromWindow(created))
}

// Update PATCH /portal/v1/admin/windows/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var req WindowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/windows/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	window, err := req.ToDomain(id)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidWindow)
		return
	}

	updated, err := h.service.UpdateWindow(r.Context(), middleware.SessionKey(r.Context()), window)
	if err != nil {
		handlers.RespondAdminError(w, h.logger, "PATCH /admin/windows/{id}", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, FromWindow(updated))
}

// Delete DELETE /portal/v1/admin/windows/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteWindow(r.Context(), middleware.SessionKey(r.Context()), id); err != nil {
		handlers.RespondAdminError(w, h.logger, "DELETE /admin/windows/{id}", err)
		return
	}

	h.logger.Info("DELETE /admin/windows/{id} - Window deleted: id=%d", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		h.logger.Warn("%s %s - Invalid window ID", r.Method, r.URL.Path)
		handlers.RespondBadRequest(w, msgInvalidID)
		return 0, false
	}
	return id, true
}
