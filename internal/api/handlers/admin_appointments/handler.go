package admin_appointments

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingPortal/internal/api/handlers"
	"github.com/m04kA/SMC-BookingPortal/internal/api/middleware"
	"github.com/m04kA/SMC-BookingPortal/internal/domain"
)

const (
	msgInvalidRequestBody = "Solicitud no válida"
	msgInvalidQuery       = "Parámetros de consulta no válidos"
	msgInvalidID          = "ID de cita no válido"
	msgInvalidTime        = "Formato de hora no válido, se espera HH:MM"
	msgInvalidCarrier     = "Transportadora no válida"
	msgMissingFile        = "Adjunta el archivo de la guía"
	msgFileTooLarge       = "El archivo de la guía es demasiado grande"

	guideFormField = "file"
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

// List GET /portal/v1/admin/appointments?date=YYYY-MM-DD
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var query ListQuery
	if err := handlers.DecodeQuery(r, &query); err != nil {
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	list, err := h.service.ListAppointments(r.Context(), middleware.SessionKey(r.Context()), query.Date)
	if err != nil {
		handlers.RespondAdminError(w, h.logger, "GET /admin/appointments", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, FromAppointments(list))
}

// Get GET /portal/v1/admin/appointments/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	a, err := h.service.GetAppointment(r.Context(), middleware.SessionKey(r.Context()), id)
	if err != nil {
		handlers.RespondAdminError(w, h.logger, "GET /admin/appointments/{id}", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, FromAppointment(a))
}

// Update PATCH /portal/v1/admin/appointments/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/appointments/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	patch, err := req.ToPatch()
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	a, err := h.service.UpdateAppointment(r.Context(), middleware.SessionKey(r.Context()), id, patch)
	if err != nil {
		handlers.RespondAdminError(w, h.logger, "PATCH /admin/appointments/{id}", err)
		return
	}

	h.logger.Info("PATCH /admin/appointments/{id} - Appointment updated: id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, FromAppointment(a))
}

// Delete DELETE /portal/v1/admin/appointments/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteAppointment(r.Context(), middleware.SessionKey(r.Context()), id); err != nil {
		handlers.RespondAdminError(w, h.logger, "DELETE /admin/appointments/{id}", err)
		return
	}

	h.logger.Info("DELETE /admin/appointments/{id} - Appointment deleted: id=%d", id)
	w.WriteHeader(http.StatusNoContent)
}

// BulkDelete POST /portal/v1/admin/appointments/bulk-delete
func (h *Handler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req BulkDeleteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/appointments/bulk-delete - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	n, err := h.service.BulkDeleteAppointments(r.Context(), middleware.SessionKey(r.Context()), req.IDs)
	if err != nil {
		handlers.RespondAdminError(w, h.logger, "POST /admin/appointments/bulk-delete", err)
		return
	}

	h.logger.Info("POST /admin/appointments/bulk-delete - %d appointments deleted", n)
	handlers.RespondJSON(w, http.StatusOK, &BulkDeleteResponse{Deleted: n})
}

// Ship POST /portal/v1/admin/appointments/{id}/ship
func (h *Handler) Ship(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var req ShipRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/appointments/{id}/ship - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	info, err := req.ToShipmentInfo()
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidCarrier)
		return
	}

	a, err := h.service.MarkShipped(r.Context(), middleware.SessionKey(r.Context()), id, info)
	if err != nil {
		handlers.RespondAdminError(w, h.logger, "POST /admin/appointments/{id}/ship", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, FromAppointment(a))
}

// UploadGuide POST /portal/v1/admin/appointments/{id}/guide (multipart, поле "file")
func (h *Handler) UploadGuide(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	// Запас на заголовки multipart сверх размера файла
	r.Body = http.MaxBytesReader(w, r.Body, domain.MaxGuideFileBytes+64<<10)
	if err := r.ParseMultipartForm(domain.MaxGuideFileBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			handlers.RespondError(w, http.StatusRequestEntityTooLarge, msgFileTooLarge)
			return
		}
		handlers.RespondBadRequest(w, msgMissingFile)
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile(guideFormField)
	if err != nil {
		handlers.RespondBadRequest(w, msgMissingFile)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, domain.MaxGuideFileBytes+1))
	if err != nil {
		h.logger.Error("POST /admin/appointments/{id}/guide - Failed to read file: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	guideURL, err := h.service.UploadGuide(r.Context(), middleware.SessionKey(r.Context()), id, domain.GuideFile{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		handlers.RespondAdminError(w, h.logger, "POST /admin/appointments/{id}/guide", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, &GuideResponse{GuideURL: guideURL})
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		h.logger.Warn("%s %s - Invalid appointment ID", r.Method, r.URL.Path)
		handlers.RespondBadRequest(w, msgInvalidID)
		return 0, false
	}
	return id, true
}
