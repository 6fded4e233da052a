package admin_auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/m04kA/SMC-BookingPortal/internal/api/handlers"
	"github.com/m04kA/SMC-BookingPortal/internal/api/middleware"
	adminAccess "github.com/m04kA/SMC-BookingPortal/internal/usecase/admin_access"
)

const (
	msgInvalidRequestBody = "Solicitud no válida"
	msgIncorrectKey       = "Clave incorrecta"
	msgBackendUnavailable = "No pudimos verificar la clave. Intenta de nuevo"
	msgStreamUnsupported  = "El servidor no admite eventos en tiempo real"
)

// SSE события потока сессии
const (
	eventTick    = "tick"
	eventExpired = "expired"
	eventEnded   = "ended"
)

type Handler struct {
	useCase AdminAccessUseCase
	logger  Logger
}

func NewHandler(useCase AdminAccessUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Login POST /portal/v1/admin/session
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	key := middleware.SessionKey(r.Context())

	var req LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/session - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if _, err := h.useCase.Login(r.Context(), key, req.Secret); err != nil {
		switch {
		case errors.Is(err, adminAccess.ErrIncorrectKey):
			h.logger.Warn("POST /admin/session - Incorrect key: session=%s", key)
			handlers.RespondUnauthorized(w, msgIncorrectKey)
		case errors.Is(err, adminAccess.ErrBackendUnavailable):
			h.logger.Error("POST /admin/session - Backend unavailable: %v", err)
			handlers.RespondError(w, http.StatusBadGateway, msgBackendUnavailable)
		default:
			h.logger.Error("POST /admin/session - Failed to login: session=%s, error=%v", key, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status, err := h.useCase.Status(r.Context(), key)
	if err != nil {
		h.logger.Error("POST /admin/session - Failed to read session: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/session - Admin logged in: session=%s", key)
	handlers.RespondJSON(w, http.StatusOK, FromMountResult(&adminAccess.MountResult{
		Access:    adminAccess.AccessGranted,
		ExpiresAt: status.ExpiresAt,
		Remaining: status.Remaining,
	}))
}

// Logout DELETE /portal/v1/admin/session
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	key := middleware.SessionKey(r.Context())

	if err := h.useCase.Logout(r.Context(), key); err != nil {
		h.logger.Error("DELETE /admin/session - Failed to logout: session=%s, error=%v", key, err)
		handlers.RespondInternalError(w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Session GET /portal/v1/admin/session
// Проверяет сохраненный токен на бэкенде без продления срока
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	key := middleware.SessionKey(r.Context())

	res, err := h.useCase.Mount(r.Context(), key)
	if err != nil {
		h.logger.Error("GET /admin/session - Failed to check session: session=%s, error=%v", key, err)
		handlers.RespondInternalError(w)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, FromMountResult(res))
}

// Stream GET /portal/v1/admin/session/stream
// Раз в секунду отправляет "tick" с оставшимся временем; "expired" при истечении, "ended" при выходе
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	key := middleware.SessionKey(r.Context())

	flusher, ok := w.(http.Flusher)
	if !ok {
		handlers.RespondInternalError(w)
		h.logger.Error("GET /admin/session/stream - %s", msgStreamUnsupported)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	err := h.useCase.Watch(r.Context(), key, func(remaining time.Duration) {
		h.writeEvent(w, eventTick, NewTickEvent(remaining))
		flusher.Flush()
	})

	switch {
	case err == nil:
		// клиент отключился
	case errors.Is(err, adminAccess.ErrSessionExpired):
		h.logger.Info("GET /admin/session/stream - Session expired: session=%s", key)
		h.writeEvent(w, eventExpired, NewTickEvent(0))
	case errors.Is(err, adminAccess.ErrNoSession):
		h.writeEvent(w, eventEnded, NewTickEvent(0))
	default:
		h.logger.Error("GET /admin/session/stream - Watch failed: session=%s, error=%v", key, err)
		h.writeEvent(w, eventEnded, NewTickEvent(0))
	}
	flusher.Flush()
}

func (h *Handler) writeEvent(w http.ResponseWriter, event string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("admin session stream: failed to encode event: %v", err)
		return
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		h.logger.Warn("admin session stream: write failed: %v", err)
	}
}
