package handlers

import (
	"errors"
	"net/http"
	"strings"

	adminService "github.com/m04kA/SMC-BookingPortal/internal/service/admin"
)

const (
	msgSessionRequired    = "Tu sesión terminó. Ingresa la clave de nuevo"
	msgAdminNotFound      = "No encontramos el registro"
	msgAdminRejected      = "La operación fue rechazada"
	msgBackendUnavailable = "No pudimos comunicarnos con el servidor de citas. Intenta de nuevo"
)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RespondAdminError сводит ошибку административного сервиса к HTTP ответу
// Для ErrInvalidInput и ErrRejected в ответ попадает текст после sentinel-префикса
func RespondAdminError(w http.ResponseWriter, logger Logger, op string, err error) {
	switch {
	case errors.Is(err, adminService.ErrSessionRequired):
		logger.Warn("%s - Admin session required", op)
		RespondUnauthorized(w, msgSessionRequired)
	case errors.Is(err, adminService.ErrInvalidInput):
		logger.Warn("%s - Invalid input: %v", op, err)
		RespondBadRequest(w, detail(err, adminService.ErrInvalidInput))
	case errors.Is(err, adminService.ErrNotFound):
		logger.Warn("%s - Not found", op)
		RespondNotFound(w, msgAdminNotFound)
	case errors.Is(err, adminService.ErrRejected):
		logger.Warn("%s - Rejected: %v", op, err)
		msg := detail(err, adminService.ErrRejected)
		if msg == "" {
			msg = msgAdminRejected
		}
		RespondError(w, http.StatusConflict, msg)
	case errors.Is(err, adminService.ErrBackendUnavailable):
		logger.Error("%s - Backend unavailable: %v", op, err)
		RespondError(w, http.StatusBadGateway, msgBackendUnavailable)
	default:
		logger.Error("%s - Failed: %v", op, err)
		RespondInternalError(w)
	}
}

// detail текст ошибки без префикса sentinel
func detail(err, sentinel error) string {
	return strings.TrimSpace(strings.TrimPrefix(err.Error(), sentinel.Error()+":"))
}
