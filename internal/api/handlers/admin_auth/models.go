package admin_auth

import (
	"fmt"
	"time"

	adminAccess "github.com/m04kA/SMC-BookingPortal/internal/usecase/admin_access"
)

// LoginRequest HTTP request model
type LoginRequest struct {
	Secret string `json:"secret"`
}

// SessionResponse состояние сессии администратора
type SessionResponse struct {
	Access           string `json:"access"`
	Reason           string `json:"reason,omitempty"`
	ExpiresAt        string `json:"expiresAt,omitempty"`
	RemainingSeconds int64  `json:"remainingSeconds"`
	Remaining        string `json:"remaining"`
}

// TickEvent событие SSE-потока
type TickEvent struct {
	RemainingSeconds int64  `json:"remainingSeconds"`
	Remaining        string `json:"remaining"`
}

// FromMountResult конвертирует результат проверки
func FromMountResult(res *adminAccess.MountResult) *SessionResponse {
	resp := &SessionResponse{
		Access:           string(res.Access),
		Reason:           string(res.Reason),
		RemainingSeconds: seconds(res.Remaining),
		Remaining:        FormatRemaining(res.Remaining),
	}
	if !res.ExpiresAt.IsZero() {
		resp.ExpiresAt = res.ExpiresAt.Format(time.RFC3339)
	}
	return resp
}

// NewTickEvent событие с оставшимся временем
func NewTickEvent(remaining time.Duration) TickEvent {
	return TickEvent{
		RemainingSeconds: seconds(remaining),
		Remaining:        FormatRemaining(remaining),
	}
}

// FormatRemaining оставшееся время в виде HH:MM:SS, отрицательное считается нулем
func FormatRemaining(d time.Duration) string {
	s := seconds(d)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, s%3600/60, s%60)
}

// seconds округляет вниз до целых секунд
func seconds(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	return int64(d / time.Second)
}
