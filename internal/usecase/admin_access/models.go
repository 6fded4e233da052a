package admin_access

import (
	"time"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
)

// Access результат проверки при открытии админки
type Access string

const (
	AccessGranted   Access = "GRANTED"
	AccessNeedLogin Access = "NEED_LOGIN"
)

// Reason причина, по которой нужен вход
type Reason string

const (
	ReasonNone         Reason = ""
	ReasonNoSession    Reason = "NO_SESSION"
	ReasonInvalidToken Reason = "INVALID_TOKEN"
	ReasonNetwork      Reason = "NETWORK"
)

// MountResult результат Mount
type MountResult struct {
	Access    Access
	Reason    Reason
	ExpiresAt time.Time
	Remaining time.Duration
}

// Status состояние сессии без обращения к бэкенду
type Status struct {
	State     domain.SessionState
	ExpiresAt time.Time
	Remaining time.Duration
}
