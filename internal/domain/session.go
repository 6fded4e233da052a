package domain

import "time"

// SessionState состояние сессии администратора
type SessionState string

const (
	SessionNone    SessionState = "NO_SESSION"
	SessionActive  SessionState = "ACTIVE"
	SessionExpired SessionState = "EXPIRED" // transient, сразу сводится к NO_SESSION
)

// AdminSession токен администратора и момент его истечения
// Пара хранится двумя записями; отсутствие любой из них означает отсутствие сессии
type AdminSession struct {
	Token     string
	ExpiresAt time.Time
}

// IsComplete true, если заданы и токен, и срок
func (s AdminSession) IsComplete() bool {
	return s.Token != "" && !s.ExpiresAt.IsZero()
}

// ExpiredAt true, если now строго позже срока
func (s AdminSession) ExpiredAt(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Remaining оставшееся время, не меньше нуля
func (s AdminSession) Remaining(now time.Time) time.Duration {
	if !s.IsComplete() {
		return 0
	}
	if d := s.ExpiresAt.Sub(now); d > 0 {
		return d
	}
	return 0
}
