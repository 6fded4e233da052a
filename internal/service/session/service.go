package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	sessionRepo "github.com/m04kA/SMC-BookingPortal/internal/infra/storage/session"
)

// Metric events
const (
	EventLogin    = "login"
	EventLogout   = "logout"
	EventExpired  = "expired"
	EventRejected = "rejected"
)

// Service выдает трекеры сессий администратора поверх общего хранилища
type Service struct {
	store        Store
	defaultHours int
	metrics      MetricsRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса
// defaultHours <= 0 заменяется на domain.DefaultAdminSessionHours
func NewService(store Store, defaultHours int, metrics MetricsRecorder, logger Logger) *Service {
	if defaultHours <= 0 {
		defaultHours = domain.DefaultAdminSessionHours
	}
	return &Service{
		store:        store,
		defaultHours: defaultHours,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// DefaultHours длительность сессии по умолчанию
func (s *Service) DefaultHours() int {
	return s.defaultHours
}

// ForKey трекер для сессии портала key
func (s *Service) ForKey(key string) *Tracker {
	return &Tracker{svc: s, key: key}
}

// Observe фиксирует событие сессии в метриках
func (s *Service) Observe(event string) {
	if s.metrics != nil {
		s.metrics.ObserveAdminSession(event)
	}
}

func (s *Service) now() time.Time {
	return s.timeProvider.Now()
}

// Tracker токен администратора со сроком действия для одной сессии портала
// Состояния: NO_SESSION, ACTIVE, EXPIRED; EXPIRED сразу сводится к NO_SESSION при чтении токена
type Tracker struct {
	svc *Service
	key string
}

// Key ключ сессии портала
func (t *Tracker) Key() string {
	return t.key
}

// SetSession переводит в ACTIVE со сроком now + hours
// hours <= 0 означает длительность по умолчанию
func (t *Tracker) SetSession(ctx context.Context, token string, hours int) (time.Time, error) {
	if token == "" || t.key == "" {
		return time.Time{}, fmt.Errorf("%w: token and session key are required", ErrInvalidInput)
	}
	if hours <= 0 {
		hours = t.svc.defaultHours
	}

	expiresAt := t.svc.now().Add(time.Duration(hours) * time.Hour)
	if err := t.svc.store.Save(ctx, t.key, domain.AdminSession{Token: token, ExpiresAt: expiresAt}); err != nil {
		t.svc.logger.Error("SetSession: store error for key=%s: %v", t.key, err)
		return time.Time{}, fmt.Errorf("%w: SetSession - store error: %v", ErrInternal, err)
	}

	t.svc.logger.Info("SetSession: admin session for key=%s active until %s", t.key, expiresAt.Format(time.RFC3339))
	return expiresAt, nil
}

// GetToken возвращает токен активной сессии
// Если нет токена или срока, либо срок прошел, сессия очищается и возвращается пустая строка
func (t *Tracker) GetToken(ctx context.Context) (string, error) {
	sess, err := t.load(ctx)
	if err != nil {
		return "", err
	}
	if sess == nil {
		return "", nil
	}

	if !sess.IsComplete() || sess.ExpiredAt(t.svc.now()) {
		t.svc.logger.Info("GetToken: admin session for key=%s expired, clearing", t.key)
		if err := t.svc.store.Delete(ctx, t.key); err != nil {
			t.svc.logger.Error("GetToken: failed to clear expired session key=%s: %v", t.key, err)
			return "", fmt.Errorf("%w: GetToken - store error: %v", ErrInternal, err)
		}
		t.svc.Observe(EventExpired)
		return "", nil
	}

	return sess.Token, nil
}

// GetRemaining оставшееся время max(0, expiresAt - now); состояние не меняет
func (t *Tracker) GetRemaining(ctx context.Context) (time.Duration, error) {
	sess, err := t.load(ctx)
	if err != nil || sess == nil {
		return 0, err
	}
	return sess.Remaining(t.svc.now()), nil
}

// ExpiresAt срок текущей пары (нулевой, если сессии нет); состояние не меняет
func (t *Tracker) ExpiresAt(ctx context.Context) (time.Time, error) {
	sess, err := t.load(ctx)
	if err != nil || sess == nil {
		return time.Time{}, err
	}
	return sess.ExpiresAt, nil
}

// State состояние сессии без побочных эффектов
func (t *Tracker) State(ctx context.Context) (domain.SessionState, error) {
	sess, err := t.load(ctx)
	if err != nil {
		return domain.SessionNone, err
	}
	switch {
	case sess == nil:
		return domain.SessionNone, nil
	case !sess.IsComplete() || sess.ExpiredAt(t.svc.now()):
		return domain.SessionExpired, nil
	default:
		return domain.SessionActive, nil
	}
}

// ClearSession переводит в NO_SESSION из любого состояния
func (t *Tracker) ClearSession(ctx context.Context) error {
	if err := t.svc.store.Delete(ctx, t.key); err != nil {
		t.svc.logger.Error("ClearSession: store error for key=%s: %v", t.key, err)
		return fmt.Errorf("%w: ClearSession - store error: %v", ErrInternal, err)
	}
	return nil
}

// load читает пару; nil без ошибки означает отсутствие сессии
func (t *Tracker) load(ctx context.Context) (*domain.AdminSession, error) {
	if t.key == "" {
		return nil, nil
	}

	sess, err := t.svc.store.Load(ctx, t.key)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, nil
		}
		t.svc.logger.Error("Tracker: store error for key=%s: %v", t.key, err)
		return nil, fmt.Errorf("%w: load - store error: %v", ErrInternal, err)
	}
	return sess, nil
}
