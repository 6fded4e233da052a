package admin_access

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	"github.com/m04kA/SMC-BookingPortal/internal/integrations/bookingapi"
	"github.com/m04kA/SMC-BookingPortal/internal/service/session"
)

// DefaultTickInterval период опроса срока сессии
const DefaultTickInterval = time.Second

// UseCase доступ к админке: вход, проверка при открытии, слежение за сроком, выход
type UseCase struct {
	validator    TokenValidator
	sessions     SessionService
	location     *time.Location
	tickInterval time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	validator TokenValidator,
	sessions SessionService,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		validator:    validator,
		sessions:     sessions,
		location:     location,
		tickInterval: DefaultTickInterval,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// WithTickInterval подменяет период опроса (для тестов)
func (uc *UseCase) WithTickInterval(d time.Duration) *UseCase {
	uc.tickInterval = d
	return uc
}

// Mount проверка при открытии админки
// Действующий токен один раз проверяется на бэкенде без продления срока
func (uc *UseCase) Mount(ctx context.Context, key string) (*MountResult, error) {
	tr := uc.sessions.ForKey(key)

	token, err := tr.GetToken(ctx)
	if err != nil {
		uc.logger.Error("Mount: failed to read session key=%s: %v", key, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if token == "" {
		return &MountResult{Access: AccessNeedLogin, Reason: ReasonNoSession}, nil
	}

	switch err := uc.validate(ctx, token); {
	case err == nil:
	case errors.Is(err, ErrIncorrectKey):
		uc.logger.Warn("Mount: stored admin token rejected for key=%s, clearing", key)
		if err := tr.ClearSession(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		uc.sessions.Observe(session.EventRejected)
		return &MountResult{Access: AccessNeedLogin, Reason: ReasonInvalidToken}, nil
	default:
		// Сессию не трогаем: ключ может быть верным
		uc.logger.Warn("Mount: could not validate admin token for key=%s: %v", key, err)
		return &MountResult{Access: AccessNeedLogin, Reason: ReasonNetwork}, nil
	}

	status, err := uc.Status(ctx, key)
	if err != nil {
		return nil, err
	}
	return &MountResult{
		Access:    AccessGranted,
		ExpiresAt: status.ExpiresAt,
		Remaining: status.Remaining,
	}, nil
}

// Login проверяет ключ на бэкенде и при успехе всегда открывает новое окно сессии
func (uc *UseCase) Login(ctx context.Context, key, secret string) (time.Time, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return time.Time{}, ErrIncorrectKey
	}

	if err := uc.validate(ctx, secret); err != nil {
		if errors.Is(err, ErrIncorrectKey) {
			uc.logger.Warn("Login: incorrect admin key for session key=%s", key)
			uc.sessions.Observe(session.EventRejected)
		}
		return time.Time{}, err
	}

	expiresAt, err := uc.sessions.ForKey(key).SetSession(ctx, secret, 0)
	if err != nil {
		uc.logger.Error("Login: failed to store session key=%s: %v", key, err)
		return time.Time{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.sessions.Observe(session.EventLogin)
	uc.logger.Info("Login: admin session opened for key=%s", key)
	return expiresAt, nil
}

// Logout завершает сессию
func (uc *UseCase) Logout(ctx context.Context, key string) error {
	if err := uc.sessions.ForKey(key).ClearSession(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	uc.sessions.Observe(session.EventLogout)
	uc.logger.Info("Logout: admin session closed for key=%s", key)
	return nil
}

// Status состояние сессии без обращения к бэкенду и без побочных эффектов
func (uc *UseCase) Status(ctx context.Context, key string) (*Status, error) {
	tr := uc.sessions.ForKey(key)

	state, err := tr.State(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	remaining, err := tr.GetRemaining(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	expiresAt, err := tr.ExpiresAt(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return &Status{State: state, ExpiresAt: expiresAt, Remaining: remaining}, nil
}

// Watch раз в tickInterval пересчитывает оставшееся время и передает его в onTick
// Когда время доходит до нуля, сессия очищается и возвращается ErrSessionExpired.
// Если сессия закончилась иначе, возвращается ErrNoSession; отмена ctx возвращает nil
func (uc *UseCase) Watch(ctx context.Context, key string, onTick func(remaining time.Duration)) error {
	tr := uc.sessions.ForKey(key)

	ticker := time.NewTicker(uc.tickInterval)
	defer ticker.Stop()

	for {
		if err := uc.tick(ctx, tr, onTick); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (uc *UseCase) tick(ctx context.Context, tr *session.Tracker, onTick func(time.Duration)) error {
	state, err := tr.State(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	switch state {
	case domain.SessionNone:
		return ErrNoSession
	case domain.SessionExpired:
		// GetToken сводит EXPIRED к NO_SESSION и очищает хранилище
		if _, err := tr.GetToken(ctx); err != nil {
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}
		uc.logger.Info("Watch: admin session expired for key=%s", tr.Key())
		return ErrSessionExpired
	}

	remaining, err := tr.GetRemaining(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if onTick != nil {
		onTick(remaining)
	}

	if remaining <= 0 {
		if err := tr.ClearSession(ctx); err != nil {
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}
		uc.sessions.Observe(session.EventExpired)
		uc.logger.Info("Watch: admin session expired for key=%s", tr.Key())
		return ErrSessionExpired
	}
	return nil
}

// validate проверяет токен запросом списка записей на сегодня
func (uc *UseCase) validate(ctx context.Context, token string) error {
	today := uc.timeProvider.Now().In(uc.location).Format(domain.DateFormat)

	_, err := uc.validator.ListAppointments(ctx, token, today)
	if err == nil {
		return nil
	}

	// Неверным считается только токен, отклоненный с 401/403;
	// *APIError с этими статусами тоже разворачивается в ErrUnauthorized
	switch {
	case errors.Is(err, bookingapi.ErrUnauthorized):
		return ErrIncorrectKey
	default:
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
}
