package admin_access

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	sessionRepo "github.com/m04kA/SMC-BookingPortal/internal/infra/storage/session"
	"github.com/m04kA/SMC-BookingPortal/internal/integrations/bookingapi"
	"github.com/m04kA/SMC-BookingPortal/internal/service/session"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fakeValidator struct {
	mu    sync.Mutex
	valid string
	err   error
	calls int
	dates []string
}

func (v *fakeValidator) ListAppointments(_ context.Context, token, date string) ([]domain.Appointment, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.calls++
	v.dates = append(v.dates, date)
	if v.err != nil {
		return nil, v.err
	}
	if token != v.valid {
		return nil, fmt.Errorf("%w: status 401", bookingapi.ErrUnauthorized)
	}
	return []domain.Appointment{}, nil
}

type fixture struct {
	uc        *UseCase
	validator *fakeValidator
	store     *sessionRepo.MemoryStore
	sessions  *session.Service
	clock     *manualClock
}

func newFixture() *fixture {
	clock := &manualClock{now: time.Date(2025, 12, 25, 14, 0, 0, 0, time.UTC)}
	store := sessionRepo.NewMemoryStore()
	sessions := session.NewService(store, 8, nil, nopLogger{}).WithTimeProvider(clock)
	validator := &fakeValidator{valid: "secret"}
	uc := NewUseCase(validator, sessions, time.FixedZone("COT", -5*60*60), nopLogger{}).
		WithTimeProvider(clock).
		WithTickInterval(5 * time.Millisecond)
	return &fixture{uc: uc, validator: validator, store: store, sessions: sessions, clock: clock}
}

func TestLogin(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.Login(ctx, "k", "wrong")
	assert.ErrorIs(t, err, ErrIncorrectKey)
	assert.Zero(t, f.store.Len())

	_, err = f.uc.Login(ctx, "k", "   ")
	assert.ErrorIs(t, err, ErrIncorrectKey)

	expiresAt, err := f.uc.Login(ctx, "k", "secret")
	require.NoError(t, err)
	assert.Equal(t, f.clock.Now().Add(8*time.Hour), expiresAt)
	assert.Equal(t, "2025-12-25", f.validator.dates[len(f.validator.dates)-1])
}

func TestLogin_AlwaysRenews(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.uc.Login(ctx, "k", "secret")
	require.NoError(t, err)

	f.clock.Advance(3 * time.Hour)
	second, err := f.uc.Login(ctx, "k", "secret")
	require.NoError(t, err)

	assert.Equal(t, first.Add(3*time.Hour), second)
}

func TestLogin_BackendUnavailable(t *testing.T) {
	f := newFixture()
	f.validator.err = fmt.Errorf("%w: dial tcp", bookingapi.ErrUnavailable)

	_, err := f.uc.Login(context.Background(), "k", "secret")

	assert.ErrorIs(t, err, ErrBackendUnavailable)
	assert.Zero(t, f.store.Len())
}

func TestMount(t *testing.T) {
	t.Run("нет сессии: вход без запроса к бэкенду", func(t *testing.T) {
		f := newFixture()

		res, err := f.uc.Mount(context.Background(), "k")

		require.NoError(t, err)
		assert.Equal(t, AccessNeedLogin, res.Access)
		assert.Equal(t, ReasonNoSession, res.Reason)
		assert.Zero(t, f.validator.calls)
	})

	t.Run("действующий токен не продлевается", func(t *testing.T) {
		f := newFixture()
		ctx := context.Background()
		expiresAt, err := f.uc.Login(ctx, "k", "secret")
		require.NoError(t, err)
		f.clock.Advance(2 * time.Hour)

		res, err := f.uc.Mount(ctx, "k")

		require.NoError(t, err)
		assert.Equal(t, AccessGranted, res.Access)
		assert.Equal(t, expiresAt, res.ExpiresAt)
		assert.Equal(t, 6*time.Hour, res.Remaining)
	})

	t.Run("отклоненный токен очищается", func(t *testing.T) {
		f := newFixture()
		ctx := context.Background()
		_, err := f.sessions.ForKey("k").SetSession(ctx, "revoked", 8)
		require.NoError(t, err)

		res, err := f.uc.Mount(ctx, "k")

		require.NoError(t, err)
		assert.Equal(t, AccessNeedLogin, res.Access)
		assert.Equal(t, ReasonInvalidToken, res.Reason)
		assert.Zero(t, f.store.Len())
	})

	t.Run("нет связи: сессия сохраняется", func(t *testing.T) {
		f := newFixture()
		ctx := context.Background()
		_, err := f.uc.Login(ctx, "k", "secret")
		require.NoError(t, err)
		f.validator.err = fmt.Errorf("%w: timeout", bookingapi.ErrUnavailable)

		res, err := f.uc.Mount(ctx, "k")

		require.NoError(t, err)
		assert.Equal(t, AccessNeedLogin, res.Access)
		assert.Equal(t, ReasonNetwork, res.Reason)
		assert.Equal(t, 1, f.store.Len())
	})

	t.Run("ошибка бэкенда с кодом: сессия сохраняется", func(t *testing.T) {
		f := newFixture()
		ctx := context.Background()
		_, err := f.uc.Login(ctx, "k", "secret")
		require.NoError(t, err)
		f.validator.err = &bookingapi.APIError{StatusCode: http.StatusInternalServerError, Code: "DB_ERROR"}

		res, err := f.uc.Mount(ctx, "k")

		require.NoError(t, err)
		assert.Equal(t, AccessNeedLogin, res.Access)
		assert.Equal(t, ReasonNetwork, res.Reason)
		token, err := f.sessions.ForKey("k").GetToken(ctx)
		require.NoError(t, err)
		assert.Equal(t, "secret", token)
	})

	t.Run("403 с кодом: токен отклонен", func(t *testing.T) {
		f := newFixture()
		ctx := context.Background()
		_, err := f.uc.Login(ctx, "k", "secret")
		require.NoError(t, err)
		f.validator.err = &bookingapi.APIError{StatusCode: http.StatusForbidden, Code: "TOKEN_REVOKED"}

		res, err := f.uc.Mount(ctx, "k")

		require.NoError(t, err)
		assert.Equal(t, ReasonInvalidToken, res.Reason)
		assert.Zero(t, f.store.Len())
	})

	t.Run("истекшая сессия", func(t *testing.T) {
		f := newFixture()
		ctx := context.Background()
		_, err := f.uc.Login(ctx, "k", "secret")
		require.NoError(t, err)
		calls := f.validator.calls
		f.clock.Advance(9 * time.Hour)

		res, err := f.uc.Mount(ctx, "k")

		require.NoError(t, err)
		assert.Equal(t, ReasonNoSession, res.Reason)
		assert.Equal(t, calls, f.validator.calls)
		assert.Zero(t, f.store.Len())
	})
}

func TestWatch_ExpiresAtZero(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.uc.Login(ctx, "k", "secret")
	require.NoError(t, err)

	ticks := make(chan time.Duration, 1024)
	errCh := make(chan error, 1)
	go func() {
		errCh <- f.uc.Watch(ctx, "k", func(d time.Duration) {
			select {
			case ticks <- d:
			default:
			}
		})
	}()

	assert.Equal(t, 8*time.Hour, <-ticks)
	f.clock.Advance(8 * time.Hour)

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, ErrSessionExpired)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop at expiry")
	}

	state, err := f.sessions.ForKey("k").State(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionNone, state)
}

func TestWatch_StopsOnLogoutAndCancel(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.uc.Login(ctx, "k", "secret")
	require.NoError(t, err)

	t.Run("выход", func(t *testing.T) {
		errCh := make(chan error, 1)
		started := make(chan struct{})
		var once sync.Once
		go func() {
			errCh <- f.uc.Watch(ctx, "k", func(time.Duration) { once.Do(func() { close(started) }) })
		}()
		<-started

		require.NoError(t, f.uc.Logout(ctx, "k"))

		select {
		case err := <-errCh:
			assert.ErrorIs(t, err, ErrNoSession)
		case <-time.After(2 * time.Second):
			t.Fatal("watch did not stop after logout")
		}
	})

	t.Run("отмена контекста", func(t *testing.T) {
		_, err := f.uc.Login(ctx, "k", "secret")
		require.NoError(t, err)

		watchCtx, cancel := context.WithCancel(ctx)
		errCh := make(chan error, 1)
		go func() { errCh <- f.uc.Watch(watchCtx, "k", nil) }()
		cancel()

		select {
		case err := <-errCh:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("watch did not stop after cancel")
		}
	})
}

func TestStatus_IsReadOnly(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.uc.Login(ctx, "k", "secret")
	require.NoError(t, err)
	f.clock.Advance(10 * time.Hour)

	status, err := f.uc.Status(ctx, "k")

	require.NoError(t, err)
	assert.Equal(t, domain.SessionExpired, status.State)
	assert.Zero(t, status.Remaining)
	assert.Equal(t, 1, f.store.Len())
}
