package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	sessionRepo "github.com/m04kA/SMC-BookingPortal/internal/infra/storage/session"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// manualClock часы, которые двигает тест
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

type events struct{ seen []string }

func (e *events) ObserveAdminSession(event string) { e.seen = append(e.seen, event) }

type brokenStore struct{}

func (brokenStore) Load(context.Context, string) (*domain.AdminSession, error) {
	return nil, errors.New("connection reset")
}
func (brokenStore) Save(context.Context, string, domain.AdminSession) error {
	return errors.New("connection reset")
}
func (brokenStore) Delete(context.Context, string) error { return errors.New("connection reset") }

func newService() (*Service, *sessionRepo.MemoryStore, *manualClock, *events) {
	store := sessionRepo.NewMemoryStore()
	clock := &manualClock{now: time.Date(2025, 12, 25, 9, 0, 0, 0, time.UTC)}
	ev := &events{}
	svc := NewService(store, 0, ev, nopLogger{}).WithTimeProvider(clock)
	return svc, store, clock, ev
}

func TestTracker_ExpiresAfterWindow(t *testing.T) {
	svc, store, clock, ev := newService()
	ctx := context.Background()
	tr := svc.ForKey("portal-1")

	_, err := tr.SetSession(ctx, "t", 1)
	require.NoError(t, err)

	token, err := tr.GetToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "t", token)

	clock.Advance(time.Hour + time.Second)

	token, err = tr.GetToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	remaining, err := tr.GetRemaining(ctx)
	require.NoError(t, err)
	assert.Zero(t, remaining)
	assert.Zero(t, store.Len(), "истекшая сессия должна быть удалена из хранилища")
	assert.Equal(t, []string{EventExpired}, ev.seen)
}

func TestTracker_ExactExpiryMomentIsStillActive(t *testing.T) {
	svc, _, clock, _ := newService()
	ctx := context.Background()
	tr := svc.ForKey("portal-1")

	_, err := tr.SetSession(ctx, "t", 1)
	require.NoError(t, err)
	clock.Advance(time.Hour)

	token, err := tr.GetToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "t", token)

	remaining, err := tr.GetRemaining(ctx)
	require.NoError(t, err)
	assert.Zero(t, remaining)
}

func TestTracker_DefaultHours(t *testing.T) {
	svc, _, clock, _ := newService()
	ctx := context.Background()

	expiresAt, err := svc.ForKey("k").SetSession(ctx, "t", 0)

	require.NoError(t, err)
	assert.Equal(t, clock.Now().Add(8*time.Hour), expiresAt)
	assert.Equal(t, domain.DefaultAdminSessionHours, svc.DefaultHours())
}

func TestTracker_RemainingIsReadOnly(t *testing.T) {
	svc, store, clock, _ := newService()
	ctx := context.Background()
	tr := svc.ForKey("k")

	_, err := tr.SetSession(ctx, "t", 2)
	require.NoError(t, err)

	clock.Advance(30 * time.Minute)
	remaining, err := tr.GetRemaining(ctx)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, remaining)

	clock.Advance(3 * time.Hour)
	remaining, err = tr.GetRemaining(ctx)
	require.NoError(t, err)
	assert.Zero(t, remaining)

	state, err := tr.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionExpired, state)
	assert.Equal(t, 1, store.Len(), "GetRemaining и State не очищают хранилище")
}

func TestTracker_IncompletePairCollapses(t *testing.T) {
	tests := []struct {
		name string
		sess domain.AdminSession
	}{
		{name: "нет срока", sess: domain.AdminSession{Token: "t"}},
		{name: "нет токена", sess: domain.AdminSession{ExpiresAt: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, _, _ := newService()
			ctx := context.Background()
			require.NoError(t, store.Save(ctx, "k", tt.sess))

			tr := svc.ForKey("k")
			state, err := tr.State(ctx)
			require.NoError(t, err)
			assert.Equal(t, domain.SessionExpired, state)

			token, err := tr.GetToken(ctx)
			require.NoError(t, err)
			assert.Empty(t, token)
			assert.Zero(t, store.Len())

			state, err = tr.State(ctx)
			require.NoError(t, err)
			assert.Equal(t, domain.SessionNone, state)
		})
	}
}

func TestTracker_ClearAndIsolation(t *testing.T) {
	svc, _, _, _ := newService()
	ctx := context.Background()
	a, b := svc.ForKey("a"), svc.ForKey("b")

	_, err := a.SetSession(ctx, "token-a", 1)
	require.NoError(t, err)
	_, err = b.SetSession(ctx, "token-b", 1)
	require.NoError(t, err)

	require.NoError(t, a.ClearSession(ctx))

	tokenA, err := a.GetToken(ctx)
	require.NoError(t, err)
	tokenB, err := b.GetToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, tokenA)
	assert.Equal(t, "token-b", tokenB)
}

func TestTracker_Errors(t *testing.T) {
	ctx := context.Background()

	svc, _, _, _ := newService()
	_, err := svc.ForKey("k").SetSession(ctx, "", 1)
	assert.ErrorIs(t, err, ErrInvalidInput)

	broken := NewService(brokenStore{}, 8, nil, nopLogger{})
	_, err = broken.ForKey("k").GetToken(ctx)
	assert.ErrorIs(t, err, ErrInternal)
	_, err = broken.ForKey("k").SetSession(ctx, "t", 1)
	assert.ErrorIs(t, err, ErrInternal)

	token, err := svc.ForKey("").GetToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}
