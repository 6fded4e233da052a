package session

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

// Интеграционный тест: нужен TEST_POSTGRES_DSN
func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN is not set")
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := NewPostgresStore(db)
	require.NoError(t, store.EnsureSchema(context.Background()))

	storeContract(t, store, "test-"+uuid.NewString())
}

func TestPostgresStore_PurgeExpired(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN is not set")
	}

	ctx := context.Background()
	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := NewPostgresStore(db)
	require.NoError(t, store.EnsureSchema(ctx))

	key := "test-" + uuid.NewString()
	_, err = db.ExecContext(ctx,
		`INSERT INTO admin_sessions (session_key, token, expires_at) VALUES ($1, 't', now() - interval '2 days')`, key)
	require.NoError(t, err)

	n, err := store.PurgeExpired(ctx, 24*time.Hour)
	require.NoError(t, err)
	require.GreaterOrEqual(t, n, int64(1))

	_, err = store.Load(ctx, key)
	require.ErrorIs(t, err, ErrSessionNotFound)
}
