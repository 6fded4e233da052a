package session

import (
	"context"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Интеграционный тест: нужен TEST_REDIS_ADDR (например localhost:6379)
func TestRedisStore(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR is not set")
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = rdb.Close() })
	require.NoError(t, rdb.Ping(context.Background()).Err())

	store := NewRedisStore(rdb, "test:"+uuid.NewString())
	storeContract(t, store, "portal-key")
}

func TestRedisStore_CorruptedExpiry(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR is not set")
	}

	ctx := context.Background()
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = rdb.Close() })

	store := NewRedisStore(rdb, "test:"+uuid.NewString())
	require.NoError(t, rdb.Set(ctx, store.expiryKey("k"), "not-a-number", time.Minute).Err())
	t.Cleanup(func() { _ = store.Delete(ctx, "k") })

	_, err := store.Load(ctx, "k")
	require.ErrorIs(t, err, ErrCorruptedValue)

	require.NoError(t, rdb.Set(ctx, store.expiryKey("k"), strconv.FormatInt(time.Now().UnixMilli(), 10), time.Minute).Err())
	_, err = store.Load(ctx, "k")
	require.NoError(t, err)
}

// clusterHashTag часть ключа, по которой Redis Cluster считает слот
func clusterHashTag(key string) string {
	start := strings.IndexByte(key, '{')
	if start < 0 {
		return key
	}
	end := strings.IndexByte(key[start+1:], '}')
	if end <= 0 {
		return key
	}
	return key[start+1 : start+1+end]
}

func TestRedisStore_KeysShareClusterSlot(t *testing.T) {
	store := NewRedisStore(nil, "smc:portal")

	for _, key := range []string{"6f1d2c3b-0000-4000-8000-000000000001", "portal-key"} {
		token, expiry := store.tokenKey(key), store.expiryKey(key)

		assert.NotEqual(t, token, expiry)
		assert.Equal(t, key, clusterHashTag(token))
		assert.Equal(t, clusterHashTag(token), clusterHashTag(expiry))
		assert.True(t, strings.HasPrefix(token, "smc:portal:"))
	}
}
