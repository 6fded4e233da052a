package session

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
)

// gcGrace запас TTL поверх срока сессии
// Истечение фиксирует трекер по своим часам, TTL Redis только убирает мусор
const gcGrace = time.Hour

// RedisStore хранилище сессий в Redis: два ключа на сессию (токен и срок в unix ms)
type RedisStore struct {
	rdb    redis.UniversalClient
	prefix string
}

// NewRedisStore создает хранилище с префиксом ключей
func NewRedisStore(rdb redis.UniversalClient, prefix string) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: prefix}
}

// Ключ сессии в фигурных скобках (hash tag): в Redis Cluster обе записи
// попадают в один слот, иначе MGET и MULTI/EXEC падают с CROSSSLOT
func (s *RedisStore) tokenKey(key string) string {
	return s.prefix + ":{" + key + "}:admin_token"
}

func (s *RedisStore) expiryKey(key string) string {
	return s.prefix + ":{" + key + "}:admin_token_expiry"
}

// Load читает обе записи одним MGET
func (s *RedisStore) Load(ctx context.Context, key string) (*domain.AdminSession, error) {
	vals, err := s.rdb.MGet(ctx, s.tokenKey(key), s.expiryKey(key)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: Load - mget: %v", ErrExecQuery, err)
	}
	if len(vals) != 2 || (vals[0] == nil && vals[1] == nil) {
		return nil, ErrSessionNotFound
	}

	var sess domain.AdminSession
	if token, ok := vals[0].(string); ok {
		sess.Token = token
	}
	if raw, ok := vals[1].(string); ok {
		ms, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: Load - expiry %q: %v", ErrCorruptedValue, raw, err)
		}
		sess.ExpiresAt = time.UnixMilli(ms)
	}

	return &sess, nil
}

// Save записывает обе записи в одной транзакции MULTI/EXEC
func (s *RedisStore) Save(ctx context.Context, key string, sess domain.AdminSession) error {
	ttl := time.Until(sess.ExpiresAt) + gcGrace
	if ttl < gcGrace {
		ttl = gcGrace
	}

	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if sess.Token == "" {
			pipe.Del(ctx, s.tokenKey(key))
		} else {
			pipe.Set(ctx, s.tokenKey(key), sess.Token, ttl)
		}
		if sess.ExpiresAt.IsZero() {
			pipe.Del(ctx, s.expiryKey(key))
		} else {
			pipe.Set(ctx, s.expiryKey(key), strconv.FormatInt(sess.ExpiresAt.UnixMilli(), 10), ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: Save - pipeline: %v", ErrExecQuery, err)
	}
	return nil
}

// Delete удаляет обе записи
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, s.tokenKey(key), s.expiryKey(key)).Err(); err != nil {
		return fmt.Errorf("%w: Delete - del: %v", ErrExecQuery, err)
	}
	return nil
}
