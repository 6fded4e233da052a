package session

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
)

// MemoryStore хранилище сессий в памяти процесса
// Токен и срок хранятся отдельными записями, как две записи key-value хранилища браузера
type MemoryStore struct {
	mu       sync.RWMutex
	tokens   map[string]string
	expiries map[string]time.Time
}

// NewMemoryStore создает пустое хранилище
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tokens:   make(map[string]string),
		expiries: make(map[string]time.Time),
	}
}

// Load возвращает сохраненную пару; отсутствующая половина остается нулевой
func (s *MemoryStore) Load(_ context.Context, key string) (*domain.AdminSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	token, hasToken := s.tokens[key]
	expiresAt, hasExpiry := s.expiries[key]
	if !hasToken && !hasExpiry {
		return nil, ErrSessionNotFound
	}

	return &domain.AdminSession{Token: token, ExpiresAt: expiresAt}, nil
}

// Save сохраняет обе записи; пустые значения удаляют соответствующую запись
func (s *MemoryStore) Save(_ context.Context, key string, sess domain.AdminSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess.Token == "" {
		delete(s.tokens, key)
	} else {
		s.tokens[key] = sess.Token
	}

	if sess.ExpiresAt.IsZero() {
		delete(s.expiries, key)
	} else {
		s.expiries[key] = sess.ExpiresAt
	}

	return nil
}

// Delete удаляет обе записи
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tokens, key)
	delete(s.expiries, key)
	return nil
}

// Len количество ключей с хотя бы одной записью
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make(map[string]struct{}, len(s.tokens))
	for k := range s.tokens {
		keys[k] = struct{}{}
	}
	for k := range s.expiries {
		keys[k] = struct{}{}
	}
	return len(keys)
}
