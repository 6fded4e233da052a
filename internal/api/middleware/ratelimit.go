package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-BookingPortal/internal/api/handlers"
)

const (
	msgTooManyAttempts = "Demasiados intentos. Espera un momento e intenta de nuevo"

	limiterIdleTTL = 10 * time.Minute
)

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter ограничение частоты запросов по IP (используется для входа администратора)
type RateLimiter struct {
	limit  rate.Limit
	burst  int
	logger Logger

	mu       sync.Mutex
	visitors map[string]*visitor
	now      func() time.Time
}

// NewRateLimiter perMinute попыток в минуту с запасом burst
func NewRateLimiter(perMinute, burst int, logger Logger) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    burst,
		logger:   logger,
		visitors: make(map[string]*visitor),
		now:      time.Now,
	}
}

// Allow true, если запрос с ip укладывается в лимит
func (l *RateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	v, ok := l.visitors[ip]
	if !ok {
		l.prune(now)
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// prune удаляет давно неактивные адреса; вызывается под мьютексом
func (l *RateLimiter) prune(now time.Time) {
	for ip, v := range l.visitors {
		if now.Sub(v.lastSeen) > limiterIdleTTL {
			delete(l.visitors, ip)
		}
	}
}

// Middleware отвечает 429 при превышении лимита
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !l.Allow(ip) {
			l.logger.Warn("%s %s - Rate limit exceeded: ip=%s", r.Method, r.URL.Path, ip)
			w.Header().Set("Retry-After", "60")
			handlers.RespondError(w, http.StatusTooManyRequests, msgTooManyAttempts)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if first := strings.TrimSpace(strings.Split(fwd, ",")[0]); first != "" {
			return first
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
