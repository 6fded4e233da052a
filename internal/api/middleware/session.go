package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type sessionKeyCtx struct{}

// PortalSession выдает браузеру идентификатор сессии портала в cookie
// По этому ключу хранится токен администратора; сам токен в браузер не попадает
func PortalSession(cookieName string, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := ""
			if c, err := r.Cookie(cookieName); err == nil {
				if _, err := uuid.Parse(c.Value); err == nil {
					key = c.Value
				}
			}

			if key == "" {
				key = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    key,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			next.ServeHTTP(w, r.WithContext(WithSessionKey(r.Context(), key)))
		})
	}
}

// WithSessionKey кладет ключ сессии в контекст
func WithSessionKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, sessionKeyCtx{}, key)
}

// SessionKey ключ сессии портала из контекста, пустая строка вне PortalSession
func SessionKey(ctx context.Context) string {
	key, _ := ctx.Value(sessionKeyCtx{}).(string)
	return key
}
