package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/pkg/jwt"
)

type identityKey struct{}

// TokenValidator проверяет access-токен
type TokenValidator interface {
	ValidateAccessToken(token string) (*jwt.Claims, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// WithIdentity кладёт вызывающего в контекст
func WithIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// Identity возвращает вызывающего из контекста; без токена - анонимный
func Identity(ctx context.Context) domain.Identity {
	identity, ok := ctx.Value(identityKey{}).(domain.Identity)
	if !ok {
		return domain.Anonymous
	}
	return identity
}

// Auth разбирает заголовок Authorization: Bearer <jwt>.
// Запрос без заголовка проходит как анонимный, решение принимают use case.
// Некорректный или просроченный токен отклоняется с 401.
func Auth(validator TokenValidator, log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := strings.TrimSpace(r.Header.Get("Authorization"))
			if header == "" {
				next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), domain.Anonymous)))
				return
			}

			scheme, token, found := strings.Cut(header, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				log.Warn("Auth: malformed Authorization header on %s %s", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, "invalid authorization header")
				return
			}

			claims, err := validator.ValidateAccessToken(strings.TrimSpace(token))
			if err != nil {
				log.Warn("Auth: token rejected on %s %s: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, "invalid or expired token")
				return
			}

			identity := domain.Identity{
				UserID: claims.UserID,
				Role:   domain.RoleUser,
			}
			if domain.Role(claims.Role) == domain.RoleAdmin {
				identity.Role = domain.RoleAdmin
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}
