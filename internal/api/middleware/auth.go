package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/PsyBookingService/internal/api/handlers"
)

// Заголовки, которые проставляет API gateway после аутентификации
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

// Роли пользователей портала
const (
	RoleClient   = "client"
	RoleProvider = "provider"
	RoleManager  = "manager"
)

const (
	msgMissingUser = "отсутствует ID пользователя"
	msgInvalidRole = "некорректная роль пользователя"
	msgForbidden   = "доступ запрещен"
)

type contextKey string

const userKey contextKey = "user"

// User аутентифицированный пользователь
type User struct {
	ID   string
	Role string
}

// IsManager менеджер видит и меняет все бронирования
func (u User) IsManager() bool {
	return u.Role == RoleManager
}

// CanManageProvider менеджер или сам специалист
func (u User) CanManageProvider(providerID string) bool {
	return u.IsManager() || (u.Role == RoleProvider && u.ID == providerID)
}

// Auth требует заголовки X-User-ID и X-User-Role
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok, valid := userFromHeaders(r)
		if !ok {
			handlers.RespondUnauthorized(w, msgMissingUser)
			return
		}
		if !valid {
			handlers.RespondUnauthorized(w, msgInvalidRole)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// OptionalAuth кладет пользователя в контекст, если заголовки переданы; иначе пропускает запрос как анонимный
func OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok, valid := userFromHeaders(r)
		if ok && !valid {
			handlers.RespondUnauthorized(w, msgInvalidRole)
			return
		}
		if ok {
			r = r.WithContext(WithUser(r.Context(), user))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole пропускает только перечисленные роли. Ставится после Auth.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetUser(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, msgMissingUser)
				return
			}
			if _, ok := allowed[user.Role]; !ok {
				handlers.RespondForbidden(w, msgForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithUser кладет пользователя в контекст
func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUser достает пользователя из контекста
func GetUser(ctx context.Context) (User, bool) {
	user, ok := ctx.Value(userKey).(User)
	return user, ok
}

// GetUserID достает ID пользователя из контекста
func GetUserID(ctx context.Context) (string, bool) {
	user, ok := GetUser(ctx)
	if !ok {
		return "", false
	}
	return user.ID, true
}

// userFromHeaders: ok - ID передан, valid - роль известна
func userFromHeaders(r *http.Request) (User, bool, bool) {
	id := strings.TrimSpace(r.Header.Get(HeaderUserID))
	if id == "" {
		return User{}, false, false
	}

	role := strings.ToLower(strings.TrimSpace(r.Header.Get(HeaderUserRole)))
	if role == "" {
		role = RoleClient
	}

	switch role {
	case RoleClient, RoleProvider, RoleManager:
		return User{ID: id, Role: role}, true, true
	default:
		return User{}, true, false
	}
}
