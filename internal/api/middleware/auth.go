package middleware

import (
	"context"
	"net/http"

	"github.com/m04kA/SLN-SchedulingService/internal/api/handlers"
)

// UserIDHeader заголовок с идентификатором пользователя.
// Аутентификацию выполняет API gateway, сюда приходит уже проверенный ID.
const UserIDHeader = "X-User-ID"

const msgMissingUserID = "требуется заголовок X-User-ID"

type contextKey string

const userIDKey contextKey = "userID"

// Auth проверяет наличие идентификатора пользователя и кладет его в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(UserIDHeader)
		if userID == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID извлекает идентификатор пользователя из контекста
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}
