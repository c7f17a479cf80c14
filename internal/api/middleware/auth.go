package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Arunkino/MindHaven-Backend/internal/api/handlers"
)

// UserIDHeader заголовок, в котором шлюз передает ID аутентифицированного пользователя
const UserIDHeader = "X-User-ID"

const msgMissingUserID = "отсутствует или некорректен заголовок X-User-ID"

type ctxKey struct{}

// WithUserID кладет ID пользователя в контекст
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

// UserIDFromContext возвращает ID пользователя, положенный Auth
func UserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(ctxKey{}).(int64)
	return userID, ok
}

// Auth требует положительный X-User-ID и кладет его в контекст запроса
func Auth(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := strconv.ParseInt(r.Header.Get(UserIDHeader), 10, 64)
			if err != nil || userID <= 0 {
				logger.Warn("%s %s - missing or invalid %s header", r.Method, r.URL.Path, UserIDHeader)
				handlers.RespondUnauthorized(w, msgMissingUserID)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}
