package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/vinayaksoni1729/TaskX/pkg/auth"
	"github.com/vinayaksoni1729/TaskX/pkg/respond"
)

type contextKey string

const userIDKey contextKey = "user_id"

// Auth проверяет Bearer токен и кладет идентификатор
// пользователя в контекст запроса
func Auth(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				respond.Error(w, r, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := tokens.ValidateAccessToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				msg := "invalid token"
				if errors.Is(err, auth.ErrExpiredToken) {
					msg = "token has expired"
				}
				respond.Error(w, r, http.StatusUnauthorized, msg)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID достает идентификатор пользователя, положенный Auth-ом.
// Пустая строка означает неаутентифицированный запрос.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// WithUserID — для тестов хэндлеров
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}
