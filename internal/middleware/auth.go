package middleware

import (
	"context"
	"net/http"
	"strings"

	"hotel-admin-service/internal/service"
)

type adminIDKey struct{}

// RequireAuth проверяет заголовок Authorization: Bearer <access-token>.
// Валидация делегируется сервису: подпись, срок и совпадение версии токена
// с access-реестром. Любой отказ — 401 с нейтральным телом; ID учётной
// записи кладётся в контекст запроса (см. AdminFromContext).
func RequireAuth(svc *service.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				unauthorized(w)
				return
			}

			adminID, _, err := svc.ValidateAccessToken(r.Context(), token)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), adminIDKey{}, adminID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminFromContext возвращает ID аутентифицированного администратора.
func AdminFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(adminIDKey{}).(int64)
	return id, ok
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
}
