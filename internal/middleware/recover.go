// recover.go реализует перехватчик паник для HTTP-обработчиков.
package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"hotel-admin-service/internal/pkg/log"
)

// Recover перехватывает паники в обработчиках, логирует их со стеком и
// отвечает клиенту нейтральным 500 без раскрытия внутренних деталей.
// Логгер берётся из контекста (см. pkg/log), иначе base, иначе slog.Default().
func Recover(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					l := log.From(r.Context())
					if l == slog.Default() && base != nil {
						l = base
					}

					l.Error("panic_recovered",
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.Any("panic", rec),
						slog.String("stack", string(debug.Stack())),
					)

					http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
