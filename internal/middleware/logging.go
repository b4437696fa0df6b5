// middleware содержит HTTP-прослойки сервиса: контекстное логирование,
// перехват паник, таймаут запроса, метрики Prometheus и проверку
// access-токена. Прослойки тонкие: бизнес-логики здесь нет.
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"hotel-admin-service/internal/pkg/log"

	"github.com/google/uuid"
)

// statusRecorder запоминает статус ответа для итоговой логзаписи и метрик.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Logging реализует логирование HTTP-запросов с контекстным логгером.
//
// Поведение и формат логов:
//   - Вытягивает X-Request-Id из заголовков, иначе генерирует UUID;
//   - Кладёт обогащённый *slog.Logger в context (pkg/log), чтобы он был
//     доступен глубже по стеку;
//   - После выполнения обработчика пишет одну строку уровня Info:
//     msg="http", status=<код>, dur=<время выполнения>.
//
// Логи не содержат чувствительных данных (только метод/путь/peer/request_id).
func Logging(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rid := r.Header.Get("X-Request-Id")
			if rid == "" {
				rid = uuid.NewString()
			}

			l := base.With(
				slog.String("request_id", rid),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("peer", r.RemoteAddr),
			)
			ctx := log.Into(r.Context(), l)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			w.Header().Set("X-Request-Id", rid)

			next.ServeHTTP(rec, r.WithContext(ctx))

			l.Info("http",
				slog.Int("status", rec.status),
				slog.Duration("dur", time.Since(start)),
			)
		})
	}
}
