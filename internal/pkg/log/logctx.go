// log — прокидывание контекстного *slog.Logger через context.Context.
// HTTP-middleware кладёт обогащённый request_id логгер в контекст запроса,
// нижние слои достают его через From, не зная о транспорте.
package log

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// Into возвращает контекст с положенным в него логгером.
func Into(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// From возвращает логгер из контекста. Если логгер не положен (или значение
// повреждено), возвращается slog.Default() — From никогда не отдаёт nil.
func From(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && l != nil {
		return l
	}

	return slog.Default()
}
