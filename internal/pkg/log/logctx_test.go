package log

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

// Тесты меняют slog.Default(), поэтому намеренно не используют t.Parallel().

func newSilent() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestFrom_ReturnsDefault_WhenNoLoggerInContext — пустой контекст
// отдаёт текущий slog.Default().
func TestFrom_ReturnsDefault_WhenNoLoggerInContext(t *testing.T) {
	old := slog.Default()
	t.Cleanup(func() { slog.SetDefault(old) })

	def := newSilent()
	slog.SetDefault(def)

	require.Equal(t, def, From(context.Background()))
}

// TestIntoAndFrom_RoundTrip — Into кладёт логгер, From извлекает его 1:1;
// соседние контексты не задеты.
func TestIntoAndFrom_RoundTrip(t *testing.T) {
	old := slog.Default()
	t.Cleanup(func() { slog.SetDefault(old) })

	def := newSilent()
	slog.SetDefault(def)

	l := newSilent()
	ctx := Into(context.Background(), l)

	require.Equal(t, l, From(ctx))
	require.Equal(t, def, From(context.Background()))
}

// TestFrom_ReturnsDefault_OnGarbageValue — значение не того типа или
// *slog.Logger(nil) под нашим ключом не должны отдаваться наружу.
func TestFrom_ReturnsDefault_OnGarbageValue(t *testing.T) {
	old := slog.Default()
	t.Cleanup(func() { slog.SetDefault(old) })

	def := newSilent()
	slog.SetDefault(def)

	ctxWrong := context.WithValue(context.Background(), ctxKey{}, "not-a-logger")
	require.Equal(t, def, From(ctxWrong))

	var nilLogger *slog.Logger
	ctxNil := context.WithValue(context.Background(), ctxKey{}, nilLogger)
	require.Equal(t, def, From(ctxNil))
}

// TestInto_ShadowParentLogger — дочерний контекст перекрывает логгер
// родителя, не меняя родительский.
func TestInto_ShadowParentLogger(t *testing.T) {
	parentL := newSilent()
	childL := newSilent()

	parent := Into(context.Background(), parentL)
	child := Into(parent, childL)

	require.Equal(t, childL, From(child))
	require.Equal(t, parentL, From(parent))
}
