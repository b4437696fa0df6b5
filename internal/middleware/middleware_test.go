package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hotel-admin-service/internal/pkg/log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

// TestLogging_InjectsRequestIDAndLogger — прослойка генерирует request_id,
// отражает его в заголовке ответа и кладёт обогащённый логгер в контекст.
func TestLogging_InjectsRequestIDAndLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	var seen *slog.Logger
	h := Logging(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = log.From(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	require.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	require.NotNil(t, seen)
	require.NotEqual(t, slog.Default(), seen, "в контексте должен быть обогащённый логгер")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "http", entry["msg"])
	require.Equal(t, float64(http.StatusTeapot), entry["status"])
	require.Equal(t, "/x", entry["path"])
	require.NotEmpty(t, entry["request_id"])
}

// TestLogging_KeepsIncomingRequestID — входящий X-Request-Id не
// перегенерируется.
func TestLogging_KeepsIncomingRequestID(t *testing.T) {
	t.Parallel()

	h := Logging(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-Id", "fixed-id")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, "fixed-id", rec.Header().Get("X-Request-Id"))
}

// TestRecover_PanicTo500 — паника обработчика превращается в 500
// с нейтральным JSON-телом, сервер не падает.
func TestRecover_PanicTo500(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	h := Recover(base)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "internal server error")
	require.Contains(t, buf.String(), "panic_recovered")
	require.Contains(t, buf.String(), "boom")
}

// TestWithTimeout_SetsDeadline — прослойка навешивает дедлайн, если его нет,
// и не трогает уже существующий.
func TestWithTimeout_SetsDeadline(t *testing.T) {
	t.Parallel()

	var gotDeadline time.Time
	h := WithTimeout(time.Minute)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		dl, ok := r.Context().Deadline()
		require.True(t, ok)
		gotDeadline = dl
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))
	require.WithinDuration(t, time.Now().Add(time.Minute), gotDeadline, 2*time.Second)

	// Существующий (более короткий) дедлайн сохраняется.
	parent, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	h = WithTimeout(time.Minute)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		dl, ok := r.Context().Deadline()
		require.True(t, ok)
		require.WithinDuration(t, time.Now().Add(time.Second), dl, 500*time.Millisecond)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil).WithContext(parent))
}

// TestMetrics_ObservesRequests — гистограмма регистрируется и считает
// запросы с меткой статуса.
func TestMetrics_ObservesRequests(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	h := Metrics(reg)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, mf := range families {
		if mf.GetName() != "http_request_duration_seconds" {
			continue
		}
		found = true
		require.Len(t, mf.GetMetric(), 1)
		for _, lp := range mf.GetMetric()[0].GetLabel() {
			if lp.GetName() == "status" {
				require.Equal(t, "404", lp.GetValue())
			}
		}
	}
	require.True(t, found, "гистограмма должна быть зарегистрирована")
}

// TestStatusRecorder_DefaultsTo200 — без явного WriteHeader статус 200.
func TestStatusRecorder_DefaultsTo200(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := Logging(slog.New(slog.NewJSONHandler(&buf, nil)))(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("ok"))
		}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))
	require.True(t, strings.Contains(buf.String(), `"status":200`))
}
