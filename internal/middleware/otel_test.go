package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"volvedash/internal/infrastructure"
)

func TestNewOTelMiddleware_RequiresDependencies(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := NewOTelMiddleware(nil, &infrastructure.BusinessMetrics{}, logger)
	assert.Error(t, err)
}

func TestOTelMiddleware_RecordsRouteMetrics(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	providers, err := infrastructure.InitializeOTel(nil, logger)
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = providers.Shutdown(ctx)
	})

	metrics, err := infrastructure.CreateBusinessMetrics(providers.Meter)
	require.NoError(t, err)

	otelMiddleware, err := NewOTelMiddleware(providers.Tracer, metrics, logger)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(otelMiddleware.Handler)
	r.Get("/charts/{chart}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("missing"))
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/charts/pressure.png", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	scrape := httptest.NewRecorder()
	providers.PrometheusHTTP.ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := scrape.Body.String()

	assert.Contains(t, body, "http_requests_total")
	assert.True(t, strings.Contains(body, `route="/charts/{chart}"`), "route label should use the chi pattern")
}

func TestResponseWriter_FirstStatusWins(t *testing.T) {
	rec := httptest.NewRecorder()
	ww := &responseWriter{ResponseWriter: rec, statusCode: http.StatusOK}

	_, _ = ww.Write([]byte("ok"))
	ww.WriteHeader(http.StatusInternalServerError)

	assert.Equal(t, http.StatusOK, ww.statusCode)
	assert.Equal(t, int64(2), ww.bytesWritten)
}
