package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "volvedash/internal/errors"
	"volvedash/internal/infrastructure"
	"volvedash/internal/shared/testutil"
)

func TestRequestID(t *testing.T) {
	t.Run("generates id", func(t *testing.T) {
		var seen string
		handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = GetRequestID(r.Context())
			assert.Equal(t, seen, infrastructure.GetTraceID(r.Context()))
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.NotEmpty(t, seen)
		assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
	})

	t.Run("keeps client id", func(t *testing.T) {
		var seen string
		handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = GetRequestID(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "client-42")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "client-42", seen)
		assert.Equal(t, "client-42", rec.Header().Get(RequestIDHeader))
	})
}

func TestStructuredLogger(t *testing.T) {
	tests := []struct {
		name   string
		status int
		level  slog.Level
	}{
		{"success logs info", http.StatusOK, slog.LevelInfo},
		{"client error logs warn", http.StatusNotFound, slog.LevelWarn},
		{"server error logs error", http.StatusInternalServerError, slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logs := testutil.NewTestLogger(t)
			handler := RequestID(StructuredLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?menu=Data", nil))

			testutil.AssertLogContains(t, logs, tt.level, "request completed")
			assert.True(t, logs.ContainsAttr("status", int64(tt.status)))
			assert.True(t, logs.ContainsAttr("query", "menu=Data"))
			assert.True(t, logs.ContainsAttr("trace_id", rec.Header().Get(RequestIDHeader)))
		})
	}

	t.Run("implicit ok", func(t *testing.T) {
		logger, logs := testutil.NewTestLogger(t)
		handler := StructuredLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.True(t, logs.ContainsAttr("status", int64(http.StatusOK)))
	})
}

func TestRateLimiter(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	limiter := NewRateLimiter(0.001, 1, apperrors.NewErrorHandler(logger, false), logger)
	handler := limiter.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, first.Code)

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "1", second.Header().Get("Retry-After"))

	var problem map[string]interface{}
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &problem))
	assert.Equal(t, float64(http.StatusTooManyRequests), problem["status"])
	assert.True(t, logs.ContainsMessage("rate limit exceeded"))
}

func TestTimeout(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	errorHandler := apperrors.NewErrorHandler(logger, false)

	t.Run("silent handler gets 504", func(t *testing.T) {
		handler := Timeout(10*time.Millisecond, errorHandler, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/plots", nil))

		assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
		assert.True(t, logs.ContainsMessage("request timeout"))
	})

	t.Run("fast handler untouched", func(t *testing.T) {
		handler := Timeout(time.Second, errorHandler, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok := r.Context().Deadline()
			assert.True(t, ok)
			w.WriteHeader(http.StatusAccepted)
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusAccepted, rec.Code)
	})

	t.Run("handler response wins after deadline", func(t *testing.T) {
		handler := Timeout(time.Millisecond, errorHandler, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
			w.WriteHeader(http.StatusServiceUnavailable)
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestSecurityHeaders(t *testing.T) {
	handler := SecurityHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "img-src 'self'")
	assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))
}

func TestGetRequestID_FallsBackToTraceID(t *testing.T) {
	ctx := infrastructure.WithTraceID(context.Background(), "trace-7")
	assert.Equal(t, "trace-7", GetRequestID(ctx))
	assert.Empty(t, GetRequestID(context.Background()))
}

func TestGetRealIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	assert.Equal(t, "10.0.0.1:1234", GetRealIP(req))

	req.Header.Set("X-Real-IP", "192.168.1.2")
	assert.Equal(t, "192.168.1.2", GetRealIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	assert.Equal(t, "203.0.113.9", GetRealIP(req))
}
