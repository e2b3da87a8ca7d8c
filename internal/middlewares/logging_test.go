package middlewares

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sbilibin2017/student-housing/internal/logger"
)

func observeLogs(t *testing.T) *observer.ObservedLogs {
	core, logs := observer.New(zapcore.InfoLevel)
	prev := logger.Log
	logger.Log = zap.New(core).Sugar()
	t.Cleanup(func() { logger.Log = prev })
	return logs
}

func TestLoggingMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "created", status: http.StatusCreated, body: `{"housing":{}}`},
		{name: "not found", status: http.StatusNotFound, body: `{"error":"housing not found"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := observeLogs(t)

			handler := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.NotEmpty(t, RequestIDFromContext(r.Context()))
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))

			req := httptest.NewRequest(http.MethodPost, "/api/housing", nil)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, tt.body, rr.Body.String())
			reqID := rr.Header().Get(RequestIDHeader)
			assert.NotEmpty(t, reqID)

			entries := logs.All()
			require.Len(t, entries, 2)
			request := entries[0].ContextMap()
			assert.Equal(t, "request", entries[0].Message)
			assert.Equal(t, reqID, request["request_id"])
			assert.Equal(t, "/api/housing", request["uri"])

			response := entries[1].ContextMap()
			assert.Equal(t, "response", entries[1].Message)
			assert.EqualValues(t, tt.status, response["status"])
			assert.Equal(t, strconv.Itoa(len(tt.body))+"B", response["response_size"])
		})
	}
}

func TestLoggingMiddleware_KeepsClientRequestID(t *testing.T) {
	observeLogs(t)

	var seen string
	handler := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/reviews", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rr.Header().Get(RequestIDHeader))
}
