package ctxtr_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/evgeniy-krivenko/mynotes/internal/ctxtr"
)

func TestMiddlewarePropagatesHeader(t *testing.T) {
	var seen string
	h := ctxtr.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = ctxtr.RequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(ctxtr.RequestIDHeader, "req-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "req-1", seen)
	assert.Equal(t, "req-1", rec.Header().Get(ctxtr.RequestIDHeader))
}

func TestMiddlewareGeneratesID(t *testing.T) {
	var seen string
	h := ctxtr.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = ctxtr.RequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(ctxtr.RequestIDHeader))
}

func TestUnaryRequestIDInterceptor(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(ctxtr.RequestIDHeader, "grpc-1"))

	var seen string
	_, err := ctxtr.UnaryRequestIDInterceptor(ctx, nil, &grpc.UnaryServerInfo{}, func(ctx context.Context, req any) (any, error) {
		seen, _ = ctxtr.RequestID(ctx)
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "grpc-1", seen)
}

func TestLogHandlerAddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(ctxtr.LogHandler(slog.NewTextHandler(&buf, nil)))

	logger.InfoContext(ctxtr.WithRequestID(context.Background(), "abc"), "hello")
	assert.Contains(t, buf.String(), "request_id=abc")

	buf.Reset()
	logger.InfoContext(context.Background(), "hello")
	assert.NotContains(t, buf.String(), "request_id")
}
