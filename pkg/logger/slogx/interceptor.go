package slogx

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// InterceptorLogger adapts Logger to the go-grpc-middleware logging contract.
func InterceptorLogger(l *Logger) logging.Logger {
	return logging.LoggerFunc(func(ctx context.Context, lvl logging.Level, msg string, fields ...any) {
		l.Slog().Log(ctx, slog.Level(lvl), msg, fields...)
	})
}

func recoverPanic(ctx context.Context, p any) error {
	Error(ctx, "recovered from panic", slog.Any("panic", p))
	return status.Error(codes.Internal, "internal error")
}

func UnaryServerInterceptors() []grpc.UnaryServerInterceptor {
	return []grpc.UnaryServerInterceptor{
		logging.UnaryServerInterceptor(
			InterceptorLogger(Default()),
			logging.WithLogOnEvents(logging.StartCall, logging.FinishCall),
		),
		recovery.UnaryServerInterceptor(recovery.WithRecoveryHandlerContext(recoverPanic)),
	}
}

func StreamServerInterceptors() []grpc.StreamServerInterceptor {
	return []grpc.StreamServerInterceptor{
		logging.StreamServerInterceptor(
			InterceptorLogger(Default()),
			logging.WithLogOnEvents(logging.StartCall, logging.FinishCall),
		),
		recovery.StreamServerInterceptor(recovery.WithRecoveryHandlerContext(recoverPanic)),
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Flush keeps streaming responses working behind the recorder.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := r.Context()
		logger := Default()

		method := slog.String("method", r.Method)
		path := slog.String("path", r.URL.Path)
		logger.Debug(ctx, "start handling http request", method, path)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		durAttr := slog.Duration("duration", time.Since(start))
		statusAttr := slog.Int("status", rec.status)
		if rec.status >= http.StatusInternalServerError {
			logger.Error(ctx, "finish with error", method, path, statusAttr, durAttr)
		} else {
			logger.Info(ctx, "finish success", method, path, statusAttr, durAttr)
		}
	})
}
