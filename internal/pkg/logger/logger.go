// internal/pkg/logger/logger.go
package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"
)

// ContextKey types the request-scoped values the HTTP middleware stores for
// log enrichment.
type ContextKey string

const (
	ContextKeyRequestID  ContextKey = "request_id"
	ContextKeyTraceID    ContextKey = "trace_id"
	ContextKeyClientIP   ContextKey = "client_ip"
	ContextKeyUserAgent  ContextKey = "user_agent"
	ContextKeyMethod     ContextKey = "method"
	ContextKeyPath       ContextKey = "path"
	ContextKeyStatusCode ContextKey = "status_code"
	ContextKeyDuration   ContextKey = "duration_ms"
)

// SetupLogger builds the process-wide slog logger and installs it as the
// default. format is "json" or "text".
func SetupLogger(level string, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(level),
		AddSource: true,
	}

	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default:
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(&ContextHandler{inner: handler})
	slog.SetDefault(logger)
	return logger
}

func parseLevel(level string) slog.Leveler {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ContextHandler copies the middleware's request-scoped values onto every
// record logged through a context-aware method.
type ContextHandler struct {
	inner slog.Handler
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, record slog.Record) error {
	record.AddAttrs(extractContextAttrs(ctx)...)
	return h.inner.Handle(ctx, record)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{inner: h.inner.WithAttrs(attrs)}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{inner: h.inner.WithGroup(name)}
}

func extractContextAttrs(ctx context.Context) []slog.Attr {
	keys := []ContextKey{
		ContextKeyRequestID,
		ContextKeyTraceID,
		ContextKeyClientIP,
		ContextKeyMethod,
		ContextKeyPath,
		ContextKeyStatusCode,
		ContextKeyDuration,
	}

	var attrs []slog.Attr
	for _, key := range keys {
		val := ctx.Value(key)
		if val == nil {
			continue
		}
		switch v := val.(type) {
		case string:
			if v != "" {
				attrs = append(attrs, slog.String(string(key), v))
			}
		case int:
			attrs = append(attrs, slog.Int(string(key), v))
		case time.Duration:
			attrs = append(attrs, slog.Duration(string(key), v))
		default:
			attrs = append(attrs, slog.Any(string(key), v))
		}
	}
	return attrs
}
