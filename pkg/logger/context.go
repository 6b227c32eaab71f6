package logger

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type contextKey string

const loggerKey contextKey = "logger"

// echoLoggerKey is the echo context key the request-id middleware stores the
// request-scoped logger under.
const echoLoggerKey = "logger"

// ForRequest returns the global logger tagged with the request id. The
// request-id middleware attaches the result to the echo context so every
// layer below logs with the same id.
func ForRequest(requestID string) *zap.Logger {
	return GetLogger().With(zap.String("request_id", requestID))
}

// AttachEcho stores a request-scoped logger on the echo context for FromEcho.
func AttachEcho(c echo.Context, l *zap.Logger) {
	c.Set(echoLoggerKey, l)
}

// FromEcho retrieves the request-scoped logger from the echo context, falling
// back to the global one when no middleware attached it.
func FromEcho(c echo.Context) *zap.Logger {
	if l, ok := c.Get(echoLoggerKey).(*zap.Logger); ok {
		return l
	}
	return GetLogger()
}

// WithContext carries the logger into a plain context for code below the
// transport layer.
func WithContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext retrieves the logger stored by WithContext, falling back to the
// global one.
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return l
	}
	return GetLogger()
}
