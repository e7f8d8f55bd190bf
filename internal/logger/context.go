package logger

import (
	"context"

	"freelance_backend/pkg/contextkeys"

	"github.com/rs/zerolog"
)

// ============================================
// Context operations
// ============================================

// WithRequestID добавляет request ID в context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextkeys.RequestIDKey, requestID)
}

// GetRequestID извлекает request ID из context
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(contextkeys.RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// FromContext создает логгер с полями из context (request_id)
func FromContext(ctx context.Context) zerolog.Logger {
	lc := GetLogger().With()
	if ctx == nil {
		return lc.Logger()
	}
	if requestID := GetRequestID(ctx); requestID != "" {
		lc = lc.Str("request_id", requestID)
	}
	return lc.Logger()
}

// CtxDebug логирует debug с контекстом
func CtxDebug(ctx context.Context, msg string, args ...any) {
	l := FromContext(ctx)
	l.Debug().Fields(args).Msg(msg)
}

// CtxInfo логирует info с контекстом
func CtxInfo(ctx context.Context, msg string, args ...any) {
	l := FromContext(ctx)
	l.Info().Fields(args).Msg(msg)
}

// CtxWarn логирует warning с контекстом
func CtxWarn(ctx context.Context, msg string, args ...any) {
	l := FromContext(ctx)
	l.Warn().Fields(args).Msg(msg)
}

// CtxError логирует error с контекстом
func CtxError(ctx context.Context, msg string, args ...any) {
	l := FromContext(ctx)
	l.Error().Fields(args).Msg(msg)
}

// CtxWithError логирует error с error объектом
func CtxWithError(ctx context.Context, msg string, err error, args ...any) {
	l := FromContext(ctx)
	l.Error().Err(err).Fields(args).Msg(msg)
}
