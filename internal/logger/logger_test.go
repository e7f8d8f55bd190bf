package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// captureJSON переключает глобальный логгер на буфер в JSON формате.
func captureJSON(t *testing.T, level string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	InitWithWriter("production", level, &buf)
	t.Cleanup(func() { InitWithWriter("test", "error", &bytes.Buffer{}) })
	return &buf
}

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines[len(lines)-1], "лог пуст")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	return entry
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel(" error "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("nonsense"))
}

func TestInfo_WritesKeyValuePairs(t *testing.T) {
	buf := captureJSON(t, "info")

	Info("user created", "user_id", "u-1", "superuser", true)

	entry := lastEntry(t, buf)
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "user created", entry["message"])
	assert.Equal(t, "u-1", entry["user_id"])
	assert.Equal(t, true, entry["superuser"])
	assert.Equal(t, "production", entry["env"])
}

func TestLevelFiltersDebug(t *testing.T) {
	buf := captureJSON(t, "warn")

	Debug("hidden")
	Info("hidden too")

	assert.Empty(t, buf.String())
}

func TestCtxInfo_AddsRequestID(t *testing.T) {
	buf := captureJSON(t, "debug")
	ctx := WithRequestID(context.Background(), "req-42")

	CtxInfo(ctx, "points balance changed", "delta", 10)

	entry := lastEntry(t, buf)
	assert.Equal(t, "req-42", entry["request_id"])
	assert.Equal(t, float64(10), entry["delta"])
	assert.Equal(t, "req-42", GetRequestID(ctx))
}

func TestCtxWithError(t *testing.T) {
	buf := captureJSON(t, "debug")

	CtxWithError(context.Background(), "readiness check failed", errors.New("dial tcp: refused"))

	entry := lastEntry(t, buf)
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "dial tcp: refused", entry["error"])
}

func TestGormLogger_Trace(t *testing.T) {
	query := func() (string, int64) { return "SELECT 1", 1 }

	t.Run("error is logged", func(t *testing.T) {
		buf := captureJSON(t, "debug")
		gl := NewGormLogger(time.Second, false)

		gl.Trace(context.Background(), time.Now(), query, errors.New("syntax error"))

		entry := lastEntry(t, buf)
		assert.Equal(t, "gorm query failed", entry["message"])
		assert.Equal(t, "SELECT 1", entry["sql"])
	})

	t.Run("record not found is ignored", func(t *testing.T) {
		buf := captureJSON(t, "debug")
		gl := NewGormLogger(time.Second, false)

		gl.Trace(context.Background(), time.Now(), query, gorm.ErrRecordNotFound)

		assert.Empty(t, buf.String())
	})

	t.Run("slow query is a warning", func(t *testing.T) {
		buf := captureJSON(t, "debug")
		gl := NewGormLogger(time.Millisecond, false)

		gl.Trace(context.Background(), time.Now().Add(-time.Second), query, nil)

		entry := lastEntry(t, buf)
		assert.Equal(t, "warn", entry["level"])
		assert.Equal(t, "slow query", entry["message"])
	})

	t.Run("silent mode", func(t *testing.T) {
		buf := captureJSON(t, "debug")
		gl := NewGormLogger(time.Millisecond, true).LogMode(gormlogger.Silent)

		gl.Trace(context.Background(), time.Now().Add(-time.Second), query, errors.New("x"))

		assert.Empty(t, buf.String())
	})
}
