package logger

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger - адаптер gorm logger.Interface поверх zerolog.
// Медленные запросы пишутся как warn, ошибки SQL как error,
// ErrRecordNotFound не считается ошибкой.
type GormLogger struct {
	SlowThreshold time.Duration
	level         gormlogger.LogLevel
}

// NewGormLogger создает адаптер с порогом медленного запроса.
func NewGormLogger(slowThreshold time.Duration, debug bool) *GormLogger {
	lvl := gormlogger.Warn
	if debug {
		lvl = gormlogger.Info
	}
	return &GormLogger{SlowThreshold: slowThreshold, level: lvl}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cp := *l
	cp.level = level
	return &cp
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Info {
		lg := FromContext(ctx)
		lg.Info().Interface("data", data).Msg(msg)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Warn {
		lg := FromContext(ctx)
		lg.Warn().Interface("data", data).Msg(msg)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Error {
		lg := FromContext(ctx)
		lg.Error().Interface("data", data).Msg(msg)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	lg := FromContext(ctx)

	var ev *zerolog.Event
	msg := "gorm query"
	switch {
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		ev = lg.Error().Err(err)
		msg = "gorm query failed"
	case l.SlowThreshold > 0 && elapsed > l.SlowThreshold && l.level >= gormlogger.Warn:
		ev = lg.Warn().Dur("threshold", l.SlowThreshold)
		msg = "slow query"
	case l.level >= gormlogger.Info:
		ev = lg.Debug()
	default:
		return
	}

	sql, rows := fc()
	ev.Str("sql", sql).
		Int64("rows", rows).
		Int64("duration_ms", elapsed.Milliseconds()).
		Msg(msg)
}
