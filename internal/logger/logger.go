package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

var (
	log  zerolog.Logger
	once sync.Once
	mu   sync.RWMutex
)

// Init инициализирует глобальный логгер.
// env: "development" - читаемый консольный вывод, иначе JSON.
// level: debug|info|warn|error, пустая строка - по умолчанию для env.
func Init(env, level string) {
	InitWithWriter(env, level, os.Stdout)
}

// InitWithWriter - то же, что Init, но с произвольным writer (нужно в тестах).
func InitWithWriter(env, level string, w io.Writer) {
	var out io.Writer = w
	if env == "development" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	lvl := ParseLevel(level)
	if level == "" {
		lvl = zerolog.InfoLevel
		if env == "development" {
			lvl = zerolog.DebugLevel
		}
	}

	l := zerolog.New(out).Level(lvl).With().Timestamp().Str("env", env).Logger()

	mu.Lock()
	log = l
	mu.Unlock()
	once.Do(func() {})

	// Пакетный логгер zerolog тоже смотрит на наш
	zlog.Logger = l
}

// ParseLevel переводит строку в уровень zerolog, по умолчанию info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// GetLogger возвращает глобальный логгер
func GetLogger() *zerolog.Logger {
	once.Do(func() {
		// Fallback если Init не вызван
		l := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			Level(zerolog.DebugLevel).With().Timestamp().Logger()
		mu.Lock()
		log = l
		mu.Unlock()
	})
	mu.RLock()
	defer mu.RUnlock()
	l := log
	return &l
}

// ============================================
// Convenience функции для быстрого логирования
// args - пары ключ/значение: logger.Info("user created", "user_id", id)
// ============================================

// Debug логирует debug сообщение
func Debug(msg string, args ...any) {
	GetLogger().Debug().Fields(args).Msg(msg)
}

// Info логирует info сообщение
func Info(msg string, args ...any) {
	GetLogger().Info().Fields(args).Msg(msg)
}

// Warn логирует warning сообщение
func Warn(msg string, args ...any) {
	GetLogger().Warn().Fields(args).Msg(msg)
}

// Error логирует error сообщение
func Error(msg string, args ...any) {
	GetLogger().Error().Fields(args).Msg(msg)
}

// Fatal логирует fatal ошибку и завершает программу
func Fatal(msg string, args ...any) {
	GetLogger().Fatal().Fields(args).Msg(msg)
}
