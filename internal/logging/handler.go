package logging

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// ParseLevel переводит строковый уровень из конфигурации в slog.Level. Неизвестное значение даёт info.
func ParseLevel(level string) slog.Level {
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

// NewHandler собирает цепочку обработчиков: JSON (по умолчанию) или цветной
// консольный вывод tint, обёрнутый в LoggerImpl для контекстных полей.
func NewHandler(w io.Writer, level slog.Level, format string) slog.Handler {
	var base slog.Handler
	switch strings.ToLower(format) {
	case "console", "text":
		base = tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	default:
		base = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	}
	return NewLoggerImpl(base)
}
