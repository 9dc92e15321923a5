package config

import (
	"io"
	"log/slog"
	"strings"

	"github.com/lmittmann/tint"
)

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// ParseLogLevel maps a level name to slog.Level, defaulting to info.
func ParseLogLevel(name string) slog.Level {
	if lvl, ok := logLevels[strings.ToLower(name)]; ok {
		return lvl
	}
	return slog.LevelInfo
}

// NewLogger builds the process logger: tint for a console, JSON otherwise.
func NewLogger(w io.Writer, level, format string) *slog.Logger {
	lvl := ParseLogLevel(level)
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      lvl,
		TimeFormat: "15:04:05.000",
	}))
}
