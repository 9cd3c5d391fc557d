package cli

import (
	"io"
	"log/slog"
	"time"

	"github.com/ib-77/unexceptional/internal/config"
	"github.com/lmittmann/tint"
)

func newLogger(w io.Writer, cfg config.Logging, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	if debug {
		level = slog.LevelDebug
	}

	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.RFC3339,
	}))
}
