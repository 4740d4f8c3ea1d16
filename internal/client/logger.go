package client

import (
	"io"
	"log/slog"
	"storefront-commerce/internal/config"
	"strings"
	"time"

	"gorm.io/gorm/logger"
)

// NewLogger builds the process logger from the log section of the config.
func NewLogger(logCfg *config.Log, w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logCfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(logCfg.Format, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// NewGormLogger routes gorm's statement log through l. Slow queries and
// errors are logged at warn; development also logs every statement.
func NewGormLogger(l *slog.Logger, environment string) logger.Interface {
	level := logger.Warn
	if environment == "development" {
		level = logger.Info
	}

	return logger.New(slog.NewLogLogger(l.Handler(), slog.LevelWarn), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
