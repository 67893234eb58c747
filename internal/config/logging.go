package config

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// EnvLogLevel selects the log level: debug, info, warn, error or fatal.
const EnvLogLevel = "BOXFALL_LOG_LEVEL"

// NewLogger builds the root logger for a binary. An unknown level falls back to
// info and is reported through the returned logger.
func NewLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          prefix,
	})
	name := GetEnv(EnvLogLevel, "info")
	level, err := log.ParseLevel(name)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", name)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}
