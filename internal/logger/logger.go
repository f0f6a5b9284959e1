// Package logger builds the slog logger used across crimpfit, rendered by
// charmbracelet/log.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
)

// ParseLevel accepts debug, info, warn (or warning) and error.
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel, nil
	case "info", "":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	default:
		return "", fmt.Errorf("unknown log level %q: must be debug, info, warn or error", s)
	}
}

func (l LogLevel) ToCharmlogLevel() charmlog.Level {
	switch l {
	case DebugLevel:
		return charmlog.DebugLevel
	case InfoLevel:
		return charmlog.InfoLevel
	case WarnLevel:
		return charmlog.WarnLevel
	case ErrorLevel:
		return charmlog.ErrorLevel
	default:
		return charmlog.InfoLevel
	}
}

type Config struct {
	Level           LogLevel
	Output          io.Writer
	JSON            bool
	ReportTimestamp bool
	TimeFormat      string
}

func DefaultConfig() *Config {
	return &Config{
		Level:           WarnLevel,
		Output:          os.Stderr,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	}
}

// New returns an slog.Logger whose handler is a charm logger.
func New(cfg *Config) *slog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	charmLogger := charmlog.NewWithOptions(out, charmlog.Options{
		ReportTimestamp: cfg.ReportTimestamp,
		TimeFormat:      cfg.TimeFormat,
		Level:           cfg.Level.ToCharmlogLevel(),
	})
	if cfg.JSON {
		charmLogger.SetFormatter(charmlog.JSONFormatter)
	} else {
		charmLogger.SetFormatter(charmlog.TextFormatter)
	}
	return slog.New(charmLogger)
}

// Setup builds a logger from CLI settings and installs it as the slog
// default.
func Setup(level string, json bool, out io.Writer) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	cfg.Level = lvl
	cfg.JSON = json
	cfg.Output = out
	l := New(cfg)
	slog.SetDefault(l)
	return l, nil
}
