// Package logging builds the zerolog loggers used across the player.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	EnvLevel  = "LOOPMARK_LOG_LEVEL"
	EnvFormat = "LOOPMARK_LOG_FORMAT"
)

// Config holds logging configuration
type Config struct {
	Level      zerolog.Level
	Format     string // "json" or "console"
	TimeFormat string
	Output     io.Writer
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Level:      zerolog.InfoLevel,
		Format:     "console",
		TimeFormat: time.RFC3339,
		Output:     os.Stderr,
	}
}

// New creates a new zerolog logger with the given configuration
func New(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: cfg.TimeFormat,
			NoColor:    !isTerminal(out),
		}
	}

	return zerolog.New(out).
		Level(cfg.Level).
		With().
		Timestamp().
		Logger()
}

// Apply overlays a textual level and format, typically from the config
// file, on cfg. Unknown values are ignored.
func (cfg Config) Apply(level, format string) Config {
	if l, ok := parseLevel(level); ok {
		cfg.Level = l
	}
	switch strings.ToLower(format) {
	case "json":
		cfg.Format = "json"
	case "console", "text":
		cfg.Format = "console"
	}
	return cfg
}

// FromEnv overlays LOOPMARK_LOG_LEVEL and LOOPMARK_LOG_FORMAT on cfg.
func (cfg Config) FromEnv() Config {
	return cfg.Apply(os.Getenv(EnvLevel), os.Getenv(EnvFormat))
}

// NewFromEnv creates a logger based on environment variables
// LOOPMARK_LOG_LEVEL: trace, debug, info, warn, error (default: info)
// LOOPMARK_LOG_FORMAT: json, console (default: console)
func NewFromEnv() zerolog.Logger {
	return New(DefaultConfig().FromEnv())
}

// OpenFile opens path for appending log lines, creating its directory. The
// terminal UI logs there so log lines never draw over the screen.
func OpenFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

func parseLevel(s string) (zerolog.Level, bool) {
	switch strings.ToLower(s) {
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "off":
		return zerolog.Disabled, true
	default:
		return zerolog.NoLevel, false
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
