package util

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

type LogLevel string

const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
)

type LogFormat string

const (
	FormatJSON LogFormat = "json"
	FormatText LogFormat = "text"
	// FormatAuto picks text for a terminal and JSON otherwise.
	FormatAuto LogFormat = "auto"
)

// LoggerConfig configures NewLogger. A nil Output means stderr; stdout is
// reserved for reports and the MCP protocol.
type LoggerConfig struct {
	Level  LogLevel
	Format LogFormat
	Output io.Writer
}

// CommandLoggerConfig is the config of a CLI command writing to w: warnings
// only, or everything down to debug with verbose set.
func CommandLoggerConfig(w io.Writer, verbose bool) LoggerConfig {
	cfg := LoggerConfig{Level: LevelWarn, Format: FormatAuto, Output: w}
	if verbose {
		cfg.Level = LevelDebug
	}
	return cfg
}

func NewLogger(config LoggerConfig) *slog.Logger {
	if config.Output == nil {
		config.Output = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: parseLevel(config.Level)}

	if ResolveFormat(config.Format, config.Output) == FormatText {
		return slog.New(slog.NewTextHandler(config.Output, opts))
	}
	return slog.New(slog.NewJSONHandler(config.Output, opts))
}

// ResolveFormat turns FormatAuto into a concrete format for w. Unknown
// formats are JSON.
func ResolveFormat(format LogFormat, w io.Writer) LogFormat {
	switch format {
	case FormatJSON, FormatText:
		return format
	case FormatAuto:
		if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return FormatText
		}
	}
	return FormatJSON
}

// DiscardLogger drops every record.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func parseLevel(level LogLevel) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
