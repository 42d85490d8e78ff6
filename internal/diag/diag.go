// Package diag builds the logger for helog's own diagnostics: config
// problems, watcher restarts and command failures. Log records produced by
// package logger never pass through here.
package diag

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// EnvLevel overrides the diagnostics level.
const EnvLevel = "HELOG_DIAG_LEVEL"

const consoleTimeFormat = "15:04:05.000"

// New creates a console diagnostics logger writing to w.
func New(w io.Writer, level string) zerolog.Logger {
	if env := os.Getenv(EnvLevel); env != "" {
		level = env
	}
	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: consoleTimeFormat, NoColor: true}
	return zerolog.New(cw).Level(ParseLevel(level, zerolog.WarnLevel)).With().Timestamp().Logger()
}

// Nop returns a logger that never writes anything.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

// ParseLevel maps a level name to a zerolog level, returning def when the
// name is not recognized.
func ParseLevel(s string, def zerolog.Level) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN", "WARNING":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return def
	}
}
