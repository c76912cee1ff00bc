package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Config selects the output format and minimum level.
type Config struct {
	Env    string // development -> human readable console, otherwise JSON
	Level  string // trace, debug, info, warn, error
	Output io.Writer
}

// New builds the structured logger shared by services and middleware.
func New(cfg Config) zerolog.Logger {
	var w io.Writer = os.Stdout
	if cfg.Output != nil {
		w = cfg.Output
	}
	if strings.EqualFold(cfg.Env, "development") {
		w = zerolog.ConsoleWriter{Out: w, NoColor: cfg.Output != nil}
	}

	return zerolog.New(w).Level(ParseLevel(cfg.Level)).With().Timestamp().Logger()
}

// ParseLevel maps a level name to zerolog, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
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
