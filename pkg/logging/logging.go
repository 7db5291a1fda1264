package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

const (
	// KeyError is the key for errors in structured logs.
	KeyError = "err"

	// KeyDal is the key for the data access layer name.
	KeyDal = "dal"

	// KeyGuildID is the key for guild IDs.
	KeyGuildID = "guild_id"

	// KeyCommand is the key for command names.
	KeyCommand = "command"

	// KeyInvocationID is the key for the per invocation correlation ID.
	KeyInvocationID = "invocation_id"

	// KeyApp is the key for the application name.
	KeyApp = "app"
)

// Name is the name of the application the logger belongs to.
type Name string

// Config is the configuration for a logger.
type Config struct {
	// AppName is attached to every record.
	AppName Name

	// Level is the minimum level that is logged.
	Level slog.Level

	// JSON switches the handler from the console handler to JSON output.
	JSON bool

	// Writer is where records are written. Defaults to stderr.
	Writer io.Writer
}

// NewConfig creates a logging config from the environment.
//
// LOG_LEVEL accepts debug, info, warn and error. LOG_FORMAT accepts text and json.
func NewConfig(name Name) *Config {
	c := &Config{
		AppName: name,
		Level:   slog.LevelInfo,
		Writer:  os.Stderr,
	}

	if lvl, err := ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		c.Level = lvl
	}

	c.JSON = strings.EqualFold(os.Getenv("LOG_FORMAT"), "json")
	return c
}

// CommonLogger creates the logger used across the application and sets it as the default.
func CommonLogger(c *Config) (*slog.Logger, error) {
	if c == nil {
		return nil, fmt.Errorf("logging config is nil")
	}

	w := c.Writer
	if w == nil {
		w = os.Stderr
	}

	var h slog.Handler
	if c.JSON {
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{
			AddSource: true,
			Level:     c.Level,
		})
	} else {
		h = tint.NewHandler(w, &tint.Options{
			Level:      c.Level,
			TimeFormat: time.RFC3339,
		})
	}

	l := slog.New(h).With(slog.String(KeyApp, string(c.AppName)))
	slog.SetDefault(l)
	return l, nil
}

// ParseLevel parses a level name. An empty string is an error.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
