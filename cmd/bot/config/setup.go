package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/lirobabyxoxo/Sayaburradocarlaho/pkg/dataaccess"
)

// ErrInvalidConfig is returned when the configuration is unusable.
var ErrInvalidConfig = errors.New("invalid configuration")

// Parse reads the configuration from the environment. A .env file in the working directory is loaded first when present.
func Parse(l *slog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		l.Debug("No .env file found, using the environment")
	}
	return parse(l, env.ToMap(os.Environ()))
}

func parse(l *slog.Logger, environ map[string]string) (*Config, error) {
	c := new(Config)
	if err := env.ParseWithOptions(c, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("error parsing environment: %w", err)
	}

	c.Prefix = strings.TrimSpace(c.Prefix)
	if c.Prefix == "" {
		return nil, fmt.Errorf("%w: %s is empty", ErrInvalidConfig, EnvPrefix)
	}
	if c.CommandRate <= 0 {
		return nil, fmt.Errorf("%w: %s must be positive", ErrInvalidConfig, EnvCommandRate)
	}
	if c.CommandBurst < 1 {
		return nil, fmt.Errorf("%w: %s must be at least 1", ErrInvalidConfig, EnvCommandBurst)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, EnvTimezone, err)
	}

	if c.MongoUri != "" {
		l.Info("Guild configuration is kept in MongoDB", slog.String("database", c.MongoDatabase))
	} else {
		l.Info("Guild configuration is kept in a JSON file", slog.String("path", c.ConfigFile))
	}

	if c.ApplicationId == "" {
		l.Debug("No application ID provided, the bot user ID will be used", slog.String("key", EnvApplicationId))
	}

	return c, nil
}

// Location returns the timezone timestamps are shown in.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// StoreConfig returns the guild configuration store settings.
func (c *Config) StoreConfig() *dataaccess.StoreConfig {
	return &dataaccess.StoreConfig{
		FilePath:      c.ConfigFile,
		MongoURI:      c.MongoUri,
		MongoDatabase: c.MongoDatabase,
	}
}
