package dataaccess

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lirobabyxoxo/Sayaburradocarlaho/pkg/dataaccess/connection"
	"github.com/lirobabyxoxo/Sayaburradocarlaho/pkg/entities"
	"github.com/lirobabyxoxo/Sayaburradocarlaho/pkg/logging"
)

// GuildStore is the per-guild configuration store.
//
// Read failures are logged and reported as "no configuration"; callers cannot tell a
// guild that was never configured from a store that could not be read.
type GuildStore interface {
	// Load returns every guild's settings. It never fails; on error the mapping is empty.
	Load(ctx context.Context) entities.GuildConfigs

	// GetGuildConfig returns the settings of a guild, or false if it was never configured.
	GetGuildConfig(ctx context.Context, guildID string) (entities.GuildSettings, bool)

	// SetGuildConfig shallow-merges partial into the guild's settings and persists the result.
	SetGuildConfig(ctx context.Context, guildID string, partial entities.GuildSettings) error

	// Ping checks that the backing storage is reachable.
	Ping(ctx context.Context) error

	// Close releases the store.
	Close(ctx context.Context) error
}

// StoreConfig selects and configures the store backend.
type StoreConfig struct {
	// FilePath is the JSON file used when no MongoDB URI is set.
	FilePath string

	// MongoURI enables the MongoDB backend when set.
	MongoURI string

	// MongoDatabase is the database used by the MongoDB backend.
	MongoDatabase string
}

// NewGuildStore creates the configured store. The returned cleanup closes it.
func NewGuildStore(ctx context.Context, l *slog.Logger, c *StoreConfig) (GuildStore, func(), error) {
	if c == nil {
		return nil, nil, fmt.Errorf("store config is nil")
	}

	var store GuildStore
	if c.MongoURI != "" {
		mongoConn := &connection.MongoDB{ConnectionString: c.MongoURI}
		client, err := mongoConn.Connect(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("error connecting to mongo: %w", err)
		}
		store = NewMongoGuildStore(l, client, c.MongoDatabase)
		l.Info("Using MongoDB guild store", slog.String("database", c.MongoDatabase))
	} else {
		if c.FilePath == "" {
			return nil, nil, fmt.Errorf("config file path is empty")
		}
		store = NewJSONGuildStore(l, c.FilePath)
		l.Info("Using JSON file guild store", slog.String("path", c.FilePath))
	}

	cleanup := func() {
		if err := store.Close(context.Background()); err != nil {
			l.Error("Error closing guild store", slog.String(logging.KeyError, err.Error()))
		}
	}
	return store, cleanup, nil
}
