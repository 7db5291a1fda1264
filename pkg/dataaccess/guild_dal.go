package dataaccess

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lirobabyxoxo/Sayaburradocarlaho/pkg/dataaccess/connection"
	"github.com/lirobabyxoxo/Sayaburradocarlaho/pkg/dataaccess/monitoring"
	"github.com/lirobabyxoxo/Sayaburradocarlaho/pkg/entities"
	"github.com/lirobabyxoxo/Sayaburradocarlaho/pkg/logging"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	mongoGuildDalName = "mongo_guild_dal"

	guildCollection = "guild_configs"
)

// guildDocument is how a guild is stored in MongoDB. Each feature is kept as its raw JSON
// so the documents hold exactly what the JSON file would.
type guildDocument struct {
	// ID is the ID of the guild.
	ID string `bson:"id"`

	// Settings is the raw JSON of each feature, keyed by feature.
	Settings map[string]string `bson:"settings"`
}

type mongoGuildStore struct {
	// l is the logger.
	l *slog.Logger

	// client is the database.
	client *mongo.Client

	// database is the database name.
	database string
}

// NewMongoGuildStore creates a guild store backed by MongoDB.
func NewMongoGuildStore(l *slog.Logger, client *mongo.Client, database string) GuildStore {
	if l == nil {
		l = slog.Default()
	}
	l = l.With(slog.String(logging.KeyDal, mongoGuildDalName))

	if client == nil {
		l.Warn("MongoDB is nil, this can cause a panic. Proceeding...")
	}

	return &mongoGuildStore{
		l:        l,
		client:   client,
		database: database,
	}
}

func (g *mongoGuildStore) collection() *mongo.Collection {
	return g.client.Database(g.database).Collection(guildCollection)
}

func (g *mongoGuildStore) Load(ctx context.Context) entities.GuildConfigs {
	defer monitoring.Observe(mongoGuildDalName, "load")()

	configs := make(entities.GuildConfigs)

	cur, err := g.collection().Find(ctx, bson.M{})
	if err != nil {
		monitoring.StoreErrors.WithLabelValues(mongoGuildDalName, "load").Inc()
		g.l.Error("Error loading guild configs", slog.String(logging.KeyError, err.Error()))
		return configs
	}

	var docs []guildDocument
	if err := cur.All(ctx, &docs); err != nil {
		monitoring.StoreErrors.WithLabelValues(mongoGuildDalName, "load").Inc()
		g.l.Error("Error decoding guild configs", slog.String(logging.KeyError, err.Error()))
		return make(entities.GuildConfigs)
	}

	for i := range docs {
		configs[docs[i].ID] = g.toSettings(&docs[i])
	}
	return configs
}

func (g *mongoGuildStore) GetGuildConfig(ctx context.Context, guildID string) (entities.GuildSettings, bool) {
	defer monitoring.Observe(mongoGuildDalName, "get_guild_config")()

	doc := new(guildDocument)
	err := g.collection().FindOne(ctx, bson.M{"id": guildID}).Decode(doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false
	} else if err != nil {
		monitoring.StoreErrors.WithLabelValues(mongoGuildDalName, "get_guild_config").Inc()
		g.l.Error("Error getting guild config",
			slog.String(logging.KeyGuildID, guildID),
			slog.String(logging.KeyError, err.Error()),
		)
		return nil, false
	}
	return g.toSettings(doc), true
}

func (g *mongoGuildStore) SetGuildConfig(ctx context.Context, guildID string, partial entities.GuildSettings) error {
	defer monitoring.Observe(mongoGuildDalName, "set_guild_config")()

	opts := options.Update().SetUpsert(true)
	if _, err := g.collection().UpdateOne(ctx, bson.M{"id": guildID}, mergeUpdate(partial), opts); err != nil {
		monitoring.StoreErrors.WithLabelValues(mongoGuildDalName, "set_guild_config").Inc()
		g.l.Error("Error saving guild config",
			slog.String(logging.KeyGuildID, guildID),
			slog.String(logging.KeyError, err.Error()),
		)
		return fmt.Errorf("error updating guild: %w", err)
	}
	return nil
}

func (g *mongoGuildStore) Ping(ctx context.Context) error {
	return connection.Ping(ctx, g.client)
}

func (g *mongoGuildStore) Close(ctx context.Context) error {
	if err := g.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("error disconnecting from mongo: %w", err)
	}
	return nil
}

// toSettings converts a document to settings, dropping features that are not valid JSON.
func (g *mongoGuildStore) toSettings(doc *guildDocument) entities.GuildSettings {
	settings := make(entities.GuildSettings, len(doc.Settings))
	for k, v := range doc.Settings {
		if !json.Valid([]byte(v)) {
			g.l.Warn("Dropping invalid feature config",
				slog.String(logging.KeyGuildID, doc.ID),
				slog.String("feature", k),
			)
			continue
		}
		settings[k] = json.RawMessage(v)
	}
	return settings
}

// mergeUpdate builds the update that shallow-merges partial into a guild document.
// Only the features in partial are written, so other features are never touched.
func mergeUpdate(partial entities.GuildSettings) bson.M {
	if len(partial) == 0 {
		return bson.M{"$setOnInsert": bson.M{"settings": bson.M{}}}
	}

	set := make(bson.M, len(partial))
	for k, v := range partial {
		set["settings."+k] = string(v)
	}
	return bson.M{"$set": set}
}
