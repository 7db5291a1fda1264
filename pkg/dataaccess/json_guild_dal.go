package dataaccess

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/lirobabyxoxo/Sayaburradocarlaho/pkg/dataaccess/monitoring"
	"github.com/lirobabyxoxo/Sayaburradocarlaho/pkg/entities"
	"github.com/lirobabyxoxo/Sayaburradocarlaho/pkg/logging"
)

const jsonGuildDalName = "json_guild_dal"

// jsonGuildStore keeps every guild's settings in a single JSON file.
//
// There is no cache: every call reads the file, and every write rewrites all of it.
type jsonGuildStore struct {
	// l is the logger.
	l *slog.Logger

	// path is the JSON file.
	path string

	// mu serialises read-modify-write cycles within this process.
	mu sync.Mutex
}

// NewJSONGuildStore creates a guild store backed by the JSON file at path.
func NewJSONGuildStore(l *slog.Logger, path string) GuildStore {
	if l == nil {
		l = slog.Default()
	}

	return &jsonGuildStore{
		l:    l.With(slog.String(logging.KeyDal, jsonGuildDalName)),
		path: path,
	}
}

func (s *jsonGuildStore) Load(_ context.Context) entities.GuildConfigs {
	defer monitoring.Observe(jsonGuildDalName, "load")()

	raw, err := s.readRaw()
	if err != nil {
		monitoring.StoreErrors.WithLabelValues(jsonGuildDalName, "load").Inc()
		s.l.Error("Error loading guild configs", slog.String(logging.KeyError, err.Error()))
		return make(entities.GuildConfigs)
	}

	configs := make(entities.GuildConfigs, len(raw))
	for guildID, value := range raw {
		settings, err := decodeGuild(value)
		if err != nil {
			s.l.Warn("Skipping malformed guild entry",
				slog.String(logging.KeyGuildID, guildID),
				slog.String(logging.KeyError, err.Error()),
			)
			continue
		}
		configs[guildID] = settings
	}
	return configs
}

func (s *jsonGuildStore) GetGuildConfig(_ context.Context, guildID string) (entities.GuildSettings, bool) {
	defer monitoring.Observe(jsonGuildDalName, "get_guild_config")()

	raw, err := s.readRaw()
	if err != nil {
		monitoring.StoreErrors.WithLabelValues(jsonGuildDalName, "get_guild_config").Inc()
		s.l.Error("Error loading guild configs",
			slog.String(logging.KeyGuildID, guildID),
			slog.String(logging.KeyError, err.Error()),
		)
		return nil, false
	}

	value, ok := raw[guildID]
	if !ok {
		return nil, false
	}

	settings, err := decodeGuild(value)
	if err != nil {
		s.l.Warn("Malformed guild entry read as absent",
			slog.String(logging.KeyGuildID, guildID),
			slog.String(logging.KeyError, err.Error()),
		)
		return nil, false
	}
	if settings == nil {
		return nil, false
	}
	return settings, true
}

func (s *jsonGuildStore) SetGuildConfig(_ context.Context, guildID string, partial entities.GuildSettings) error {
	defer monitoring.Observe(jsonGuildDalName, "set_guild_config")()

	s.mu.Lock()
	defer s.mu.Unlock()

	// A file that exists but cannot be read is left alone rather than overwritten with one guild.
	raw, err := s.readRaw()
	if err != nil {
		monitoring.StoreErrors.WithLabelValues(jsonGuildDalName, "set_guild_config").Inc()
		s.l.Error("Error loading guild configs for update",
			slog.String(logging.KeyGuildID, guildID),
			slog.String(logging.KeyError, err.Error()),
		)
		return fmt.Errorf("error loading guild configs: %w", err)
	}

	var existing entities.GuildSettings
	if value, ok := raw[guildID]; ok {
		existing, err = decodeGuild(value)
		if err != nil {
			s.l.Warn("Replacing malformed guild entry",
				slog.String(logging.KeyGuildID, guildID),
				slog.String(logging.KeyError, err.Error()),
			)
			existing = nil
		}
	}

	merged, err := json.Marshal(existing.Merge(partial))
	if err != nil {
		return fmt.Errorf("error encoding guild %s: %w", guildID, err)
	}
	raw[guildID] = merged

	if err := s.write(raw); err != nil {
		monitoring.StoreErrors.WithLabelValues(jsonGuildDalName, "set_guild_config").Inc()
		s.l.Error("Error saving guild configs",
			slog.String(logging.KeyGuildID, guildID),
			slog.String(logging.KeyError, err.Error()),
		)
		return fmt.Errorf("error saving guild configs: %w", err)
	}
	return nil
}

// Ping checks that the file, if present, is readable and holds an object.
func (s *jsonGuildStore) Ping(_ context.Context) error {
	if _, err := s.readRaw(); err != nil {
		return err
	}
	return nil
}

func (s *jsonGuildStore) Close(_ context.Context) error {
	return nil
}

// readRaw returns the guild entries on disk, each still encoded.
// A missing file is an empty mapping, not an error.
func (s *jsonGuildStore) readRaw() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]json.RawMessage), nil
	} else if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", s.path, err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", s.path, err)
	}

	if raw == nil {
		raw = make(map[string]json.RawMessage)
	}
	return raw, nil
}

// decodeGuild decodes one guild entry. A null entry decodes to nil settings.
func decodeGuild(value json.RawMessage) (entities.GuildSettings, error) {
	var settings entities.GuildSettings
	if err := json.Unmarshal(value, &settings); err != nil {
		return nil, fmt.Errorf("guild entry is not an object: %w", err)
	}
	return settings, nil
}

// write replaces the file with raw using a temporary file and a rename.
func (s *jsonGuildStore) write(raw map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding guild configs: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("error creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("error writing temp file: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("error syncing temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("error closing temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("error replacing %s: %w", s.path, err)
	}
	return nil
}
