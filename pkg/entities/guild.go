package entities

import (
	"encoding/json"
	"fmt"
)

// TicketSystemKey is the feature key the ticket system configuration is stored under.
const TicketSystemKey = "ticketSystem"

// GuildConfigs is the whole persisted document: guild ID to that guild's settings.
type GuildConfigs map[string]GuildSettings

// GuildSettings is the settings object of a single guild, keyed by feature.
//
// Values are kept as raw JSON so features this process does not know about survive a
// read-merge-write untouched.
type GuildSettings map[string]json.RawMessage

// Merge shallow-merges partial into the settings and returns the result.
// Keys present in partial replace the stored value for that key; every other key is kept.
// Nil settings start empty.
func (g GuildSettings) Merge(partial GuildSettings) GuildSettings {
	if g == nil {
		g = make(GuildSettings, len(partial))
	}
	for k, v := range partial {
		g[k] = v
	}
	return g
}

// TicketSystem decodes the ticket system configuration.
//
// It reports false when the key is missing, null, or does not decode into a configuration.
// Missing fields inside a valid object take their zero value.
func (g GuildSettings) TicketSystem() (*TicketSystemConfig, bool) {
	raw, ok := g[TicketSystemKey]
	if !ok || len(raw) == 0 {
		return nil, false
	}

	var cfg *TicketSystemConfig
	if err := json.Unmarshal(raw, &cfg); err != nil || cfg == nil {
		return nil, false
	}
	return cfg, true
}

// SetTicketSystem encodes cfg under the ticket system key.
func (g GuildSettings) SetTicketSystem(cfg *TicketSystemConfig) error {
	if g == nil {
		return fmt.Errorf("guild settings are nil")
	}

	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error encoding ticket system: %w", err)
	}
	g[TicketSystemKey] = raw
	return nil
}
