package entities

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/lirobabyxoxo/Sayaburradocarlaho/pkg/custom"
)

// TicketSystemConfig is the ticket system configuration of a guild.
//
// The JSON names match the documents already on disk and must not change.
type TicketSystemConfig struct {
	// CategoryID is the ID of the category that tickets are created in.
	CategoryID string `json:"categoria"`

	// LogsChannelID is the ID of the channel that ticket logs are sent to.
	LogsChannelID string `json:"logsChannel"`

	// StaffRoleID is the ID of the role that handles tickets.
	StaffRoleID string `json:"staffRole"`

	// TicketCounter is the number of tickets created since the last setup.
	TicketCounter int `json:"ticketCounter"`

	// ActiveTickets is the metadata of open tickets, keyed by ticket ID.
	ActiveTickets map[string]json.RawMessage `json:"activeTickets"`

	// ConfiguredAt is when setup last ran.
	ConfiguredAt custom.Datetime `json:"configuredAt"`

	// ConfiguredBy is the ID of the user that last ran setup.
	ConfiguredBy string `json:"configuredBy"`
}

// NewTicketSystemConfig creates a fresh configuration with the counter at zero and no active tickets.
func NewTicketSystemConfig(categoryID, logsChannelID, staffRoleID, configuredBy string, at time.Time) *TicketSystemConfig {
	return &TicketSystemConfig{
		CategoryID:    categoryID,
		LogsChannelID: logsChannelID,
		StaffRoleID:   staffRoleID,
		TicketCounter: 0,
		ActiveTickets: make(map[string]json.RawMessage),
		ConfiguredAt:  custom.NewDatetime(at),
		ConfiguredBy:  configuredBy,
	}
}

// ActiveCount returns the number of active tickets.
func (c *TicketSystemConfig) ActiveCount() int {
	if c == nil {
		return 0
	}
	return len(c.ActiveTickets)
}

// UnmarshalJSON decodes the configuration field by field.
//
// Only a value that is not an object is an error. A field of the wrong type takes its
// zero value, and a non-object activeTickets counts as no active tickets.
func (c *TicketSystemConfig) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("ticket system is not an object: %w", err)
	}
	if fields == nil {
		return fmt.Errorf("ticket system is null")
	}

	*c = TicketSystemConfig{
		CategoryID:    lenientString(fields["categoria"]),
		LogsChannelID: lenientString(fields["logsChannel"]),
		StaffRoleID:   lenientString(fields["staffRole"]),
		TicketCounter: lenientInt(fields["ticketCounter"]),
		ConfiguredBy:  lenientString(fields["configuredBy"]),
	}

	if raw, ok := fields["activeTickets"]; ok {
		var active map[string]json.RawMessage
		if err := json.Unmarshal(raw, &active); err == nil {
			c.ActiveTickets = active
		}
	}

	if raw, ok := fields["configuredAt"]; ok {
		// Datetime falls back to the zero time itself.
		_ = json.Unmarshal(raw, &c.ConfiguredAt)
	}
	return nil
}

// lenientString decodes a string, or the literal of a number. Anything else is empty.
func lenientString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// lenientInt decodes a number or a numeric string, truncated. Anything else is zero.
func lenientInt(raw json.RawMessage) int {
	raw = bytes.Trim(bytes.TrimSpace(raw), `"`)
	if len(raw) == 0 {
		return 0
	}

	if n, err := strconv.Atoi(string(raw)); err == nil {
		return n
	}

	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0
	}
	return int(f)
}
