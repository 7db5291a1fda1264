package entities

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/lirobabyxoxo/Sayaburradocarlaho/pkg/custom"
	"github.com/stretchr/testify/require"
)

func TestGuildSettings_Merge(t *testing.T) {
	tests := []struct {
		name     string
		settings GuildSettings
		partial  GuildSettings
		want     GuildSettings
	}{
		{
			name: "ReplacesKeyKeepsOthers",
			settings: GuildSettings{
				"welcome":       json.RawMessage(`{"channel":"1"}`),
				TicketSystemKey: json.RawMessage(`{"categoria":"old"}`),
			},
			partial: GuildSettings{TicketSystemKey: json.RawMessage(`{"categoria":"new"}`)},
			want: GuildSettings{
				"welcome":       json.RawMessage(`{"channel":"1"}`),
				TicketSystemKey: json.RawMessage(`{"categoria":"new"}`),
			},
		},
		{
			name:     "NilSettings",
			settings: nil,
			partial:  GuildSettings{"welcome": json.RawMessage(`{"channel":"3"}`)},
			want:     GuildSettings{"welcome": json.RawMessage(`{"channel":"3"}`)},
		},
		{
			name:     "EmptyPartial",
			settings: GuildSettings{"welcome": json.RawMessage(`{}`)},
			partial:  nil,
			want:     GuildSettings{"welcome": json.RawMessage(`{}`)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.settings.Merge(tt.partial))
		})
	}
}

func TestGuildSettings_TicketSystem(t *testing.T) {
	tests := []struct {
		name     string
		settings GuildSettings
		wantOK   bool
		want     *TicketSystemConfig
	}{
		{
			name:     "Missing",
			settings: GuildSettings{},
			wantOK:   false,
		},
		{
			name:     "NilSettings",
			settings: nil,
			wantOK:   false,
		},
		{
			name:     "Null",
			settings: GuildSettings{TicketSystemKey: json.RawMessage(`null`)},
			wantOK:   false,
		},
		{
			name:     "WrongShape",
			settings: GuildSettings{TicketSystemKey: json.RawMessage(`"yes"`)},
			wantOK:   false,
		},
		{
			name: "PartialObjectDefaults",
			settings: GuildSettings{
				TicketSystemKey: json.RawMessage(`{"categoria":"111","somethingNew":true}`),
			},
			wantOK: true,
			want:   &TicketSystemConfig{CategoryID: "111"},
		},
		{
			name: "WrongTypesDefault",
			settings: GuildSettings{
				TicketSystemKey: json.RawMessage(`{
					"categoria": 111,
					"logsChannel": {"id": "222"},
					"staffRole": "333",
					"ticketCounter": "5",
					"activeTickets": [],
					"configuredAt": "not a date",
					"configuredBy": false
				}`),
			},
			wantOK: true,
			want: &TicketSystemConfig{
				CategoryID:    "111",
				StaffRoleID:   "333",
				TicketCounter: 5,
			},
		},
		{
			name: "NullFieldsDefault",
			settings: GuildSettings{
				TicketSystemKey: json.RawMessage(`{"categoria":"111","ticketCounter":null,"activeTickets":null,"configuredAt":null}`),
			},
			wantOK: true,
			want:   &TicketSystemConfig{CategoryID: "111"},
		},
		{
			name: "ConfiguredAtWithoutZone",
			settings: GuildSettings{
				TicketSystemKey: json.RawMessage(`{"categoria":"111","configuredAt":"2025-09-28T18:30:00"}`),
			},
			wantOK: true,
			want: &TicketSystemConfig{
				CategoryID:   "111",
				ConfiguredAt: custom.NewDatetime(time.Date(2025, 9, 28, 18, 30, 0, 0, time.UTC)),
			},
		},
		{
			name: "ConfiguredAtEpoch",
			settings: GuildSettings{
				TicketSystemKey: json.RawMessage(`{"categoria":"111","ticketCounter":2.9,"configuredAt":1759084200000}`),
			},
			wantOK: true,
			want: &TicketSystemConfig{
				CategoryID:    "111",
				TicketCounter: 2,
				ConfiguredAt:  custom.NewDatetime(time.Date(2025, 9, 28, 18, 30, 0, 0, time.UTC)),
			},
		},
		{
			name:     "Array",
			settings: GuildSettings{TicketSystemKey: json.RawMessage(`[1, 2]`)},
			wantOK:   false,
		},
		{
			name: "Full",
			settings: GuildSettings{
				TicketSystemKey: json.RawMessage(`{
					"categoria": "111",
					"logsChannel": "222",
					"staffRole": "333",
					"ticketCounter": 4,
					"activeTickets": {"1": {"channelId": "9"}},
					"configuredBy": "42"
				}`),
			},
			wantOK: true,
			want: &TicketSystemConfig{
				CategoryID:    "111",
				LogsChannelID: "222",
				StaffRoleID:   "333",
				TicketCounter: 4,
				ActiveTickets: map[string]json.RawMessage{"1": json.RawMessage(`{"channelId": "9"}`)},
				ConfiguredBy:  "42",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.settings.TicketSystem()
			require.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				require.Nil(t, got)
				return
			}
			require.True(t, tt.want.ConfiguredAt.Time().Equal(got.ConfiguredAt.Time()))
			got.ConfiguredAt = tt.want.ConfiguredAt
			require.Equal(t, tt.want, got)
		})
	}
}

func TestGuildSettings_SetTicketSystem(t *testing.T) {
	at := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	settings := GuildSettings{}

	require.NoError(t, settings.SetTicketSystem(NewTicketSystemConfig("111", "222", "333", "42", at)))
	require.JSONEq(t, `{
		"categoria": "111",
		"logsChannel": "222",
		"staffRole": "333",
		"ticketCounter": 0,
		"activeTickets": {},
		"configuredAt": "2025-10-01T12:00:00.000Z",
		"configuredBy": "42"
	}`, string(settings[TicketSystemKey]))

	got, ok := settings.TicketSystem()
	require.True(t, ok)
	require.Equal(t, 0, got.ActiveCount())
	require.True(t, at.Equal(got.ConfiguredAt.Time()))

	var nilSettings GuildSettings
	require.Error(t, nilSettings.SetTicketSystem(&TicketSystemConfig{}))
}
