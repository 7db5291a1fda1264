package dataaccess

import (
	"encoding/json"
	"testing"

	"github.com/lirobabyxoxo/Sayaburradocarlaho/pkg/entities"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestMergeUpdate(t *testing.T) {
	tests := []struct {
		name    string
		partial entities.GuildSettings
		want    bson.M
	}{
		{
			name:    "Empty",
			partial: entities.GuildSettings{},
			want:    bson.M{"$setOnInsert": bson.M{"settings": bson.M{}}},
		},
		{
			name: "OnlyGivenFeatures",
			partial: entities.GuildSettings{
				entities.TicketSystemKey: json.RawMessage(`{"categoria":"111"}`),
			},
			want: bson.M{"$set": bson.M{"settings.ticketSystem": `{"categoria":"111"}`}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, mergeUpdate(tt.partial))
		})
	}
}

func TestMongoGuildStore_ToSettings(t *testing.T) {
	g := NewMongoGuildStore(nil, nil, "tests").(*mongoGuildStore)

	got := g.toSettings(&guildDocument{
		ID: "123",
		Settings: map[string]string{
			entities.TicketSystemKey: `{"categoria":"111"}`,
			"broken":                 `{"categoria":`,
		},
	})

	require.Len(t, got, 1)
	require.JSONEq(t, `{"categoria":"111"}`, string(got[entities.TicketSystemKey]))
}
