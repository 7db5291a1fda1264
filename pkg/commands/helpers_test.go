package commands

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/lirobabyxoxo/Sayaburradocarlaho/pkg/dataaccess"
	"github.com/lirobabyxoxo/Sayaburradocarlaho/pkg/entities"
)

var (
	testNow = time.Date(2026, time.October, 18, 15, 4, 5, 0, time.UTC)

	errTestDelivery = errors.New("cannot send messages to this user")
)

func slogDiscard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeResponder struct {
	mu        sync.Mutex
	responses []*Response
}

func (f *fakeResponder) Respond(_ context.Context, r *Response) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = append(f.responses, r)
	return nil
}

func (f *fakeResponder) last() *Response {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.responses) == 0 {
		return nil
	}
	return f.responses[len(f.responses)-1]
}

type fakeHost struct {
	mu       sync.Mutex
	dmErr    error
	sendErr  error
	direct   map[string][]*discordgo.MessageSend
	sent     map[string][]*discordgo.MessageSend
	channels map[string]*discordgo.Channel
	roles    map[string]*discordgo.Role
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		direct:   make(map[string][]*discordgo.MessageSend),
		sent:     make(map[string][]*discordgo.MessageSend),
		channels: make(map[string]*discordgo.Channel),
		roles:    make(map[string]*discordgo.Role),
	}
}

func (h *fakeHost) SendDirect(_ context.Context, userID string, msg *discordgo.MessageSend) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.dmErr != nil {
		return h.dmErr
	}
	h.direct[userID] = append(h.direct[userID], msg)
	return nil
}

func (h *fakeHost) SendChannel(_ context.Context, channelID string, msg *discordgo.MessageSend) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.sendErr != nil {
		return h.sendErr
	}
	h.sent[channelID] = append(h.sent[channelID], msg)
	return nil
}

func (h *fakeHost) Channel(_, channelID string) (*discordgo.Channel, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	ch, ok := h.channels[channelID]
	return ch, ok
}

func (h *fakeHost) Role(_, roleID string) (*discordgo.Role, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	role, ok := h.roles[roleID]
	return role, ok
}

// countingStore records every store access.
type countingStore struct {
	dataaccess.GuildStore
	calls int
}

func (c *countingStore) Load(ctx context.Context) entities.GuildConfigs {
	c.calls++
	return c.GuildStore.Load(ctx)
}

func (c *countingStore) GetGuildConfig(ctx context.Context, guildID string) (entities.GuildSettings, bool) {
	c.calls++
	return c.GuildStore.GetGuildConfig(ctx, guildID)
}

func (c *countingStore) SetGuildConfig(ctx context.Context, guildID string, partial entities.GuildSettings) error {
	c.calls++
	return c.GuildStore.SetGuildConfig(ctx, guildID, partial)
}

func newTestStore(t *testing.T) (dataaccess.GuildStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server_configs.json")
	return dataaccess.NewJSONGuildStore(slogDiscard(), path), path
}

func newTestEnv(store dataaccess.GuildStore, host Host) *Env {
	now := func() time.Time { return testNow }
	return &Env{
		Prefix:   "!",
		Palette:  DefaultPalette,
		Embed:    NewYakuzaEmbed(now),
		Store:    store,
		Host:     host,
		Location: time.UTC,
		Now:      now,
		Logger:   slogDiscard(),
	}
}

func newSlashInvocation(guildID string, perms int64, data *discordgo.ApplicationCommandInteractionData) (*Invocation, *fakeResponder) {
	r := new(fakeResponder)
	return &Invocation{
		Kind:        KindSlash,
		GuildID:     guildID,
		ChannelID:   "chan-1",
		User:        &discordgo.User{ID: "user-1", Username: "kiryu"},
		Permissions: perms,
		Data:        data,
		Responder:   r,
		Logger:      slogDiscard(),
	}, r
}

func newPrefixInvocation(guildID string, args ...string) (*Invocation, *fakeResponder) {
	r := new(fakeResponder)
	return &Invocation{
		Kind:      KindPrefix,
		GuildID:   guildID,
		ChannelID: "chan-1",
		User:      &discordgo.User{ID: "user-1", Username: "kiryu"},
		Args:      args,
		Responder: r,
		Logger:    slogDiscard(),
	}, r
}

func ticketData(sub string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.ApplicationCommandInteractionData {
	return &discordgo.ApplicationCommandInteractionData{
		Name: ticketCmdName,
		Options: []*discordgo.ApplicationCommandInteractionDataOption{
			{
				Name:    sub,
				Type:    discordgo.ApplicationCommandOptionSubCommand,
				Options: opts,
			},
		},
	}
}

func setupData(categoryID, logsID, roleID string) *discordgo.ApplicationCommandInteractionData {
	return ticketData(setupSubCmdName,
		&discordgo.ApplicationCommandInteractionDataOption{Name: categoryOptionName, Type: discordgo.ApplicationCommandOptionChannel, Value: categoryID},
		&discordgo.ApplicationCommandInteractionDataOption{Name: logsOptionName, Type: discordgo.ApplicationCommandOptionChannel, Value: logsID},
		&discordgo.ApplicationCommandInteractionDataOption{Name: staffRoleOptionName, Type: discordgo.ApplicationCommandOptionRole, Value: roleID},
	)
}
