package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/lirobabyxoxo/Sayaburradocarlaho/pkg/dataaccess"
)

// Host is the set of platform calls commands make. Every call may fail.
type Host interface {
	// SendDirect sends msg to the user's direct messages.
	SendDirect(ctx context.Context, userID string, msg *discordgo.MessageSend) error

	// SendChannel sends msg to a channel.
	SendChannel(ctx context.Context, channelID string, msg *discordgo.MessageSend) error

	// Channel resolves a channel of a guild. It reports false if the channel cannot be found.
	Channel(guildID, channelID string) (*discordgo.Channel, bool)

	// Role resolves a role of a guild. It reports false if the role cannot be found.
	Role(guildID, roleID string) (*discordgo.Role, bool)
}

// Palette is the set of embed colours.
type Palette struct {
	Primary int
	Accent  int
	Success int
	Error   int
}

// DefaultPalette is the bot's colour scheme.
var DefaultPalette = Palette{
	Primary: 0x8B0000,
	Accent:  0xC41E3A,
	Success: 0x2ECC71,
	Error:   0xE74C3C,
}

// EmbedFactory builds the standard embed used for replies.
type EmbedFactory func(title, description string, color int) *discordgo.MessageEmbed

// embedFooter is the footer every standard embed carries.
const embedFooter = "Yakuza"

// NewYakuzaEmbed returns the standard embed factory. now stamps the embeds; nil uses time.Now.
func NewYakuzaEmbed(now func() time.Time) EmbedFactory {
	if now == nil {
		now = time.Now
	}
	return func(title, description string, color int) *discordgo.MessageEmbed {
		return &discordgo.MessageEmbed{
			Title:       title,
			Description: description,
			Color:       color,
			Footer:      &discordgo.MessageEmbedFooter{Text: embedFooter},
			Timestamp:   now().UTC().Format(time.RFC3339),
		}
	}
}

// Env is the context shared by every command.
type Env struct {
	// Prefix is the prefix of legacy text commands.
	Prefix string

	// Palette is the embed colour scheme.
	Palette Palette

	// Embed builds reply embeds.
	Embed EmbedFactory

	// Store is the per-guild configuration store.
	Store dataaccess.GuildStore

	// Host makes platform calls.
	Host Host

	// Location is the timezone timestamps are shown in.
	Location *time.Location

	// Now returns the current time.
	Now func() time.Time

	// Logger is the base logger.
	Logger *slog.Logger
}

func (e *Env) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Env) embed(title, description string, color int) *discordgo.MessageEmbed {
	if e.Embed != nil {
		return e.Embed(title, description, color)
	}
	return NewYakuzaEmbed(e.Now)(title, description, color)
}

func (e *Env) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}
