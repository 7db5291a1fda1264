package commands

import (
	"context"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Kind is how a command was invoked.
type Kind int

const (
	// KindPrefix is a legacy text command such as "!help".
	KindPrefix Kind = iota

	// KindSlash is an application (slash) command.
	KindSlash
)

func (k Kind) String() string {
	switch k {
	case KindPrefix:
		return "prefix"
	case KindSlash:
		return "slash"
	default:
		return "unknown"
	}
}

// Response is a reply to an invocation.
type Response struct {
	// Embeds are the embeds of the reply.
	Embeds []*discordgo.MessageEmbed

	// Components are the message components of the reply.
	Components []discordgo.MessageComponent

	// Ephemeral makes the reply visible only to the invoking user where the transport supports it.
	// Prefix replies are always public.
	Ephemeral bool
}

// Responder replies to the invocation it was created for.
type Responder interface {
	Respond(ctx context.Context, r *Response) error
}

// Invocation is a parsed command invocation, from either a prefixed message or a slash command.
type Invocation struct {
	// Kind is how the command was invoked.
	Kind Kind

	// GuildID is the guild the command was used in. Empty in direct messages.
	GuildID string

	// ChannelID is the channel the command was used in.
	ChannelID string

	// User is the invoking user.
	User *discordgo.User

	// Permissions are the invoking member's permissions in the channel. Only set for slash commands.
	Permissions int64

	// Args are the raw arguments of a prefix command.
	Args []string

	// Data is the slash command data.
	Data *discordgo.ApplicationCommandInteractionData

	// Responder replies to the invocation.
	Responder Responder

	// Logger is the invocation scoped logger.
	Logger *slog.Logger
}

// Reply sends r through the invocation's responder.
func (inv *Invocation) Reply(ctx context.Context, r *Response) error {
	return inv.Responder.Respond(ctx, r)
}

// HasPermission reports whether the invoking member has every bit of perm.
func (inv *Invocation) HasPermission(perm int64) bool {
	return inv.Permissions&perm == perm
}

// UserID returns the invoking user's ID, or an empty string.
func (inv *Invocation) UserID() string {
	if inv.User == nil {
		return ""
	}
	return inv.User.ID
}

// Subcommand returns the name of the invoked subcommand, or an empty string.
func (inv *Invocation) Subcommand() string {
	if inv.Data == nil || len(inv.Data.Options) == 0 {
		return ""
	}

	opt := inv.Data.Options[0]
	if opt.Type != discordgo.ApplicationCommandOptionSubCommand {
		return ""
	}
	return strings.ToLower(opt.Name)
}

// ChannelOption returns the channel given for the option name.
// When the channel is missing from the resolved data only its ID is set.
func (inv *Invocation) ChannelOption(name string) (*discordgo.Channel, bool) {
	id, ok := inv.optionID(name, discordgo.ApplicationCommandOptionChannel)
	if !ok {
		return nil, false
	}

	if inv.Data.Resolved != nil {
		if ch, ok := inv.Data.Resolved.Channels[id]; ok && ch != nil {
			return ch, true
		}
	}
	return &discordgo.Channel{ID: id, GuildID: inv.GuildID}, true
}

// RoleOption returns the role given for the option name.
// When the role is missing from the resolved data only its ID is set.
func (inv *Invocation) RoleOption(name string) (*discordgo.Role, bool) {
	id, ok := inv.optionID(name, discordgo.ApplicationCommandOptionRole)
	if !ok {
		return nil, false
	}

	if inv.Data.Resolved != nil {
		if role, ok := inv.Data.Resolved.Roles[id]; ok && role != nil {
			return role, true
		}
	}
	return &discordgo.Role{ID: id}, true
}

// options returns the options of the subcommand, or the top level options when there is none.
func (inv *Invocation) options() []*discordgo.ApplicationCommandInteractionDataOption {
	if inv.Data == nil {
		return nil
	}
	if inv.Subcommand() != "" {
		return inv.Data.Options[0].Options
	}
	return inv.Data.Options
}

func (inv *Invocation) optionID(name string, typ discordgo.ApplicationCommandOptionType) (string, bool) {
	for _, opt := range inv.options() {
		if opt == nil || opt.Name != name || opt.Type != typ {
			continue
		}
		id, ok := opt.Value.(string)
		if !ok || id == "" {
			return "", false
		}
		return id, true
	}
	return "", false
}

func (inv *Invocation) log() *slog.Logger {
	if inv.Logger != nil {
		return inv.Logger
	}
	return slog.Default()
}
