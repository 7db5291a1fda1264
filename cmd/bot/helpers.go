package main

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/lirobabyxoxo/Sayaburradocarlaho/pkg/commands"
)

// messageResponder replies to a prefixed message. Replies are always public.
type messageResponder struct {
	// s is the discord session.
	s *discordgo.Session

	// m is the message being replied to.
	m *discordgo.Message
}

func (r *messageResponder) Respond(ctx context.Context, resp *commands.Response) error {
	_, err := r.s.ChannelMessageSendComplex(r.m.ChannelID, &discordgo.MessageSend{
		Embeds:     resp.Embeds,
		Components: resp.Components,
		Reference:  r.m.Reference(),
		AllowedMentions: &discordgo.MessageAllowedMentions{
			RepliedUser: true,
		},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("error replying to message: %w", err)
	}
	return nil
}

// interactionResponder replies to a slash command interaction.
type interactionResponder struct {
	// s is the discord session.
	s *discordgo.Session

	// i is the interaction being replied to.
	i *discordgo.Interaction
}

func (r *interactionResponder) Respond(ctx context.Context, resp *commands.Response) error {
	data := &discordgo.InteractionResponseData{
		Embeds:     resp.Embeds,
		Components: resp.Components,
	}
	if resp.Ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	err := r.s.InteractionRespond(r.i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("error responding to interaction: %w", err)
	}
	return nil
}

// discordHost makes the platform calls commands need through the session.
type discordHost struct {
	// s is the discord session.
	s *discordgo.Session
}

// newDiscordHost creates a host for s.
func newDiscordHost(s *discordgo.Session) *discordHost {
	return &discordHost{s: s}
}

func (h *discordHost) SendDirect(ctx context.Context, userID string, msg *discordgo.MessageSend) error {
	ch, err := h.s.UserChannelCreate(userID, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("error opening direct message channel: %w", err)
	}

	if _, err := h.s.ChannelMessageSendComplex(ch.ID, msg, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("error sending direct message: %w", err)
	}
	return nil
}

func (h *discordHost) SendChannel(ctx context.Context, channelID string, msg *discordgo.MessageSend) error {
	if _, err := h.s.ChannelMessageSendComplex(channelID, msg, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("error sending channel message: %w", err)
	}
	return nil
}

// Channel resolves from the state cache only, like the gateway view of the guild.
func (h *discordHost) Channel(guildID, channelID string) (*discordgo.Channel, bool) {
	if h.s.State == nil || channelID == "" {
		return nil, false
	}

	ch, err := h.s.State.Channel(channelID)
	if err != nil || ch == nil {
		return nil, false
	}
	if guildID != "" && ch.GuildID != guildID {
		return nil, false
	}
	return ch, true
}

// Role resolves from the state cache only.
func (h *discordHost) Role(guildID, roleID string) (*discordgo.Role, bool) {
	if h.s.State == nil || roleID == "" {
		return nil, false
	}

	role, err := h.s.State.Role(guildID, roleID)
	if err != nil || role == nil {
		return nil, false
	}
	return role, true
}
