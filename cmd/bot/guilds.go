package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/lirobabyxoxo/Sayaburradocarlaho/cmd/bot/monitoring"
	"github.com/lirobabyxoxo/Sayaburradocarlaho/pkg/logging"
)

// registerTimeout bounds the slash command registration of one guild.
const registerTimeout = 15 * time.Second

func guildJoinedHandler(a *App) func(s *discordgo.Session, g *discordgo.GuildCreate) {
	return func(s *discordgo.Session, g *discordgo.GuildCreate) {
		l := a.Log().With(slog.String(logging.KeyGuildID, g.ID))
		l.Info("Joined guild", slog.String("name", g.Name))

		setGuildCount(s)

		ctx, cancel := context.WithTimeout(a.ctx, registerTimeout)
		defer cancel()

		if err := a.registerSlashCommands(ctx, g.ID); err != nil {
			l.Error("Error registering slash commands", slog.String(logging.KeyError, err.Error()))
		}
	}
}

func guildLeaveHandler(a IApp) func(s *discordgo.Session, g *discordgo.GuildDelete) {
	return func(s *discordgo.Session, g *discordgo.GuildDelete) {
		if g.Unavailable {
			a.Log().Warn("Guild became unavailable", slog.String(logging.KeyGuildID, g.ID))
			return
		}

		a.Log().Info("Left guild", slog.String(logging.KeyGuildID, g.ID))
		setGuildCount(s)
	}
}

func setGuildCount(s *discordgo.Session) {
	if s.State == nil {
		return
	}
	s.State.RLock()
	defer s.State.RUnlock()
	monitoring.TotalDiscordGuilds.Set(float64(len(s.State.Guilds)))
}
