package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/lirobabyxoxo/Sayaburradocarlaho/cmd/bot/config"
	"github.com/lirobabyxoxo/Sayaburradocarlaho/pkg/commands"
	"github.com/lirobabyxoxo/Sayaburradocarlaho/pkg/dataaccess"
)

// intents are the gateway intents the bot needs. Message content is privileged and must be enabled for the bot.
const intents = discordgo.IntentsGuilds |
	discordgo.IntentsGuildMessages |
	discordgo.IntentsDirectMessages |
	discordgo.IntentsMessageContent

func provideStoreConfig(c *config.Config) *dataaccess.StoreConfig {
	return c.StoreConfig()
}

func provideSession(c *config.Config) (*discordgo.Session, error) {
	dg, err := discordgo.New("Bot " + c.BotToken)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}

	dg.Identify.Intents = intents
	dg.StateEnabled = true
	return dg, nil
}

func provideEnv(l *slog.Logger, c *config.Config, store dataaccess.GuildStore, s *discordgo.Session) (*commands.Env, error) {
	loc, err := c.Location()
	if err != nil {
		return nil, fmt.Errorf("error loading timezone: %w", err)
	}

	return &commands.Env{
		Prefix:   c.Prefix,
		Palette:  commands.DefaultPalette,
		Embed:    commands.NewYakuzaEmbed(time.Now),
		Store:    store,
		Host:     newDiscordHost(s),
		Location: loc,
		Now:      time.Now,
		Logger:   l,
	}, nil
}

func provideLimiter(c *config.Config) *commands.UserLimiter {
	return commands.NewUserLimiter(c.CommandRate, c.CommandBurst)
}
