package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/lirobabyxoxo/Sayaburradocarlaho/pkg/dataaccess"
	"github.com/lirobabyxoxo/Sayaburradocarlaho/pkg/entities"
	"github.com/lirobabyxoxo/Sayaburradocarlaho/pkg/logging"
	"github.com/lirobabyxoxo/Sayaburradocarlaho/pkg/messages"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	ticketCmdName        = "ticket"
	ticketCmdDescription = "Sistema de tickets de suporte"

	setupSubCmdName  = "setup"
	panelSubCmdName  = "painel"
	panelSubCmdAlias = "panel"
	configSubCmdName = "config"

	categoryOptionName  = "categoria"
	logsOptionName      = "logs"
	staffRoleOptionName = "cargo_staff"
)

const (
	// CreateTicketButtonID is the custom ID of the panel button that opens a ticket.
	CreateTicketButtonID = "create_ticket"

	// panelColor is the panel embed colour.
	panelColor = 0x5865F2
)

const (
	noPermissionTitle       = "Sem Permissão"
	noPermissionDescription = "Apenas administradores podem usar este comando."

	notConfiguredTitle             = "Sistema Não Configurado"
	notConfiguredPanelDescription  = "O sistema de tickets ainda não foi configurado!\n\nUse `/ticket setup` para configurar primeiro."
	notConfiguredConfigDescription = "O sistema de tickets ainda não foi configurado!\n\nUse `/ticket setup` para configurar."

	setupTitle = "Sistema de Tickets Configurado ✅"

	panelTitle       = "🎫 Sistema de Suporte"
	panelDescription = "**Precisa de ajuda?**\n\n" +
		"Clique no botão abaixo para abrir um ticket de suporte.\n" +
		"Nossa equipe responderá o mais rápido possível!\n\n" +
		"**Como funciona:**\n" +
		"• Um canal privado será criado para você\n" +
		"• Apenas você e a staff terão acesso\n" +
		"• Descreva seu problema ou dúvida\n" +
		"• Aguarde a resposta da equipe\n\n" +
		"⚠️ **Lembre-se:** Crie tickets apenas quando necessário!"
	panelButtonLabel = "📩 Abrir Ticket"
	panelButtonEmoji = "🎫"

	panelCreatedTitle       = "Painel Criado ✅"
	panelCreatedDescription = "O painel de tickets foi criado com sucesso neste canal!"

	configTitle = "Configuração do Sistema de Tickets"

	channelNotFound = "Canal não encontrado"
	roleNotFound    = "Cargo não encontrado"
	unknownDate     = "data desconhecida"
)

// ErrNotConfigured is returned when a guild has no ticket system.
var ErrNotConfigured = errors.New("ticket system not configured")

// ptBR formats counters the way the community reads them.
var ptBR = message.NewPrinter(language.BrazilianPortuguese)

// NewTicketCommand returns the ticket administration command. It is slash only.
func NewTicketCommand() *Command {
	adminPerm := int64(discordgo.PermissionAdministrator)
	dmPerm := false

	return &Command{
		Name:        ticketCmdName,
		Description: ticketCmdDescription,
		Definition: &discordgo.ApplicationCommand{
			Name:                     ticketCmdName,
			Description:              ticketCmdDescription,
			DefaultMemberPermissions: &adminPerm,
			DMPermission:             &dmPerm,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        setupSubCmdName,
					Description: "Configurar sistema de tickets",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:         discordgo.ApplicationCommandOptionChannel,
							Name:         categoryOptionName,
							Description:  "Categoria onde os tickets serão criados",
							ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildCategory},
							Required:     true,
						},
						{
							Type:         discordgo.ApplicationCommandOptionChannel,
							Name:         logsOptionName,
							Description:  "Canal para enviar logs dos tickets",
							ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
							Required:     true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionRole,
							Name:        staffRoleOptionName,
							Description: "Cargo da staff que terá acesso aos tickets",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        panelSubCmdName,
					Description: "Criar painel de tickets no canal atual",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        configSubCmdName,
					Description: "Ver configurações atuais do sistema de tickets",
				},
			},
		},
		ExecuteSlash: ticketHandler,
	}
}

func ticketHandler(ctx context.Context, env *Env, inv *Invocation) {
	// The platform hides the command from non admins, but the check is repeated before touching the store.
	if !inv.HasPermission(discordgo.PermissionAdministrator) {
		reply(ctx, inv, env.embed(noPermissionTitle, noPermissionDescription, env.Palette.Error), true)
		return
	}

	if inv.GuildID == "" {
		reply(ctx, inv, env.embed(messages.ErrTitle, messages.GuildOnly, env.Palette.Error), true)
		return
	}

	l := inv.log().With(slog.String(logging.KeyGuildID, inv.GuildID))
	inv.Logger = l

	switch sub := inv.Subcommand(); sub {
	case setupSubCmdName:
		ticketSetup(ctx, env, inv)
	case panelSubCmdName, panelSubCmdAlias:
		ticketPanel(ctx, env, inv)
	case configSubCmdName:
		ticketConfig(ctx, env, inv)
	default:
		l.Warn("unknown ticket subcommand", slog.String("subcommand", sub))
		reply(ctx, inv, env.embed(messages.ErrTitle, messages.ErrUserErrorProcessing, env.Palette.Error), true)
	}
}

func ticketSetup(ctx context.Context, env *Env, inv *Invocation) {
	l := inv.log()

	category, okCat := inv.ChannelOption(categoryOptionName)
	logs, okLogs := inv.ChannelOption(logsOptionName)
	staff, okStaff := inv.RoleOption(staffRoleOptionName)
	if !okCat || !okLogs || !okStaff {
		l.Warn("ticket setup missing options")
		reply(ctx, inv, env.embed(messages.ErrTitle, messages.ErrUserErrorProcessing, env.Palette.Error), true)
		return
	}

	cfg := entities.NewTicketSystemConfig(category.ID, logs.ID, staff.ID, inv.UserID(), env.now())
	partial := make(entities.GuildSettings)
	if err := partial.SetTicketSystem(cfg); err != nil {
		l.Error("error encoding ticket system", slog.String(logging.KeyError, err.Error()))
		reply(ctx, inv, env.embed(messages.ErrTitle, messages.ErrUserErrorProcessing, env.Palette.Error), true)
		return
	}

	if err := env.Store.SetGuildConfig(ctx, inv.GuildID, partial); err != nil {
		l.Error("error saving ticket system", slog.String(logging.KeyError, err.Error()))
		reply(ctx, inv, env.embed(messages.ErrTitle, messages.ErrUserErrorProcessing, env.Palette.Error), true)
		return
	}

	l.Info("ticket system configured",
		slog.String("category_id", cfg.CategoryID),
		slog.String("logs_channel_id", cfg.LogsChannelID),
		slog.String("staff_role_id", cfg.StaffRoleID),
	)

	desc := fmt.Sprintf("O sistema de tickets foi configurado com sucesso!\n\n"+
		"**📁 Categoria:** %s\n"+
		"**📋 Canal de Logs:** %s\n"+
		"**👮 Cargo da Staff:** %s\n\n"+
		"Use `/ticket painel` para criar o painel de abertura de tickets.",
		category.Mention(), logs.Mention(), staff.Mention())

	reply(ctx, inv, env.embed(setupTitle, desc, env.Palette.Success), false)
}

func ticketPanel(ctx context.Context, env *Env, inv *Invocation) {
	l := inv.log()

	if _, err := LoadTicketSystem(ctx, env.Store, inv.GuildID); err != nil {
		reply(ctx, inv, env.embed(notConfiguredTitle, notConfiguredPanelDescription, env.Palette.Error), true)
		return
	}

	if err := env.Host.SendChannel(ctx, inv.ChannelID, PanelMessage(env)); err != nil {
		l.Error("error posting ticket panel",
			slog.String("channel_id", inv.ChannelID),
			slog.String(logging.KeyError, err.Error()),
		)
		reply(ctx, inv, env.embed(messages.ErrTitle, messages.ErrUserErrorProcessing, env.Palette.Error), true)
		return
	}

	reply(ctx, inv, env.embed(panelCreatedTitle, panelCreatedDescription, env.Palette.Success), true)
}

// PanelMessage builds the public panel users open tickets from.
func PanelMessage(env *Env) *discordgo.MessageSend {
	return &discordgo.MessageSend{
		Embeds: embeds(&discordgo.MessageEmbed{
			Title:       panelTitle,
			Description: panelDescription,
			Color:       panelColor,
			Timestamp:   env.now().UTC().Format(time.RFC3339),
		}),
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						CustomID: CreateTicketButtonID,
						Label:    panelButtonLabel,
						Style:    discordgo.PrimaryButton,
						Emoji:    &discordgo.ComponentEmoji{Name: panelButtonEmoji},
					},
				},
			},
		},
	}
}

func ticketConfig(ctx context.Context, env *Env, inv *Invocation) {
	cfg, err := LoadTicketSystem(ctx, env.Store, inv.GuildID)
	if err != nil {
		reply(ctx, inv, env.embed(notConfiguredTitle, notConfiguredConfigDescription, env.Palette.Error), true)
		return
	}

	category := channelNotFound
	if ch, ok := env.Host.Channel(inv.GuildID, cfg.CategoryID); ok {
		category = ch.Mention()
	}
	logs := channelNotFound
	if ch, ok := env.Host.Channel(inv.GuildID, cfg.LogsChannelID); ok {
		logs = ch.Mention()
	}
	staff := roleNotFound
	if role, ok := env.Host.Role(inv.GuildID, cfg.StaffRoleID); ok {
		staff = role.Mention()
	}

	configuredAt := unknownDate
	if !cfg.ConfiguredAt.IsZero() {
		configuredAt = cfg.ConfiguredAt.Brazilian(env.Location)
	}

	desc := fmt.Sprintf("**📁 Categoria: %s**\n"+
		"**📋 Canal de Logs: %s**\n"+
		"**👮 Cargo da Staff: %s**\n"+
		"**🎫 Tickets Criados: %s**\n"+
		"**✅ Tickets Ativos: %s**\n\n"+
		"*Configurado em: %s*",
		category, logs, staff,
		ptBR.Sprintf("%d", cfg.TicketCounter),
		ptBR.Sprintf("%d", cfg.ActiveCount()),
		configuredAt,
	)

	reply(ctx, inv, env.embed(configTitle, desc, env.Palette.Primary), true)
}

// LoadTicketSystem loads the ticket configuration of a guild.
// An unreadable store reads as not configured.
func LoadTicketSystem(ctx context.Context, store dataaccess.GuildStore, guildID string) (*entities.TicketSystemConfig, error) {
	settings, ok := store.GetGuildConfig(ctx, guildID)
	if !ok {
		return nil, ErrNotConfigured
	}

	cfg, ok := settings.TicketSystem()
	if !ok {
		return nil, ErrNotConfigured
	}
	return cfg, nil
}

func reply(ctx context.Context, inv *Invocation, e *discordgo.MessageEmbed, ephemeral bool) {
	err := inv.Reply(ctx, &Response{
		Embeds:    embeds(e),
		Ephemeral: ephemeral,
	})
	if err != nil {
		inv.log().Error("error replying to invocation", slog.String(logging.KeyError, err.Error()))
	}
}
