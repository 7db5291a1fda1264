package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/lirobabyxoxo/Sayaburradocarlaho/pkg/logging"
)

const (
	helpCmdName        = "help"
	helpCmdDescription = "Mostra todos os comandos disponíveis"
)

const (
	helpTitle       = "<:config:1422275041990672428> **Precisando de ajuda?**"
	helpDescription = "saca só os comandos que eu tenho:"

	helpSentTitle       = " :rofl: Sabe nem usar o bot!"
	helpSentDescription = "Te mandei o tutorial na DM"

	helpDMFailedTitle       = "Erro"
	helpDMFailedDescription = "Abre o pv ae pORRA, não consegui te mandar a mensagem."
)

// helpLine is one command in the help catalogue.
type helpLine struct {
	usage       string
	description string
}

// helpSection is a group of commands in the help catalogue.
type helpSection struct {
	title string
	lines []helpLine
}

var helpSections = []helpSection{
	{
		title: "> <:moderador:1422270592232718466>  **Administrativo  **",
		lines: []helpLine{
			{"ban [@usuário] [motivo]", "Banir usuário"},
			{"kick [@usuário] [motivo]", "Expulsar usuário"},
			{"mute [@usuário] [tempo] [motivo]", "Mutar usuário (1s a 28d)"},
			{"unmute [@usuário]", "Desmutar usuário"},
			{"unban [ID]", "Desbanir usuário"},
			{"clear [número]", "Limpar mensagens (1-100)"},
		},
	},
	{
		title: "> <:user:1422270599128158208> **Roleplay**",
		lines: []helpLine{
			{"kiss [@usuário]", "Beijar alguém"},
			{"hug [@usuário]", "Abraçar alguém"},
			{"kill [@usuário]", "Matar alguém"},
			{"pat [@usuário]", "Afagar alguém"},
			{"slap [@usuário]", "Dar um tapa"},
		},
	},
	{
		title: "> <:motivo:1422270593759318117> **Utilitários**",
		lines: []helpLine{
			{"avatar [@usuário]", "Mostrar avatar"},
			{"userinfo [@usuário]", "Informações do usuário"},
			{"ping", "Ping do bot"},
			{"help", "Esta mensagem"},
		},
	},
}

const helpTipTitle = "> <:info2:1422270589967532155> Você sabia?"

// NewHelpCommand returns the help command. It sends the command catalogue to the user's direct messages.
func NewHelpCommand() *Command {
	return &Command{
		Name:        helpCmdName,
		Aliases:     []string{"ajuda", "comandos"},
		Description: helpCmdDescription,
		Definition: &discordgo.ApplicationCommand{
			Name:        helpCmdName,
			Description: helpCmdDescription,
		},
		Execute:      sendHelp,
		ExecuteSlash: sendHelp,
	}
}

// HelpEmbed builds the command catalogue for prefix.
func HelpEmbed(env *Env, prefix string) *discordgo.MessageEmbed {
	e := env.embed(helpTitle, helpDescription, env.Palette.Accent)

	for _, s := range helpSections {
		sb := new(strings.Builder)
		sb.WriteString("```\n")
		for _, line := range s.lines {
			fmt.Fprintf(sb, "%s%s - %s\n", prefix, line.usage, line.description)
		}
		sb.WriteString("```")

		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
			Name:  s.title,
			Value: sb.String(),
		})
	}

	e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
		Name: helpTipTitle,
		Value: fmt.Sprintf("**todos os comandos funcionam com prefixo (`%s`) ou slash commands (/)\nExemplo: `%s`help ou /help**",
			prefix, prefix),
	})

	return e
}

// sendHelp delivers the catalogue privately and confirms in the invoking channel.
// Prefix replies are public, slash replies ephemeral.
func sendHelp(ctx context.Context, env *Env, inv *Invocation) {
	l := inv.log()

	msg := &discordgo.MessageSend{
		Embeds: embeds(HelpEmbed(env, env.Prefix)),
	}

	reply := &Response{
		Embeds:    embeds(env.embed(helpSentTitle, helpSentDescription, env.Palette.Success)),
		Ephemeral: true,
	}
	if err := env.Host.SendDirect(ctx, inv.UserID(), msg); err != nil {
		l.Debug("error sending help to direct messages", slog.String(logging.KeyError, err.Error()))
		reply = &Response{
			Embeds:    embeds(env.embed(helpDMFailedTitle, helpDMFailedDescription, env.Palette.Error)),
			Ephemeral: true,
		}
	}

	if err := inv.Reply(ctx, reply); err != nil {
		l.Error("error replying to help", slog.String(logging.KeyError, err.Error()))
	}
}
