package commands

import (
	"context"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
)

func noop(context.Context, *Env, *Invocation) {}

func TestNewDefaultRegistry(t *testing.T) {
	r, err := NewDefaultRegistry()
	require.NoError(t, err)

	tests := []struct {
		name string
		want string
	}{
		{name: "help", want: helpCmdName},
		{name: "HELP", want: helpCmdName},
		{name: "ajuda", want: helpCmdName},
		{name: "Comandos", want: helpCmdName},
		{name: "ticket", want: ticketCmdName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := r.Lookup(tt.name)
			require.True(t, ok)
			require.Equal(t, tt.want, c.Name)
		})
	}

	_, ok := r.Lookup("ban")
	require.False(t, ok)

	defs := r.ApplicationCommands()
	require.Len(t, defs, 2)
	require.Equal(t, helpCmdName, defs[0].Name)
	require.Equal(t, ticketCmdName, defs[1].Name)
	require.Len(t, r.Commands(), 2)
}

func TestNewRegistry_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cmds []*Command
		want error
	}{
		{
			name: "NoName",
			cmds: []*Command{{Execute: noop}},
			want: ErrInvalidCommand,
		},
		{
			name: "NoEntryPoint",
			cmds: []*Command{{Name: "ping"}},
			want: ErrInvalidCommand,
		},
		{
			name: "SlashWithoutDefinition",
			cmds: []*Command{{Name: "ping", ExecuteSlash: noop}},
			want: ErrInvalidCommand,
		},
		{
			name: "DuplicateName",
			cmds: []*Command{{Name: "ping", Execute: noop}, {Name: "PING", Execute: noop}},
			want: ErrDuplicateCommand,
		},
		{
			name: "AliasClash",
			cmds: []*Command{{Name: "ping", Execute: noop}, {Name: "pong", Aliases: []string{"ping"}, Execute: noop}},
			want: ErrDuplicateCommand,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.cmds...)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRegistry_PrefixOnlyCommand(t *testing.T) {
	r, err := NewRegistry(&Command{Name: "ping", Execute: noop})
	require.NoError(t, err)
	require.Empty(t, r.ApplicationCommands())

	r, err = NewRegistry(&Command{
		Name:         "ping",
		Definition:   &discordgo.ApplicationCommand{Name: "ping", Description: "Ping do bot"},
		ExecuteSlash: noop,
	})
	require.NoError(t, err)
	require.Len(t, r.ApplicationCommands(), 1)
}
