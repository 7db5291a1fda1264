package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Handler runs a command.
type Handler func(ctx context.Context, env *Env, inv *Invocation)

// Command is a bot command.
type Command struct {
	// Name is the canonical lowercase name, shared by the prefix and slash forms.
	Name string

	// Aliases are alternative prefix names.
	Aliases []string

	// Description is the short description shown in the command picker.
	Description string

	// Definition is the slash command definition. Nil when the command has no slash form.
	Definition *discordgo.ApplicationCommand

	// Execute handles prefix invocations. Nil when the command has no prefix form.
	Execute Handler

	// ExecuteSlash handles slash invocations. Nil when the command has no slash form.
	ExecuteSlash Handler
}

// handler returns the entry point for the kind of invocation.
func (c *Command) handler(k Kind) Handler {
	switch k {
	case KindPrefix:
		return c.Execute
	case KindSlash:
		return c.ExecuteSlash
	default:
		return nil
	}
}

var (
	// ErrInvalidCommand is returned when a command has no name or no entry point.
	ErrInvalidCommand = errors.New("invalid command")

	// ErrDuplicateCommand is returned when two commands share a name or alias.
	ErrDuplicateCommand = errors.New("duplicate command")
)

// Registry maps command names and aliases to commands.
type Registry struct {
	// commands are the registered commands in registration order.
	commands []*Command

	// byName maps lowercase names and aliases to commands.
	byName map[string]*Command
}

// NewRegistry returns a registry of cmds.
func NewRegistry(cmds ...*Command) (*Registry, error) {
	r := &Registry{
		commands: make([]*Command, 0, len(cmds)),
		byName:   make(map[string]*Command),
	}

	for _, c := range cmds {
		if err := r.add(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// NewDefaultRegistry returns a registry of every command the bot ships.
func NewDefaultRegistry() (*Registry, error) {
	return NewRegistry(NewHelpCommand(), NewTicketCommand())
}

func (r *Registry) add(c *Command) error {
	if c == nil || c.Name == "" {
		return ErrInvalidCommand
	}
	if c.Execute == nil && c.ExecuteSlash == nil {
		return fmt.Errorf("%w: %s has no entry point", ErrInvalidCommand, c.Name)
	}
	if c.ExecuteSlash != nil && c.Definition == nil {
		return fmt.Errorf("%w: %s has a slash handler but no definition", ErrInvalidCommand, c.Name)
	}

	names := append([]string{c.Name}, c.Aliases...)
	for _, n := range names {
		key := strings.ToLower(n)
		if _, ok := r.byName[key]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateCommand, key)
		}
	}
	for _, n := range names {
		r.byName[strings.ToLower(n)] = c
	}

	r.commands = append(r.commands, c)
	return nil
}

// Lookup returns the command registered under name or alias. The lookup is case-insensitive.
func (r *Registry) Lookup(name string) (*Command, bool) {
	c, ok := r.byName[strings.ToLower(name)]
	return c, ok
}

// Commands returns the registered commands in registration order.
func (r *Registry) Commands() []*Command {
	out := make([]*Command, len(r.commands))
	copy(out, r.commands)
	return out
}

// ApplicationCommands returns the slash command definitions to register with Discord.
func (r *Registry) ApplicationCommands() []*discordgo.ApplicationCommand {
	defs := make([]*discordgo.ApplicationCommand, 0, len(r.commands))
	for _, c := range r.commands {
		if c.Definition != nil {
			defs = append(defs, c.Definition)
		}
	}
	return defs
}
