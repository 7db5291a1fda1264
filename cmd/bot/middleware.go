package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/lirobabyxoxo/Sayaburradocarlaho/cmd/bot/monitoring"
	"github.com/lirobabyxoxo/Sayaburradocarlaho/pkg/commands"
	"github.com/lirobabyxoxo/Sayaburradocarlaho/pkg/logging"
	"github.com/lirobabyxoxo/Sayaburradocarlaho/pkg/request"
)

// commandTimeout bounds a single command invocation.
const commandTimeout = 15 * time.Second

// authOption is an option for the auth middleware. It indicates the type of authentication required.
type authOption int

const (
	// authOptionNone indicates that no authentication is required.
	authOptionNone authOption = iota
)

type Controller func(w http.ResponseWriter, r *http.Request)

func middlewareHttp(handler Controller, _ authOption, a IApp) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now().UTC()
		cw := request.NewClientWriter(w)

		// Recover from any panics that occur in the handler.
		defer func() {
			if rec := recover(); rec != nil {
				a.Log().Error("Panic in handler",
					slog.String(logging.KeyError, fmt.Sprint(rec)),
					slog.String("stack", string(debug.Stack())),
				)
				request.Encode(a.Log(), cw, http.StatusInternalServerError, request.NewMessage(request.ErrInternalServer.Error()))
			}
		}()

		var path string
		route := mux.CurrentRoute(r)
		if route != nil { // The route may be nil if the request is not routed.
			var err error
			path, err = route.GetPathTemplate()
			if err != nil {
				// An error here is only returned if the route does not define a path.
				a.Log().Error("Error getting path template", slog.String(logging.KeyError, err.Error()))
				path = r.URL.Path
			}
		} else {
			path = r.URL.Path
		}

		defer func() {
			// The status code is only known once the handler has run.
			monitoring.HttpTotalRequests.WithLabelValues(path, r.Method, fmt.Sprintf("%d", cw.StatusCode())).Inc()
			monitoring.HttpRequestDuration.WithLabelValues(path, r.Method, fmt.Sprintf("%d", cw.StatusCode())).Observe(time.Since(now).Seconds())
		}()

		handler(cw, r)
	}
}

// messageCreateHandler is the handler for legacy prefix commands.
func messageCreateHandler(a *App) func(s *discordgo.Session, m *discordgo.MessageCreate) {
	return func(s *discordgo.Session, m *discordgo.MessageCreate) {
		name, inv, ok := prefixInvocation(a.dispatcher, m)
		if !ok {
			return
		}

		inv.Responder = &messageResponder{s: s, m: m.Message}
		if perms, err := s.State.UserChannelPermissions(m.Author.ID, m.ChannelID); err == nil {
			inv.Permissions = perms
		}

		a.dispatch(name, inv)
	}
}

// interactionCreateHandler is the handler for slash commands.
func interactionCreateHandler(a *App) func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		name, inv, ok := slashInvocation(i)
		if !ok {
			return
		}

		inv.Responder = &interactionResponder{s: s, i: i.Interaction}
		a.dispatch(name, inv)
	}
}

// prefixInvocation builds an invocation from a prefixed message. It reports false for messages that are not commands.
func prefixInvocation(d *commands.Dispatcher, m *discordgo.MessageCreate) (string, *commands.Invocation, bool) {
	if m.Message == nil || m.Author == nil || m.Author.Bot {
		return "", nil, false
	}

	name, args, ok := d.ParsePrefix(m.Content)
	if !ok {
		return "", nil, false
	}

	return name, &commands.Invocation{
		Kind:      commands.KindPrefix,
		GuildID:   m.GuildID,
		ChannelID: m.ChannelID,
		User:      m.Author,
		Args:      args,
	}, true
}

// slashInvocation builds an invocation from an application command interaction. Other interactions report false.
func slashInvocation(i *discordgo.InteractionCreate) (string, *commands.Invocation, bool) {
	if i.Interaction == nil || i.Type != discordgo.InteractionApplicationCommand {
		return "", nil, false
	}

	data := i.ApplicationCommandData()
	inv := &commands.Invocation{
		Kind:      commands.KindSlash,
		GuildID:   i.GuildID,
		ChannelID: i.ChannelID,
		User:      i.User,
		Data:      &data,
	}
	if i.Member != nil {
		inv.User = i.Member.User
		inv.Permissions = i.Member.Permissions
	}
	if inv.User == nil {
		return "", nil, false
	}

	return data.Name, inv, true
}

// dispatch runs the command with an invocation scoped logger and records its outcome.
func (a *App) dispatch(name string, inv *commands.Invocation) {
	start := time.Now()

	inv.Logger = a.Logger.With(
		slog.String(logging.KeyInvocationID, uuid.NewString()),
		slog.String("user_id", inv.UserID()),
	)
	if inv.GuildID != "" {
		inv.Logger = inv.Logger.With(slog.String(logging.KeyGuildID, inv.GuildID))
	}

	ctx, cancel := context.WithTimeout(a.ctx, commandTimeout)
	defer cancel()

	outcome := a.dispatcher.Dispatch(ctx, name, inv)

	label := commandLabel(name, outcome)
	kind := inv.Kind.String()
	monitoring.CommandsTotal.WithLabelValues(label, kind, string(outcome)).Inc()
	if outcome == commands.OutcomeHandled {
		monitoring.CommandDuration.WithLabelValues(label, kind).Observe(time.Since(start).Seconds())
	}

	inv.Logger.Debug("Command dispatched",
		slog.String(logging.KeyCommand, name),
		slog.String("outcome", string(outcome)),
		slog.Duration("took", time.Since(start)),
	)
}
