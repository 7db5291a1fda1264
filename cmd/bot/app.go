package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/gorilla/mux"
	"github.com/lirobabyxoxo/Sayaburradocarlaho/cmd/bot/config"
	"github.com/lirobabyxoxo/Sayaburradocarlaho/cmd/bot/monitoring"
	"github.com/lirobabyxoxo/Sayaburradocarlaho/pkg/commands"
	"github.com/lirobabyxoxo/Sayaburradocarlaho/pkg/dataaccess"
	"github.com/lirobabyxoxo/Sayaburradocarlaho/pkg/logging"
	"github.com/lirobabyxoxo/Sayaburradocarlaho/pkg/request"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// PathMetrics is the path for metrics.
	PathMetrics = "/metrics"

	// PathHealth is the path for the health check.
	PathHealth = "/health"

	// shutdownTimeout bounds the graceful shutdown of the monitoring server.
	shutdownTimeout = 10 * time.Second

	// eventBuffer is the size of the event notifier buffer.
	eventBuffer = 100
)

// IApp is the interface for the application.
type IApp interface {
	// Session returns the discord session.
	Session() *discordgo.Session

	// Log returns the application logger.
	Log() *slog.Logger
}

type App struct {
	// is the logger.
	*slog.Logger

	// r is the router for the application.
	r *mux.Router

	// svr is the server for the application.
	svr *http.Server

	// s is the discord session.
	s *discordgo.Session

	// c is the application configuration.
	c *config.Config

	// store is the guild configuration store.
	store dataaccess.GuildStore

	// dispatcher routes commands.
	dispatcher *commands.Dispatcher

	// ctx is cancelled when the application shuts down.
	ctx context.Context

	// eventNotifier is the channel for notifying of events.
	eventNotifier chan *discordgo.Event
}

// NewApp creates a new instance of App.
func NewApp(
	l *slog.Logger,
	r *mux.Router,
	c *config.Config,
	s *discordgo.Session,
	store dataaccess.GuildStore,
	d *commands.Dispatcher,
) *App {
	return &App{
		Logger:     l,
		r:          r,
		c:          c,
		s:          s,
		store:      store,
		dispatcher: d,
		ctx:        context.Background(),
	}
}

// Run connects to Discord and serves until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.ctx = ctx

	// Default the number of guilds to 0.
	monitoring.TotalDiscordGuilds.Set(0)

	if a.eventNotifier == nil {
		// Buffered so a slow listener never blocks the gateway.
		a.eventNotifier = make(chan *discordgo.Event, eventBuffer)
	}

	a.s.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		a.Info("Logged in", slog.String("user", r.User.String()), slog.Int("guilds", len(r.Guilds)))
	})

	a.RegisterDiscordHandlers()

	// Start event listener.
	go a.eventListener(ctx)

	// Open websocket.
	if err := a.s.Open(); err != nil {
		return fmt.Errorf("error opening connection to Discord: %w", err)
	}

	a.Info("Bot is now running.", slog.String("prefix", a.c.Prefix))

	a.generateServer()
	a.setupRoutes()
	a.runServer()

	<-ctx.Done()
	a.Info("Received shutdown signal")

	return a.ShutdownHook()
}

// ShutdownHook stops the monitoring server, removes slash commands and closes the Discord connection.
func (a *App) ShutdownHook() error {
	// Reset the total number of guilds to 0.
	monitoring.TotalDiscordGuilds.Set(0)

	var errs []error

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if a.svr != nil {
		if err := a.svr.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("error shutting down monitoring server: %w", err))
		}
	}

	// Unregister slash commands.
	if err := a.unregisterSlashCommands(ctx); err != nil {
		errs = append(errs, fmt.Errorf("error unregistering slash commands: %w", err))
	}

	// Close the connection to Discord.
	if err := a.s.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing connection to Discord: %w", err))
	}
	return errors.Join(errs...)
}

func (a *App) runServer() {
	go func() {
		a.Info("Starting monitoring server", slog.String("addr", a.svr.Addr))
		if err := a.svr.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Error("Error starting monitoring server", slog.String(logging.KeyError, err.Error()))
			a.Warn("Monitoring server will not be available")
		}
	}()
}

func (a *App) setupRoutes() {
	a.r.HandleFunc(PathMetrics, middlewareHttp(promhttp.Handler().ServeHTTP, authOptionNone, a)).Methods(http.MethodGet)
	a.r.HandleFunc(PathHealth, middlewareHttp(a.healthCheck(), authOptionNone, a)).Methods(http.MethodGet)

	// NotFoundHandler is the handler for 404.
	a.r.NotFoundHandler = request.NotFoundHandler(a.Logger)

	// MethodNotAllowedHandler is the handler for 405.
	a.r.MethodNotAllowedHandler = request.MethodNotAllowedHandler(a.Logger)
}

func (a *App) generateServer() {
	a.svr = &http.Server{
		Addr:              ":" + a.c.MonitoringPort,
		Handler:           a.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func (a *App) RegisterDiscordHandlers() {
	// Bot joined guild, or the guild became available.
	a.s.AddHandler(guildJoinedHandler(a))

	// Bot left guild.
	a.s.AddHandler(guildLeaveHandler(a))

	// Legacy prefix commands.
	a.s.AddHandler(messageCreateHandler(a))

	// Slash commands.
	a.s.AddHandler(interactionCreateHandler(a))

	// Every gateway event, for metrics.
	a.s.AddHandler(func(_ *discordgo.Session, e *discordgo.Event) {
		select {
		case a.eventNotifier <- e:
		default:
			recordDroppedEvent()
		}
	})
}

func (a *App) eventListener(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case e := <-a.eventNotifier:
			if e.Type != "" {
				monitoring.TotalDiscordEvents.WithLabelValues(e.Type).Inc()
			} else {
				// If there is no type, then use the operation name.
				monitoring.TotalDiscordEvents.WithLabelValues(fmt.Sprintf("OP_%d", e.Operation)).Inc()
			}
		}
	}
}

// recordDroppedEvent records an event the listener had no room for.
func recordDroppedEvent() {
	monitoring.TotalDiscordEvents.WithLabelValues("DROPPED").Inc()
}

// applicationID returns the configured application ID, falling back to the bot user.
func (a *App) applicationID() string {
	if a.c.ApplicationId != "" {
		return a.c.ApplicationId
	}
	if a.s.State != nil && a.s.State.User != nil {
		return a.s.State.User.ID
	}
	return ""
}

func (a *App) registerSlashCommands(ctx context.Context, guildID string) error {
	defs := a.dispatcher.Registry().ApplicationCommands()
	if _, err := a.s.ApplicationCommandBulkOverwrite(a.applicationID(), guildID, defs, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("error registering commands for guild %s: %w", guildID, err)
	}
	return nil
}

func (a *App) unregisterSlashCommands(ctx context.Context) error {
	if a.s.State == nil {
		return nil
	}

	a.s.State.RLock()
	guildIDs := make([]string, 0, len(a.s.State.Guilds))
	for _, g := range a.s.State.Guilds {
		guildIDs = append(guildIDs, g.ID)
	}
	a.s.State.RUnlock()

	var errs []error
	for _, id := range guildIDs {
		_, err := a.s.ApplicationCommandBulkOverwrite(a.applicationID(), id, []*discordgo.ApplicationCommand{}, discordgo.WithContext(ctx))
		if err != nil {
			errs = append(errs, fmt.Errorf("guild %s: %w", id, err))
		}
	}
	return errors.Join(errs...)
}

func (a *App) Session() *discordgo.Session {
	return a.s
}

func (a *App) Log() *slog.Logger {
	return a.Logger
}

// commandLabel keeps unknown command names out of metric labels.
func commandLabel(name string, outcome commands.Outcome) string {
	if outcome == commands.OutcomeUnknown {
		return "unknown"
	}
	return strings.ToLower(name)
}
