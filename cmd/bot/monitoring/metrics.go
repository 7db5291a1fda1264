package monitoring

import (
	"fmt"

	"github.com/lirobabyxoxo/Sayaburradocarlaho/cmd/bot/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TotalDiscordEvents is the total number of events.
	TotalDiscordEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_total_discord_events", config.AppName),
			Help: "Total number of events",
		},
		[]string{"event"},
	)

	// HttpTotalRequests is the total number of http requests.
	HttpTotalRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_http_total_requests", config.AppName),
			Help: "Total number of http requests",
		},
		[]string{"path", "method", "status_code"},
	)

	// HttpRequestDuration is the duration of the http request.
	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: fmt.Sprintf("%s_http_request_duration", config.AppName),
			Help: "Duration of the http request",
		},
		[]string{"path", "method", "status_code"},
	)

	// TotalDiscordGuilds is the number of guilds the bot is in.
	TotalDiscordGuilds = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: fmt.Sprintf("%s_total_discord_guilds", config.AppName),
			Help: "Total number of discord guilds",
		},
	)

	// CommandsTotal is the number of dispatched commands by outcome.
	CommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_commands_total", config.AppName),
			Help: "Total number of dispatched commands",
		},
		[]string{"command", "kind", "outcome"},
	)

	// CommandDuration is the duration of handled commands.
	CommandDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: fmt.Sprintf("%s_command_duration_seconds", config.AppName),
			Help: "Duration of the discord command",
		},
		[]string{"command", "kind"},
	)
)
