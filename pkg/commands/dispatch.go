package commands

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/lirobabyxoxo/Sayaburradocarlaho/pkg/logging"
	"github.com/lirobabyxoxo/Sayaburradocarlaho/pkg/messages"
	"golang.org/x/time/rate"
)

// Outcome is the result of dispatching an invocation.
type Outcome string

const (
	// OutcomeHandled means the command ran to completion.
	OutcomeHandled Outcome = "handled"

	// OutcomeUnknown means no command is registered under the name.
	OutcomeUnknown Outcome = "unknown"

	// OutcomeUnsupported means the command has no entry point for the kind of invocation.
	OutcomeUnsupported Outcome = "unsupported"

	// OutcomeRateLimited means the user sent commands too quickly.
	OutcomeRateLimited Outcome = "rate_limited"

	// OutcomePanic means the command panicked.
	OutcomePanic Outcome = "panic"
)

// Dispatcher routes invocations to registered commands.
type Dispatcher struct {
	// registry holds the commands.
	registry *Registry

	// env is passed to every command.
	env *Env

	// limiter limits commands per user. Nil disables limiting.
	limiter *UserLimiter
}

// NewDispatcher returns a dispatcher. limiter may be nil.
func NewDispatcher(registry *Registry, env *Env, limiter *UserLimiter) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		env:      env,
		limiter:  limiter,
	}
}

// Registry returns the dispatcher's registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// ParsePrefix splits a prefixed message into the command name and its arguments.
// It reports false when content does not start with the prefix or names no command.
func (d *Dispatcher) ParsePrefix(content string) (string, []string, bool) {
	return ParsePrefix(d.env.Prefix, content)
}

// ParsePrefix splits content into a lowercase command name and arguments when it starts with prefix.
func ParsePrefix(prefix, content string) (string, []string, bool) {
	if prefix == "" || !strings.HasPrefix(content, prefix) {
		return "", nil, false
	}

	fields := strings.Fields(strings.TrimPrefix(content, prefix))
	if len(fields) == 0 {
		return "", nil, false
	}
	return strings.ToLower(fields[0]), fields[1:], true
}

// Dispatch runs the command registered under name for inv.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, inv *Invocation) (outcome Outcome) {
	if inv.Logger == nil {
		inv.Logger = d.env.logger()
	}
	l := inv.Logger.With(
		slog.String(logging.KeyCommand, name),
		slog.String("kind", inv.Kind.String()),
	)
	inv.Logger = l

	cmd, ok := d.registry.Lookup(name)
	if !ok {
		if inv.Kind == KindSlash {
			d.replyError(ctx, inv, messages.ErrUserErrorProcessing)
		}
		return OutcomeUnknown
	}

	h := cmd.handler(inv.Kind)
	if h == nil {
		if inv.Kind == KindSlash {
			d.replyError(ctx, inv, messages.ErrUserErrorProcessing)
		}
		return OutcomeUnsupported
	}

	if d.limiter != nil && !d.limiter.Allow(inv.UserID()) {
		l.Debug("user rate limited", slog.String("user_id", inv.UserID()))
		d.replyError(ctx, inv, messages.RateLimited)
		return OutcomeRateLimited
	}

	defer func() {
		if r := recover(); r != nil {
			l.Error("command panicked",
				slog.String(logging.KeyError, fmt.Sprint(r)),
				slog.String("stack", string(debug.Stack())),
			)
			d.replyError(ctx, inv, messages.ErrUserErrorProcessing)
			outcome = OutcomePanic
		}
	}()

	h(ctx, d.env, inv)
	return OutcomeHandled
}

func (d *Dispatcher) replyError(ctx context.Context, inv *Invocation, msg string) {
	err := inv.Reply(ctx, &Response{
		Embeds:    embeds(d.env.embed(messages.ErrTitle, msg, d.env.Palette.Error)),
		Ephemeral: true,
	})
	if err != nil {
		inv.log().Error("error replying to invocation", slog.String(logging.KeyError, err.Error()))
	}
}

// limiterIdle is how long a user's limiter is kept after their last command.
const limiterIdle = 10 * time.Minute

type userLimit struct {
	l        *rate.Limiter
	lastSeen time.Time
}

// UserLimiter is a per-user token bucket.
type UserLimiter struct {
	mu     sync.Mutex
	limit  rate.Limit
	burst  int
	users  map[string]*userLimit
	now    func() time.Time
	sweepN int
}

// NewUserLimiter returns a limiter allowing perSecond commands per user with the given burst.
func NewUserLimiter(perSecond float64, burst int) *UserLimiter {
	if burst < 1 {
		burst = 1
	}
	return &UserLimiter{
		limit: rate.Limit(perSecond),
		burst: burst,
		users: make(map[string]*userLimit),
		now:   time.Now,
	}
}

// Allow reports whether the user may run a command now.
func (u *UserLimiter) Allow(userID string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	now := u.now()
	ul, ok := u.users[userID]
	if !ok {
		ul = &userLimit{l: rate.NewLimiter(u.limit, u.burst)}
		u.users[userID] = ul
	}
	ul.lastSeen = now

	u.sweepN++
	if u.sweepN >= 256 {
		u.sweepN = 0
		u.sweep(now)
	}

	return ul.l.AllowN(now, 1)
}

func (u *UserLimiter) sweep(now time.Time) {
	for id, ul := range u.users {
		if now.Sub(ul.lastSeen) > limiterIdle {
			delete(u.users, id)
		}
	}
}

func embeds(e ...*discordgo.MessageEmbed) []*discordgo.MessageEmbed {
	return e
}
