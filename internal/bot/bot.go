package bot

import (
	"context"
	"log/slog"
	"time"

	"jirabot/internal/jira"
	"jirabot/internal/telemetry"
)

// Bot wires the router, the option parser and the response classifier to a
// tracker API. One Bot serves all channels; everything per-invocation
// travels inside the Invocation value.
type Bot struct {
	api            jira.API
	router         *Router
	defaultProject string
	metrics        *telemetry.CommandMetrics
}

// Option configures a Bot.
type Option func(*Bot)

// WithMetrics attaches command metrics to the dispatcher.
func WithMetrics(m *telemetry.CommandMetrics) Option {
	return func(b *Bot) { b.metrics = m }
}

// New builds a Bot with the full command table. defaultProject is the global
// fallback project key and may be empty. Route registration order is part of
// the contract: a reordering can change which handler fires, so the table
// below keeps the more specific patterns first and New verifies no route
// shadows a later one.
func New(api jira.API, defaultProject string, opts ...Option) (*Bot, error) {
	b := &Bot{
		api:            api,
		router:         NewRouter(),
		defaultProject: defaultProject,
	}
	for _, opt := range opts {
		opt(b)
	}

	key := "(" + jira.IssueKeyRegex.String() + ")"
	table := []struct {
		name    string
		pattern string
		handler HandlerFunc
	}{
		{"projects", `projects\s*$`, b.handleProjects},
		{"parse", `parse (.+)$`, b.handleParse},
		{"show", `show ` + key + `\s*$`, b.handleShow},
		{"delete", `delete ` + key + `\s*$`, b.handleDelete},
		{"components", `components\s*$`, b.handleComponents},
		{"versions", `versions(?:\s+(\S+))?\s*$`, b.handleVersions},
		{"recent", `recent\s*$`, b.handleRecent},
		{"pri", `pri\s*$`, b.handlePri},
		{"users", `users(?:\s+(\S+))?\s*$`, b.handleUsers},
		{"assign", `assign ` + key + `\s+(\S+)\s*$`, b.handleAssign},
		{"comment", `comment ` + key + `\s+(.+)$`, b.handleComment},
		{"search", `search (.+)$`, b.handleSearch},
		{"jql", `jql (.+)$`, b.handleJQL},
		{"create", `create (.+)$`, b.handleCreate},
		{"update", `update ` + key + `(.*)$`, b.handleUpdate},
		{"resolve", `resolve ` + key + `\s+(.+)$`, b.handleResolve},
	}
	for _, r := range table {
		if err := b.router.Handle(r.name, r.pattern, r.handler); err != nil {
			return nil, err
		}
	}
	if err := b.router.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Dispatch runs one command invocation end to end and always returns a
// Result; no error ever escapes to the chat layer.
func (b *Bot) Dispatch(ctx context.Context, inv Invocation) Result {
	start := time.Now()
	name, res := b.router.Dispatch(ctx, inv)
	b.metrics.Record(name, res.IsError(), time.Since(start))
	if res.IsError() {
		slog.Debug("command failed", "command", name, "user", inv.User, "channel", inv.Channel, "error", res.Err)
	} else {
		slog.Debug("command handled", "command", name, "user", inv.User, "channel", inv.Channel)
	}
	return res
}
