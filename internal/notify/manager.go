// Package notify is the chat adapter: it receives Slack mentions over
// Socket Mode, turns each one into a command invocation, and posts the
// Result back to the channel.
package notify

import (
	"context"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"
	"github.com/spf13/viper"

	"jirabot/internal/bot"
	"jirabot/internal/settings"
)

// Manager owns the Slack connection and the bridge into the dispatcher.
type Manager struct {
	client       *slack.Client
	socketClient *socketmode.Client

	bot   *bot.Bot
	store settings.Store
}

// NewManager creates a Manager wired to the given dispatcher and settings
// store. Tokens come from the environment; a missing bot token leaves the
// Slack side disabled.
func NewManager(b *bot.Bot, store settings.Store) *Manager {
	m := &Manager{bot: b, store: store}
	m.initSlack()
	return m
}

func (m *Manager) initSlack() {
	if !viper.GetBool("slack.enabled") {
		return
	}

	botToken := os.Getenv("SLACK_BOT_USER_TOKEN")
	appToken := os.Getenv("SLACK_APP_TOKEN")

	if botToken == "" {
		slog.Warn("SLACK_BOT_USER_TOKEN not set, slack disabled")
		return
	}

	api := slack.New(
		botToken,
		slack.OptionAppLevelToken(appToken),
	)
	m.client = api

	if appToken != "" && strings.HasPrefix(appToken, "xapp-") {
		m.socketClient = socketmode.New(api)
	}
}

// Connected reports whether a Socket Mode connection is configured.
func (m *Manager) Connected() bool {
	return m.socketClient != nil
}

// Run blocks serving the Socket Mode connection until the context ends.
func (m *Manager) Run(ctx context.Context) error {
	if m.socketClient == nil {
		return nil
	}
	go m.HandleEvents(ctx)
	err := m.socketClient.RunContext(ctx)
	if err != nil && err != context.Canceled {
		return err
	}
	return nil
}

// mentionPrefix strips the bot's own <@U…> mention from the start of a
// message so only the command text remains.
var mentionPrefix = regexp.MustCompile(`^\s*<@[^>]+>\s*`)

// invocationFor builds the immutable per-invocation context for one mention.
func (m *Manager) invocationFor(ctx context.Context, user, channel, text string) bot.Invocation {
	inv := bot.Invocation{
		Text:    mentionPrefix.ReplaceAllString(text, ""),
		User:    user,
		Channel: channel,
	}
	if m.store != nil {
		keys, err := m.store.ChannelProjects(ctx, channel)
		if err != nil {
			slog.Warn("failed to load channel settings", "channel", channel, "error", err)
		} else {
			inv.Settings = bot.ChannelSettings{ProjectKeys: keys}
		}
	}
	return inv
}

// respond dispatches one mention and posts the Result text back, threaded on
// the triggering message.
func (m *Manager) respond(ctx context.Context, user, channel, text, threadTS string) {
	inv := m.invocationFor(ctx, user, channel, text)
	res := m.bot.Dispatch(ctx, inv)

	reply := res.Text()
	if reply == "" {
		reply = "Done"
	}
	opts := []slack.MsgOption{slack.MsgOptionText(reply, false)}
	if threadTS != "" {
		opts = append(opts, slack.MsgOptionTS(threadTS))
	}
	if _, _, err := m.client.PostMessageContext(ctx, channel, opts...); err != nil {
		slog.Error("failed to post reply", "channel", channel, "error", err)
	}
}
