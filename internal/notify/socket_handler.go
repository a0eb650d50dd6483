package notify

import (
	"context"
	"log/slog"

	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"
)

// HandleEvents listens for incoming Socket Mode events and dispatches app
// mentions as commands. Each mention runs in its own goroutine; all state a
// command needs travels inside its Invocation, so concurrent mentions from
// different channels never interfere.
func (m *Manager) HandleEvents(ctx context.Context) {
	if m.socketClient == nil {
		return
	}
	m.handleEventsLoop(ctx, m.socketClient.Events, func(req socketmode.Request) {
		m.socketClient.Ack(req)
	})
}

func (m *Manager) handleEventsLoop(ctx context.Context, events <-chan socketmode.Event, ackFunc func(socketmode.Request)) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt := <-events:
			switch evt.Type {
			case socketmode.EventTypeConnecting:
				slog.Info("connecting to Slack Socket Mode")
			case socketmode.EventTypeConnectionError:
				slog.Warn("Slack connection failed, retrying later")
			case socketmode.EventTypeConnected:
				slog.Info("connected to Slack Socket Mode")
			case socketmode.EventTypeEventsAPI:
				eventsAPIEvent, ok := evt.Data.(slackevents.EventsAPIEvent)
				if !ok {
					continue
				}
				if evt.Request != nil {
					ackFunc(*evt.Request)
				}

				switch eventsAPIEvent.Type {
				case slackevents.CallbackEvent:
					innerEvent := eventsAPIEvent.InnerEvent
					switch ev := innerEvent.Data.(type) {
					case *slackevents.AppMentionEvent:
						go m.respond(ctx, ev.User, ev.Channel, ev.Text, ev.TimeStamp)
					}
				}
			}
		}
	}
}
