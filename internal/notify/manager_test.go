package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jirabot/internal/bot"
	"jirabot/internal/jira"
	"jirabot/internal/settings"
)

// stubAPI embeds the interface so only overridden methods matter; commands
// that never reach the tracker work with the zero value.
type stubAPI struct {
	jira.API
}

func newTestBot(t *testing.T) *bot.Bot {
	t.Helper()
	b, err := bot.New(stubAPI{}, "")
	require.NoError(t, err)
	return b
}

func TestMentionPrefix(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"<@U123ABC> show PROJ-1", "show PROJ-1"},
		{"  <@U123ABC>   projects", "projects"},
		{"show PROJ-1", "show PROJ-1"},
		{"<@U123ABC>", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, mentionPrefix.ReplaceAllString(tc.in, ""))
	}
}

func TestInvocationFor(t *testing.T) {
	store := settings.NewMemoryStore()
	require.NoError(t, store.SetChannelProjects(context.Background(), "C42", []string{"INFRA", "WEB"}))

	m := &Manager{bot: newTestBot(t), store: store}

	inv := m.invocationFor(context.Background(), "U1", "C42", "<@UBOT> recent")
	assert.Equal(t, "recent", inv.Text)
	assert.Equal(t, "U1", inv.User)
	assert.Equal(t, "C42", inv.Channel)
	assert.Equal(t, []string{"INFRA", "WEB"}, inv.Settings.ProjectKeys)
}

func TestInvocationFor_NoStore(t *testing.T) {
	m := &Manager{bot: newTestBot(t)}

	inv := m.invocationFor(context.Background(), "U1", "C1", "projects")
	assert.Empty(t, inv.Settings.ProjectKeys)
}

func TestRespond_PostsReply(t *testing.T) {
	var mu sync.Mutex
	var gotText, gotThread string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		mu.Lock()
		gotText = r.FormValue("text")
		gotThread = r.FormValue("thread_ts")
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"ok": true, "channel": "C1", "ts": "100.200"})
	}))
	defer srv.Close()

	m := &Manager{
		client: slack.New("xoxb-test", slack.OptionAPIURL(srv.URL+"/")),
		bot:    newTestBot(t),
	}

	m.respond(context.Background(), "U1", "C1", "<@UBOT> bogus command", "100.100")

	mu.Lock()
	defer mu.Unlock()
	assert.Contains(t, gotText, "unrecognized command")
	assert.Equal(t, "100.100", gotThread)
}

func TestConnected(t *testing.T) {
	m := &Manager{}
	assert.False(t, m.Connected())
}

func TestRun_NoSocketClient(t *testing.T) {
	m := &Manager{}
	assert.NoError(t, m.Run(context.Background()))
}
