package settings

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "settings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	keys, err := store.ChannelProjects(ctx, "#ops")
	require.NoError(t, err)
	assert.Nil(t, keys)

	require.NoError(t, store.SetChannelProjects(ctx, "#ops", []string{"OPS", "INFRA"}))

	keys, err = store.ChannelProjects(ctx, "#ops")
	require.NoError(t, err)
	assert.Equal(t, []string{"OPS", "INFRA"}, keys)
}

func TestSQLiteStore_OrderPreserved(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	want := []string{"ZZZ", "AAA", "MMM"}
	require.NoError(t, store.SetChannelProjects(ctx, "#ops", want))

	keys, err := store.ChannelProjects(ctx, "#ops")
	require.NoError(t, err)
	assert.Equal(t, want, keys)
}

func TestSQLiteStore_Overwrite(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetChannelProjects(ctx, "#ops", []string{"OPS"}))
	require.NoError(t, store.SetChannelProjects(ctx, "#ops", []string{"BILL"}))

	keys, err := store.ChannelProjects(ctx, "#ops")
	require.NoError(t, err)
	assert.Equal(t, []string{"BILL"}, keys)
}

func TestSQLiteStore_Clear(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetChannelProjects(ctx, "#ops", []string{"OPS"}))
	require.NoError(t, store.ClearChannel(ctx, "#ops"))

	keys, err := store.ChannelProjects(ctx, "#ops")
	require.NoError(t, err)
	assert.Nil(t, keys)
}

func TestSQLiteStore_ChannelsAreIndependent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetChannelProjects(ctx, "#ops", []string{"OPS"}))
	require.NoError(t, store.SetChannelProjects(ctx, "#billing", []string{"BILL"}))

	keys, err := store.ChannelProjects(ctx, "#ops")
	require.NoError(t, err)
	assert.Equal(t, []string{"OPS"}, keys)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.SetChannelProjects(ctx, "#ops", []string{"OPS"}))
	keys, err := store.ChannelProjects(ctx, "#ops")
	require.NoError(t, err)
	assert.Equal(t, []string{"OPS"}, keys)

	// The store keeps its own copy of the slice.
	in := []string{"A"}
	require.NoError(t, store.SetChannelProjects(ctx, "#x", in))
	in[0] = "mutated"
	keys, _ = store.ChannelProjects(ctx, "#x")
	assert.Equal(t, []string{"A"}, keys)

	require.NoError(t, store.ClearChannel(ctx, "#ops"))
	keys, _ = store.ChannelProjects(ctx, "#ops")
	assert.Nil(t, keys)
}
