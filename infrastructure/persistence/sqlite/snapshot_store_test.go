package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SnapshotStore {
	t.Helper()
	store, err := NewSnapshotStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSnapshotStorePutGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	type payload struct {
		Name  string   `json:"name"`
		Tags  []string `json:"tags"`
		Count int      `json:"count"`
	}

	in := payload{Name: "universe", Tags: []string{"a", "b"}, Count: 3}
	require.NoError(t, store.Put(ctx, "universeNodes", in))

	var out payload
	found, err := store.Get(ctx, "universeNodes", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)
}

func TestSnapshotStoreGetMissing(t *testing.T) {
	store := newTestStore(t)

	var out map[string]interface{}
	found, err := store.Get(context.Background(), "absent", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSnapshotStoreOverwrite(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "settings", map[string]string{"theme": "dark"}))
	require.NoError(t, store.Put(ctx, "settings", map[string]string{"theme": "light"}))

	var out map[string]string
	found, err := store.Get(ctx, "settings", &out)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "light", out["theme"])
}

func TestSnapshotStoreDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "notifications", []string{"n1"}))
	require.NoError(t, store.Delete(ctx, "notifications"))

	var out []string
	found, err := store.Get(ctx, "notifications", &out)
	require.NoError(t, err)
	assert.False(t, found)

	// deleting again is a no-op
	assert.NoError(t, store.Delete(ctx, "notifications"))
}

func TestSnapshotStoreKeys(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "fusionHistory", []string{}))
	require.NoError(t, store.Put(ctx, "universeNodes", []string{}))

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"fusionHistory", "universeNodes"}, keys)
}

func TestSnapshotStoreFileBacked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots.db")
	ctx := context.Background()

	store, err := NewSnapshotStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, "universeNodes", []string{"node-origin"}))
	require.NoError(t, store.Close())

	reopened, err := NewSnapshotStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	var out []string
	found, err := reopened.Get(ctx, "universeNodes", &out)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []string{"node-origin"}, out)
}
