package recent_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DVA506/SmartMove/internal/console/recent"
	"github.com/DVA506/SmartMove/pkg/options"
)

func newStore(t *testing.T, dir string) *recent.Store {
	t.Helper()
	store, err := recent.NewStore(&options.CacheOptions{Dir: dir, Capacity: 10})
	require.NoError(t, err)
	return store
}

func TestLoadWithoutStorageIsEmpty(t *testing.T) {
	store := newStore(t, t.TempDir())
	assert.Empty(t, store.Load())
}

func TestAddIsMostRecentFirst(t *testing.T) {
	store := newStore(t, t.TempDir())

	store.Add("v1")
	store.Add("v2")
	store.Add("v3")

	assert.Equal(t, []string{"v3", "v2", "v1"}, store.Load())
}

func TestAddDeduplicatesAndMovesToFront(t *testing.T) {
	store := newStore(t, t.TempDir())

	store.Add("v1")
	store.Add("v2")
	store.Add("v1")

	assert.Equal(t, []string{"v1", "v2"}, store.Load())
}

func TestAddIsIdempotentAtFront(t *testing.T) {
	store := newStore(t, t.TempDir())

	store.Add("v1")
	store.Add("v1")
	store.Add("v1")

	assert.Equal(t, []string{"v1"}, store.Load())
}

func TestAddEmptyIsNoOp(t *testing.T) {
	store := newStore(t, t.TempDir())

	store.Add("v1")
	store.Add("")

	assert.Equal(t, []string{"v1"}, store.Load())
}

func TestCapacityEvictsOldest(t *testing.T) {
	store := newStore(t, t.TempDir())

	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"} {
		store.Add(id)
	}

	got := store.Load()
	assert.Len(t, got, 10)
	assert.Equal(t, "k", got[0])
	assert.NotContains(t, got, "a")
	assert.Equal(t, got, uniqueOf(got), "no duplicates allowed")
}

func TestInvariantsUnderArbitrarySequences(t *testing.T) {
	store := newStore(t, t.TempDir())

	sequence := []string{"v1", "v2", "v1", "", "v3", "v2", "v4", "v4", "v5",
		"v6", "v7", "v8", "v9", "v10", "v11", "v12", "v2"}
	for _, id := range sequence {
		store.Add(id)
	}

	got := store.Load()
	assert.LessOrEqual(t, len(got), 10)
	assert.Equal(t, "v2", got[0], "most recently added id is first")
	assert.Equal(t, got, uniqueOf(got), "no duplicates allowed")
}

func TestPersistsAcrossStores(t *testing.T) {
	dir := t.TempDir()

	newStore(t, dir).Add("v1")

	assert.Equal(t, []string{"v1"}, newStore(t, dir).Load())
}

func TestCorruptedStorageDegradesToEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, recent.StorageKey+".json")

	for _, corrupt := range []string{`{"not":"a list"}`, `not json at all`, `42`} {
		require.NoError(t, os.WriteFile(path, []byte(corrupt), 0o644))
		assert.Empty(t, newStore(t, dir).Load(), "corrupt payload %q", corrupt)
	}
}

func TestClear(t *testing.T) {
	dir := t.TempDir()
	store := newStore(t, dir)

	store.Add("v1")
	store.Add("v2")
	store.Clear()

	assert.Empty(t, store.Load())
	// Clearing an already-empty store stays quiet.
	store.Clear()
	assert.Empty(t, store.Load())
}

func uniqueOf(in []string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
