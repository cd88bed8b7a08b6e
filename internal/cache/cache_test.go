package cache

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func newTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	c, err := NewSQLite(filepath.Join(t.TempDir(), "cache.db"), slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestSQLiteSnapshotRoundtrip(t *testing.T) {
	c := newTestSQLite(t)

	_, ok := c.LoadSnapshot("destinations")
	assert.False(t, ok, "fresh cache has no snapshot")

	require.NoError(t, c.SaveSnapshot("destinations", []byte(`[{"id":"a"}]`)))
	got, ok := c.LoadSnapshot("destinations")
	require.True(t, ok)
	assert.JSONEq(t, `[{"id":"a"}]`, string(got))

	// Overwrite wins.
	require.NoError(t, c.SaveSnapshot("destinations", []byte(`[]`)))
	got, ok = c.LoadSnapshot("destinations")
	require.True(t, ok)
	assert.Equal(t, `[]`, string(got))
}

func TestSQLiteCustomDefaultIsSeparateSlot(t *testing.T) {
	c := newTestSQLite(t)

	require.NoError(t, c.SaveSnapshot("trips", []byte(`[{"id":"seen"}]`)))
	assert.False(t, c.HasCustomDefault("trips"))

	require.NoError(t, c.SaveCustomDefault("trips", []byte(`[{"id":"baseline"}]`)))
	assert.True(t, c.HasCustomDefault("trips"))

	snap, ok := c.LoadSnapshot("trips")
	require.True(t, ok)
	assert.JSONEq(t, `[{"id":"seen"}]`, string(snap))

	def, ok := c.LoadCustomDefault("trips")
	require.True(t, ok)
	assert.JSONEq(t, `[{"id":"baseline"}]`, string(def))
}

func TestSQLiteCollectionsAreNamespaced(t *testing.T) {
	c := newTestSQLite(t)

	require.NoError(t, c.SaveSnapshot("suppliers", []byte(`["s"]`)))
	_, ok := c.LoadSnapshot("destinations")
	assert.False(t, ok)
}

func TestMemoryFallback(t *testing.T) {
	m := NewMemory()

	_, ok := m.LoadSnapshot("destinations")
	assert.False(t, ok)
	assert.False(t, m.HasCustomDefault("destinations"))

	require.NoError(t, m.SaveSnapshot("destinations", []byte(`[1]`)))
	require.NoError(t, m.SaveCustomDefault("destinations", []byte(`[2]`)))

	snap, ok := m.LoadSnapshot("destinations")
	require.True(t, ok)
	assert.Equal(t, `[1]`, string(snap))

	def, ok := m.LoadCustomDefault("destinations")
	require.True(t, ok)
	assert.Equal(t, `[2]`, string(def))
	assert.True(t, m.HasCustomDefault("destinations"))
}
