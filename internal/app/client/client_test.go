package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"zervitravel/internal/config"
	"zervitravel/internal/domain/travel"
)

func newTestApp(t *testing.T, serverAddress string) *App {
	t.Helper()
	cfg := &config.Config{Env: config.EnvLocal}
	cfg.Client.ServerAddress = serverAddress
	cfg.Client.DataDir = t.TempDir()

	app, err := New(cfg, slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { app.Close() })
	return app
}

func TestCollectionResolvesTheSameStore(t *testing.T) {
	app := newTestApp(t, "http://127.0.0.1:1")

	col, err := app.Collection(travel.CollectionDestinations)
	require.NoError(t, err)
	assert.Same(t, any(app.Destinations()), any(col))

	for _, name := range travel.CollectionNames() {
		c, err := app.Collection(name)
		require.NoError(t, err)
		assert.Equal(t, name, c.Name())
	}
}

func TestCollectionUnknownName(t *testing.T) {
	app := newTestApp(t, "http://127.0.0.1:1")

	_, err := app.Collection("passports")
	assert.Error(t, err)
}

func TestBootstrapAllUnreachableRemoteServesSamples(t *testing.T) {
	// Nothing listens on port 1; every collection degrades to its
	// built-in sample instead of failing.
	app := newTestApp(t, "http://127.0.0.1:1")

	require.NoError(t, app.BootstrapAll(context.Background()))

	dest := app.Destinations().Snapshot()
	assert.True(t, dest.Degraded)
	assert.Len(t, dest.Records, len(travel.SampleDestinations()))

	trips := app.Trips().Snapshot()
	assert.True(t, trips.Degraded)
	assert.NotEmpty(t, trips.Records)
}

func TestSaveAsDefaultRequiresOpenCollection(t *testing.T) {
	app := newTestApp(t, "http://127.0.0.1:1")

	err := app.SaveAsDefault(travel.CollectionDestinations)
	assert.Error(t, err, "collection was never opened in this session")
}
