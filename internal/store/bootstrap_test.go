package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zervitravel/internal/remote"
)

func sampleDataset() []testRec {
	return []testRec{
		{ID: "great-wall", Name: "Great Wall of China"},
		{ID: "forbidden-city", Name: "Forbidden City"},
	}
}

func TestBootstrapSeedsEmptyRemoteOnce(t *testing.T) {
	table := &fakeTable{}
	s, _ := newTestStore(t, table, testDesc(sampleDataset()...))

	require.NoError(t, s.Bootstrap(context.Background()))

	table.mu.Lock()
	require.Equal(t, 2, table.insertCalls, "one insert per sample record")
	require.Len(t, table.rows, 2)
	assert.Equal(t, "great-wall", table.rows[0]["id"], "sample order preserved")
	assert.Equal(t, "forbidden-city", table.rows[1]["id"])
	table.mu.Unlock()

	snap := s.Snapshot()
	assert.False(t, snap.Degraded)
	require.Len(t, snap.Records, 2)
	for _, rec := range snap.Records {
		assert.NotEmpty(t, rec.CreatedAt, "timestamps are server-assigned")
	}

	// A second run in the same session makes zero additional calls.
	before := table.calls()
	require.NoError(t, s.Bootstrap(context.Background()))
	assert.Equal(t, before, table.calls())
}

func TestBootstrapSkipsPopulatedRemote(t *testing.T) {
	table := &fakeTable{}
	table.seedRow("existing", "Already there")
	s, _ := newTestStore(t, table, testDesc(sampleDataset()...))

	require.NoError(t, s.Bootstrap(context.Background()))

	table.mu.Lock()
	assert.Zero(t, table.insertCalls)
	table.mu.Unlock()
	require.Len(t, s.Records(), 1)
}

func TestBootstrapPrefersCustomDefault(t *testing.T) {
	table := &fakeTable{}
	s, kv := newTestStore(t, table, testDesc(sampleDataset()...))
	require.NoError(t, kv.SaveCustomDefault("destinations", []byte(`[{"id":"team-pick","name":"Team baseline"}]`)))

	require.NoError(t, s.Bootstrap(context.Background()))

	table.mu.Lock()
	require.Equal(t, 1, table.insertCalls)
	assert.Equal(t, "team-pick", table.rows[0]["id"])
	table.mu.Unlock()
}

func TestBootstrapSeedFailureServesSampleInMemory(t *testing.T) {
	table := &fakeTable{failInsertAt: 2}
	s, _ := newTestStore(t, table, testDesc(sampleDataset()...))

	err := s.Bootstrap(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "aborted after 1 of 2")

	snap := s.Snapshot()
	assert.True(t, snap.Degraded)
	require.Len(t, snap.Records, 2, "built-in sample served in memory")

	// Remaining seeds were not attempted.
	table.mu.Lock()
	assert.Equal(t, 2, table.insertCalls)
	require.Len(t, table.rows, 1)
	table.mu.Unlock()
}

func TestBootstrapUnreachableRemoteFallsBackToSample(t *testing.T) {
	table := &fakeTable{failList: fmt.Errorf("%w: no route", remote.ErrUnavailable)}
	s, _ := newTestStore(t, table, testDesc(sampleDataset()...))

	require.NoError(t, s.Bootstrap(context.Background()))

	snap := s.Snapshot()
	assert.True(t, snap.Degraded)
	require.Len(t, snap.Records, 2)
	table.mu.Lock()
	assert.Zero(t, table.insertCalls, "nothing is seeded into an unreachable remote")
	table.mu.Unlock()
}

func TestBootstrapUnreachableRemotePrefersLocalSnapshot(t *testing.T) {
	table := &fakeTable{failList: fmt.Errorf("%w: no route", remote.ErrUnavailable)}
	s, kv := newTestStore(t, table, testDesc(sampleDataset()...))
	require.NoError(t, kv.SaveSnapshot("destinations", []byte(`[{"id":"cached","name":"Cached"}]`)))

	require.NoError(t, s.Bootstrap(context.Background()))

	snap := s.Snapshot()
	assert.True(t, snap.Degraded)
	require.Len(t, snap.Records, 1)
	assert.Equal(t, "cached", snap.Records[0].ID)
}
