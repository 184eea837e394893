package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLoadCellsLimit(t *testing.T) {
	store := NewMemory()
	store.SeedCells(DemoCells(10, 1))

	all, err := store.LoadCells(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, all, 10)

	limited, err := store.LoadCells(context.Background(), 4)
	require.NoError(t, err)
	assert.Len(t, limited, 4)
}

func TestMemoryRunLifecycle(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	record := RunRecord{
		RunID:          "run-1",
		Name:           "test",
		CityName:       "Leipzig",
		TotalTimesteps: 50,
		Status:         StatusRunning,
		CreatedAt:      time.Now(),
	}
	require.NoError(t, store.CreateRun(ctx, record))
	require.Error(t, store.CreateRun(ctx, record), "duplicate run ids rejected")

	done := time.Now()
	require.NoError(t, store.UpdateRunStatus(ctx, "run-1", StatusCompleted, done))

	got, ok := store.Run("run-1")
	require.True(t, ok)
	assert.Equal(t, StatusCompleted, got.Status)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, got.CompletedAt.Equal(done))

	require.Error(t, store.UpdateRunStatus(ctx, "missing", StatusFailed, time.Time{}))
}

func TestMemorySnapshots(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	records := []SnapshotRecord{{RunID: "run-1", Timestep: 10, GridID: "grid_0000"}}
	require.NoError(t, store.WriteSnapshot(ctx, "run-1", 10, records))
	require.NoError(t, store.WriteSnapshot(ctx, "run-1", 20, records))

	snaps := store.Snapshots("run-1")
	require.Len(t, snaps, 2)
	assert.Len(t, snaps[10], 1)

	assert.Nil(t, store.Snapshots("unknown"))
}

func TestDemoCellsDeterministic(t *testing.T) {
	a := DemoCells(20, 42)
	b := DemoCells(20, 42)
	require.Equal(t, a, b, "same seed, same cells")

	c := DemoCells(20, 43)
	assert.NotEqual(t, a, c, "different seeds differ")
}

func TestDemoCellsRanges(t *testing.T) {
	for _, seed := range DemoCells(50, 7) {
		require.NotNil(t, seed.Initial)
		m := seed.Initial
		assert.GreaterOrEqual(t, m.Population, 500.0)
		assert.LessOrEqual(t, m.Population, 5000.0)
		assert.GreaterOrEqual(t, m.AvgRent, 300.0)
		assert.LessOrEqual(t, m.AvgRent, 1500.0)
		assert.GreaterOrEqual(t, m.SafetyScore, 0.3)
		assert.LessOrEqual(t, m.SafetyScore, 0.7)
		assert.LessOrEqual(t, m.TrafficCongestion, 0.5)
	}
}
