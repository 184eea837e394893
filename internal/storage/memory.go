package storage

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"urbansim/internal/core"
)

// Memory is an in-process Store used by tests and the demo runner.
type Memory struct {
	mu        sync.Mutex
	seeds     []CellSeed
	infra     map[string]InfraAggregate
	runs      map[string]RunRecord
	snapshots map[string]map[int][]SnapshotRecord
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		infra:     map[string]InfraAggregate{},
		runs:      map[string]RunRecord{},
		snapshots: map[string]map[int][]SnapshotRecord{},
	}
}

// SeedCells installs the cells LoadCells will serve.
func (m *Memory) SeedCells(seeds []CellSeed) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seeds = append([]CellSeed(nil), seeds...)
}

// SeedInfrastructure installs the per-cell infrastructure aggregates.
func (m *Memory) SeedInfrastructure(infra map[string]InfraAggregate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.infra = make(map[string]InfraAggregate, len(infra))
	for id, agg := range infra {
		m.infra[id] = agg
	}
}

// LoadCells returns up to limit seeded cells. A limit of zero or less
// returns everything.
func (m *Memory) LoadCells(ctx context.Context, limit int) ([]CellSeed, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seeds := m.seeds
	if limit > 0 && limit < len(seeds) {
		seeds = seeds[:limit]
	}
	return append([]CellSeed(nil), seeds...), nil
}

// LoadInfrastructure returns the seeded aggregate table.
func (m *Memory) LoadInfrastructure(ctx context.Context) (map[string]InfraAggregate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]InfraAggregate, len(m.infra))
	for id, agg := range m.infra {
		out[id] = agg
	}
	return out, nil
}

// CreateRun stores a new run record.
func (m *Memory) CreateRun(ctx context.Context, run RunRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.runs[run.RunID]; exists {
		return fmt.Errorf("run %s already exists", run.RunID)
	}
	m.runs[run.RunID] = run
	return nil
}

// UpdateRunStatus transitions a run's status.
func (m *Memory) UpdateRunStatus(ctx context.Context, runID, status string, completedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	run, ok := m.runs[runID]
	if !ok {
		return fmt.Errorf("run %s not found", runID)
	}
	run.Status = status
	if !completedAt.IsZero() {
		t := completedAt
		run.CompletedAt = &t
	}
	m.runs[runID] = run
	return nil
}

// WriteSnapshot stores the records for one snapshot timestep.
func (m *Memory) WriteSnapshot(ctx context.Context, runID string, timestep int, records []SnapshotRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	byStep, ok := m.snapshots[runID]
	if !ok {
		byStep = map[int][]SnapshotRecord{}
		m.snapshots[runID] = byStep
	}
	byStep[timestep] = append([]SnapshotRecord(nil), records...)
	return nil
}

// Run returns a stored run record.
func (m *Memory) Run(runID string) (RunRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	run, ok := m.runs[runID]
	return run, ok
}

// Snapshots returns the stored snapshots for a run keyed by timestep.
func (m *Memory) Snapshots(runID string) map[int][]SnapshotRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	byStep, ok := m.snapshots[runID]
	if !ok {
		return nil
	}
	out := make(map[int][]SnapshotRecord, len(byStep))
	for step, records := range byStep {
		out[step] = append([]SnapshotRecord(nil), records...)
	}
	return out
}

// DemoCells generates n cells with randomized-but-seedable initial states,
// for running the simulation without curated city data.
func DemoCells(n int, seed int64) []CellSeed {
	rng := rand.New(rand.NewSource(seed))
	seeds := make([]CellSeed, 0, n)
	for i := 0; i < n; i++ {
		initial := core.DefaultMetrics()
		initial.Population = float64(500 + rng.Intn(4501))
		initial.TrafficCongestion = rng.Float64() * 0.5
		initial.SafetyScore = 0.3 + rng.Float64()*0.4
		initial.CommercialVitality = rng.Float64() * 0.5
		initial.AvgRent = 300 + rng.Float64()*1200
		initial.DisplacementRisk = rng.Float64() * 0.3
		initial.GreenSpaceRatio = rng.Float64() * 0.4
		initial.Employment = float64(200 + rng.Intn(1801))
		initial.UnemploymentRate = 0.03 + rng.Float64()*0.07
		seeds = append(seeds, CellSeed{
			GridID:   fmt.Sprintf("grid_%04d", i),
			Geometry: core.Geometry{WKT: "POLYGON ((0 0, 1 0, 1 1, 0 1, 0 0))"},
			Initial:  &initial,
		})
	}
	return seeds
}
