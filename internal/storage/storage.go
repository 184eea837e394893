// Package storage defines the collaborator ports the simulation core
// depends on: a cell source consumed at initialization and run/snapshot
// sinks written during a run. The core never touches a concrete
// persistence technology directly.
package storage

import (
	"context"
	"time"

	"urbansim/internal/core"
)

// Run status values. Transitions go created → running → completed, or
// failed when initialization aborts the run.
const (
	StatusCreated   = "created"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// RunConfig is the configuration blob recorded with a run.
type RunConfig struct {
	Modules   []string  `json:"modules"`
	GridCells int       `json:"grid_cells"`
	StartTime time.Time `json:"start_time"`
}

// RunRecord is the persisted metadata for one simulation run.
type RunRecord struct {
	RunID          string     `json:"run_id"`
	Name           string     `json:"name"`
	CityName       string     `json:"city_name"`
	TotalTimesteps int        `json:"total_timesteps"`
	Status         string     `json:"status"`
	Config         RunConfig  `json:"config"`
	CreatedAt      time.Time  `json:"created_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

// CellSeed is one grid cell as delivered by the cell source. A nil Initial
// falls back to the baseline metrics.
type CellSeed struct {
	GridID   string
	Geometry core.Geometry
	Initial  *core.Metrics
}

// InfraAggregate is the per-cell infrastructure rollup left-joined onto
// cells at initialization. Cells with no match keep all-zero values.
type InfraAggregate struct {
	ChargersCount      float64 `json:"chargers_count"`
	EVCapacityKW       float64 `json:"ev_capacity_kw"`
	ChargerDensity     float64 `json:"charger_density"`
	AvgChargerCapacity float64 `json:"avg_charger_capacity_kw"`
}

// SnapshotRecord is one flat per-cell record at a snapshot timestep.
type SnapshotRecord struct {
	RunID    string `json:"run_id"`
	Timestep int    `json:"timestep"`
	GridID   string `json:"grid_id"`
	Geometry string `json:"geometry"`
	core.Metrics
}

// CellSource supplies grid cells and infrastructure aggregates at
// initialization.
type CellSource interface {
	LoadCells(ctx context.Context, limit int) ([]CellSeed, error)
	LoadInfrastructure(ctx context.Context) (map[string]InfraAggregate, error)
}

// RunStore persists run records and their status transitions.
type RunStore interface {
	CreateRun(ctx context.Context, run RunRecord) error
	UpdateRunStatus(ctx context.Context, runID, status string, completedAt time.Time) error
}

// SnapshotSink persists per-timestep cell snapshots.
type SnapshotSink interface {
	WriteSnapshot(ctx context.Context, runID string, timestep int, records []SnapshotRecord) error
}

// Store combines every collaborator port.
type Store interface {
	CellSource
	RunStore
	SnapshotSink
}
