// Package engine drives the simulation: it loads cells from the injected
// cell source, applies the rule pipeline to every cell each step in a
// seeded random order, and persists periodic snapshots best-effort.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"urbansim/internal/core"
	"urbansim/internal/rules"
	"urbansim/internal/storage"
)

// ErrNoCells signals that initialization found an empty grid. A run must
// never start without cells.
var ErrNoCells = errors.New("no grid cells available")

// Config holds the engine tunables.
type Config struct {
	CityName      string
	GridLimit     int
	Seed          int64
	Shuffle       bool
	SnapshotEvery int
}

// DefaultConfig returns the standard engine configuration.
func DefaultConfig() Config {
	return Config{
		CityName:      "Leipzig",
		GridLimit:     50,
		Seed:          1337,
		Shuffle:       true,
		SnapshotEvery: 10,
	}
}

// Engine owns all mutable simulation state for one run. Cells within a
// step are processed strictly sequentially; spillover modules mutate
// neighbors in place, so a cell processed earlier can observe
// already-updated neighbor values.
type Engine struct {
	cfg      Config
	source   storage.CellSource
	runs     storage.RunStore
	sink     storage.SnapshotSink
	pipeline []core.Module
	logger   *slog.Logger

	runID    string
	status   string
	timestep int

	cells map[string]*core.Cell
	order []string
	topo  *core.Topology
	rng   *rand.Rand
}

// New builds an engine over the given collaborator ports. A nil pipeline
// gets the default rule set; a nil logger falls back to slog.Default. The
// run and snapshot ports may be nil, in which case persistence is skipped.
func New(cfg Config, source storage.CellSource, runs storage.RunStore, sink storage.SnapshotSink, pipeline []core.Module, logger *slog.Logger) *Engine {
	if pipeline == nil {
		pipeline = rules.DefaultPipeline()
	} else {
		pipeline = append([]core.Module(nil), pipeline...)
		core.SortPipeline(pipeline)
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.SnapshotEvery <= 0 {
		cfg.SnapshotEvery = DefaultConfig().SnapshotEvery
	}
	return &Engine{
		cfg:      cfg,
		source:   source,
		runs:     runs,
		sink:     sink,
		pipeline: pipeline,
		logger:   logger,
		runID:    uuid.New().String(),
		status:   storage.StatusCreated,
		rng:      rand.New(rand.NewSource(cfg.Seed)),
	}
}

// RunID returns the unique identifier of this run.
func (e *Engine) RunID() string { return e.runID }

// Status reports the run lifecycle state.
func (e *Engine) Status() string { return e.status }

// Timestep reports the number of completed steps.
func (e *Engine) Timestep() int { return e.timestep }

// Cell returns a cell by grid id.
func (e *Engine) Cell(gridID string) (*core.Cell, bool) {
	c, ok := e.cells[gridID]
	return c, ok
}

// CellCount reports the number of loaded cells.
func (e *Engine) CellCount() int { return len(e.cells) }

// Topology exposes the read-only neighbor topology.
func (e *Engine) Topology() *core.Topology { return e.topo }

// Initialize loads cells from the source, builds the topology, and
// left-joins the infrastructure aggregates. It is fatal when no cells
// load; the run must not start on an empty grid.
func (e *Engine) Initialize(ctx context.Context) error {
	seeds, err := e.source.LoadCells(ctx, e.cfg.GridLimit)
	if err != nil {
		e.status = storage.StatusFailed
		return fmt.Errorf("load cells: %w", err)
	}
	if len(seeds) == 0 {
		e.status = storage.StatusFailed
		return ErrNoCells
	}

	e.cells = make(map[string]*core.Cell, len(seeds))
	e.order = make([]string, 0, len(seeds))
	for _, seed := range seeds {
		e.cells[seed.GridID] = core.NewCell(seed.GridID, seed.Geometry, seed.Initial)
		e.order = append(e.order, seed.GridID)
	}
	e.topo = core.NewTopology(e.order)

	e.loadInfrastructure(ctx)

	e.logger.Info("model initialized",
		"cells", len(e.cells),
		"modules", len(e.pipeline),
		"run_id", e.runID)
	return nil
}

// Step advances the simulation by one timestep: cells are visited in a
// (seeded) shuffled order and the full pipeline runs against each cell's
// current neighbor list.
func (e *Engine) Step() {
	e.timestep++

	ids := append([]string(nil), e.order...)
	if e.cfg.Shuffle {
		e.rng.Shuffle(len(ids), func(i, j int) {
			ids[i], ids[j] = ids[j], ids[i]
		})
	}

	for _, id := range ids {
		cell := e.cells[id]
		cell.BeginStep()
		neighbors := e.neighborsOf(id)
		for _, module := range e.pipeline {
			module.Apply(cell, neighbors)
		}
	}

	if e.timestep%20 == 0 {
		e.logger.Info("timestep completed", "timestep", e.timestep)
	}
}

// Run executes the full simulation: initialize if needed, record the run,
// step N times with periodic snapshots, and mark the run completed.
// Persistence failures are logged and never abort the run.
func (e *Engine) Run(ctx context.Context, steps int) (string, error) {
	start := time.Now()

	if e.cells == nil {
		if err := e.Initialize(ctx); err != nil {
			return "", err
		}
	}

	e.status = storage.StatusRunning
	e.createRunRecord(ctx, steps, start)

	for step := 1; step <= steps; step++ {
		e.Step()
		if step%e.cfg.SnapshotEvery == 0 || step == steps {
			e.writeSnapshot(ctx)
		}
	}

	e.status = storage.StatusCompleted
	e.completeRunRecord(ctx)

	e.logger.Info("simulation completed",
		"run_id", e.runID,
		"timesteps", e.timestep,
		"duration", time.Since(start).Round(time.Millisecond))
	return e.runID, nil
}

func (e *Engine) neighborsOf(id string) []*core.Cell {
	ids := e.topo.Neighbors(id)
	if len(ids) == 0 {
		return nil
	}
	neighbors := make([]*core.Cell, 0, len(ids))
	for _, nid := range ids {
		neighbors = append(neighbors, e.cells[nid])
	}
	return neighbors
}

func (e *Engine) createRunRecord(ctx context.Context, steps int, start time.Time) {
	if e.runs == nil {
		return
	}
	names := make([]string, 0, len(e.pipeline))
	for _, module := range e.pipeline {
		names = append(names, module.Name())
	}
	record := storage.RunRecord{
		RunID:          e.runID,
		Name:           fmt.Sprintf("Urban Simulation %s", start.Format("2006-01-02 15:04")),
		CityName:       e.cfg.CityName,
		TotalTimesteps: steps,
		Status:         storage.StatusRunning,
		Config: storage.RunConfig{
			Modules:   names,
			GridCells: len(e.cells),
			StartTime: start,
		},
		CreatedAt: start,
	}
	if err := e.runs.CreateRun(ctx, record); err != nil {
		e.logger.Warn("could not create run record", "run_id", e.runID, "error", err)
	}
}

func (e *Engine) completeRunRecord(ctx context.Context) {
	if e.runs == nil {
		return
	}
	if err := e.runs.UpdateRunStatus(ctx, e.runID, storage.StatusCompleted, time.Now()); err != nil {
		e.logger.Warn("could not update run status", "run_id", e.runID, "error", err)
	}
}

func (e *Engine) writeSnapshot(ctx context.Context) {
	if e.sink == nil {
		return
	}
	records := make([]storage.SnapshotRecord, 0, len(e.order))
	for _, id := range e.order {
		cell := e.cells[id]
		records = append(records, storage.SnapshotRecord{
			RunID:    e.runID,
			Timestep: e.timestep,
			GridID:   cell.GridID,
			Geometry: cell.Geometry.WKT,
			Metrics:  cell.Metrics,
		})
	}
	if err := e.sink.WriteSnapshot(ctx, e.runID, e.timestep, records); err != nil {
		e.logger.Warn("could not write snapshot", "timestep", e.timestep, "error", err)
		return
	}
	e.logger.Debug("snapshot written", "timestep", e.timestep, "cells", len(records))
}
