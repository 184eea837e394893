package engine

import (
	"context"

	"urbansim/internal/storage"
)

// loadInfrastructure left-joins the aggregate infrastructure table onto
// the loaded cells, once, before the first step. Cells with no matching
// aggregate keep all-zero infrastructure metrics, and a source failure
// degrades to a grid without chargers rather than aborting the run.
func (e *Engine) loadInfrastructure(ctx context.Context) {
	aggregates, err := e.source.LoadInfrastructure(ctx)
	if err != nil {
		e.logger.Warn("could not load infrastructure metrics", "error", err)
		return
	}

	equipped := 0
	for id, cell := range e.cells {
		agg, ok := aggregates[id]
		if !ok {
			agg = storage.InfraAggregate{}
		}
		cell.Metrics.ChargersCount = agg.ChargersCount
		cell.Metrics.EVCapacityKW = agg.EVCapacityKW
		cell.Metrics.ChargerDensity = agg.ChargerDensity
		cell.Metrics.AvgChargerCapacity = agg.AvgChargerCapacity
		if agg.ChargersCount > 0 {
			equipped++
		}
	}
	e.logger.Info("infrastructure metrics loaded", "cells_with_chargers", equipped)
}
