// Package rules implements the domain rule modules of the urban
// simulation: population, housing, transport, safety, commerce,
// infrastructure, facilities, policy, and spatial spillovers.
package rules

import "urbansim/internal/core"

// Pipeline priorities. Values are spaced so the sorted order matches the
// canonical application order: infrastructure effects and policies first,
// facility premiums next, spillovers, then the endogenous dynamics.
const (
	PriorityInfrastructure = 0
	PriorityPolicy         = 10
	PriorityEducation      = 20
	PriorityHealthcare     = 30
	PrioritySpatial        = 40
	PriorityPopulation     = 50
	PriorityTransportation = 60
	PriorityHousing        = 70
	PrioritySafety         = 80
	PriorityCommercial     = 90
)

// neighborAvg averages a metric over the neighbor list. With no neighbors
// the cell's own value is returned, so convergence terms vanish at lattice
// edges instead of pulling toward zero.
func neighborAvg(cell *core.Cell, neighbors []*core.Cell, get func(*core.Metrics) float64) float64 {
	if len(neighbors) == 0 {
		return get(&cell.Metrics)
	}
	total := 0.0
	for _, n := range neighbors {
		total += get(&n.Metrics)
	}
	return total / float64(len(neighbors))
}

// DefaultPipeline returns every rule module with default configuration,
// ordered by priority.
func DefaultPipeline() []core.Module {
	pipeline := []core.Module{
		NewInfrastructure(),
		NewPolicy(DefaultPolicies()),
		NewEducation(),
		NewHealthcare(),
		NewSpatialEffects(),
		NewPopulation(),
		NewTransportation(),
		NewHousingMarket(),
		NewSafety(),
		NewCommercial(),
	}
	core.SortPipeline(pipeline)
	return pipeline
}
