package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"urbansim/internal/core"
)

func TestTransportationSmoothsTowardDemand(t *testing.T) {
	cell := newCell(t, func(m *core.Metrics) {
		m.Population = 8000
		m.PopulationDensity = 8000
		m.TrafficCongestion = 0.3
	})

	NewTransportation().Apply(cell, nil)

	// density factor 0.8, neighbor fallback 0.3: demand 0.65,
	// utilization 1.3 saturates, smoothed 0.8·0.3 + 0.2·1.0.
	assert.InDelta(t, 0.44, cell.Metrics.TrafficCongestion, 1e-9)
}

func TestTransportationEmptyNeighborsUsesOwnCongestion(t *testing.T) {
	cell := newCell(t, func(m *core.Metrics) {
		m.PopulationDensity = 0
		m.TrafficCongestion = 0.3
	})

	NewTransportation().Apply(cell, nil)

	// demand 0.7·0 + 0.3·0.3 = 0.09, utilization 0.18.
	assert.InDelta(t, 0.276, cell.Metrics.TrafficCongestion, 1e-9)
}

func TestTransportationCongestionStaysInUnitRange(t *testing.T) {
	cell := newCell(t, func(m *core.Metrics) {
		m.PopulationDensity = 1e7
		m.TrafficCongestion = 1
	})
	neighbor := newCell(t, func(m *core.Metrics) { m.TrafficCongestion = 1 })

	NewTransportation().Apply(cell, []*core.Cell{neighbor})

	assert.LessOrEqual(t, cell.Metrics.TrafficCongestion, 1.0)
}

func TestSafetyRespondsToBlight(t *testing.T) {
	cell := newCell(t, func(m *core.Metrics) {
		m.PopulationDensity = 20000
		m.TrafficCongestion = 0.8
		m.VacancyRate = 0.5
	})

	NewSafety().Apply(cell, nil)

	// negative 0.3+0.24+0.2, no positives, neighbor term vanishes.
	assert.InDelta(t, 0.5-0.74*0.5*0.1, cell.Metrics.SafetyScore, 1e-9)
}

func TestSafetyConvergesTowardNeighbors(t *testing.T) {
	cell := newCell(t, func(m *core.Metrics) {
		m.SafetyScore = 0.2
		m.TrafficCongestion = 0
		m.VacancyRate = 0
		m.PopulationDensity = 0
	})
	safe := newCell(t, func(m *core.Metrics) { m.SafetyScore = 0.9 })

	NewSafety().Apply(cell, []*core.Cell{safe})

	// net 0, neighbor gap 0.7 damped: 0.2 + 0.7·0.5·0.1.
	assert.InDelta(t, 0.235, cell.Metrics.SafetyScore, 1e-9)
}

func TestCommercialVitalityBuildsUp(t *testing.T) {
	cell := newCell(t, func(m *core.Metrics) {
		m.Population = 5000
		m.TrafficCongestion = 0
		m.SafetyScore = 1
		m.CommercialVitality = 0
	})

	NewCommercial().Apply(cell, nil)

	// base 1, neighbor fallback 0: change 0.6, blended 0.3·0.6.
	assert.InDelta(t, 0.18, cell.Metrics.CommercialVitality, 1e-9)
}

func TestCommercialClustersWithNeighbors(t *testing.T) {
	cell := newCell(t, func(m *core.Metrics) {
		m.Population = 0
		m.SafetyScore = 0
		m.CommercialVitality = 0
	})
	hub := newCell(t, func(m *core.Metrics) { m.CommercialVitality = 1 })

	NewCommercial().Apply(cell, []*core.Cell{hub})

	// No local base, pure clustering: 0.3·0.4·1.
	assert.InDelta(t, 0.12, cell.Metrics.CommercialVitality, 1e-9)
}
