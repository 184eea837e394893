package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"urbansim/internal/core"
)

func TestProsperitySpilloverExactDeltas(t *testing.T) {
	a := newCell(t, func(m *core.Metrics) {
		m.AvgRent = 900
		m.Employment = 700
	})
	b := newCell(t, func(m *core.Metrics) {
		m.AvgRent = 500
		m.Employment = 400
	})

	NewSpatialEffects().Apply(a, []*core.Cell{b})

	assert.InDelta(t, 435.0, b.Metrics.Employment, 1e-9, "5% of 700 spills over")
	assert.InDelta(t, 527.0, b.Metrics.AvgRent, 1e-9, "3% of 900 spills over")
}

func TestProsperitySpilloverGated(t *testing.T) {
	cases := []struct {
		name       string
		employment float64
		rent       float64
	}{
		{"employment too low", 600, 900},
		{"rent too low", 700, 600},
		{"both too low", 500, 500},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src := newCell(t, func(m *core.Metrics) {
				m.Employment = tc.employment
				m.AvgRent = tc.rent
			})
			neighbor := newCell(t, nil)
			before := neighbor.Metrics

			NewSpatialEffects().Apply(src, []*core.Cell{neighbor})

			assert.Equal(t, before.Employment, neighbor.Metrics.Employment)
			assert.Equal(t, before.AvgRent, neighbor.Metrics.AvgRent)
		})
	}
}

func TestProsperitySpilloverLimitedToFourNeighbors(t *testing.T) {
	src := newCell(t, func(m *core.Metrics) {
		m.Employment = 700
		m.AvgRent = 900
	})
	neighbors := make([]*core.Cell, 8)
	for i := range neighbors {
		neighbors[i] = newCell(t, nil)
	}

	NewSpatialEffects().Apply(src, neighbors)

	for i, n := range neighbors {
		if i < 4 {
			assert.Greater(t, n.Metrics.Employment, 500.0, "neighbor %d receives spillover", i)
		} else {
			assert.InDelta(t, 500.0, n.Metrics.Employment, 1e-9, "neighbor %d beyond the closest four", i)
		}
	}
}

func TestGentrificationPressure(t *testing.T) {
	src := newCell(t, func(m *core.Metrics) { m.AvgRent = 1300 })
	neighbor := newCell(t, func(m *core.Metrics) {
		m.DisplacementRisk = 0.35
		m.Population = 1000
	})

	NewSpatialEffects().Apply(src, []*core.Cell{neighbor})

	// pressure 0.05·(500/500) = 0.05, damped to 0.005.
	require.InDelta(t, 0.355, neighbor.Metrics.DisplacementRisk, 1e-9)
	// Risk above 0.3 sheds population: 1000·0.355·0.02.
	assert.InDelta(t, 1000-7.1, neighbor.Metrics.Population, 1e-9)
}

func TestGentrificationPopulationFloor(t *testing.T) {
	src := newCell(t, func(m *core.Metrics) { m.AvgRent = 3000 })
	neighbor := newCell(t, func(m *core.Metrics) {
		m.DisplacementRisk = 1
		m.Population = 500
	})

	NewSpatialEffects().Apply(src, []*core.Cell{neighbor})

	assert.GreaterOrEqual(t, neighbor.Metrics.Population, 500.0)
}

func TestAirQualityConvergence(t *testing.T) {
	src := newCell(t, func(m *core.Metrics) { m.AirQualityIndex = 80 })
	near := newCell(t, func(m *core.Metrics) { m.AirQualityIndex = 78 })
	far := newCell(t, func(m *core.Metrics) { m.AirQualityIndex = 40 })

	NewSpatialEffects().Apply(src, []*core.Cell{near, far})

	assert.InDelta(t, 78.0, near.Metrics.AirQualityIndex, 1e-9, "gap of 2 is below the threshold")
	assert.InDelta(t, 46.0, far.Metrics.AirQualityIndex, 1e-9, "15% of the 40-point gap moves")
}

func TestSafetyAndCongestionSpillover(t *testing.T) {
	src := newCell(t, func(m *core.Metrics) {
		m.SafetyScore = 0.9
		m.TrafficCongestion = 0.8
	})
	neighbor := newCell(t, func(m *core.Metrics) {
		m.SafetyScore = 0.5
		m.TrafficCongestion = 0.3
	})

	NewSpatialEffects().Apply(src, []*core.Cell{neighbor})

	assert.InDelta(t, 0.54, neighbor.Metrics.SafetyScore, 1e-9, "10% of the 0.4 gap")
	assert.InDelta(t, 0.36, neighbor.Metrics.TrafficCongestion, 1e-9, "12% of the 0.5 gap")
}

func TestCongestionSpilloverIsOneWay(t *testing.T) {
	src := newCell(t, func(m *core.Metrics) { m.TrafficCongestion = 0.2 })
	busy := newCell(t, func(m *core.Metrics) { m.TrafficCongestion = 0.9 })

	NewSpatialEffects().Apply(src, []*core.Cell{busy})

	assert.InDelta(t, 0.9, busy.Metrics.TrafficCongestion, 1e-9,
		"quieter cells do not drain congestion from busier neighbors")
}

func TestPopulationAttractionSpillover(t *testing.T) {
	src := newCell(t, func(m *core.Metrics) {
		m.CommercialVitality = 0.8
		m.Population = 3000
	})
	neighbor := newCell(t, nil)

	NewSpatialEffects().Apply(src, []*core.Cell{neighbor})

	assert.InDelta(t, 1060.0, neighbor.Metrics.Population, 1e-9, "2% of 3000 attracted")
}

func TestCohesionAgglomeration(t *testing.T) {
	src := newCell(t, func(m *core.Metrics) { m.SocialCohesion = 0.9 })
	neighbor := newCell(t, func(m *core.Metrics) { m.SocialCohesion = 0.4 })

	NewSpatialEffects().Apply(src, []*core.Cell{neighbor})

	// 8% of the 0.5 gap, damped by 0.1.
	assert.InDelta(t, 0.404, neighbor.Metrics.SocialCohesion, 1e-9)
}

func TestSpatialEffectsNoNeighbors(t *testing.T) {
	cell := newCell(t, func(m *core.Metrics) {
		m.AvgRent = 2000
		m.Employment = 5000
	})
	before := cell.Metrics

	NewSpatialEffects().Apply(cell, nil)

	assert.Equal(t, before, cell.Metrics, "a cell with no neighbors is untouched")
}
