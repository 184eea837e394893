package rules

import (
	"math"

	"urbansim/internal/core"
)

// Population models migration driven by attractiveness (safety, rent,
// congestion, plus any bonuses contributed earlier in the step) on top of
// 0.5% natural growth per step.
type Population struct{}

// NewPopulation returns the population dynamics module.
func NewPopulation() *Population { return &Population{} }

func (p *Population) Name() string  { return "population" }
func (p *Population) Priority() int { return PriorityPopulation }

func (p *Population) Apply(cell *core.Cell, neighbors []*core.Cell) {
	m := &cell.Metrics

	safetyFactor := m.SafetyScore * 100
	rentFactor := math.Max(0, 1-m.AvgRent/2000) * 100
	congestionFactor := (1 - m.TrafficCongestion) * 50

	attractiveness := safetyFactor*0.4 + rentFactor*0.3 + congestionFactor*0.3
	attractiveness *= 1 + cell.Mods.TotalAttractiveness()

	// Attractiveness 50 is the break-even point for migration.
	migrationRate := (attractiveness - 50) / 100
	naturalGrowth := m.Population * 0.005

	change := m.Population*migrationRate*0.1 + naturalGrowth
	m.Population = math.Max(core.MinPopulation, m.Population+change)
	cell.RefreshDensity()
}
