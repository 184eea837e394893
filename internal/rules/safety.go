package rules

import (
	"math"

	"urbansim/internal/core"
)

// Safety moves the safety score slowly toward the balance of local
// pressures (density, congestion, vacancy against commerce and green
// space) and the neighborhood average.
type Safety struct{}

// NewSafety returns the safety dynamics module.
func NewSafety() *Safety { return &Safety{} }

func (s *Safety) Name() string  { return "safety" }
func (s *Safety) Priority() int { return PrioritySafety }

func (s *Safety) Apply(cell *core.Cell, neighbors []*core.Cell) {
	m := &cell.Metrics

	negative := math.Min(1, m.PopulationDensity/20000)*0.3 +
		m.TrafficCongestion*0.3 +
		m.VacancyRate*0.4
	positive := m.CommercialVitality*0.4 + m.GreenSpaceRatio*0.6
	net := positive - negative

	neighborSafety := neighborAvg(cell, neighbors, func(nm *core.Metrics) float64 {
		return nm.SafetyScore
	})

	change := net*0.5 + (neighborSafety-m.SafetyScore)*0.5
	m.SafetyScore = core.Clamp01(m.SafetyScore + change*0.1)
}
