package rules

import (
	"math"

	"urbansim/internal/core"
)

// roadCapacity is the simplified network capacity every cell shares.
const roadCapacity = 0.5

// Transportation models traffic congestion from local density and from
// congestion bleeding in from neighbors, smoothed against the prior value.
type Transportation struct{}

// NewTransportation returns the traffic module.
func NewTransportation() *Transportation { return &Transportation{} }

func (t *Transportation) Name() string  { return "transportation" }
func (t *Transportation) Priority() int { return PriorityTransportation }

func (t *Transportation) Apply(cell *core.Cell, neighbors []*core.Cell) {
	m := &cell.Metrics

	densityFactor := math.Min(1, m.PopulationDensity/10000)
	neighborCongestion := neighborAvg(cell, neighbors, func(nm *core.Metrics) float64 {
		return nm.TrafficCongestion
	})

	demand := densityFactor*0.7 + neighborCongestion*0.3
	utilization := demand / math.Max(roadCapacity, 0.1)

	m.TrafficCongestion = core.Clamp01(m.TrafficCongestion*0.8 + math.Min(1, utilization)*0.2)
}
