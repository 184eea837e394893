package rules

import (
	"math"

	"urbansim/internal/core"
)

// Commercial models business vitality from local demand, accessibility,
// and safety, with clustering toward the neighborhood average.
type Commercial struct{}

// NewCommercial returns the commerce module.
func NewCommercial() *Commercial { return &Commercial{} }

func (c *Commercial) Name() string  { return "commercial" }
func (c *Commercial) Priority() int { return PriorityCommercial }

func (c *Commercial) Apply(cell *core.Cell, neighbors []*core.Cell) {
	m := &cell.Metrics

	populationDemand := math.Min(1, m.Population/5000)
	accessibility := 1 - m.TrafficCongestion
	base := populationDemand * accessibility * m.SafetyScore

	neighborVitality := neighborAvg(cell, neighbors, func(nm *core.Metrics) float64 {
		return nm.CommercialVitality
	})

	change := base*0.6 + neighborVitality*0.4
	m.CommercialVitality = core.Clamp01(m.CommercialVitality*0.7 + change*0.3)
}
