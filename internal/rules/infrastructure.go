package rules

import (
	"math"

	"urbansim/internal/core"
)

// Infrastructure applies the impact of EV charging infrastructure: cleaner
// air, a property premium, maintenance jobs, and an attractiveness bonus
// consumed by the population dynamics later in the same step.
type Infrastructure struct{}

// NewInfrastructure returns the EV infrastructure module.
func NewInfrastructure() *Infrastructure { return &Infrastructure{} }

func (i *Infrastructure) Name() string  { return "infrastructure" }
func (i *Infrastructure) Priority() int { return PriorityInfrastructure }

// Apply is a strict no-op for cells without chargers.
func (i *Infrastructure) Apply(cell *core.Cell, neighbors []*core.Cell) {
	m := &cell.Metrics
	if m.ChargersCount == 0 {
		return
	}

	// Charger density reduces emissions; capped at 15 index points.
	improvement := math.Min(15, m.ChargerDensity*5)
	m.AirQualityIndex = core.ClampRange(m.AirQualityIndex-improvement, 0, core.MaxAQI)

	// Property premium of 5% per 1000 kW of capacity.
	m.AvgRent = core.ClampRange(m.AvgRent*(1+m.EVCapacityKW*0.0005), core.MinRent, core.MaxRent)

	cell.Mods.InfraAttractiveness = math.Min(0.15, m.ChargerDensity*0.1)

	// One maintenance/operation job per 5 kW.
	m.Employment += math.Max(0, m.EVCapacityKW/5)

	cohesionBoost := math.Min(0.15, m.ChargersCount*0.03)
	m.SocialCohesion = core.Clamp01(m.SocialCohesion + cohesionBoost*0.1)

	// Roughly 30% of chargers sit at transit hubs.
	transitHubs := m.ChargersCount * 0.3
	transitBoost := math.Min(0.2, transitHubs*0.05)
	m.TransitAccess = core.Clamp01(m.TransitAccess + transitBoost*0.05)
}
