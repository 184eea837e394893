package rules

import (
	"math"

	"urbansim/internal/core"
)

// HousingMarket prices rent from a demand/supply ratio weighted by a
// demand score, bounded to ±2% movement per step before the global rent
// range applies, and derives vacancy and displacement risk.
type HousingMarket struct{}

// NewHousingMarket returns the housing market module.
func NewHousingMarket() *HousingMarket { return &HousingMarket{} }

func (h *HousingMarket) Name() string  { return "housing-market" }
func (h *HousingMarket) Priority() int { return PriorityHousing }

func (h *HousingMarket) Apply(cell *core.Cell, neighbors []*core.Cell) {
	m := &cell.Metrics

	demandScore := m.SafetyScore*0.4 + m.CommercialVitality*0.3 + (1-m.TrafficCongestion)*0.3

	units := m.HousingUnits
	if units <= 0 {
		units = math.Max(400, m.Population/2.5)
	}
	m.HousingUnits = units

	ratio := (m.Population / math.Max(units, 1)) * demandScore

	rentChange := core.ClampRange((ratio-1)*0.05, -0.02, 0.02)
	m.AvgRent = core.ClampRange(m.AvgRent*(1+rentChange), core.MinRent, core.MaxRent)

	// 2.5 residents per household.
	occupancy := math.Min(1, units/math.Max(m.Population/2.5, 1))
	m.VacancyRate = core.Clamp01(1 - occupancy)

	// €1500/month is the affordability reference.
	affordability := 1500 / math.Max(m.AvgRent, 500)
	m.DisplacementRisk = core.Clamp01(1 - affordability)
}
