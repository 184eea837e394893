package rules

import (
	"math"

	"urbansim/internal/core"
)

// SpatialEffects models cross-cell spillovers: prosperity spreading to
// adjacent cells, gentrification pressure, air and safety convergence,
// population attraction, cohesion agglomeration, and congestion spread.
// It is the only module that mutates neighbor state; effects land in place,
// so cells processed later in the step observe them immediately.
type SpatialEffects struct{}

// NewSpatialEffects returns the neighborhood spillover module.
func NewSpatialEffects() *SpatialEffects { return &SpatialEffects{} }

func (s *SpatialEffects) Name() string  { return "spatial-effects" }
func (s *SpatialEffects) Priority() int { return PrioritySpatial }

func (s *SpatialEffects) Apply(cell *core.Cell, neighbors []*core.Cell) {
	if len(neighbors) == 0 {
		return
	}
	m := &cell.Metrics

	// Prosperity spillover: employment and rent radiate from prosperous
	// cells to at most four neighbors.
	if m.Employment > 600 && m.AvgRent > 600 {
		closest := neighbors
		if len(closest) > 4 {
			closest = closest[:4]
		}
		for _, n := range closest {
			n.Metrics.Employment += m.Employment * 0.05
			n.Metrics.AvgRent = core.ClampRange(n.Metrics.AvgRent+m.AvgRent*0.03, core.MinRent, core.MaxRent)
		}
	}

	// Gentrification pressure from high-rent cells, with population
	// turnover once neighbor displacement risk passes 0.3.
	if m.AvgRent > 800 {
		pressure := 0.05 * (m.AvgRent - 800) / 500
		for _, n := range neighbors {
			risk := core.Clamp01(n.Metrics.DisplacementRisk + pressure*0.1)
			n.Metrics.DisplacementRisk = risk
			if risk > 0.3 {
				loss := n.Metrics.Population * risk * 0.02
				n.Metrics.Population = math.Max(500, n.Metrics.Population-loss)
				n.RefreshDensity()
			}
		}
	}

	// Air quality converges toward the neighbor when the gap exceeds 5
	// index points; 15% of the difference moves per step.
	for _, n := range neighbors {
		diff := m.AirQualityIndex - n.Metrics.AirQualityIndex
		if math.Abs(diff) > 5 {
			n.Metrics.AirQualityIndex = core.ClampRange(n.Metrics.AirQualityIndex+diff*0.15, 0, core.MaxAQI)
		}
	}

	// Safety converges when the gap exceeds 0.1; 10% of the difference.
	for _, n := range neighbors {
		diff := m.SafetyScore - n.Metrics.SafetyScore
		if math.Abs(diff) > 0.1 {
			n.Metrics.SafetyScore = core.Clamp01(n.Metrics.SafetyScore + diff*0.1)
		}
	}

	// Vibrant, populous cells pull people into adjacent areas.
	if m.CommercialVitality > 0.7 && m.Population > 2000 {
		for _, n := range neighbors {
			n.Metrics.Population += m.Population * 0.02
			n.RefreshDensity()
		}
	}

	// Cohesion agglomeration: strong communities lift their neighbors.
	if m.SocialCohesion > 0.6 {
		for _, n := range neighbors {
			spill := (m.SocialCohesion - n.Metrics.SocialCohesion) * 0.08
			n.Metrics.SocialCohesion = core.Clamp01(n.Metrics.SocialCohesion + spill*0.1)
		}
	}

	// Congestion spills one way, from the more congested cell outward.
	for _, n := range neighbors {
		diff := m.TrafficCongestion - n.Metrics.TrafficCongestion
		if diff > 0.1 {
			n.Metrics.TrafficCongestion = core.Clamp01(n.Metrics.TrafficCongestion + diff*0.12)
		}
	}
}
