package rules

import (
	"math"

	"urbansim/internal/core"
)

// Healthcare models clinics and hospitals scaling with population: roughly
// one facility per 3000 residents. Access improves perceived safety,
// attracts residents, lifts rents, and employs staff.
type Healthcare struct{}

// NewHealthcare returns the healthcare facilities module.
func NewHealthcare() *Healthcare { return &Healthcare{} }

func (h *Healthcare) Name() string  { return "healthcare" }
func (h *Healthcare) Priority() int { return PriorityHealthcare }

func (h *Healthcare) Apply(cell *core.Cell, neighbors []*core.Cell) {
	m := &cell.Metrics
	facilities := math.Max(0, m.Population/3000)

	safetyBoost := math.Min(0.15, facilities*0.05)
	m.SafetyScore = core.Clamp01(m.SafetyScore + safetyBoost*0.1)

	cell.Mods.HealthcareAttractiveness = math.Min(0.25, facilities*0.08)

	// Proximity premium of €80 per facility, applied as a percentage.
	m.AvgRent = core.ClampRange(m.AvgRent+facilities*80/100, core.MinRent, core.MaxRent)

	// Healthcare is a major employer: 15 jobs per facility.
	m.Employment += facilities * 15

	cohesionBoost := math.Min(0.18, facilities*0.06)
	m.SocialCohesion = core.Clamp01(m.SocialCohesion + cohesionBoost*0.1)
}
