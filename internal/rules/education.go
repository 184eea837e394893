package rules

import (
	"math"

	"urbansim/internal/core"
)

// Education models schools scaling with population: roughly one facility
// per 2000 residents. Schools attract families, carry a rent premium,
// employ staff, and anchor communities.
type Education struct{}

// NewEducation returns the education facilities module.
func NewEducation() *Education { return &Education{} }

func (e *Education) Name() string  { return "education" }
func (e *Education) Priority() int { return PriorityEducation }

func (e *Education) Apply(cell *core.Cell, neighbors []*core.Cell) {
	m := &cell.Metrics
	facilities := math.Max(0, m.Population/2000)

	cell.Mods.EducationAttractiveness = math.Min(0.30, facilities*0.10)

	// Catchment premium of €100 per facility, applied as a percentage.
	m.AvgRent = core.ClampRange(m.AvgRent+facilities*100/100, core.MinRent, core.MaxRent)

	// Teachers, administrators, support staff.
	m.Employment += facilities * 10

	cohesionBoost := math.Min(0.20, facilities*0.08)
	m.SocialCohesion = core.Clamp01(m.SocialCohesion + cohesionBoost*0.1)
}
