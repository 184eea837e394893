package core

// degreeToKm is the approximate length of one degree of latitude in km,
// used to convert geometry areas from square degrees.
const degreeToKm = 111.32

// Geometry is an ownership-free reference to a cell's footprint. Only the
// area (in square degrees) and the WKT string are ever consulted.
type Geometry struct {
	WKT  string
	Area float64
}

// AreaSqKm converts the geometry area to approximate square kilometres.
// Geometries with unknown area default to 1 km².
func (g Geometry) AreaSqKm() float64 {
	if g.Area <= 0 {
		return 1.0
	}
	return g.Area * degreeToKm * degreeToKm
}

// Cell is one spatial unit of the simulated city. It is created once at
// simulation start and mutated in place by every rule module every step.
type Cell struct {
	GridID   string
	Geometry Geometry
	Metrics  Metrics
	Mods     Modifiers

	areaSqKm float64

	// prevRent carries last step's rent for the rent-control cap. It is
	// pipeline state, not a metric, and is excluded from snapshots.
	prevRent    float64
	hasPrevRent bool
}

// NewCell builds a cell from loader data. A nil initial state falls back to
// DefaultMetrics; density is derived from the cached area.
func NewCell(gridID string, geom Geometry, initial *Metrics) *Cell {
	m := DefaultMetrics()
	if initial != nil {
		m = *initial
	}
	c := &Cell{
		GridID:   gridID,
		Geometry: geom,
		Metrics:  m,
		areaSqKm: geom.AreaSqKm(),
	}
	c.RefreshDensity()
	return c
}

// AreaSqKm returns the cached approximate surface area.
func (c *Cell) AreaSqKm() float64 { return c.areaSqKm }

// RefreshDensity recomputes population density from the cached area.
func (c *Cell) RefreshDensity() {
	if c.areaSqKm > 0 {
		c.Metrics.PopulationDensity = c.Metrics.Population / c.areaSqKm
	}
}

// BeginStep clears per-step modifiers before the pipeline runs.
func (c *Cell) BeginStep() {
	c.Mods.Clear()
}

// PreviousRent reports the rent recorded at the end of the previous step,
// if any step has completed yet.
func (c *Cell) PreviousRent() (float64, bool) {
	return c.prevRent, c.hasPrevRent
}

// SetPreviousRent records the rent to check against next step.
func (c *Cell) SetPreviousRent(v float64) {
	c.prevRent = v
	c.hasPrevRent = true
}
