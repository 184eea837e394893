package core

import "math"

// Position locates a cell on the lattice.
type Position struct {
	X int
	Y int
}

// Topology assigns each cell a position on a ⌈√N⌉×⌈√N⌉ row-major lattice
// and resolves Moore (8-connected) neighborhoods. It is built once at
// initialization and is immutable for the run.
type Topology struct {
	side      int
	positions map[string]Position
	at        map[Position]string
}

// NewTopology lays out the given cell ids in row-major order.
func NewTopology(ids []string) *Topology {
	side := int(math.Ceil(math.Sqrt(float64(len(ids)))))
	if side < 1 {
		side = 1
	}
	t := &Topology{
		side:      side,
		positions: make(map[string]Position, len(ids)),
		at:        make(map[Position]string, len(ids)),
	}
	for idx, id := range ids {
		pos := Position{X: idx % side, Y: idx / side}
		t.positions[id] = pos
		t.at[pos] = id
	}
	return t
}

// Side returns the lattice edge length.
func (t *Topology) Side() int { return t.side }

// PositionOf reports the lattice position of a cell id.
func (t *Topology) PositionOf(id string) (Position, bool) {
	pos, ok := t.positions[id]
	return pos, ok
}

// Neighbors returns the up-to-8 adjacent cell ids in deterministic scan
// order. Edge and corner cells get shorter lists; an unmapped id gets an
// empty list. Missing neighbors are never an error.
func (t *Topology) Neighbors(id string) []string {
	pos, ok := t.positions[id]
	if !ok {
		return nil
	}
	neighbors := make([]string, 0, 8)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if other, ok := t.at[Position{X: pos.X + dx, Y: pos.Y + dy}]; ok {
				neighbors = append(neighbors, other)
			}
		}
	}
	return neighbors
}
