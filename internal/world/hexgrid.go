package world

// Hex is an axial coordinate on the tract lattice. The implied cube
// coordinate s = -q-r keeps the usual hex identities available.
type Hex struct {
	Q, R int
}

func (h Hex) S() int { return -h.Q - h.R }

var hexDirections = [6]Hex{
	{1, 0}, {1, -1}, {0, -1}, {-1, 0}, {-1, 1}, {0, 1},
}

func (h Hex) add(o Hex) Hex { return Hex{h.Q + o.Q, h.R + o.R} }

// withinRadius reports whether h lies inside a hexagon of the given radius
// around the origin.
func withinRadius(h Hex, radius int) bool {
	return absInt(h.Q) <= radius && absInt(h.R) <= radius && absInt(h.S()) <= radius
}

// hexesWithinRadius enumerates the lattice in a fixed row-major order so
// tract numbering is deterministic run to run.
func hexesWithinRadius(radius int) []Hex {
	out := make([]Hex, 0, 3*radius*radius+3*radius+1)
	for q := -radius; q <= radius; q++ {
		lo, hi := maxInt(-radius, -q-radius), minInt(radius, -q+radius)
		for r := lo; r <= hi; r++ {
			out = append(out, Hex{q, r})
		}
	}
	return out
}

// neighborsWithin lists h's lattice neighbors that fall inside the grid.
// Tracts at the rim simply have fewer neighbors; there is no mirroring
// across the boundary.
func neighborsWithin(h Hex, radius int) []Hex {
	out := make([]Hex, 0, 6)
	for _, d := range hexDirections {
		n := h.add(d)
		if withinRadius(n, radius) {
			out = append(out, n)
		}
	}
	return out
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
