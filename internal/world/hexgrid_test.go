package world

import "testing"

func TestHexesWithinRadiusCount(t *testing.T) {
	cases := []struct {
		radius int
		want   int
	}{
		{0, 1},
		{1, 7},
		{2, 19},
		{3, 37},
	}
	for _, c := range cases {
		got := len(hexesWithinRadius(c.radius))
		if got != c.want {
			t.Errorf("radius %d: got %d hexes, want %d", c.radius, got, c.want)
		}
	}
}

func TestHexEnumerationDeterministic(t *testing.T) {
	a := hexesWithinRadius(2)
	b := hexesWithinRadius(2)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("enumeration differs at %d: %v vs %v", i, a[i], b[i])
		}
	}
	if a[0] != (Hex{-2, 0}) {
		t.Errorf("first hex = %v, want {-2 0}", a[0])
	}
}

func TestHexCubeInvariant(t *testing.T) {
	for _, h := range hexesWithinRadius(3) {
		if h.Q+h.R+h.S() != 0 {
			t.Errorf("hex %v: q+r+s = %d, want 0", h, h.Q+h.R+h.S())
		}
	}
}

func TestNeighborsWithin(t *testing.T) {
	center := neighborsWithin(Hex{0, 0}, 1)
	if len(center) != 6 {
		t.Errorf("center neighbors = %d, want 6", len(center))
	}
	rim := neighborsWithin(Hex{1, 0}, 1)
	if len(rim) != 3 {
		t.Errorf("rim neighbors = %d, want 3", len(rim))
	}
	for _, n := range rim {
		if !withinRadius(n, 1) {
			t.Errorf("rim neighbor %v outside radius 1", n)
		}
	}
}
