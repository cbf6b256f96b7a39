package world

import (
	"errors"
	"math"
	"testing"

	"github.com/kwhitlock/fiberlab/internal/fiber"
)

func testOptions() Options {
	return Options{
		Radius:   1,
		Span:     10000,
		NActin:   5,
		NActinin: 20,
		NMotors:  10,
		Seed:     42,
	}
}

func TestBuildRejectsBadOptions(t *testing.T) {
	cases := []struct {
		name string
		mod  func(*Options)
	}{
		{"negative radius", func(o *Options) { o.Radius = -1 }},
		{"zero span", func(o *Options) { o.Span = 0 }},
		{"span shorter than a filament", func(o *Options) { o.Span = 100 }},
		{"negative population", func(o *Options) { o.NActinin = -3 }},
		{"negative dt", func(o *Options) { o.Dt = -0.001 }},
		{"negative temperature", func(o *Options) { o.Temperature = -1 }},
	}
	for _, c := range cases {
		opts := testOptions()
		c.mod(&opts)
		_, err := Build(opts)
		if err == nil {
			t.Errorf("%s: Build succeeded, want error", c.name)
			continue
		}
		var cfg *ConfigurationError
		if !errors.As(err, &cfg) {
			t.Errorf("%s: error %v is not a ConfigurationError", c.name, err)
		}
	}
}

func TestBuildPopulations(t *testing.T) {
	opts := testOptions()
	w, err := Build(opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(w.Tracts()) != 7 {
		t.Fatalf("got %d tracts, want 7", len(w.Tracts()))
	}
	for _, tr := range w.Tracts() {
		var nActin, nActinin, nMotor, nAnchor int
		for _, p := range tr.Proteins() {
			switch p.Kind() {
			case fiber.KindActin:
				nActin++
			case fiber.KindActinin:
				nActinin++
			case fiber.KindMotor:
				nMotor++
			case fiber.KindAnchor:
				nAnchor++
			}
		}
		if nActin != opts.NActin || nActinin != opts.NActinin || nMotor != opts.NMotors {
			t.Errorf("tract %d: populations %d/%d/%d, want %d/%d/%d",
				tr.Index, nActin, nActinin, nMotor, opts.NActin, opts.NActinin, opts.NMotors)
		}
		if nAnchor > 2*opts.NActin {
			t.Errorf("tract %d: %d anchors for %d filaments", tr.Index, nAnchor, nActin)
		}
	}
}

func TestBuildPlacesProteinsInBounds(t *testing.T) {
	w, err := Build(testOptions())
	if err != nil {
		t.Fatal(err)
	}
	span := w.Options().Span
	for _, p := range w.Proteins() {
		if p.X() < 0 || p.X()+p.Length() > span+1e-9 {
			t.Errorf("protein %d (%v): x=%.1f length=%.1f outside [0, %.0f]",
				p.ID(), p.Kind(), p.X(), p.Length(), span)
		}
	}
}

func TestBuildAnchorsPinOuterTenths(t *testing.T) {
	w, err := Build(testOptions())
	if err != nil {
		t.Fatal(err)
	}
	span := w.Options().Span
	for _, p := range w.Proteins() {
		a, ok := p.(*fiber.Anchor)
		if !ok {
			continue
		}
		if a.X() > 0.1*span && a.X() < 0.9*span {
			t.Errorf("anchor %d at %.1f, want outer tenths of span %.0f", a.ID(), a.X(), span)
		}
		if !a.Bound() {
			t.Errorf("anchor %d built unbound", a.ID())
		}
	}
}

func TestBuildReproducibleFromSeed(t *testing.T) {
	w1, err := Build(testOptions())
	if err != nil {
		t.Fatal(err)
	}
	w2, err := Build(testOptions())
	if err != nil {
		t.Fatal(err)
	}
	p1, p2 := w1.Proteins(), w2.Proteins()
	if len(p1) != len(p2) {
		t.Fatalf("populations differ: %d vs %d", len(p1), len(p2))
	}
	for i := range p1 {
		if p1[i].X() != p2[i].X() || p1[i].Length() != p2[i].Length() {
			t.Fatalf("protein %d differs: x %.6f vs %.6f", i, p1[i].X(), p2[i].X())
		}
	}
}

func TestNeighborsOfFindsFreeActinSites(t *testing.T) {
	w, err := Build(testOptions())
	if err != nil {
		t.Fatal(err)
	}
	tr := w.Tracts()[0]
	span := w.Options().Span

	want := 0
	for _, r := range tr.Reachable() {
		for _, p := range r.Proteins() {
			if p.Kind() != fiber.KindActin {
				continue
			}
			for _, id := range p.Sites() {
				if !w.Arena().Bound(id) {
					want++
				}
			}
		}
	}
	got := len(w.NeighborsOf(tr, span/2, span))
	if got != want {
		t.Errorf("NeighborsOf full span = %d sites, want %d", got, want)
	}

	for _, id := range w.NeighborsOf(tr, span/2, 100) {
		s := w.Arena().Site(id)
		x := s.Owner.SitePos(s.Index)
		if math.Abs(x-span/2) > 100 {
			t.Errorf("site %d at %.1f outside radius 100 of %.1f", id, x, span/2)
		}
	}
}

func TestSnapshotShape(t *testing.T) {
	w, err := Build(testOptions())
	if err != nil {
		t.Fatal(err)
	}
	snap := w.Snapshot()
	if snap.Step != 0 || snap.Time != 0 {
		t.Errorf("fresh snapshot step/time = %d/%.3f, want 0/0", snap.Step, snap.Time)
	}
	if len(snap.Proteins) != len(w.Proteins()) {
		t.Errorf("snapshot has %d proteins, want %d", len(snap.Proteins), len(w.Proteins()))
	}
	if len(snap.Sites) != w.Arena().Len() {
		t.Errorf("snapshot has %d sites, want %d", len(snap.Sites), w.Arena().Len())
	}
	for _, s := range snap.Sites {
		if math.IsNaN(s.X) || math.IsNaN(s.Force) {
			t.Errorf("site %d: non-finite snapshot state", s.ID)
		}
	}
}
