package world

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/kwhitlock/fiberlab/internal/fiber"
	"github.com/kwhitlock/fiberlab/internal/units"
)

// Build assembles a world from options: a hex lattice of tracts, each
// populated with filaments, crosslinkers, and motors at random positions.
// Filaments whose ends fall in the outer tenths of the span are pinned
// there with anchors.
func Build(opts Options) (*World, error) {
	opts.setDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}

	w := &World{
		opts:  opts,
		arena: fiber.NewArena(),
		grid:  hexesWithinRadius(opts.Radius),
		rng:   rand.New(rand.NewSource(opts.Seed)),
	}
	w.env = fiber.Env{
		KT:   units.ThermalEnergy(opts.Temperature),
		Eta:  units.EtaCytoplasm,
		Span: opts.Span,
	}

	w.trs = make([]*Tract, len(w.grid))
	for i, h := range w.grid {
		w.trs[i] = &Tract{Index: i, Loc: h}
	}
	for i, h := range w.grid {
		for _, n := range neighborsWithin(h, opts.Radius) {
			j := indexOf(w.grid, n)
			w.trs[i].neighbors = append(w.trs[i].neighbors, w.trs[j])
		}
	}

	for _, t := range w.trs {
		if err := w.populate(t); err != nil {
			return nil, err
		}
	}
	w.rebuildIndices()
	return w, nil
}

func indexOf(grid []Hex, h Hex) int {
	for i, g := range grid {
		if g == h {
			return i
		}
	}
	panic(fmt.Sprintf("hex %v not in grid", h))
}

func (w *World) populate(t *Tract) error {
	span := w.opts.Span
	for i := 0; i < w.opts.NActin; i++ {
		length := span * (0.1 + 0.8*w.rng.Float64())
		f := fiber.NewFilament(w.nextID, w.arena, w.env, 0, length)
		// Rounding to whole pairs can stretch the realized length past the
		// drawn one, so place the filament by what was actually built.
		f.SetX(w.rng.Float64() * math.Max(0, span-f.Length()))
		w.nextID++
		w.addProtein(t, f)
		if err := w.pin(t, f); err != nil {
			return err
		}
	}
	for i := 0; i < w.opts.NActinin; i++ {
		c := fiber.NewCrosslinker(w.nextID, w.arena, w.env, w.rng.Float64()*(span-fiber.ActininRest))
		w.nextID++
		w.addProtein(t, c)
	}
	for i := 0; i < w.opts.NMotors; i++ {
		m := fiber.NewMotor(w.nextID, w.arena, w.env, 0)
		m.SetX(w.rng.Float64() * (span - m.Length()))
		w.nextID++
		w.addProtein(t, m)
	}
	return nil
}

// pin anchors a filament end that sits in the outer tenth of the span,
// holding boundary filaments in place like a focal adhesion.
func (w *World) pin(t *Tract, f *fiber.Filament) error {
	span := w.opts.Span
	ids := f.Sites()
	ends := []int{0, len(ids) - 1}
	for _, i := range ends {
		x := f.SitePos(i)
		if x > 0.1*span && x < 0.9*span {
			continue
		}
		a := fiber.NewAnchor(w.nextID, w.arena, x)
		w.nextID++
		w.addProtein(t, a)
		if err := w.arena.Bind(a.Sites()[0], ids[i]); err != nil {
			return err
		}
	}
	return nil
}
