package world

import (
	"math"

	"github.com/kwhitlock/fiberlab/internal/fiber"
	"github.com/kwhitlock/fiberlab/internal/kinetics"
)

// StepReport summarizes the topology changes of one step.
type StepReport struct {
	Step     int
	Dt       float64
	Binds    int
	Unbinds  int
	Strokes  int
	Warnings []error
}

type bindEvent struct {
	site, target fiber.SiteID
}

type strokeEvent struct {
	owner fiber.Cycler
	index int
	state int
}

// Step advances the world one step at the configured dt.
func (w *World) Step() StepReport {
	return w.StepDt(w.opts.Dt)
}

// StepN advances the world n steps at the configured dt, returning the
// report of the last step.
func (w *World) StepN(n int) StepReport {
	var rep StepReport
	for i := 0; i < n; i++ {
		rep = w.StepDt(w.opts.Dt)
	}
	return rep
}

// StepDt advances the world by one step of length dt seconds.
//
// The step is synchronous: every protein first repositions, then the full
// mechanical state is frozen into per-site position and force arrays, all
// kinetic transitions are sampled against that frozen state, and only then
// are they committed. No transition sees another transition from the same
// step. When two heads claim the same site, the lower site id wins.
func (w *World) StepDt(dt float64) StepReport {
	rep := StepReport{Step: w.step + 1, Dt: dt}

	for _, p := range w.proteins {
		p.Reposition(w.rng, dt)
	}

	n := w.arena.Len()
	pos := make([]float64, n)
	force := make([]float64, n)
	bound := make([]bool, n)
	for id := 0; id < n; id++ {
		s := w.arena.Site(fiber.SiteID(id))
		pos[id] = s.Owner.SitePos(s.Index)
		f := s.Owner.SiteForce(s.Index)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			rep.Warnings = append(rep.Warnings, &StabilityWarning{
				Site: fiber.SiteID(id), NonFinite: true,
			})
			f = 0
		}
		force[id] = f
		bound[id] = s.Bound()
	}

	w.rebuildIndices()

	var unbinds []fiber.SiteID
	var strokes []strokeEvent
	var binds []bindEvent
	claimed := make(map[fiber.SiteID]bool)

	for id := 0; id < n; id++ {
		sid := fiber.SiteID(id)
		s := w.arena.Site(sid)
		if bound[id] {
			other := s.Partner
			if cyc, ok := s.Owner.(fiber.Cycler); ok {
				length := math.Abs(pos[other] - pos[sid])
				action, state, maxRate := cyc.ProposeBound(w.rng, s.Index, force[id], length, dt)
				if !kinetics.StableRateDt(maxRate, dt) {
					rep.Warnings = append(rep.Warnings, &StabilityWarning{Site: sid, Rate: maxRate, Dt: dt})
				}
				switch action {
				case fiber.ActionUnbind:
					unbinds = append(unbinds, sid)
				case fiber.ActionStroke:
					strokes = append(strokes, strokeEvent{owner: cyc, index: s.Index, state: state})
				}
				continue
			}
			if b, ok := s.Owner.(fiber.Binder); ok {
				rate := b.UnbindRate(s.Index, force[id])
				if !kinetics.StableRateDt(rate, dt) {
					rep.Warnings = append(rep.Warnings, &StabilityWarning{Site: sid, Rate: rate, Dt: dt})
				}
				if w.rng.Float64() < kinetics.RateToProb(rate, dt) {
					unbinds = append(unbinds, sid)
				}
			}
			continue
		}

		b, ok := s.Owner.(fiber.Binder)
		if !ok {
			continue
		}
		target, dist := w.nearestFree(b, s.Index, pos[sid], claimed)
		if target == fiber.NoSite {
			continue
		}
		rate := b.BindRate(s.Index, dist)
		if !kinetics.StableRateDt(rate, dt) {
			rep.Warnings = append(rep.Warnings, &StabilityWarning{Site: sid, Rate: rate, Dt: dt})
		}
		if w.rng.Float64() < kinetics.RateToProb(rate, dt) {
			claimed[target] = true
			binds = append(binds, bindEvent{site: sid, target: target})
		}
	}

	for _, sid := range unbinds {
		if err := w.arena.Unbind(sid); err != nil {
			rep.Warnings = append(rep.Warnings, err)
			continue
		}
		rep.Unbinds++
	}
	for _, ev := range strokes {
		ev.owner.SetHeadState(ev.index, ev.state)
		rep.Strokes++
	}
	for _, ev := range binds {
		if err := w.arena.Bind(ev.site, ev.target); err != nil {
			rep.Warnings = append(rep.Warnings, err)
			continue
		}
		rep.Binds++
	}

	w.step++
	w.time += dt
	return rep
}

// nearestFree finds the closest free actin site within the capture radius
// of x that head i of b is allowed to bind and no earlier head has claimed,
// searching the binder's tract and its neighbors.
func (w *World) nearestFree(b fiber.Binder, i int, x float64, claimed map[fiber.SiteID]bool) (fiber.SiteID, float64) {
	t := w.trs[w.tractIdx[b.ID()]]
	best := fiber.NoSite
	bestDist := math.Inf(1)
	var entries []siteEntry
	for _, r := range t.Reachable() {
		entries = r.index.within(x, w.opts.CaptureRadius, entries)
	}
	for _, e := range entries {
		if claimed[e.id] {
			continue
		}
		d := math.Abs(e.x - x)
		if d >= bestDist {
			continue
		}
		if !b.CanBind(i, e.id) {
			continue
		}
		best = e.id
		bestDist = d
	}
	return best, bestDist
}
