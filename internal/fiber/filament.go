package fiber

import (
	"math"
	"math/rand"

	"github.com/kwhitlock/fiberlab/internal/mech"
)

// Thin-filament geometry, Howard 2001 pg 121-125: a 72 nm section holds 26
// g-actin, giving the rise per pair; the filament radius is 3 nm.
const (
	ActinRise   = 72.0 / 26.0
	ActinRadius = 3.0
)

// Filament is a 1D actin filament: a rigid rod of binding-site pairs spaced
// at the actin rise. It bears no elastic energy itself (axially stiff); all
// force on it arrives through partners bound to its sites. When free it
// diffuses as a slender cylinder; when bound it relaxes to the position
// where the partner forces balance.
type Filament struct {
	id    ProteinID
	arena *Arena
	env   Env
	x     float64
	sites []SiteID
	drag  float64
}

// NewFilament creates a filament at x whose pair count best matches the
// requested length.
func NewFilament(id ProteinID, arena *Arena, env Env, x, length float64) *Filament {
	n := int(math.Round(length / ActinRise))
	if n < 2 {
		n = 2
	}
	f := &Filament{
		id:    id,
		arena: arena,
		env:   env,
		x:     x,
	}
	f.sites = make([]SiteID, n)
	for i := range f.sites {
		// Rigid sites: the filament stores no local elastic energy.
		f.sites[i] = arena.Add(f, i, 0)
	}
	f.drag = mech.CylinderLongAxis(f.Length(), ActinRadius, env.Eta)
	return f
}

func (f *Filament) ID() ProteinID  { return f.id }
func (f *Filament) Kind() Kind     { return KindActin }
func (f *Filament) X() float64     { return f.x }
func (f *Filament) SetX(x float64) { f.x = x }

func (f *Filament) Length() float64 {
	return float64(len(f.sites)) * ActinRise
}

func (f *Filament) Sites() []SiteID { return f.sites }

func (f *Filament) SitePos(i int) float64 {
	return f.x + float64(i)*ActinRise
}

// NearestSite returns the index of the pair closest to x.
func (f *Filament) NearestSite(x float64) int {
	if x <= f.x {
		return 0
	}
	if x >= f.x+f.Length() {
		return len(f.sites) - 1
	}
	i := int(math.Round((x - f.x) / ActinRise))
	if i > len(f.sites)-1 {
		i = len(f.sites) - 1
	}
	return i
}

// SiteForceAt is the force transmitted to pair i were it located at x: the
// linked partner's force evaluated there, zero when unbound.
func (f *Filament) SiteForceAt(i int, x float64) float64 {
	s := f.arena.Site(f.sites[i])
	if !s.Bound() {
		return 0
	}
	p := f.arena.Site(s.Partner)
	return p.Owner.SiteForceAt(p.Index, x)
}

// SiteEnergyAt is the elastic energy held by pair i's partner were the pair
// at x. The filament itself is treated as inflexible, so energy lives
// entirely in the bound partner.
func (f *Filament) SiteEnergyAt(i int, x float64) float64 {
	s := f.arena.Site(f.sites[i])
	if !s.Bound() {
		return 0
	}
	p := f.arena.Site(s.Partner)
	return p.Owner.SiteEnergyAt(p.Index, x)
}

func (f *Filament) SiteForce(i int) float64 {
	return f.SiteForceAt(i, f.SitePos(i))
}

// forceWithStartAt sums the partner forces over all bound pairs for a
// hypothetical filament start position, without changing state. Used for
// force balances.
func (f *Filament) forceWithStartAt(x float64) float64 {
	var sum float64
	for i, id := range f.sites {
		if f.arena.Site(id).Bound() {
			sum += f.SiteForceAt(i, x+float64(i)*ActinRise)
		}
	}
	return sum
}

func (f *Filament) energyWithStartAt(x float64) float64 {
	var sum float64
	for i, id := range f.sites {
		if f.arena.Site(id).Bound() {
			sum += f.SiteEnergyAt(i, x+float64(i)*ActinRise)
		}
	}
	return sum
}

func (f *Filament) NetForce() float64  { return f.forceWithStartAt(f.x) }
func (f *Filament) NetEnergy() float64 { return f.energyWithStartAt(f.x) }

func (f *Filament) Bound() bool {
	for _, id := range f.sites {
		if f.arena.Site(id).Bound() {
			return true
		}
	}
	return false
}

// Reposition diffuses a free filament or relaxes a bound one toward force
// balance.
func (f *Filament) Reposition(rng *rand.Rand, dt float64) {
	if !f.Bound() {
		f.Diffuse(rng, dt)
		return
	}
	f.relax()
}

// Diffuse takes an Einstein-Smoluchowski step with slender-cylinder drag
// and reflects off the tract ends.
func (f *Filament) Diffuse(rng *rand.Rand, dt float64) float64 {
	d := mech.DiffusionCoefficient(f.env.KT, f.drag)
	dx := mech.ThermalDisplacement(rng, d, dt)
	start, _, err := mech.ReflectIntoBounds(f.x+dx, f.x+dx+f.Length(), 0, f.env.Span)
	if err != nil {
		return 0
	}
	f.x = start
	return dx
}

// relax moves the filament to the position where bound partner forces
// balance, found by bisection. The net force decreases with x for linear
// partner springs, so the window either brackets a root or the filament is
// pushed against a tract end.
func (f *Filament) relax() {
	lo, hi := 0.0, f.env.Span-f.Length()
	flo, fhi := f.forceWithStartAt(lo), f.forceWithStartAt(hi)
	switch {
	case flo <= 0:
		f.x = lo
		return
	case fhi >= 0:
		f.x = hi
		return
	}
	for i := 0; i < 60 && hi-lo > 1e-9; i++ {
		mid := 0.5 * (lo + hi)
		if f.forceWithStartAt(mid) > 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	f.x = 0.5 * (lo + hi)
}
