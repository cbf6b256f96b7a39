package fiber

import (
	"math/rand"

	"github.com/kwhitlock/fiberlab/internal/mech"
)

// Anchor parameters: a very stiff zero-rest spring standing in for a focal
// adhesion. Stiff enough to pin a filament end, soft enough to keep the
// force balance well conditioned.
const (
	AnchorStiffness = 100.0 // pN/nm
)

// Anchor pins a linked binding site to a fixed location. It never moves,
// never initiates kinetics, and never releases; it exists so filament ends
// can be held at the tract boundaries while staying inside the ordinary
// force network.
type Anchor struct {
	id     ProteinID
	arena  *Arena
	x      float64
	spring mech.Spring
	sites  [1]SiteID
}

func NewAnchor(id ProteinID, arena *Arena, x float64) *Anchor {
	a := &Anchor{
		id:     id,
		arena:  arena,
		x:      x,
		spring: mech.NewSpring(AnchorStiffness, 0),
	}
	a.sites[0] = arena.Add(a, 0, AnchorStiffness)
	return a
}

func (a *Anchor) ID() ProteinID      { return a.id }
func (a *Anchor) Kind() Kind         { return KindAnchor }
func (a *Anchor) X() float64         { return a.x }
func (a *Anchor) SetX(x float64)     { a.x = x }
func (a *Anchor) Length() float64    { return 0 }
func (a *Anchor) Sites() []SiteID    { return a.sites[:] }
func (a *Anchor) SitePos(int) float64 { return a.x }

// SiteForceAt is the restoring pull toward the anchor point on whatever is
// attached at x.
func (a *Anchor) SiteForceAt(_ int, x float64) float64 {
	return -a.spring.K * (x - a.x)
}

// SiteEnergyAt is deliberately zero: the anchor is treated as dissipative
// so it never inflates the elastic energy attributed to crosslinkers and
// motors.
func (a *Anchor) SiteEnergyAt(_ int, _ float64) float64 { return 0 }

func (a *Anchor) SiteForce(i int) float64 {
	s := a.arena.Site(a.sites[0])
	if !s.Bound() {
		return 0
	}
	p := a.arena.Site(s.Partner)
	return a.SiteForceAt(i, p.Owner.SitePos(p.Index))
}

func (a *Anchor) NetForce() float64  { return a.SiteForce(0) }
func (a *Anchor) NetEnergy() float64 { return 0 }

func (a *Anchor) Bound() bool {
	return a.arena.Site(a.sites[0]).Bound()
}

// Reposition sits there and remains bound.
func (a *Anchor) Reposition(*rand.Rand, float64) {}
