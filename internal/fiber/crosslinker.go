package fiber

import (
	"math"
	"math/rand"

	"github.com/kwhitlock/fiberlab/internal/kinetics"
	"github.com/kwhitlock/fiberlab/internal/mech"
)

// α-actinin-like crosslinker parameters. Stiffness and rest length follow
// the spectrin-repeat backbone estimate (persistence length 240 nm scaled
// to a 36 nm rod of radius 1.5 nm → 3.75 pN/nm). The backbone is treated
// hydrodynamically as an 18x3 nm ellipsoid.
const (
	ActininStiffness = 3.75 // pN/nm
	ActininRest      = 36.0 // nm

	actininEllipsoidB = 18.0
	actininEllipsoidA = 3.0

	// Base attachment rate and Bell detachment parameters.
	actininOnRate       = 72.0 // 1/s
	actininOffRate      = 1.0  // 1/s, unloaded
	actininRuptureForce = 10.0 // pN
)

// Crosslinker is a two-headed spring. Each head carries one binding site;
// the backbone stores elastic energy only when both heads are attached.
type Crosslinker struct {
	id     ProteinID
	arena  *Arena
	env    Env
	x      float64 // left end of the backbone
	spring mech.Spring
	sites  [2]SiteID
	headX  [2]float64 // thermally perturbed positions of free heads
}

func NewCrosslinker(id ProteinID, arena *Arena, env Env, x float64) *Crosslinker {
	c := &Crosslinker{
		id:     id,
		arena:  arena,
		env:    env,
		x:      x,
		spring: mech.NewSpring(ActininStiffness, ActininRest),
	}
	for i := range c.sites {
		c.sites[i] = arena.Add(c, i, ActininStiffness)
	}
	c.headX[0] = x
	c.headX[1] = x + ActininRest
	return c
}

func (c *Crosslinker) ID() ProteinID  { return c.id }
func (c *Crosslinker) Kind() Kind     { return KindActinin }
func (c *Crosslinker) X() float64     { return c.x }
func (c *Crosslinker) SetX(x float64) { c.x = x }
func (c *Crosslinker) Length() float64 {
	return ActininRest
}

func (c *Crosslinker) Sites() []SiteID { return c.sites[:] }

func (c *Crosslinker) boundSide(i int) bool {
	return c.arena.Site(c.sites[i]).Bound()
}

// SitePos is the head position: the linked site's location when bound, the
// thermally perturbed backbone end otherwise.
func (c *Crosslinker) SitePos(i int) float64 {
	s := c.arena.Site(c.sites[i])
	if s.Bound() {
		p := c.arena.Site(s.Partner)
		return p.Owner.SitePos(p.Index)
	}
	return c.headX[i]
}

// anchorPos is head i's unstressed position on the backbone.
func (c *Crosslinker) anchorPos(i int) float64 {
	if i == 0 {
		return c.x
	}
	return c.x + c.spring.Rest
}

// SiteForceAt is the force head i would exert on its attachment were it at
// x. Zero unless the opposite head is bound (a singly attached crosslinker
// bears no strain). The sign reflects the pull toward the opposite head:
// negative when this head is the right-most of the two.
func (c *Crosslinker) SiteForceAt(i int, x float64) float64 {
	if !c.boundSide(1 - i) {
		return 0
	}
	other := c.SitePos(1 - i)
	f := c.spring.Force(math.Abs(x - other))
	if x > other {
		return -f
	}
	return f
}

func (c *Crosslinker) SiteEnergyAt(i int, x float64) float64 {
	if !c.boundSide(1 - i) {
		return 0
	}
	return c.spring.Energy(math.Abs(x - c.SitePos(1-i)))
}

func (c *Crosslinker) SiteForce(i int) float64 {
	return c.SiteForceAt(i, c.SitePos(i))
}

func (c *Crosslinker) NetForce() float64 {
	return c.SiteForce(0) + c.SiteForce(1)
}

// NetEnergy is the backbone strain energy, borne only when fully bound.
func (c *Crosslinker) NetEnergy() float64 {
	if !c.FullyBound() {
		return 0
	}
	return c.spring.Energy(math.Abs(c.SitePos(1) - c.SitePos(0)))
}

func (c *Crosslinker) Bound() bool {
	return c.boundSide(0) || c.boundSide(1)
}

func (c *Crosslinker) FullyBound() bool {
	return c.boundSide(0) && c.boundSide(1)
}

// Reposition diffuses a free crosslinker, or aligns the backbone to its
// bound head(s), then refreshes the thermal placement of any free head and
// the offsets of bound ones.
func (c *Crosslinker) Reposition(rng *rand.Rand, dt float64) {
	switch {
	case !c.Bound():
		c.Diffuse(rng, dt)
	case c.boundSide(0):
		c.x = c.SitePos(0)
	default:
		c.x = c.SitePos(1) - c.spring.Rest
	}
	for i := 0; i < 2; i++ {
		s := c.arena.Site(c.sites[i])
		if s.Bound() {
			s.Offset = c.SitePos(i) - c.anchorPos(i)
			continue
		}
		// Free heads vibrate about the backbone ends; each end takes
		// half of a thermal backbone extension.
		bop := 0.5 * c.spring.BopDx(rng, c.env.KT)
		if i == 0 {
			c.headX[0] = c.x - bop
		} else {
			c.headX[1] = c.x + c.spring.Rest + bop
		}
		s.Offset = 0
	}
}

// Diffuse moves the free crosslinker with ellipsoid drag, reflecting off
// the tract ends.
func (c *Crosslinker) Diffuse(rng *rand.Rand, dt float64) float64 {
	drag := mech.EllipsoidLongAxis(actininEllipsoidB, actininEllipsoidA, c.env.Eta)
	d := mech.DiffusionCoefficient(c.env.KT, drag)
	dx := mech.ThermalDisplacement(rng, d, dt)
	start, _, err := mech.ReflectIntoBounds(c.x+dx, c.x+dx+c.spring.Rest, 0, c.env.Span)
	if err != nil {
		return 0
	}
	c.x = start
	return dx
}

// BindRate decays with the elastic energy needed to stretch the backbone to
// the candidate, on top of a constant base rate.
func (c *Crosslinker) BindRate(i int, dist float64) float64 {
	return actininOnRate * math.Exp(-(c.spring.K*dist*dist)/(2*c.env.KT))
}

// UnbindRate is Bell-model detachment under the site's current force.
func (c *Crosslinker) UnbindRate(i int, force float64) float64 {
	return kinetics.Bell(actininOffRate, force, actininRuptureForce)
}

// CanBind permits attachment to actin sites only, and never to the filament
// the opposite head already holds.
func (c *Crosslinker) CanBind(i int, target SiteID) bool {
	t := c.arena.Site(target)
	if t.Owner.Kind() != KindActin {
		return false
	}
	other := c.arena.Site(c.sites[1-i])
	if !other.Bound() {
		return true
	}
	p := c.arena.Site(other.Partner)
	return p.Owner.ID() != t.Owner.ID()
}
