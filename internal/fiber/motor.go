package fiber

import (
	"math"
	"math/rand"

	"github.com/kwhitlock/fiberlab/internal/kinetics"
	"github.com/kwhitlock/fiberlab/internal/mech"
)

// Motor head substates. A head is in headFree when its site is unbound;
// binding always enters headPreStroke. The power stroke shortens the
// backbone rest length, which is what generates sliding force.
const (
	headFree = iota
	headPreStroke
	headPostStroke
)

// Motor kinetic parameters. The attachment rate and the stroke/reverse
// forms generate contractile cycling; detachment is Bell-model with a
// state-dependent unloaded rate (post-stroke heads release far faster).
const (
	motorOnRate = 100.0 // 1/s

	motorOffRatePre  = 0.5 // 1/s
	motorOffRatePost = 8.0 // 1/s
	motorRupture     = 4.0 // pN

	motorEllipsoidA = 15.0

	// Free-energy drops through the cycle, in units of 12·kT (roughly an
	// ATP hydrolysis), for detailed-balance reverse rates.
	motorDropPre  = 0.28
	motorDropPost = 0.68
)

// motorRests are the backbone rest lengths per motor state: relaxed,
// pre-stroke, post-stroke. The 6 nm rest-length change is the stroke.
var motorRests = [3]float64{30.0, 30.0, 24.0}

// Motor is a two-headed minifilament stub: a spring whose stiffness and
// rest length depend on the stroke state of its heads, so a bound motor
// pulls its two attachment points together.
type Motor struct {
	id        ProteinID
	arena     *Arena
	env       Env
	x         float64
	springs   [3]mech.Spring
	sites     [2]SiteID
	headState [2]int
}

func NewMotor(id ProteinID, arena *Arena, env Env, x float64) *Motor {
	m := &Motor{
		id:    id,
		arena: arena,
		env:   env,
		x:     x,
	}
	ks := [3]float64{env.KT, env.KT, 2 * env.KT}
	for s := range m.springs {
		m.springs[s] = mech.NewSpring(ks[s], motorRests[s])
	}
	for i := range m.sites {
		m.sites[i] = arena.Add(m, i, m.springs[0].K)
	}
	return m
}

func (m *Motor) ID() ProteinID  { return m.id }
func (m *Motor) Kind() Kind     { return KindMotor }
func (m *Motor) X() float64     { return m.x }
func (m *Motor) SetX(x float64) { m.x = x }

// state selects the governing backbone spring: the furthest-advanced head.
func (m *Motor) state() int {
	if m.headState[0] > m.headState[1] {
		return m.headState[0]
	}
	return m.headState[1]
}

func (m *Motor) spring() mech.Spring { return m.springs[m.state()] }

func (m *Motor) Length() float64 { return m.spring().Rest }

func (m *Motor) Sites() []SiteID { return m.sites[:] }

func (m *Motor) boundSide(i int) bool {
	return m.arena.Site(m.sites[i]).Bound()
}

func (m *Motor) partnerPos(i int) float64 {
	p := m.arena.Site(m.arena.Site(m.sites[i]).Partner)
	return p.Owner.SitePos(p.Index)
}

// SitePos places each head from whichever side is attached: free motors
// hang off x, singly bound motors off the bound head, doubly bound heads
// sit at their attachments.
func (m *Motor) SitePos(i int) float64 {
	b0, b1 := m.boundSide(0), m.boundSide(1)
	rest := m.spring().Rest
	switch {
	case b0 && b1:
		return m.partnerPos(i)
	case b0:
		if i == 0 {
			return m.partnerPos(0)
		}
		return m.partnerPos(0) + rest
	case b1:
		if i == 1 {
			return m.partnerPos(1)
		}
		return m.partnerPos(1) - rest
	default:
		if i == 0 {
			return m.x
		}
		return m.x + rest
	}
}

func (m *Motor) anchorPos(i int) float64 {
	if i == 0 {
		return m.x
	}
	return m.x + m.spring().Rest
}

// SiteForceAt mirrors the crosslinker convention: strain is borne only when
// the opposite head is attached, and the sign points toward the opposite
// head.
func (m *Motor) SiteForceAt(i int, x float64) float64 {
	if !m.boundSide(1 - i) {
		return 0
	}
	other := m.SitePos(1 - i)
	f := m.spring().Force(math.Abs(x - other))
	if x > other {
		return -f
	}
	return f
}

func (m *Motor) SiteEnergyAt(i int, x float64) float64 {
	if !m.boundSide(1 - i) {
		return 0
	}
	return m.spring().Energy(math.Abs(x - m.SitePos(1-i)))
}

func (m *Motor) SiteForce(i int) float64 {
	return m.SiteForceAt(i, m.SitePos(i))
}

func (m *Motor) NetForce() float64 {
	return m.SiteForce(0) + m.SiteForce(1)
}

func (m *Motor) NetEnergy() float64 {
	if !(m.boundSide(0) && m.boundSide(1)) {
		return 0
	}
	return m.spring().Energy(math.Abs(m.SitePos(1) - m.SitePos(0)))
}

func (m *Motor) Bound() bool {
	return m.boundSide(0) || m.boundSide(1)
}

func (m *Motor) Reposition(rng *rand.Rand, dt float64) {
	b0, b1 := m.boundSide(0), m.boundSide(1)
	switch {
	case !b0 && !b1:
		m.Diffuse(rng, dt)
	case b0:
		m.x = m.partnerPos(0)
	default:
		m.x = m.partnerPos(1) - m.spring().Rest
	}
	for i := 0; i < 2; i++ {
		s := m.arena.Site(m.sites[i])
		if s.Bound() {
			s.Stiffness = m.spring().K
			s.Offset = m.SitePos(i) - m.anchorPos(i)
		} else {
			s.Offset = 0
		}
	}
}

func (m *Motor) Diffuse(rng *rand.Rand, dt float64) float64 {
	drag := mech.EllipsoidLongAxis(motorRests[0], motorEllipsoidA, m.env.Eta)
	d := mech.DiffusionCoefficient(m.env.KT, drag)
	dx := mech.ThermalDisplacement(rng, d, dt)
	start, _, err := mech.ReflectIntoBounds(m.x+dx, m.x+dx+m.spring().Rest, 0, m.env.Span)
	if err != nil {
		return 0
	}
	m.x = start
	return dx
}

// BindRate falls off sharply with distance to the candidate site.
func (m *Motor) BindRate(i int, dist float64) float64 {
	return motorOnRate * math.Exp(-(0.25*dist)*(0.25*dist))
}

// UnbindRate is Bell-model with the unloaded rate set by the head's stroke
// state.
func (m *Motor) UnbindRate(i int, force float64) float64 {
	k0 := motorOffRatePre
	if m.headState[i] == headPostStroke {
		k0 = motorOffRatePost
	}
	return kinetics.Bell(k0, force, motorRupture)
}

func (m *Motor) CanBind(i int, target SiteID) bool {
	t := m.arena.Site(target)
	if t.Owner.Kind() != KindActin {
		return false
	}
	other := m.arena.Site(m.sites[1-i])
	if !other.Bound() {
		return true
	}
	p := m.arena.Site(other.Partner)
	return p.Owner.ID() != t.Owner.ID()
}

// freeEnergy is the head's free energy (in kT) at the given backbone
// length, dropping through the cycle as chemical energy is spent.
func (m *Motor) freeEnergy(length float64, state int) float64 {
	switch state {
	case headPreStroke:
		return (m.springs[1].Energy(length) - motorDropPre*12*m.env.KT) / m.env.KT
	case headPostStroke:
		return (m.springs[2].Energy(length) - motorDropPost*12*m.env.KT) / m.env.KT
	default:
		return 0
	}
}

// strokeRate is the pre→post transition rate: fast when the backbone is
// compressed or unloaded, shut off by stretch.
func (m *Motor) strokeRate(length float64) float64 {
	strain := length - m.springs[headPreStroke].Rest
	return 48*(1-math.Tanh(0.5*(strain+2))) + 4
}

func (m *Motor) reverseStrokeRate(length float64) float64 {
	fe1 := m.freeEnergy(length, headPreStroke)
	fe2 := m.freeEnergy(length, headPostStroke)
	return kinetics.ReverseRate(m.strokeRate(length), fe1, fe2)
}

// ProposeBound samples what a bound head does this step given its
// snapshot force and backbone length: detach, stroke, reverse the stroke,
// or stay put. Returns the largest rate sampled for stability accounting.
func (m *Motor) ProposeBound(rng *rand.Rand, i int, force, length, dt float64) (BoundAction, int, float64) {
	offRate := m.UnbindRate(i, force)
	maxRate := offRate

	switch m.headState[i] {
	case headPreStroke:
		stroke := m.strokeRate(length)
		if stroke > maxRate {
			maxRate = stroke
		}
		if rng.Float64() < kinetics.RateToProb(stroke, dt) {
			return ActionStroke, headPostStroke, maxRate
		}
		if rng.Float64() < kinetics.RateToProb(offRate, dt) {
			return ActionUnbind, headFree, maxRate
		}
	case headPostStroke:
		if rng.Float64() < kinetics.RateToProb(offRate, dt) {
			return ActionUnbind, headFree, maxRate
		}
		reverse := m.reverseStrokeRate(length)
		if reverse > maxRate {
			maxRate = reverse
		}
		if rng.Float64() < kinetics.RateToProb(reverse, dt) {
			return ActionStroke, headPreStroke, maxRate
		}
	}
	return ActionStay, m.headState[i], maxRate
}

func (m *Motor) SetHeadState(i, state int) { m.headState[i] = state }

// HeadState exposes the stroke substate for snapshots and tests.
func (m *Motor) HeadState(i int) int { return m.headState[i] }

// OnBind and OnUnbind keep the stroke substate in lockstep with the arena's
// binding topology.
func (m *Motor) OnBind(i int)   { m.headState[i] = headPreStroke }
func (m *Motor) OnUnbind(i int) { m.headState[i] = headFree }
