// Package fiber holds the force-bearing agents of the network: filaments,
// crosslinkers, motors, and anchors, plus the central binding-site arena
// that links them. Proteins are a closed variant set behind the Protein
// interface; binding topology lives in the arena so rebinding can never
// produce a dangling reference.
package fiber

import "math/rand"

// ProteinID identifies a protein within its world. Assigned sequentially at
// construction and stable for the life of the run.
type ProteinID int

// SiteID indexes a binding site in the arena.
type SiteID int

// NoSite marks an unbound partner slot.
const NoSite SiteID = -1

type Kind string

const (
	KindActin   Kind = "actin"
	KindActinin Kind = "actinin"
	KindMotor   Kind = "motor"
	KindAnchor  Kind = "anchor"
)

// Env is the pre-converted physical context a protein computes in. All
// values are nm-g-s: KT in pN·nm, Eta in g/(nm·s) (already crowding
// corrected), Span in nm.
type Env struct {
	KT   float64
	Eta  float64
	Span float64
}

// Protein is the capability surface shared by every agent. Force and energy
// are pure functions of current geometry and binding topology; nothing is
// cached across a step once positions change.
type Protein interface {
	ID() ProteinID
	Kind() Kind

	// X is the protein's reference position (left end for extended
	// proteins), nm from the tract origin.
	X() float64
	SetX(x float64)

	// Length is the spatial extent, 0 for point-like proteins.
	Length() float64

	Sites() []SiteID
	SitePos(i int) float64

	// SiteForce is the signed force currently borne by site i.
	// SiteForceAt evaluates the same with site i hypothetically at x,
	// without mutating state; SiteEnergyAt is the energy analogue. These
	// hypothetical forms are what lets the filament solve force balances
	// and the stepper snapshot forces without touching geometry.
	SiteForce(i int) float64
	SiteForceAt(i int, x float64) float64
	SiteEnergyAt(i int, x float64) float64

	NetForce() float64
	NetEnergy() float64

	// Bound reports whether any owned site is attached.
	Bound() bool

	// Reposition advances the protein's position for one timestep:
	// thermal diffusion when free, relaxation/tracking when bound. It
	// never touches binding topology.
	Reposition(rng *rand.Rand, dt float64)
}

// Binder is implemented by proteins whose sites actively attach and detach
// (crosslinkers and motors; filament sites are passive targets).
type Binder interface {
	Protein

	// BindRate is the attachment rate, per second, for site i given the
	// distance to a candidate partner.
	BindRate(i int, dist float64) float64

	// UnbindRate is the Bell-model detachment rate, per second, for site
	// i under the given force magnitude.
	UnbindRate(i int, force float64) float64

	// CanBind reports whether site i may attach to the target site
	// (compatible kind, no self-links across the same filament).
	CanBind(i int, target SiteID) bool
}

// BindObserver lets a protein react when the arena commits a transition on
// one of its sites (motors use it to enter/leave their bound head states).
type BindObserver interface {
	OnBind(i int)
	OnUnbind(i int)
}

// BoundAction is a sampled decision for a bound site within one step.
type BoundAction int

const (
	ActionStay BoundAction = iota
	ActionUnbind
	ActionStroke
)

// Cycler is implemented by proteins whose bound heads carry internal
// substates (the motor power-stroke cycle). ProposeBound samples the
// bound-head transition from the step-start snapshot values and returns the
// action, the target substate for ActionStroke, and the largest rate
// sampled (for stability accounting).
type Cycler interface {
	ProposeBound(rng *rand.Rand, i int, force, length, dt float64) (BoundAction, int, float64)
	SetHeadState(i, state int)
}
