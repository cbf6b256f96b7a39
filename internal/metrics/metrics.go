package metrics

import (
	"github.com/kwhitlock/fiberlab/internal/fiber"
	"github.com/kwhitlock/fiberlab/internal/world"
)

// Metric observes world snapshots at step boundaries and reduces them to a
// single number.
type Metric interface {
	Name() string
	Observe(snap world.Snapshot)
	Value() float64
	Reset()
}

// BoundFraction tracks the fraction of crosslinker and motor heads that are
// bound, averaged over the observed steps.
type BoundFraction struct {
	name    string
	sum     float64
	samples int
}

func NewBoundFraction() *BoundFraction {
	return &BoundFraction{name: "bound_fraction"}
}

func (b *BoundFraction) Name() string { return b.name }

func (b *BoundFraction) Observe(snap world.Snapshot) {
	var heads, bound int
	for _, s := range snap.Sites {
		kind := kindOf(snap, s.Owner)
		if kind != fiber.KindActinin && kind != fiber.KindMotor {
			continue
		}
		heads++
		if s.Partner != fiber.NoSite {
			bound++
		}
	}
	if heads == 0 {
		return
	}
	b.sum += float64(bound) / float64(heads)
	b.samples++
}

func (b *BoundFraction) Value() float64 {
	if b.samples == 0 {
		return 0
	}
	return b.sum / float64(b.samples)
}

func (b *BoundFraction) Reset() {
	b.sum = 0
	b.samples = 0
}

// TotalEnergy tracks the spring energy stored across all proteins, averaged
// over the observed steps.
type TotalEnergy struct {
	name    string
	sum     float64
	samples int
}

func NewTotalEnergy() *TotalEnergy {
	return &TotalEnergy{name: "total_energy"}
}

func (e *TotalEnergy) Name() string { return e.name }

func (e *TotalEnergy) Observe(snap world.Snapshot) {
	var total float64
	for _, p := range snap.Proteins {
		total += p.Energy
	}
	e.sum += total
	e.samples++
}

func (e *TotalEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.sum / float64(e.samples)
}

func (e *TotalEnergy) Reset() {
	e.sum = 0
	e.samples = 0
}

// Contraction compares the current extent of the filament network to the
// extent at the first observed step. Positive values mean the fiber has
// shortened.
type Contraction struct {
	name    string
	initial float64
	current float64
	samples int
}

func NewContraction() *Contraction {
	return &Contraction{name: "contraction"}
}

func (c *Contraction) Name() string { return c.name }

func (c *Contraction) Observe(snap world.Snapshot) {
	extent := filamentExtent(snap)
	if extent == 0 {
		return
	}
	if c.samples == 0 {
		c.initial = extent
	}
	c.current = extent
	c.samples++
}

func (c *Contraction) Value() float64 {
	if c.samples == 0 || c.initial == 0 {
		return 0
	}
	return 1 - c.current/c.initial
}

func (c *Contraction) Reset() {
	c.initial = 0
	c.current = 0
	c.samples = 0
}

func filamentExtent(snap world.Snapshot) float64 {
	var lo, hi float64
	first := true
	for _, p := range snap.Proteins {
		if p.Kind != fiber.KindActin {
			continue
		}
		if first || p.X < lo {
			lo = p.X
		}
		if first || p.X+p.Length > hi {
			hi = p.X + p.Length
		}
		first = false
	}
	if first {
		return 0
	}
	return hi - lo
}

func kindOf(snap world.Snapshot, id fiber.ProteinID) fiber.Kind {
	if int(id) < len(snap.Proteins) && snap.Proteins[id].ID == id {
		return snap.Proteins[id].Kind
	}
	for _, p := range snap.Proteins {
		if p.ID == id {
			return p.Kind
		}
	}
	return fiber.KindActin
}
