package world

import (
	"math/rand"

	"github.com/kwhitlock/fiberlab/internal/fiber"
	"github.com/kwhitlock/fiberlab/internal/units"
)

// Options configure a world before Build.
type Options struct {
	// Radius of the hex lattice of tracts. Radius 0 is a single tract.
	Radius int
	// Span is the length of every tract in nm.
	Span float64
	// Populations per tract.
	NActin   int
	NActinin int
	NMotors  int
	// Seed for the world's random stream. Zero picks seed 1.
	Seed int64
	// Temperature in kelvin. Zero picks units.Temperature.
	Temperature float64
	// Dt is the default step size in seconds. Zero picks units.Timestep.
	Dt float64
	// CaptureRadius bounds the partner search for unbound heads, nm.
	CaptureRadius float64
}

func (o *Options) setDefaults() {
	if o.Seed == 0 {
		o.Seed = 1
	}
	if o.Temperature == 0 {
		o.Temperature = units.Temperature
	}
	if o.Dt == 0 {
		o.Dt = units.Timestep
	}
	if o.CaptureRadius == 0 {
		o.CaptureRadius = 2 * fiber.ActininRest
	}
}

func (o *Options) validate() error {
	if o.Radius < 0 {
		return &ConfigurationError{Option: "radius", Reason: "must be non-negative"}
	}
	if o.Span <= 0 {
		return &ConfigurationError{Option: "span", Reason: "must be positive"}
	}
	if o.Span < 2*fiber.ActinRise {
		return &ConfigurationError{Option: "span", Reason: "too short for a filament"}
	}
	if o.NActin < 0 || o.NActinin < 0 || o.NMotors < 0 {
		return &ConfigurationError{Option: "populations", Reason: "must be non-negative"}
	}
	if o.Dt <= 0 {
		return &ConfigurationError{Option: "dt", Reason: "must be positive"}
	}
	if o.Temperature <= 0 {
		return &ConfigurationError{Option: "temperature", Reason: "must be positive"}
	}
	if o.CaptureRadius <= 0 {
		return &ConfigurationError{Option: "capture_radius", Reason: "must be positive"}
	}
	return nil
}

// World holds the full mechanochemical state: the tract lattice, the shared
// binding-site arena, and every protein, in a deterministic order.
type World struct {
	opts  Options
	env   fiber.Env
	grid  []Hex
	trs   []*Tract
	arena *fiber.Arena

	proteins []fiber.Protein
	tractIdx []int // parallel to proteins: index into trs
	nextID   fiber.ProteinID

	rng  *rand.Rand
	step int
	time float64
}

// Arena exposes the shared binding-site registry.
func (w *World) Arena() *fiber.Arena { return w.arena }

// Env returns the physical environment proteins were built with.
func (w *World) Env() fiber.Env { return w.env }

// Options returns the options the world was built from, after defaulting.
func (w *World) Options() Options { return w.opts }

// Tracts returns the lattice tracts in deterministic enumeration order.
func (w *World) Tracts() []*Tract { return w.trs }

// Proteins returns every protein across all tracts in creation order.
func (w *World) Proteins() []fiber.Protein { return w.proteins }

// StepCount returns the number of completed steps.
func (w *World) StepCount() int { return w.step }

// Time returns the simulated time in seconds.
func (w *World) Time() float64 { return w.time }

// Seed reseeds the world's random stream.
func (w *World) Seed(seed int64) { w.rng = rand.New(rand.NewSource(seed)) }

// TractOf returns the tract a protein lives in.
func (w *World) TractOf(p fiber.Protein) *Tract {
	return w.trs[w.tractIdx[p.ID()]]
}

func (w *World) addProtein(t *Tract, p fiber.Protein) {
	w.proteins = append(w.proteins, p)
	w.tractIdx = append(w.tractIdx, t.Index)
	t.proteins = append(t.proteins, p)
}

// ProteinState is the serializable view of one protein at a step boundary.
type ProteinState struct {
	ID     fiber.ProteinID `json:"id"`
	Kind   fiber.Kind      `json:"kind"`
	Tract  int             `json:"tract"`
	X      float64         `json:"x"`
	Length float64         `json:"length"`
	Bound  bool            `json:"bound"`
	Energy float64         `json:"energy"`
}

// SiteState is the serializable view of one binding site.
type SiteState struct {
	ID      fiber.SiteID    `json:"id"`
	Owner   fiber.ProteinID `json:"owner"`
	Index   int             `json:"index"`
	Partner fiber.SiteID    `json:"partner"`
	X       float64         `json:"x"`
	Force   float64         `json:"force"`
}

// Snapshot is a point-in-time copy of world state, safe to hold across steps.
type Snapshot struct {
	Step     int            `json:"step"`
	Time     float64        `json:"time"`
	Proteins []ProteinState `json:"proteins"`
	Sites    []SiteState    `json:"sites"`
}

// Snapshot captures the current state of every protein and site.
func (w *World) Snapshot() Snapshot {
	snap := Snapshot{
		Step:     w.step,
		Time:     w.time,
		Proteins: make([]ProteinState, 0, len(w.proteins)),
	}
	for _, p := range w.proteins {
		snap.Proteins = append(snap.Proteins, ProteinState{
			ID:     p.ID(),
			Kind:   p.Kind(),
			Tract:  w.tractIdx[p.ID()],
			X:      p.X(),
			Length: p.Length(),
			Bound:  p.Bound(),
			Energy: p.NetEnergy(),
		})
		ids := p.Sites()
		for i, id := range ids {
			snap.Sites = append(snap.Sites, SiteState{
				ID:      id,
				Owner:   p.ID(),
				Index:   i,
				Partner: w.arena.Partner(id),
				X:       p.SitePos(i),
				Force:   p.SiteForce(i),
			})
		}
	}
	return snap
}

// NeighborsOf returns free actin sites within radius of x in the given
// tract's reachable set, using the per-tract index built during the last
// step. Exposed for diagnostics; the stepper uses the same path.
func (w *World) NeighborsOf(t *Tract, x, radius float64) []fiber.SiteID {
	var entries []siteEntry
	for _, r := range t.Reachable() {
		entries = r.index.within(x, radius, entries)
	}
	out := make([]fiber.SiteID, len(entries))
	for i, e := range entries {
		out[i] = e.id
	}
	return out
}

func (w *World) rebuildIndices() {
	for _, t := range w.trs {
		t.rebuildSiteIndex(w.arena, w.opts.CaptureRadius)
	}
}
