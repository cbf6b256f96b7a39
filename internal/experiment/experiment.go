package experiment

import (
	"context"
	"math"
	"sync"

	"github.com/kwhitlock/fiberlab/internal/metrics"
	"github.com/kwhitlock/fiberlab/internal/world"
)

// Ensemble runs replicate worlds that differ only in their seed, so the
// scatter across replicates separates stochastic noise from real trends.
type Ensemble struct {
	opts      world.Options
	steps     int
	replicas  int
	seedStart int64
}

func NewEnsemble(opts world.Options, steps, replicas int, seedStart int64) *Ensemble {
	return &Ensemble{
		opts:      opts,
		steps:     steps,
		replicas:  replicas,
		seedStart: seedStart,
	}
}

// Replica is the outcome of one member of the ensemble.
type Replica struct {
	Seed          int64
	Binds         int
	Unbinds       int
	Strokes       int
	BoundFraction float64
	Contraction   float64
}

// Summary aggregates the ensemble.
type Summary struct {
	Replicas        []Replica
	MeanBound       float64
	StdBound        float64
	MeanContraction float64
	StdContraction  float64
}

// Run executes every replica in its own goroutine and blocks until all
// finish or ctx is cancelled.
func (e *Ensemble) Run(ctx context.Context) (*Summary, error) {
	replicas := make([]Replica, e.replicas)
	errs := make([]error, e.replicas)

	var wg sync.WaitGroup
	for i := 0; i < e.replicas; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			opts := e.opts
			opts.Seed = e.seedStart + int64(idx)
			replicas[idx], errs[idx] = e.runOne(ctx, opts)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return summarize(replicas), nil
}

func (e *Ensemble) runOne(ctx context.Context, opts world.Options) (Replica, error) {
	w, err := world.Build(opts)
	if err != nil {
		return Replica{}, err
	}

	rep := Replica{Seed: opts.Seed}
	shrink := metrics.NewContraction()
	shrink.Observe(w.Snapshot())

	for i := 0; i < e.steps; i++ {
		if err := ctx.Err(); err != nil {
			return Replica{}, err
		}
		sr := w.StepDt(w.Options().Dt)
		rep.Binds += sr.Binds
		rep.Unbinds += sr.Unbinds
		rep.Strokes += sr.Strokes
	}

	final := w.Snapshot()
	bound := metrics.NewBoundFraction()
	bound.Observe(final)
	shrink.Observe(final)
	rep.BoundFraction = bound.Value()
	rep.Contraction = shrink.Value()
	return rep, nil
}

func summarize(replicas []Replica) *Summary {
	s := &Summary{Replicas: replicas}
	n := float64(len(replicas))
	if n == 0 {
		return s
	}
	for _, r := range replicas {
		s.MeanBound += r.BoundFraction
		s.MeanContraction += r.Contraction
	}
	s.MeanBound /= n
	s.MeanContraction /= n

	var vb, vc float64
	for _, r := range replicas {
		vb += (r.BoundFraction - s.MeanBound) * (r.BoundFraction - s.MeanBound)
		vc += (r.Contraction - s.MeanContraction) * (r.Contraction - s.MeanContraction)
	}
	s.StdBound = math.Sqrt(vb / n)
	s.StdContraction = math.Sqrt(vc / n)
	return s
}
