package experiment

import (
	"context"
	"testing"

	"github.com/kwhitlock/fiberlab/internal/world"
)

func smallOptions() world.Options {
	return world.Options{
		Radius:   0,
		Span:     2000,
		NActin:   2,
		NActinin: 4,
		NMotors:  2,
	}
}

func TestEnsembleRunsAllReplicas(t *testing.T) {
	e := NewEnsemble(smallOptions(), 10, 4, 100)
	summary, err := e.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(summary.Replicas) != 4 {
		t.Fatalf("got %d replicas, want 4", len(summary.Replicas))
	}
	seen := map[int64]bool{}
	for _, r := range summary.Replicas {
		if r.Seed < 100 || r.Seed > 103 {
			t.Errorf("replica seed %d outside expected range", r.Seed)
		}
		if seen[r.Seed] {
			t.Errorf("seed %d used twice", r.Seed)
		}
		seen[r.Seed] = true
	}
}

func TestEnsembleIdenticalSeedsAgree(t *testing.T) {
	a, err := NewEnsemble(smallOptions(), 20, 1, 7).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewEnsemble(smallOptions(), 20, 1, 7).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if a.Replicas[0] != b.Replicas[0] {
		t.Errorf("same seed diverged: %+v vs %+v", a.Replicas[0], b.Replicas[0])
	}
}

func TestEnsembleHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewEnsemble(smallOptions(), 1000, 2, 1).Run(ctx)
	if err == nil {
		t.Error("expected error from cancelled context")
	}
}

func TestEnsembleRejectsBadOptions(t *testing.T) {
	opts := smallOptions()
	opts.Span = -1
	if _, err := NewEnsemble(opts, 10, 2, 1).Run(context.Background()); err == nil {
		t.Error("expected configuration error")
	}
}
