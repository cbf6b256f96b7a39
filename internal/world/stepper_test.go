package world

import (
	"testing"

	"github.com/kwhitlock/fiberlab/internal/fiber"
)

func TestStepAdvancesClock(t *testing.T) {
	w, err := Build(testOptions())
	if err != nil {
		t.Fatal(err)
	}
	dt := w.Options().Dt
	rep := w.Step()
	if rep.Step != 1 || w.StepCount() != 1 {
		t.Errorf("after one step: report step %d, world step %d, want 1", rep.Step, w.StepCount())
	}
	w.StepN(9)
	if w.StepCount() != 10 {
		t.Errorf("after StepN(9): step %d, want 10", w.StepCount())
	}
	want := 10 * dt
	if diff := w.Time() - want; diff > 1e-12 || diff < -1e-12 {
		t.Errorf("time %.6f, want %.6f", w.Time(), want)
	}
}

func TestStepWithoutActinNeverBinds(t *testing.T) {
	opts := testOptions()
	opts.NActin = 0
	w, err := Build(opts)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 50; i++ {
		rep := w.StepDt(w.Options().Dt)
		if rep.Binds != 0 {
			t.Fatalf("step %d: %d binds with no filaments", i, rep.Binds)
		}
	}
	for _, p := range w.Proteins() {
		if p.Bound() {
			t.Errorf("protein %d bound with no filaments present", p.ID())
		}
	}
}

func TestStepWarnsOnOversizedTimestep(t *testing.T) {
	opts := testOptions()
	opts.NActin = 2
	opts.NActinin = 40
	opts.NMotors = 20
	w, err := Build(opts)
	if err != nil {
		t.Fatal(err)
	}
	var warned bool
	for i := 0; i < 200 && !warned; i++ {
		rep := w.StepDt(1.0)
		warned = len(rep.Warnings) > 0
	}
	if !warned {
		t.Error("no stability warning after 200 one-second steps")
	}
}

func TestStepPreservesReciprocity(t *testing.T) {
	w, err := Build(testOptions())
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 100; i++ {
		w.StepDt(w.Options().Dt)
		if err := w.Arena().CheckReciprocity(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
}

func TestStepKeepsAnchorsPinned(t *testing.T) {
	w, err := Build(testOptions())
	if err != nil {
		t.Fatal(err)
	}
	before := make(map[fiber.ProteinID]float64)
	for _, p := range w.Proteins() {
		if p.Kind() == fiber.KindAnchor {
			before[p.ID()] = p.X()
		}
	}
	if len(before) == 0 {
		t.Skip("seed produced no anchored filaments")
	}
	w.StepN(50)
	for _, p := range w.Proteins() {
		if p.Kind() != fiber.KindAnchor {
			continue
		}
		if p.X() != before[p.ID()] {
			t.Errorf("anchor %d moved from %.3f to %.3f", p.ID(), before[p.ID()], p.X())
		}
		if !p.Bound() {
			t.Errorf("anchor %d released its filament", p.ID())
		}
	}
}
