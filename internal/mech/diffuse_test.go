package mech

import (
	"math"
	"math/rand"
	"testing"

	"github.com/kwhitlock/fiberlab/internal/units"
)

func TestFilamentDiffusionCoefficient(t *testing.T) {
	// Documented reference: a 40 nm filament of radius 3 nm in crowding-
	// corrected cytoplasm (0.00365 Pa·s) at 277 K diffuses at ~7.5 µm²/s.
	eta := units.PascalSeconds(0.00365)
	kT := units.ThermalEnergy(277)

	drag := CylinderLongAxis(40, 3, eta)
	d := DiffusionCoefficient(kT, drag) // nm²/s
	dUm := d / 1e6                      // µm²/s

	if dUm < 5 || dUm > 10 {
		t.Errorf("D = %.2f µm²/s, want within 5-10", dUm)
	}
}

func TestThermalDisplacementVarianceScalesLinearly(t *testing.T) {
	const n = 80000
	d := 7.5e6 // nm²/s

	variance := func(dt float64, seed int64) float64 {
		rng := rand.New(rand.NewSource(seed))
		var sumSq float64
		for i := 0; i < n; i++ {
			dx := ThermalDisplacement(rng, d, dt)
			sumSq += dx * dx
		}
		return sumSq / n
	}

	v1 := variance(0.001, 11)
	v2 := variance(0.002, 12)

	if math.Abs(v1-2*d*0.001)/(2*d*0.001) > 0.05 {
		t.Errorf("variance at dt=1ms should be ~2·D·dt = %g, got %g", 2*d*0.001, v1)
	}
	if ratio := v2 / v1; math.Abs(ratio-2) > 0.1 {
		t.Errorf("doubling dt should double variance, ratio %f", ratio)
	}
}

func TestReflectIntoBounds(t *testing.T) {
	// Poking past the upper bound reflects back in.
	start, end, err := ReflectIntoBounds(95, 105, 0, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start != 85 || end != 95 {
		t.Errorf("expected reflection to (85, 95), got (%g, %g)", start, end)
	}

	// Poking below the lower bound.
	start, end, err = ReflectIntoBounds(-4, 6, 0, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start != 4 || end != 14 {
		t.Errorf("expected reflection to (4, 14), got (%g, %g)", start, end)
	}

	// Already in bounds is untouched.
	start, end, err = ReflectIntoBounds(10, 20, 0, 100)
	if err != nil || start != 10 || end != 20 {
		t.Errorf("in-bounds molecule should be untouched, got (%g, %g) err=%v", start, end, err)
	}
}

func TestReflectIntoBoundsErrors(t *testing.T) {
	if _, _, err := ReflectIntoBounds(0, 200, 0, 100); err != ErrMoleculeTooLong {
		t.Errorf("expected ErrMoleculeTooLong, got %v", err)
	}
	if _, _, err := ReflectIntoBounds(20, 10, 0, 100); err != ErrReversedInterval {
		t.Errorf("expected ErrReversedInterval, got %v", err)
	}
}
