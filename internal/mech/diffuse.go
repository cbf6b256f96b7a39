package mech

import (
	"errors"
	"math"
	"math/rand"
)

var (
	// ErrMoleculeTooLong reports a molecule that cannot fit between the
	// bounds it is being reflected into.
	ErrMoleculeTooLong = errors.New("mech: molecule is too long to fit in boundaries")

	// ErrReversedInterval reports a molecule or boundary interval passed
	// end-before-start.
	ErrReversedInterval = errors.New("mech: molecule/boundaries passed in reverse order")
)

// DiffusionCoefficient is the Einstein-Smoluchowski relation D = kT/γ for a
// particle with drag γ in g/s. Result is nm²/s.
func DiffusionCoefficient(kT, drag float64) float64 {
	return kT / drag
}

// ThermalDisplacement draws a one-dimensional diffusive step over dt for a
// particle with diffusion coefficient d. The displacement variance is 2·D·dt.
func ThermalDisplacement(rng *rand.Rand, d, dt float64) float64 {
	return rng.NormFloat64() * math.Sqrt(2*d*dt)
}

// ReflectIntoBounds bounces a molecule spanning [start, end] back inside
// [lo, hi]. Reflection rather than clamping keeps the boundaries from acting
// as absorbing ends that accumulate diffusing proteins over time. Returns
// the corrected start and end.
func ReflectIntoBounds(start, end, lo, hi float64) (float64, float64, error) {
	if end-start > hi-lo {
		return start, end, ErrMoleculeTooLong
	}
	if start > end || lo > hi {
		return start, end, ErrReversedInterval
	}
	for start < lo || end > hi {
		if start < lo {
			d := lo - start
			start += 2 * d
			end += 2 * d
		} else {
			d := end - hi
			start -= 2 * d
			end -= 2 * d
		}
	}
	return start, end, nil
}
