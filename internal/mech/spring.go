// Package mech holds the continuous-mechanics primitives: linear springs,
// slender-body drag coefficients, and Einstein-Smoluchowski thermal
// displacement. Everything here works in nm-g-s units (see internal/units)
// and takes its randomness as an explicit *rand.Rand.
package mech

import (
	"math"
	"math/rand"
)

// Spring is a generic one-state linear spring. It works unchanged for
// extensional (pN/nm, nm) and torsional (pN·nm/rad, rad) cases.
type Spring struct {
	K    float64 // stiffness, pN/nm
	Rest float64 // unstrained length, nm
}

func NewSpring(k, rest float64) Spring {
	return Spring{K: k, Rest: rest}
}

// Force is the tension at the given length: positive when stretched past
// rest, negative when compressed. Signs are as if the spring were pinned at
// the origin and we report the force needed to hold the far end in place.
func (s Spring) Force(length float64) float64 {
	return s.K * (length - s.Rest)
}

// Energy is the elastic energy stored at the given length, the integral of
// Force from rest to length.
func (s Spring) Energy(length float64) float64 {
	d := length - s.Rest
	return 0.5 * s.K * d * d
}

// BopDx draws a thermal displacement from rest, Boltzmann-distributed over
// the spring's energy landscape (stddev sqrt(kT/k)).
func (s Spring) BopDx(rng *rand.Rand, kT float64) float64 {
	return rng.NormFloat64() * math.Sqrt(kT/s.K)
}

// BopLength draws a thermally perturbed spring length.
func (s Spring) BopLength(rng *rand.Rand, kT float64) float64 {
	return s.Rest + s.BopDx(rng, kT)
}
