// Package kinetics provides the rate math for the stochastic binding state
// machine: Poisson rate-to-probability conversion, detailed-balance reverse
// rates, and the Bell model for force-accelerated dissociation.
package kinetics

import "math"

// RateToProb converts a per-second rate to the probability that at least one
// Poisson event occurs during dt seconds. Bounded in [0, 1), so a single
// oversized rate cannot produce a probability above one; StableRateDt is how
// callers detect that the first-order approximation has broken down.
func RateToProb(rate, dt float64) float64 {
	return 1 - math.Exp(-rate*dt)
}

// StableRateDt reports whether rate·dt is small enough for the fixed-step
// Euler sampling to be trustworthy. Callers should surface a stability
// warning when this returns false and let the run continue on the clamped
// probability.
func StableRateDt(rate, dt float64) bool {
	return rate*dt < 1
}

// Bell is the force-accelerated dissociation rate k0·exp(|F|/Fb), where Fb
// is the characteristic bond-rupture force scale. Monotonically increasing
// in force magnitude.
func Bell(k0, force, fb float64) float64 {
	return k0 * math.Exp(math.Abs(force)/fb)
}

// ReverseRate balances a forward rate between two states against their free
// energies (in units of kT), giving the rate of the reverse transition.
// Overflow in the energy term saturates to zero rather than NaN.
func ReverseRate(rate12, freeEnergy1, freeEnergy2 float64) float64 {
	energyTerm := math.Exp(freeEnergy1 - freeEnergy2)
	if math.IsInf(energyTerm, 1) {
		return 0
	}
	if energyTerm == 0 {
		return math.Inf(1)
	}
	return rate12 / energyTerm
}
