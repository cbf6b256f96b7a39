package mech

import (
	"math"
	"math/rand"
	"testing"
)

func TestSpringForceSign(t *testing.T) {
	s := NewSpring(3.75, 36)

	if f := s.Force(36); f != 0 {
		t.Errorf("force at rest should be 0, got %f", f)
	}
	if f := s.Force(40); f <= 0 {
		t.Errorf("stretched spring should pull back positive, got %f", f)
	}
	if f := s.Force(30); f >= 0 {
		t.Errorf("compressed spring should push negative, got %f", f)
	}
}

func TestSpringEnergyIsForceIntegral(t *testing.T) {
	// Energy(length) must equal the definite integral of Force from rest
	// to length.
	s := NewSpring(2.5, 20)

	for _, length := range []float64{12, 18, 20, 23, 41} {
		n := 20000
		dl := (length - s.Rest) / float64(n)
		sum := 0.0
		for i := 0; i < n; i++ {
			l := s.Rest + (float64(i)+0.5)*dl
			sum += s.Force(l) * dl
		}
		if math.Abs(sum-s.Energy(length)) > 1e-6*math.Max(1, s.Energy(length)) {
			t.Errorf("length %.1f: integral %f != energy %f", length, sum, s.Energy(length))
		}
	}
}

func TestSpringEnergyMonotoneInStretch(t *testing.T) {
	s := NewSpring(1.0, 10)
	prev := -1.0
	for d := 0.0; d < 5; d += 0.5 {
		e := s.Energy(s.Rest + d)
		if e <= prev {
			t.Fatalf("energy not increasing with |offset| at d=%.1f", d)
		}
		prev = e
	}
}

func TestBopDxScale(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := NewSpring(4.0, 36)
	kT := 3.97

	n := 50000
	var sum, sumSq float64
	for i := 0; i < n; i++ {
		dx := s.BopDx(rng, kT)
		sum += dx
		sumSq += dx * dx
	}
	mean := sum / float64(n)
	variance := sumSq/float64(n) - mean*mean

	want := kT / s.K
	if math.Abs(mean) > 0.05 {
		t.Errorf("bop mean should be ~0, got %f", mean)
	}
	if math.Abs(variance-want)/want > 0.05 {
		t.Errorf("bop variance should be ~kT/k = %f, got %f", want, variance)
	}
}
