package mech

import "math"

// Drag coefficients from slender-body hydrodynamics (Howard 2001 pg 107,
// Berg 1983). All assume an unbounded fluid of viscosity eta in g/(nm·s)
// and return g/s. The cylinder forms require L >> r, the ellipsoid forms
// b >> a.

// CylinderLongAxis is the drag on a cylinder of length L and radius r
// translating along its long axis.
func CylinderLongAxis(L, r, eta float64) float64 {
	return 2 * math.Pi * eta * L / (math.Log(L/(2*r)) - 0.20)
}

// CylinderShortAxis is the drag on the same cylinder translating radially.
func CylinderShortAxis(L, r, eta float64) float64 {
	return 4 * math.Pi * eta * L / (math.Log(L/(2*r)) + 0.84)
}

// EllipsoidLongAxis is the drag on an ellipsoid with major radius b and
// minor radius a translating along its major axis.
func EllipsoidLongAxis(b, a, eta float64) float64 {
	return 4 * math.Pi * eta * b / (math.Log(2*b/a) - 0.5)
}

// EllipsoidShortAxis is the drag on the same ellipsoid translating along a
// minor axis.
func EllipsoidShortAxis(b, a, eta float64) float64 {
	return 8 * math.Pi * eta * b / (math.Log(2*b/a) + 0.5)
}

// SphereTranslation is Stokes drag on a sphere of radius r.
func SphereTranslation(r, eta float64) float64 {
	return 6 * math.Pi * eta * r
}
