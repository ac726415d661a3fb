package grid

import "math"

// RCylindrical returns the flattened cylindrical radii sqrt(x^2+y^2) in kpc.
func (g *Grid) RCylindrical() []float64 {
	r := make([]float64, len(g.x))
	for i := range g.x {
		r[i] = math.Hypot(g.x[i], g.y[i])
	}
	return r
}

// RSpherical returns the flattened spherical radii in kpc.
func (g *Grid) RSpherical() []float64 {
	r := make([]float64, len(g.x))
	for i := range g.x {
		r[i] = math.Sqrt(g.x[i]*g.x[i] + g.y[i]*g.y[i] + g.z[i]*g.z[i])
	}
	return r
}

// Phi returns the flattened azimuthal angles in radians, in (-pi, pi].
func (g *Grid) Phi() []float64 {
	phi := make([]float64, len(g.x))
	for i := range g.x {
		phi[i] = math.Atan2(g.y[i], g.x[i])
	}
	return phi
}
