package galmag

import (
	"fmt"
	"math"
)

// RotationProfile returns the circular velocity V(r) in km/s at cylindrical
// radius r (kpc).
type RotationProfile func(rKpc float64) float64

// ShearProfile returns the shear rate S(r) = r dOmega/dr in km/s/kpc at
// cylindrical radius r (kpc).
type ShearProfile func(rKpc float64) float64

// HeightProfile returns the scale height at radius r relative to the scale
// height at the reference radius, so that profile(refR, refR) == 1.
type HeightProfile func(rKpc, refRKpc float64) float64

// HaloRotationProfile returns the normalised rotation speed at (r, z),
// equal to 1 in the flat outer part of the curve. charRadius and charHeight
// set the turnover scales (all kpc).
type HaloRotationProfile func(rKpc, zKpc, charRadius, charHeight float64) float64

// HaloAlphaProfile returns the normalised alpha effect at (r, z), odd in z.
type HaloAlphaProfile func(rKpc, zKpc float64) float64

// Turnover scale of the smooth Milky Way rotation curve approximation, kpc.
const clemensTurnoverKpc = 1.3

// clemensV0 is the asymptotic circular speed of the fit, km/s.
const clemensV0 = 220.0

// ClemensRotationCurve is a smooth approximation to the Clemens (1985)
// Milky Way rotation curve fit: a rapid inner rise turning over to a flat
// curve at clemensV0.
func ClemensRotationCurve(rKpc float64) float64 {
	r := math.Abs(rKpc)
	return clemensV0 * (1 - math.Exp(-r/clemensTurnoverKpc))
}

// ClemensShearRate is the shear rate S = dV/dr - V/r of the smooth Clemens
// rotation curve approximation, in km/s/kpc.
func ClemensShearRate(rKpc float64) float64 {
	r := math.Abs(rKpc)
	if r == 0 {
		return 0 // solid-body centre, no shear
	}
	e := math.Exp(-r / clemensTurnoverKpc)
	dVdr := clemensV0 / clemensTurnoverKpc * e
	return dVdr - ClemensRotationCurve(r)/r
}

// FlatRotationCurve is a perfectly flat curve at clemensV0.
func FlatRotationCurve(rKpc float64) float64 { return clemensV0 }

// ConstantShearRate is the shear rate of a flat rotation curve, -V/r.
func ConstantShearRate(rKpc float64) float64 {
	r := math.Abs(rKpc)
	if r == 0 {
		return 0
	}
	return -clemensV0 / r
}

// SolidBodyRotationCurve rises linearly with radius; it produces no shear.
func SolidBodyRotationCurve(rKpc float64) float64 {
	return clemensV0 / 10 * rKpc
}

// ZeroShearRate is the shear rate of solid-body rotation.
func ZeroShearRate(rKpc float64) float64 { return 0 }

// ExponentialScaleHeight grows the scale height exponentially with radius,
// normalised to 1 at the reference radius.
func ExponentialScaleHeight(rKpc, refRKpc float64) float64 {
	if refRKpc == 0 {
		return 1
	}
	return math.Exp((math.Abs(rKpc) - refRKpc) / refRKpc)
}

// ConstantScaleHeight keeps the scale height independent of radius.
func ConstantScaleHeight(rKpc, refRKpc float64) float64 { return 1 }

// SimpleRotation is the halo default rotation profile: a smooth rise to the
// flat regime over charRadius, independent of height below charHeight.
func SimpleRotation(rKpc, zKpc, charRadius, charHeight float64) float64 {
	if charRadius <= 0 {
		return 1
	}
	v := 1 - math.Exp(-math.Abs(rKpc)/charRadius)
	if charHeight > 0 {
		v *= math.Exp(-math.Max(0, math.Abs(zKpc)-charHeight) / charHeight)
	}
	return v
}

// SimpleAlpha is the halo default alpha profile, odd in z and bounded by 1.
func SimpleAlpha(rKpc, zKpc float64) float64 {
	r := math.Sqrt(rKpc*rKpc + zKpc*zKpc)
	if r == 0 {
		return 0
	}
	return zKpc / r
}

// Named profile registries so model files can select functional forms.
var (
	rotationProfiles = map[string]RotationProfile{
		"clemens":    ClemensRotationCurve,
		"flat":       FlatRotationCurve,
		"solid_body": SolidBodyRotationCurve,
	}
	shearProfiles = map[string]ShearProfile{
		"clemens":  ClemensShearRate,
		"constant": ConstantShearRate,
		"zero":     ZeroShearRate,
	}
	heightProfiles = map[string]HeightProfile{
		"exponential": ExponentialScaleHeight,
		"constant":    ConstantScaleHeight,
	}
	haloRotationProfiles = map[string]HaloRotationProfile{
		"simple_v": SimpleRotation,
	}
	haloAlphaProfiles = map[string]HaloAlphaProfile{
		"simple_alpha": SimpleAlpha,
	}
)

// RotationProfileByName resolves a rotation curve by registry name.
func RotationProfileByName(name string) (RotationProfile, error) {
	p, ok := rotationProfiles[name]
	if !ok {
		return nil, fmt.Errorf("galmag: unknown rotation profile %q (have %v)", name, generatorNames(rotationProfiles))
	}
	return p, nil
}

// ShearProfileByName resolves a shear profile by registry name.
func ShearProfileByName(name string) (ShearProfile, error) {
	p, ok := shearProfiles[name]
	if !ok {
		return nil, fmt.Errorf("galmag: unknown shear profile %q (have %v)", name, generatorNames(shearProfiles))
	}
	return p, nil
}

// HeightProfileByName resolves a scale-height profile by registry name.
func HeightProfileByName(name string) (HeightProfile, error) {
	p, ok := heightProfiles[name]
	if !ok {
		return nil, fmt.Errorf("galmag: unknown height profile %q (have %v)", name, generatorNames(heightProfiles))
	}
	return p, nil
}

// HaloRotationProfileByName resolves a halo rotation profile by name.
func HaloRotationProfileByName(name string) (HaloRotationProfile, error) {
	p, ok := haloRotationProfiles[name]
	if !ok {
		return nil, fmt.Errorf("galmag: unknown halo rotation profile %q (have %v)", name, generatorNames(haloRotationProfiles))
	}
	return p, nil
}

// HaloAlphaProfileByName resolves a halo alpha profile by name.
func HaloAlphaProfileByName(name string) (HaloAlphaProfile, error) {
	p, ok := haloAlphaProfiles[name]
	if !ok {
		return nil, fmt.Errorf("galmag: unknown halo alpha profile %q (have %v)", name, generatorNames(haloAlphaProfiles))
	}
	return p, nil
}
