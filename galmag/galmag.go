// Package galmag defines the surface of the galactic magnetic field
// generator consumed by the field adapters: the native parameter sets in the
// generator's own unit system (kiloparsec, microgauss, dimensionless
// induction terms), the structural options selecting functional forms, and a
// named registry through which generator bindings are made available.
//
// The dynamo physics itself lives behind the DiskGenerator and HaloGenerator
// contracts. The built-in "analytic" generator registered by this package is
// a simplified closed-form stand-in; production inference runs bind a full
// field-generation backend through RegisterDiskGenerator and
// RegisterHaloGenerator.
package galmag

import (
	"fmt"
	"sort"
	"sync"

	"github.com/imagine-consortium/galmag-go/grid"
)

// Field holds the evaluated magnetic field components in microgauss, aligned
// to the flattened cell order of the evaluation grid.
type Field struct {
	X, Y, Z []float64
}

// DiskParams is the disk generator's native parameter set. Lengths are in
// kiloparsec, amplitudes in microgauss; the induction terms are
// dimensionless.
type DiskParams struct {
	Height               float64 // scale height at the reference radius
	Radius               float64 // disk truncation radius
	RegularizationRadius float64 // inner radius below which profiles are smoothed
	RefRCylindrical      float64 // reference cylindrical radius

	TurbulentInduction float64 // R_alpha
	DynamoNumber       float64 // D = R_alpha * R_omega

	// ModesNormalization holds one amplitude per azimuthal mode, ordered by
	// mode index starting at mode 1.
	ModesNormalization []float64
}

// DiskOptions selects the disk generator's functional forms and switches.
type DiskOptions struct {
	RotationFunction RotationProfile
	ShearFunction    ShearProfile
	HeightFunction   HeightProfile

	FieldDecay             bool
	NewmanBoundaryEnvelope bool
}

// HaloParams is the halo generator's native parameter set.
type HaloParams struct {
	Radius             float64 // halo truncation radius, kpc
	RefRadius          float64 // reference cylindrical radius, kpc
	RefZ               float64 // reference height, kpc
	RefBphi            float64 // azimuthal field at the reference point, microgauss
	RotationCharRadius float64 // rotation curve characteristic radius, kpc
	RotationCharHeight float64 // rotation curve characteristic height, kpc

	TurbulentInduction float64 // R_alpha
	RotationInduction  float64 // R_omega
}

// HaloOptions selects the halo generator's functional forms and switches.
// The Galerkin settings are passed through to the backend untouched.
type HaloOptions struct {
	SymmetricField   bool
	RotationFunction HaloRotationProfile
	AlphaFunction    HaloAlphaProfile

	NFreeDecayModes        int
	DynamoType             string // "alpha2-omega" or "alpha-omega"
	GrowingModeOnly        bool
	ComputeOnlyOneQuadrant bool
	GalerkinNGrid          int
}

// DefaultDiskOptions returns the disk generator's documented defaults.
func DefaultDiskOptions() DiskOptions {
	return DiskOptions{
		RotationFunction: ClemensRotationCurve,
		ShearFunction:    ClemensShearRate,
		HeightFunction:   ExponentialScaleHeight,
		FieldDecay:       true,
	}
}

// DefaultHaloOptions returns the halo generator's documented defaults.
func DefaultHaloOptions() HaloOptions {
	return HaloOptions{
		SymmetricField:         true,
		RotationFunction:       SimpleRotation,
		AlphaFunction:          SimpleAlpha,
		NFreeDecayModes:        4,
		DynamoType:             "alpha2-omega",
		ComputeOnlyOneQuadrant: true,
		GalerkinNGrid:          501,
	}
}

// DiskGenerator produces a disk field on the grid it was constructed with.
type DiskGenerator interface {
	BField(p DiskParams, o DiskOptions) (*Field, error)
}

// HaloGenerator produces a halo field on the grid it was constructed with.
type HaloGenerator interface {
	BField(p HaloParams, o HaloOptions) (*Field, error)
}

// DefaultGenerator is the registry name of the built-in analytic backend.
const DefaultGenerator = "analytic"

var (
	genMu          sync.RWMutex
	diskAllocators = map[string]func(*grid.Grid) (DiskGenerator, error){}
	haloAllocators = map[string]func(*grid.Grid) (HaloGenerator, error){}
)

// RegisterDiskGenerator adds a disk generator backend to the registry. A
// backend registered under an existing name replaces it.
func RegisterDiskGenerator(name string, alloc func(*grid.Grid) (DiskGenerator, error)) {
	genMu.Lock()
	defer genMu.Unlock()
	diskAllocators[name] = alloc
}

// RegisterHaloGenerator adds a halo generator backend to the registry.
func RegisterHaloGenerator(name string, alloc func(*grid.Grid) (HaloGenerator, error)) {
	genMu.Lock()
	defer genMu.Unlock()
	haloAllocators[name] = alloc
}

// NewDiskGenerator constructs the named disk backend for the given grid.
func NewDiskGenerator(name string, g *grid.Grid) (DiskGenerator, error) {
	genMu.RLock()
	alloc, ok := diskAllocators[name]
	genMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("galmag: disk generator %q is not registered (have %v)", name, generatorNames(diskAllocators))
	}
	return alloc(g)
}

// NewHaloGenerator constructs the named halo backend for the given grid.
func NewHaloGenerator(name string, g *grid.Grid) (HaloGenerator, error) {
	genMu.RLock()
	alloc, ok := haloAllocators[name]
	genMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("galmag: halo generator %q is not registered (have %v)", name, generatorNames(haloAllocators))
	}
	return alloc(g)
}

func generatorNames[T any](m map[string]T) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
