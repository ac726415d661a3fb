// Package fields implements the field components exposed to the inference
// pipeline: thin adapters that translate a unit-aware parameter dictionary
// into the field generator's native parametrization, delegate evaluation to
// the generator and return the sampled field in the pipeline's conventions.
package fields

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/imagine-consortium/galmag-go/units"
)

// Parameters is the varyable parameter dictionary the pipeline explores.
// Values carry physical units; bare numbers are promoted to each parameter's
// documented default unit during translation.
type Parameters map[string]units.Quantity

// Disk parameter names.
const (
	DiskHeight               = "disk_height"
	DiskRadius               = "disk_radius"
	DiskRegularizationRadius = "disk_regularization_radius"
	DiskRefRCylindrical      = "disk_ref_r_cylindrical"
	DiskShearNormalization   = "disk_shear_normalization"
	DiskTurbulentDiffusivity = "disk_turbulent_diffusivity"
	DiskAlphaEffect          = "disk_alpha_effect"

	// Legacy direct dynamo-number names.
	DiskTurbulentInduction = "disk_turbulent_induction"
	DiskDynamoNumber       = "disk_dynamo_number"
)

// Halo parameter names.
const (
	HaloRadius                = "halo_radius"
	HaloRefRadius             = "halo_ref_radius"
	HaloRefZ                  = "halo_ref_z"
	HaloRefBphi               = "halo_ref_Bphi"
	HaloRotationCharRadius    = "halo_rotation_characteristic_radius"
	HaloRotationCharHeight    = "halo_rotation_characteristic_height"
	HaloRotationNormalization = "halo_rotation_normalization"
	HaloTurbulentDiffusivity  = "halo_turbulent_diffusivity"
	HaloAlphaEffect           = "halo_alpha_effect"

	// Legacy direct dynamo-number names.
	HaloTurbulentInduction = "halo_turbulent_induction"
	HaloRotationInduction  = "halo_rotation_induction"
)

// modePrefix prefixes the per-mode amplitude parameters mode_1, mode_2, ...
const modePrefix = "mode_"

// DiskParameterUnits maps each disk parameter to the unit assumed when a
// bare number is supplied.
var DiskParameterUnits = map[string]units.Unit{
	DiskHeight:               units.Kiloparsec,
	DiskRadius:               units.Kiloparsec,
	DiskRegularizationRadius: units.Kiloparsec,
	DiskRefRCylindrical:      units.Kiloparsec,
	DiskShearNormalization:   units.PerSecond,
	DiskTurbulentDiffusivity: units.CmSqPerSecond,
	DiskAlphaEffect:          units.KmPerSecond,
	DiskTurbulentInduction:   units.Dimensionless,
	DiskDynamoNumber:         units.Dimensionless,
}

// HaloParameterUnits maps each halo parameter to the unit assumed when a
// bare number is supplied.
var HaloParameterUnits = map[string]units.Unit{
	HaloRadius:                units.Kiloparsec,
	HaloRefRadius:             units.Kiloparsec,
	HaloRefZ:                  units.Kiloparsec,
	HaloRefBphi:               units.Microgauss,
	HaloRotationCharRadius:    units.Kiloparsec,
	HaloRotationCharHeight:    units.Kiloparsec,
	HaloRotationNormalization: units.KmPerSecond,
	HaloTurbulentDiffusivity:  units.CmSqPerSecond,
	HaloAlphaEffect:           units.KmPerSecond,
	HaloTurbulentInduction:    units.Dimensionless,
	HaloRotationInduction:     units.Dimensionless,
}

// defaultDiskParameters are the documented fallbacks applied when a disk
// parameter is omitted.
var defaultDiskParameters = map[string]units.Quantity{
	DiskHeight:               units.New(0.4, units.Kiloparsec),
	DiskRadius:               units.New(17, units.Kiloparsec),
	DiskRegularizationRadius: units.New(0.5, units.Kiloparsec),
	DiskRefRCylindrical:      units.New(8.5, units.Kiloparsec),
	DiskShearNormalization:   units.New(-25, units.KmPerSecond).Div(units.New(1, units.Kiloparsec)),
	DiskTurbulentDiffusivity: units.New(1e26, units.CmSqPerSecond),
	DiskAlphaEffect:          units.New(1, units.KmPerSecond),
}

// defaultHaloParameters are the documented fallbacks applied when a halo
// parameter is omitted.
var defaultHaloParameters = map[string]units.Quantity{
	HaloRadius:                units.New(20, units.Kiloparsec),
	HaloRefRadius:             units.New(8.5, units.Kiloparsec),
	HaloRefZ:                  units.New(0.02, units.Kiloparsec),
	HaloRefBphi:               units.New(0.1, units.Microgauss),
	HaloRotationCharRadius:    units.New(3, units.Kiloparsec),
	HaloRotationCharHeight:    units.New(5, units.Kiloparsec),
	HaloRotationNormalization: units.New(220, units.KmPerSecond),
	HaloTurbulentDiffusivity:  units.New(1e26, units.CmSqPerSecond),
	HaloAlphaEffect:           units.New(1, units.KmPerSecond),
}

// defaultNumberOfModes is used when no mode count is configured and the
// dictionary names no modes.
const defaultNumberOfModes = 4

// modeIndex parses a mode parameter name, returning its 1-based index and
// whether the name is a mode parameter at all.
func modeIndex(name string) (int, bool) {
	if !strings.HasPrefix(name, modePrefix) {
		return 0, false
	}
	idx, err := strconv.Atoi(name[len(modePrefix):])
	if err != nil || idx < 1 {
		return 0, false
	}
	return idx, true
}

// ModeName formats the parameter name of the 1-based mode index.
func ModeName(index int) string {
	return modePrefix + strconv.Itoa(index)
}

// sortedNames returns the map keys in stable order, for error messages and
// parameter-name listings.
func sortedNames(m map[string]units.Unit) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// String lists the parameter names in the dictionary, sorted.
func (p Parameters) String() string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("{%s}", strings.Join(names, ", "))
}
