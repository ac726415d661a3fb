package fields

import (
	"errors"
	"fmt"

	"github.com/imagine-consortium/galmag-go/galmag"
	"github.com/imagine-consortium/galmag-go/units"
)

// Configuration errors reported by the parameter translator. All are raised
// before any generator call is attempted.
var (
	// ErrUnknownParameter indicates a name the translator does not recognise.
	ErrUnknownParameter = errors.New("fields: unrecognised parameter")

	// ErrParameterConflict indicates a parameter that clashes with a
	// structural option or with another parameter that determines the same
	// native value.
	ErrParameterConflict = errors.New("fields: conflicting parameters")

	// ErrUnitMismatch indicates a parameter supplied with incompatible
	// dimensions.
	ErrUnitMismatch = errors.New("fields: incompatible parameter units")
)

// Structural option names. These select functional forms and switches and
// must never appear in the varyable parameter dictionary.
var diskStructuralNames = map[string]struct{}{
	"disk_shear_function":                     {},
	"disk_rotation_function":                  {},
	"disk_height_function":                    {},
	"disk_field_decay":                        {},
	"disk_newman_boundary_condition_envelope": {},
	"number_of_modes":                         {},
	"keep_native_field":                       {},
}

var haloStructuralNames = map[string]struct{}{
	"halo_symmetric_field":           {},
	"halo_rotation_function":         {},
	"halo_alpha_function":            {},
	"halo_n_free_decay_modes":        {},
	"halo_dynamo_type":               {},
	"halo_compute_only_one_quadrant": {},
	"halo_growing_mode_only":         {},
	"halo_Galerkin_ngrid":            {},
	"keep_native_field":              {},
}

// quantity fetches a parameter, falling back to its documented default and
// promoting bare numbers to the parameter's assumed unit.
func quantity(params Parameters, defaults map[string]units.Quantity, unitTable map[string]units.Unit, name string) (units.Quantity, error) {
	q, ok := params[name]
	if !ok {
		q = defaults[name]
	}
	u := unitTable[name]
	if q.Dim().IsDimensionless() && !u.Dim.IsDimensionless() {
		v, err := q.Dimensionless()
		if err != nil {
			return units.Quantity{}, err
		}
		return units.New(v, u), nil
	}
	if q.Dim() != u.Dim {
		return units.Quantity{}, fmt.Errorf("%w: %s has dimensions %s, expected %s", ErrUnitMismatch, name, q.Dim(), u.Dim)
	}
	return q, nil
}

// kpcValue fetches a length parameter in kiloparsec.
func kpcValue(params Parameters, defaults map[string]units.Quantity, unitTable map[string]units.Unit, name string) (float64, error) {
	q, err := quantity(params, defaults, unitTable, name)
	if err != nil {
		return 0, err
	}
	return q.To(units.Kiloparsec)
}

// TranslateDisk maps the varyable disk parameter dictionary onto the
// generator's native parametrization. numberOfModes of zero means "infer
// from the highest mode index present, or the documented default".
//
// The translation is pure: it never mutates params and is safe for
// concurrent use.
func TranslateDisk(params Parameters, numberOfModes int) (galmag.DiskParams, error) {
	var np galmag.DiskParams

	// Name validation first, so configuration errors surface before any
	// value is converted.
	maxMode := 0
	hasModes := false
	for name := range params {
		if idx, ok := modeIndex(name); ok {
			hasModes = true
			if idx > maxMode {
				maxMode = idx
			}
			continue
		}
		if _, ok := DiskParameterUnits[name]; ok {
			continue
		}
		if _, structural := diskStructuralNames[name]; structural {
			return np, fmt.Errorf("%w: %q is a structural option and cannot be varied as a parameter", ErrParameterConflict, name)
		}
		return np, fmt.Errorf("%w: %q (disk parameters are %v plus mode_1..mode_n)", ErrUnknownParameter, name, sortedNames(DiskParameterUnits))
	}

	n := numberOfModes
	if n == 0 {
		n = maxMode
	}
	if n == 0 {
		n = defaultNumberOfModes
	}
	if maxMode > n {
		return np, fmt.Errorf("%w: %s exceeds the configured number of modes (%d)", ErrParameterConflict, ModeName(maxMode), n)
	}

	// The legacy direct parametrization conflicts with the observables that
	// determine the same native values.
	if _, legacy := params[DiskTurbulentInduction]; legacy {
		if _, obs := params[DiskAlphaEffect]; obs {
			return np, fmt.Errorf("%w: %s and %s both determine R_alpha", ErrParameterConflict, DiskTurbulentInduction, DiskAlphaEffect)
		}
	}
	if _, legacy := params[DiskDynamoNumber]; legacy {
		if _, obs := params[DiskShearNormalization]; obs {
			return np, fmt.Errorf("%w: %s and %s both determine the dynamo number", ErrParameterConflict, DiskDynamoNumber, DiskShearNormalization)
		}
	}

	var err error
	if np.Height, err = kpcValue(params, defaultDiskParameters, DiskParameterUnits, DiskHeight); err != nil {
		return np, err
	}
	if np.Radius, err = kpcValue(params, defaultDiskParameters, DiskParameterUnits, DiskRadius); err != nil {
		return np, err
	}
	if np.RegularizationRadius, err = kpcValue(params, defaultDiskParameters, DiskParameterUnits, DiskRegularizationRadius); err != nil {
		return np, err
	}
	if np.RefRCylindrical, err = kpcValue(params, defaultDiskParameters, DiskParameterUnits, DiskRefRCylindrical); err != nil {
		return np, err
	}

	h, err := quantity(params, defaultDiskParameters, DiskParameterUnits, DiskHeight)
	if err != nil {
		return np, err
	}
	beta, err := quantity(params, defaultDiskParameters, DiskParameterUnits, DiskTurbulentDiffusivity)
	if err != nil {
		return np, err
	}

	if legacy, ok := params[DiskTurbulentInduction]; ok {
		if np.TurbulentInduction, err = legacy.Dimensionless(); err != nil {
			return np, fmt.Errorf("%w: %s: %v", ErrUnitMismatch, DiskTurbulentInduction, err)
		}
	} else {
		alpha, err := quantity(params, defaultDiskParameters, DiskParameterUnits, DiskAlphaEffect)
		if err != nil {
			return np, err
		}
		// R_alpha = h * alpha / beta
		if np.TurbulentInduction, err = h.Mul(alpha).Div(beta).Dimensionless(); err != nil {
			return np, fmt.Errorf("%w: R_alpha: %v", ErrUnitMismatch, err)
		}
	}

	if legacy, ok := params[DiskDynamoNumber]; ok {
		if np.DynamoNumber, err = legacy.Dimensionless(); err != nil {
			return np, fmt.Errorf("%w: %s: %v", ErrUnitMismatch, DiskDynamoNumber, err)
		}
	} else {
		shear, err := quantity(params, defaultDiskParameters, DiskParameterUnits, DiskShearNormalization)
		if err != nil {
			return np, err
		}
		// R_omega = h^2 * S / beta; D = R_alpha * R_omega
		romega, err := h.Mul(h).Mul(shear).Div(beta).Dimensionless()
		if err != nil {
			return np, fmt.Errorf("%w: R_omega: %v", ErrUnitMismatch, err)
		}
		np.DynamoNumber = np.TurbulentInduction * romega
	}

	np.ModesNormalization = make([]float64, n)
	if !hasModes {
		// Documented default: lowest mode at unit strength.
		np.ModesNormalization[0] = 1
		return np, nil
	}
	for i := 1; i <= n; i++ {
		q, ok := params[ModeName(i)]
		if !ok {
			continue // absent modes default to zero amplitude
		}
		if q.Dim().IsDimensionless() {
			v, err := q.Dimensionless()
			if err != nil {
				return np, err
			}
			np.ModesNormalization[i-1] = v
			continue
		}
		v, err := q.To(units.Microgauss)
		if err != nil {
			return np, fmt.Errorf("%w: %s: %v", ErrUnitMismatch, ModeName(i), err)
		}
		np.ModesNormalization[i-1] = v
	}
	return np, nil
}

// TranslateHalo maps the varyable halo parameter dictionary onto the
// generator's native parametrization. Pure and safe for concurrent use.
func TranslateHalo(params Parameters) (galmag.HaloParams, error) {
	var np galmag.HaloParams

	for name := range params {
		if _, ok := HaloParameterUnits[name]; ok {
			continue
		}
		if _, structural := haloStructuralNames[name]; structural {
			return np, fmt.Errorf("%w: %q is a structural option and cannot be varied as a parameter", ErrParameterConflict, name)
		}
		return np, fmt.Errorf("%w: %q (halo parameters are %v)", ErrUnknownParameter, name, sortedNames(HaloParameterUnits))
	}

	if _, legacy := params[HaloTurbulentInduction]; legacy {
		if _, obs := params[HaloAlphaEffect]; obs {
			return np, fmt.Errorf("%w: %s and %s both determine R_alpha", ErrParameterConflict, HaloTurbulentInduction, HaloAlphaEffect)
		}
	}
	if _, legacy := params[HaloRotationInduction]; legacy {
		if _, obs := params[HaloRotationNormalization]; obs {
			return np, fmt.Errorf("%w: %s and %s both determine R_omega", ErrParameterConflict, HaloRotationInduction, HaloRotationNormalization)
		}
	}

	var err error
	if np.Radius, err = kpcValue(params, defaultHaloParameters, HaloParameterUnits, HaloRadius); err != nil {
		return np, err
	}
	if np.RefRadius, err = kpcValue(params, defaultHaloParameters, HaloParameterUnits, HaloRefRadius); err != nil {
		return np, err
	}
	if np.RefZ, err = kpcValue(params, defaultHaloParameters, HaloParameterUnits, HaloRefZ); err != nil {
		return np, err
	}
	if np.RotationCharRadius, err = kpcValue(params, defaultHaloParameters, HaloParameterUnits, HaloRotationCharRadius); err != nil {
		return np, err
	}
	if np.RotationCharHeight, err = kpcValue(params, defaultHaloParameters, HaloParameterUnits, HaloRotationCharHeight); err != nil {
		return np, err
	}

	refBphi, err := quantity(params, defaultHaloParameters, HaloParameterUnits, HaloRefBphi)
	if err != nil {
		return np, err
	}
	if np.RefBphi, err = refBphi.To(units.Microgauss); err != nil {
		return np, fmt.Errorf("%w: %s: %v", ErrUnitMismatch, HaloRefBphi, err)
	}

	r, err := quantity(params, defaultHaloParameters, HaloParameterUnits, HaloRadius)
	if err != nil {
		return np, err
	}
	beta, err := quantity(params, defaultHaloParameters, HaloParameterUnits, HaloTurbulentDiffusivity)
	if err != nil {
		return np, err
	}

	if legacy, ok := params[HaloTurbulentInduction]; ok {
		if np.TurbulentInduction, err = legacy.Dimensionless(); err != nil {
			return np, fmt.Errorf("%w: %s: %v", ErrUnitMismatch, HaloTurbulentInduction, err)
		}
	} else {
		alpha, err := quantity(params, defaultHaloParameters, HaloParameterUnits, HaloAlphaEffect)
		if err != nil {
			return np, err
		}
		// R_alpha = r * alpha / beta
		if np.TurbulentInduction, err = r.Mul(alpha).Div(beta).Dimensionless(); err != nil {
			return np, fmt.Errorf("%w: R_alpha: %v", ErrUnitMismatch, err)
		}
	}

	if legacy, ok := params[HaloRotationInduction]; ok {
		if np.RotationInduction, err = legacy.Dimensionless(); err != nil {
			return np, fmt.Errorf("%w: %s: %v", ErrUnitMismatch, HaloRotationInduction, err)
		}
	} else {
		v, err := quantity(params, defaultHaloParameters, HaloParameterUnits, HaloRotationNormalization)
		if err != nil {
			return np, err
		}
		// R_omega = -r * V / beta
		if np.RotationInduction, err = r.Mul(v).Div(beta).Scale(-1).Dimensionless(); err != nil {
			return np, fmt.Errorf("%w: R_omega: %v", ErrUnitMismatch, err)
		}
	}
	return np, nil
}
