// Package units provides unit-aware physical quantities for the parameter
// dictionaries exchanged with the galactic field generator.
//
// The generator's native unit system uses kiloparsec for lengths, seconds
// for times and microgauss for field strengths, so quantities are stored
// internally in those base units. Only the three dimensions the adapter
// actually trades in are tracked: length, time and magnetic field strength.
package units

import (
	"fmt"
	"strconv"
	"strings"
)

// Physical constants used for unit scales.
const (
	KmPerKpc = 3.0856775814913673e16 // kilometres in one kiloparsec
	CmPerKpc = 3.0856775814913673e21 // centimetres in one kiloparsec
)

// Dim records the dimensional exponents of a quantity over the base axes
// length (L), time (T) and magnetic field strength (B).
type Dim struct {
	L int
	T int
	B int
}

// IsDimensionless reports whether all exponents are zero.
func (d Dim) IsDimensionless() bool {
	return d.L == 0 && d.T == 0 && d.B == 0
}

// String renders the dimension in exponent notation, e.g. "L^2 T^-1".
func (d Dim) String() string {
	if d.IsDimensionless() {
		return "dimensionless"
	}
	var parts []string
	for _, ax := range []struct {
		name string
		exp  int
	}{{"L", d.L}, {"T", d.T}, {"B", d.B}} {
		if ax.exp == 0 {
			continue
		}
		if ax.exp == 1 {
			parts = append(parts, ax.name)
		} else {
			parts = append(parts, fmt.Sprintf("%s^%d", ax.name, ax.exp))
		}
	}
	return strings.Join(parts, " ")
}

func (d Dim) add(o Dim) Dim { return Dim{d.L + o.L, d.T + o.T, d.B + o.B} }
func (d Dim) sub(o Dim) Dim { return Dim{d.L - o.L, d.T - o.T, d.B - o.B} }

// Unit is a named scale factor over a dimension. Scale converts a value in
// this unit to the base system (kpc, s, microgauss).
type Unit struct {
	Name  string
	Scale float64
	Dim   Dim
}

// Units understood by the parameter translator.
var (
	Dimensionless = Unit{Name: "", Scale: 1, Dim: Dim{}}

	Kiloparsec = Unit{Name: "kpc", Scale: 1, Dim: Dim{L: 1}}
	Second     = Unit{Name: "s", Scale: 1, Dim: Dim{T: 1}}
	Microgauss = Unit{Name: "microgauss", Scale: 1, Dim: Dim{B: 1}}
	Gauss      = Unit{Name: "G", Scale: 1e6, Dim: Dim{B: 1}}

	KmPerSecond   = Unit{Name: "km/s", Scale: 1 / KmPerKpc, Dim: Dim{L: 1, T: -1}}
	CmSqPerSecond = Unit{Name: "cm^2/s", Scale: 1 / (CmPerKpc * CmPerKpc), Dim: Dim{L: 2, T: -1}}
	PerSecond     = Unit{Name: "1/s", Scale: 1, Dim: Dim{T: -1}}
)

// unitsByName maps parseable unit spellings to their Unit. Aliases cover the
// spellings found in existing pipeline configurations.
var unitsByName = map[string]Unit{
	"kpc":        Kiloparsec,
	"s":          Second,
	"microgauss": Microgauss,
	"uG":         Microgauss,
	"G":          Gauss,
	"km/s":       KmPerSecond,
	"cm^2/s":     CmSqPerSecond,
	"cm2/s":      CmSqPerSecond,
	"1/s":        PerSecond,
	"s^-1":       PerSecond,
}

// UnitByName looks up a unit by one of its recognised spellings.
func UnitByName(name string) (Unit, bool) {
	u, ok := unitsByName[name]
	return u, ok
}

// Quantity is a physical value with attached dimensions. The zero value is
// a dimensionless zero.
type Quantity struct {
	base float64 // value in the base system (kpc, s, microgauss)
	dim  Dim
}

// New builds a quantity from a value expressed in the given unit.
func New(value float64, u Unit) Quantity {
	return Quantity{base: value * u.Scale, dim: u.Dim}
}

// Number builds a dimensionless quantity from a bare number.
func Number(value float64) Quantity {
	return Quantity{base: value}
}

// Dim returns the quantity's dimensions.
func (q Quantity) Dim() Dim { return q.dim }

// To converts the quantity to the given unit. Converting between
// incompatible dimensions is an error.
func (q Quantity) To(u Unit) (float64, error) {
	if q.dim != u.Dim {
		return 0, fmt.Errorf("cannot convert %s to %s (%s)", q.dim, unitLabel(u), u.Dim)
	}
	return q.base / u.Scale, nil
}

// Dimensionless returns the bare value of a dimensionless quantity.
func (q Quantity) Dimensionless() (float64, error) {
	if !q.dim.IsDimensionless() {
		return 0, fmt.Errorf("quantity has dimensions %s, expected dimensionless", q.dim)
	}
	return q.base, nil
}

// Mul multiplies two quantities, adding dimensions.
func (q Quantity) Mul(o Quantity) Quantity {
	return Quantity{base: q.base * o.base, dim: q.dim.add(o.dim)}
}

// Div divides two quantities, subtracting dimensions.
func (q Quantity) Div(o Quantity) Quantity {
	return Quantity{base: q.base / o.base, dim: q.dim.sub(o.dim)}
}

// Scale multiplies the quantity by a bare number, keeping dimensions.
func (q Quantity) Scale(f float64) Quantity {
	return Quantity{base: q.base * f, dim: q.dim}
}

// String renders the quantity in its base units.
func (q Quantity) String() string {
	if q.dim.IsDimensionless() {
		return strconv.FormatFloat(q.base, 'g', -1, 64)
	}
	return fmt.Sprintf("%g [%s]", q.base, q.dim)
}

// Parse reads a quantity from a string of the form "<number> <unit>" or a
// bare number, e.g. "0.4 kpc", "1e26 cm^2/s", "2.5".
func Parse(s string) (Quantity, error) {
	fields := strings.Fields(strings.TrimSpace(s))
	switch len(fields) {
	case 1:
		v, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return Quantity{}, fmt.Errorf("invalid quantity %q: %w", s, err)
		}
		return Number(v), nil
	case 2:
		v, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return Quantity{}, fmt.Errorf("invalid quantity %q: %w", s, err)
		}
		u, ok := UnitByName(fields[1])
		if !ok {
			return Quantity{}, fmt.Errorf("unknown unit %q in %q", fields[1], s)
		}
		return New(v, u), nil
	default:
		return Quantity{}, fmt.Errorf("invalid quantity %q: expected \"<number> <unit>\"", s)
	}
}

func unitLabel(u Unit) string {
	if u.Name == "" {
		return "dimensionless"
	}
	return u.Name
}
