package galmag

import (
	"fmt"
	"math"

	"github.com/imagine-consortium/galmag-go/grid"
)

// The analytic backend is a simplified closed-form generator used by the
// command-line tooling and tests. It superposes azimuthal modes on smooth
// radial and vertical envelopes and derives the field pitch from the
// induction terms, but it does not solve the induction equation; bind a full
// generator for production inference.

func init() {
	RegisterDiskGenerator(DefaultGenerator, func(g *grid.Grid) (DiskGenerator, error) {
		return &analyticDisk{g: g}, nil
	})
	RegisterHaloGenerator(DefaultGenerator, func(g *grid.Grid) (HaloGenerator, error) {
		return &analyticHalo{g: g}, nil
	})
}

type analyticDisk struct {
	g *grid.Grid
}

func (d *analyticDisk) BField(p DiskParams, o DiskOptions) (*Field, error) {
	if p.Height <= 0 {
		return nil, fmt.Errorf("galmag: disk height must be positive, got %g", p.Height)
	}
	if p.Radius <= 0 {
		return nil, fmt.Errorf("galmag: disk radius must be positive, got %g", p.Radius)
	}
	if o.HeightFunction == nil {
		o.HeightFunction = ExponentialScaleHeight
	}

	// Field pitch set by the relative strength of the alpha effect and
	// differential rotation; bounded to keep B_r subdominant.
	tanPitch := -p.TurbulentInduction
	if d := math.Sqrt(math.Abs(p.DynamoNumber)); d > 1 {
		tanPitch = -p.TurbulentInduction / d
	}
	tanPitch = math.Max(-1, math.Min(1, tanPitch))

	n := d.g.NumCells()
	f := &Field{X: make([]float64, n), Y: make([]float64, n), Z: make([]float64, n)}
	r := d.g.RCylindrical()
	phi := d.g.Phi()
	z := d.g.Z()

	for i := 0; i < n; i++ {
		h := p.Height * o.HeightFunction(r[i], p.RefRCylindrical)
		if h <= 0 {
			h = p.Height
		}

		// Radial envelope peaking at the disk radius, smoothed inside the
		// regularization radius.
		env := r[i] / p.Radius * math.Exp(1-r[i]/p.Radius)
		if p.RegularizationRadius > 0 {
			rr := r[i] * r[i]
			env *= rr / (rr + p.RegularizationRadius*p.RegularizationRadius)
		}
		if o.NewmanBoundaryEnvelope {
			env *= math.Max(0, 1-(r[i]/p.Radius)*(r[i]/p.Radius))
		}
		if r[i] > p.Radius {
			if o.FieldDecay {
				env *= math.Exp(-(r[i] - p.Radius) / h)
			} else {
				env = 0
			}
		}

		var vert float64
		if o.FieldDecay {
			vert = math.Exp(-math.Abs(z[i]) / h)
		} else {
			vert = 1 / math.Cosh(z[i]/h)
		}

		var bphi float64
		for m, amp := range p.ModesNormalization {
			bphi += amp * math.Cos(float64(m)*phi[i])
		}
		bphi *= env * vert
		br := tanPitch * bphi

		sin, cos := math.Sincos(phi[i])
		f.X[i] = br*cos - bphi*sin
		f.Y[i] = br*sin + bphi*cos
	}
	return f, nil
}

type analyticHalo struct {
	g *grid.Grid
}

// haloCriticalDynamoNumber is the threshold below which the growing-mode-only
// switch suppresses the field in the analytic stand-in.
const haloCriticalDynamoNumber = 10.0

func (h *analyticHalo) BField(p HaloParams, o HaloOptions) (*Field, error) {
	if p.Radius <= 0 {
		return nil, fmt.Errorf("galmag: halo radius must be positive, got %g", p.Radius)
	}
	if o.NFreeDecayModes < 1 {
		return nil, fmt.Errorf("galmag: halo needs at least one free decay mode, got %d", o.NFreeDecayModes)
	}
	switch o.DynamoType {
	case "alpha2-omega", "alpha-omega":
	default:
		return nil, fmt.Errorf("galmag: unknown halo dynamo type %q", o.DynamoType)
	}
	if o.RotationFunction == nil {
		o.RotationFunction = SimpleRotation
	}
	if o.AlphaFunction == nil {
		o.AlphaFunction = SimpleAlpha
	}

	n := h.g.NumCells()
	f := &Field{X: make([]float64, n), Y: make([]float64, n), Z: make([]float64, n)}

	if o.GrowingModeOnly && math.Abs(p.TurbulentInduction*p.RotationInduction) < haloCriticalDynamoNumber {
		return f, nil // only decaying solutions at this dynamo number
	}

	refV := o.RotationFunction(p.RefRadius, p.RefZ, p.RotationCharRadius, p.RotationCharHeight)
	if refV == 0 {
		return nil, fmt.Errorf("galmag: halo rotation profile vanishes at reference point (r=%g, z=%g)", p.RefRadius, p.RefZ)
	}

	r := h.g.RCylindrical()
	rs := h.g.RSpherical()
	phi := h.g.Phi()
	z := h.g.Z()

	for i := 0; i < n; i++ {
		if rs[i] > p.Radius {
			continue
		}

		bphi := p.RefBphi * o.RotationFunction(r[i], z[i], p.RotationCharRadius, p.RotationCharHeight) / refV
		if !o.SymmetricField && z[i] < 0 {
			bphi = -bphi // antisymmetric about the midplane
		}

		// Weak poloidal component sourced by the alpha effect.
		bpol := 0.1 * p.RefBphi * o.AlphaFunction(r[i], z[i])
		var br, bz float64
		if rs[i] > 0 {
			br = bpol * r[i] / rs[i]
			bz = bpol * z[i] / rs[i]
		}

		sin, cos := math.Sincos(phi[i])
		f.X[i] = br*cos - bphi*sin
		f.Y[i] = br*sin + bphi*cos
		f.Z[i] = bz
	}
	return f, nil
}
