package fields

import (
	"fmt"

	"github.com/imagine-consortium/galmag-go/galmag"
	"github.com/imagine-consortium/galmag-go/grid"
	"github.com/imagine-consortium/galmag-go/units"
)

// HaloFieldName identifies the halo component in pipeline configuration.
const HaloFieldName = "galmag_halo_magnetic_field"

// haloConfig collects the halo adapter's structural options.
type haloConfig struct {
	keepNative    bool
	generatorName string
	generator     galmag.HaloGenerator
	native        galmag.HaloOptions
}

// HaloOption configures a HaloField at construction.
type HaloOption func(*haloConfig)

// WithHaloSymmetricField selects the field parity about the midplane:
// symmetric (quadrupolar) or antisymmetric (dipolar).
func WithHaloSymmetricField(symmetric bool) HaloOption {
	return func(c *haloConfig) { c.native.SymmetricField = symmetric }
}

// WithHaloRotationProfile selects the halo rotation curve V(r, z).
func WithHaloRotationProfile(p galmag.HaloRotationProfile) HaloOption {
	return func(c *haloConfig) { c.native.RotationFunction = p }
}

// WithHaloAlphaProfile selects the halo alpha-effect profile.
func WithHaloAlphaProfile(p galmag.HaloAlphaProfile) HaloOption {
	return func(c *haloConfig) { c.native.AlphaFunction = p }
}

// WithHaloFreeDecayModes sets how many free decay modes the generator
// superposes.
func WithHaloFreeDecayModes(n int) HaloOption {
	return func(c *haloConfig) { c.native.NFreeDecayModes = n }
}

// WithHaloDynamoType selects the dynamo closure ("alpha2-omega" or
// "alpha-omega").
func WithHaloDynamoType(t string) HaloOption {
	return func(c *haloConfig) { c.native.DynamoType = t }
}

// WithHaloGrowingModeOnly suppresses decaying dynamo solutions.
func WithHaloGrowingModeOnly(only bool) HaloOption {
	return func(c *haloConfig) { c.native.GrowingModeOnly = only }
}

// WithHaloOneQuadrant lets the generator exploit symmetry and compute a
// single quadrant.
func WithHaloOneQuadrant(only bool) HaloOption {
	return func(c *haloConfig) { c.native.ComputeOnlyOneQuadrant = only }
}

// WithHaloGalerkinGrid sets the generator's internal Galerkin expansion grid
// size; passed through untouched.
func WithHaloGalerkinGrid(n int) HaloOption {
	return func(c *haloConfig) { c.native.GalerkinNGrid = n }
}

// WithHaloKeepNativeField retains the generator's field object on the
// adapter after evaluation for later introspection.
func WithHaloKeepNativeField(keep bool) HaloOption {
	return func(c *haloConfig) { c.keepNative = keep }
}

// WithHaloGeneratorName selects a registered generator backend by name.
func WithHaloGeneratorName(name string) HaloOption {
	return func(c *haloConfig) { c.generatorName = name }
}

// WithHaloGenerator injects a generator directly, bypassing the registry.
func WithHaloGenerator(gen galmag.HaloGenerator) HaloOption {
	return func(c *haloConfig) { c.generator = gen }
}

// HaloField adapts the generator's halo field to the pipeline contract.
type HaloField struct {
	grid   *grid.Grid
	params Parameters
	cfg    haloConfig

	native *galmag.Field
}

// NewHaloField builds a halo field component over the given grid. No field
// computation happens until Evaluate.
func NewHaloField(g *grid.Grid, params Parameters, opts ...HaloOption) (*HaloField, error) {
	if g == nil {
		return nil, fmt.Errorf("fields: halo field requires a grid")
	}
	cfg := haloConfig{
		generatorName: galmag.DefaultGenerator,
		native:        galmag.DefaultHaloOptions(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.generator == nil {
		gen, err := galmag.NewHaloGenerator(cfg.generatorName, g)
		if err != nil {
			return nil, err
		}
		cfg.generator = gen
	}
	if params == nil {
		params = Parameters{}
	}
	return &HaloField{grid: g, params: params, cfg: cfg}, nil
}

// Name implements Field.
func (f *HaloField) Name() string { return HaloFieldName }

// ParameterNames implements Field.
func (f *HaloField) ParameterNames() []string {
	return []string{
		HaloRadius,
		HaloRefRadius,
		HaloRefZ,
		HaloRefBphi,
		HaloRotationCharRadius,
		HaloRotationCharHeight,
		HaloRotationNormalization,
		HaloTurbulentDiffusivity,
		HaloAlphaEffect,
	}
}

// Evaluate implements Field. The field is recomputed on every call; with
// the retention flag set the generator's object is overwritten each time,
// last evaluation wins.
func (f *HaloField) Evaluate() (*FieldArray, error) {
	np, err := TranslateHalo(f.params)
	if err != nil {
		return nil, err
	}
	b, err := f.cfg.generator.BField(np, f.cfg.native)
	if err != nil {
		return nil, fmt.Errorf("halo field generation: %w", err)
	}
	if f.cfg.keepNative {
		f.native = b
	}
	return &FieldArray{Bx: b.X, By: b.Y, Bz: b.Z, Unit: units.Microgauss, Grid: f.grid}, nil
}

// NativeField returns the retained generator field object, or nil when the
// retention flag is unset or Evaluate has not run.
func (f *HaloField) NativeField() *galmag.Field { return f.native }
