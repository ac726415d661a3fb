package fields

import (
	"fmt"

	"github.com/imagine-consortium/galmag-go/galmag"
	"github.com/imagine-consortium/galmag-go/grid"
	"github.com/imagine-consortium/galmag-go/units"
)

// DiskFieldName identifies the disk component in pipeline configuration.
const DiskFieldName = "galmag_disk_magnetic_field"

// diskConfig collects the disk adapter's structural options.
type diskConfig struct {
	numberOfModes int
	keepNative    bool
	generatorName string
	generator     galmag.DiskGenerator
	native        galmag.DiskOptions
}

// DiskOption configures a DiskField at construction.
type DiskOption func(*diskConfig)

// WithNumberOfModes fixes the number of azimuthal modes. Without it the
// adapter infers the count from the highest mode index in the dictionary.
func WithNumberOfModes(n int) DiskOption {
	return func(c *diskConfig) { c.numberOfModes = n }
}

// WithDiskRotationProfile selects the rotation curve V(R).
func WithDiskRotationProfile(p galmag.RotationProfile) DiskOption {
	return func(c *diskConfig) { c.native.RotationFunction = p }
}

// WithDiskShearProfile selects the shear rate profile S(R).
func WithDiskShearProfile(p galmag.ShearProfile) DiskOption {
	return func(c *diskConfig) { c.native.ShearFunction = p }
}

// WithDiskHeightProfile selects the scale height profile h(R).
func WithDiskHeightProfile(p galmag.HeightProfile) DiskOption {
	return func(c *diskConfig) { c.native.HeightFunction = p }
}

// WithDiskFieldDecay toggles the exponential field decay envelope.
func WithDiskFieldDecay(decay bool) DiskOption {
	return func(c *diskConfig) { c.native.FieldDecay = decay }
}

// WithNewmanBoundaryEnvelope toggles the Newman boundary condition envelope.
func WithNewmanBoundaryEnvelope(enabled bool) DiskOption {
	return func(c *diskConfig) { c.native.NewmanBoundaryEnvelope = enabled }
}

// WithDiskKeepNativeField retains the generator's field object on the
// adapter after evaluation for later introspection.
func WithDiskKeepNativeField(keep bool) DiskOption {
	return func(c *diskConfig) { c.keepNative = keep }
}

// WithDiskGeneratorName selects a registered generator backend by name.
func WithDiskGeneratorName(name string) DiskOption {
	return func(c *diskConfig) { c.generatorName = name }
}

// WithDiskGenerator injects a generator directly, bypassing the registry.
func WithDiskGenerator(gen galmag.DiskGenerator) DiskOption {
	return func(c *diskConfig) { c.generator = gen }
}

// DiskField adapts the generator's disk field to the pipeline contract.
type DiskField struct {
	grid   *grid.Grid
	params Parameters
	cfg    diskConfig

	// native retains the generator's field object when the retention flag
	// is set; last evaluation wins.
	native *galmag.Field
}

// NewDiskField builds a disk field component over the given grid.
// Construction stores the configuration and resolves the generator backend;
// no field computation happens until Evaluate.
func NewDiskField(g *grid.Grid, params Parameters, opts ...DiskOption) (*DiskField, error) {
	if g == nil {
		return nil, fmt.Errorf("fields: disk field requires a grid")
	}
	cfg := diskConfig{
		generatorName: galmag.DefaultGenerator,
		native:        galmag.DefaultDiskOptions(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.generator == nil {
		gen, err := galmag.NewDiskGenerator(cfg.generatorName, g)
		if err != nil {
			return nil, err
		}
		cfg.generator = gen
	}
	if params == nil {
		params = Parameters{}
	}
	return &DiskField{grid: g, params: params, cfg: cfg}, nil
}

// Name implements Field.
func (f *DiskField) Name() string { return DiskFieldName }

// ParameterNames implements Field; the mode parameters are listed up to the
// configured or inferred mode count.
func (f *DiskField) ParameterNames() []string {
	names := []string{
		DiskHeight,
		DiskRadius,
		DiskRegularizationRadius,
		DiskRefRCylindrical,
		DiskShearNormalization,
		DiskTurbulentDiffusivity,
		DiskAlphaEffect,
	}
	n := f.cfg.numberOfModes
	if n == 0 {
		for name := range f.params {
			if idx, ok := modeIndex(name); ok && idx > n {
				n = idx
			}
		}
	}
	if n == 0 {
		n = defaultNumberOfModes
	}
	for i := 1; i <= n; i++ {
		names = append(names, ModeName(i))
	}
	return names
}

// Evaluate implements Field: translate, generate, relabel. Translation
// errors surface here, before the generator is invoked. The field is
// recomputed on every call; with the retention flag set the generator's
// object is overwritten each time, last evaluation wins.
func (f *DiskField) Evaluate() (*FieldArray, error) {
	np, err := TranslateDisk(f.params, f.cfg.numberOfModes)
	if err != nil {
		return nil, err
	}
	b, err := f.cfg.generator.BField(np, f.cfg.native)
	if err != nil {
		return nil, fmt.Errorf("disk field generation: %w", err)
	}
	if f.cfg.keepNative {
		f.native = b
	}
	return &FieldArray{Bx: b.X, By: b.Y, Bz: b.Z, Unit: units.Microgauss, Grid: f.grid}, nil
}

// NativeField returns the retained generator field object, or nil when the
// retention flag is unset or Evaluate has not run.
func (f *DiskField) NativeField() *galmag.Field { return f.native }
