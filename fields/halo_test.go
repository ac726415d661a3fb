package fields

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imagine-consortium/galmag-go/galmag"
	"github.com/imagine-consortium/galmag-go/units"
)

type fakeHaloGenerator struct {
	calls  int
	params galmag.HaloParams
	opts   galmag.HaloOptions
	err    error
}

func (g *fakeHaloGenerator) BField(p galmag.HaloParams, o galmag.HaloOptions) (*galmag.Field, error) {
	g.calls++
	g.params = p
	g.opts = o
	if g.err != nil {
		return nil, g.err
	}
	return &galmag.Field{
		X: []float64{0, 3},
		Y: []float64{4, 0},
		Z: []float64{0, 0},
	}, nil
}

func TestHaloFieldName(t *testing.T) {
	t.Parallel()

	f, err := NewHaloField(testFieldGrid(t), nil, WithHaloGenerator(&fakeHaloGenerator{}))
	require.NoError(t, err)
	assert.Equal(t, "galmag_halo_magnetic_field", f.Name())
}

func TestHaloFieldEvaluate(t *testing.T) {
	t.Parallel()

	gen := &fakeHaloGenerator{}
	f, err := NewHaloField(testFieldGrid(t), Parameters{
		HaloRefBphi: units.New(0.5, units.Microgauss),
		HaloRadius:  units.New(15, units.Kiloparsec),
	}, WithHaloGenerator(gen))
	require.NoError(t, err)

	fa, err := f.Evaluate()
	require.NoError(t, err)

	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, 0.5, gen.params.RefBphi)
	assert.Equal(t, 15.0, gen.params.Radius)
	assert.Equal(t, units.Microgauss, fa.Unit)
	assert.InDelta(t, 4.0, fa.Strength(0), 1e-12)
}

func TestHaloFieldStructuralPassthrough(t *testing.T) {
	t.Parallel()

	gen := &fakeHaloGenerator{}
	f, err := NewHaloField(testFieldGrid(t), nil,
		WithHaloGenerator(gen),
		WithHaloSymmetricField(false),
		WithHaloDynamoType("alpha-omega"),
		WithHaloFreeDecayModes(8),
		WithHaloGrowingModeOnly(true),
		WithHaloOneQuadrant(false),
		WithHaloGalerkinGrid(1001))
	require.NoError(t, err)

	_, err = f.Evaluate()
	require.NoError(t, err)

	assert.False(t, gen.opts.SymmetricField)
	assert.Equal(t, "alpha-omega", gen.opts.DynamoType)
	assert.Equal(t, 8, gen.opts.NFreeDecayModes)
	assert.True(t, gen.opts.GrowingModeOnly)
	assert.False(t, gen.opts.ComputeOnlyOneQuadrant)
	assert.Equal(t, 1001, gen.opts.GalerkinNGrid)
}

func TestHaloFieldDefaultOptions(t *testing.T) {
	t.Parallel()

	gen := &fakeHaloGenerator{}
	f, err := NewHaloField(testFieldGrid(t), nil, WithHaloGenerator(gen))
	require.NoError(t, err)

	_, err = f.Evaluate()
	require.NoError(t, err)

	assert.True(t, gen.opts.SymmetricField)
	assert.Equal(t, "alpha2-omega", gen.opts.DynamoType)
	assert.Equal(t, 4, gen.opts.NFreeDecayModes)
	assert.Equal(t, 501, gen.opts.GalerkinNGrid)
}

func TestHaloFieldTranslationErrorSkipsGenerator(t *testing.T) {
	t.Parallel()

	gen := &fakeHaloGenerator{}
	f, err := NewHaloField(testFieldGrid(t), Parameters{
		"halo_dynamo_type": units.Number(1),
	}, WithHaloGenerator(gen))
	require.NoError(t, err)

	_, err = f.Evaluate()
	assert.ErrorIs(t, err, ErrParameterConflict)
	assert.Zero(t, gen.calls)
}

func TestHaloFieldGeneratorErrorWrapped(t *testing.T) {
	t.Parallel()

	genErr := errors.New("galerkin solve failed")
	f, err := NewHaloField(testFieldGrid(t), nil,
		WithHaloGenerator(&fakeHaloGenerator{err: genErr}))
	require.NoError(t, err)

	_, err = f.Evaluate()
	assert.ErrorIs(t, err, genErr)
}

func TestHaloFieldKeepNative(t *testing.T) {
	t.Parallel()

	gen := &fakeHaloGenerator{}
	f, err := NewHaloField(testFieldGrid(t), nil,
		WithHaloGenerator(gen), WithHaloKeepNativeField(true))
	require.NoError(t, err)

	_, err = f.Evaluate()
	require.NoError(t, err)
	_, err = f.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, 2, gen.calls)
	assert.NotNil(t, f.NativeField())
}

func TestHaloFieldRegistryBackend(t *testing.T) {
	t.Parallel()

	f, err := NewHaloField(testFieldGrid(t), nil)
	require.NoError(t, err)
	fa, err := f.Evaluate()
	require.NoError(t, err)
	assert.Len(t, fa.Bx, 27)

	_, err = NewHaloField(testFieldGrid(t), nil, WithHaloGeneratorName("no-such-backend"))
	assert.Error(t, err)
}
