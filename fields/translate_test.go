package fields

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imagine-consortium/galmag-go/galmag"
	"github.com/imagine-consortium/galmag-go/units"
)

func TestTranslateDiskDefaults(t *testing.T) {
	t.Parallel()

	np, err := TranslateDisk(Parameters{}, 0)
	require.NoError(t, err)

	want := galmag.DiskParams{
		Height:               0.4,
		Radius:               17,
		RegularizationRadius: 0.5,
		RefRCylindrical:      8.5,
		ModesNormalization:   []float64{1, 0, 0, 0},
	}
	diff := cmp.Diff(want, np,
		cmpopts.IgnoreFields(galmag.DiskParams{}, "TurbulentInduction", "DynamoNumber"),
		cmpopts.EquateApprox(0, 1e-9))
	assert.Empty(t, diff)

	// R_alpha = h*alpha/beta with the documented defaults.
	assert.InDelta(t, 1.234, np.TurbulentInduction, 1e-3)
	// Negative shear makes the dynamo number negative.
	assert.Less(t, np.DynamoNumber, 0.0)
}

func TestTranslateDiskModeExpansion(t *testing.T) {
	t.Parallel()

	t.Run("explicit modes", func(t *testing.T) {
		t.Parallel()
		np, err := TranslateDisk(Parameters{
			"mode_1": units.Number(1),
			"mode_2": units.Number(0),
			"mode_3": units.Number(4),
		}, 0)
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 0, 4}, np.ModesNormalization)
	})

	t.Run("gaps default to zero", func(t *testing.T) {
		t.Parallel()
		np, err := TranslateDisk(Parameters{
			"mode_2": units.New(2.5, units.Microgauss),
		}, 5)
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 2.5, 0, 0, 0}, np.ModesNormalization)
	})

	t.Run("mode above configured count", func(t *testing.T) {
		t.Parallel()
		_, err := TranslateDisk(Parameters{"mode_4": units.Number(1)}, 2)
		assert.ErrorIs(t, err, ErrParameterConflict)
	})

	t.Run("gauss amplitudes convert", func(t *testing.T) {
		t.Parallel()
		np, err := TranslateDisk(Parameters{
			"mode_1": units.New(3e-6, units.Gauss),
		}, 1)
		require.NoError(t, err)
		assert.InDelta(t, 3.0, np.ModesNormalization[0], 1e-9)
	})
}

func TestTranslateDiskDynamoNumbers(t *testing.T) {
	t.Parallel()

	params := Parameters{
		DiskHeight:               units.New(0.5, units.Kiloparsec),
		DiskAlphaEffect:          units.New(1, units.KmPerSecond),
		DiskTurbulentDiffusivity: units.New(1e26, units.CmSqPerSecond),
		DiskShearNormalization:   units.New(-30, units.KmPerSecond).Div(units.New(1, units.Kiloparsec)),
	}
	np, err := TranslateDisk(params, 1)
	require.NoError(t, err)

	// R_alpha = h*alpha/beta = 1.5428...
	assert.InDelta(t, 1.5428, np.TurbulentInduction, 1e-3)
	// R_omega = h^2*S/beta < 0, so D = R_alpha*R_omega < 0.
	assert.Less(t, np.DynamoNumber, 0.0)
	assert.InDelta(t, np.TurbulentInduction*-23.14, np.DynamoNumber, 0.1)
}

func TestTranslateDiskLegacyParametrization(t *testing.T) {
	t.Parallel()

	t.Run("direct induction terms", func(t *testing.T) {
		t.Parallel()
		np, err := TranslateDisk(Parameters{
			DiskTurbulentInduction: units.Number(2),
			DiskDynamoNumber:       units.Number(-20),
		}, 1)
		require.NoError(t, err)
		assert.Equal(t, 2.0, np.TurbulentInduction)
		assert.Equal(t, -20.0, np.DynamoNumber)
	})

	t.Run("conflict with observables", func(t *testing.T) {
		t.Parallel()
		_, err := TranslateDisk(Parameters{
			DiskTurbulentInduction: units.Number(2),
			DiskAlphaEffect:        units.New(1, units.KmPerSecond),
		}, 1)
		assert.ErrorIs(t, err, ErrParameterConflict)

		_, err = TranslateDisk(Parameters{
			DiskDynamoNumber:       units.Number(-20),
			DiskShearNormalization: units.New(-1e-15, units.PerSecond),
		}, 1)
		assert.ErrorIs(t, err, ErrParameterConflict)
	})
}

func TestTranslateDiskErrors(t *testing.T) {
	t.Parallel()

	t.Run("unknown parameter", func(t *testing.T) {
		t.Parallel()
		_, err := TranslateDisk(Parameters{"disk_heihgt": units.Number(1)}, 0)
		assert.ErrorIs(t, err, ErrUnknownParameter)
	})

	t.Run("structural option as parameter", func(t *testing.T) {
		t.Parallel()
		_, err := TranslateDisk(Parameters{"disk_field_decay": units.Number(1)}, 0)
		assert.ErrorIs(t, err, ErrParameterConflict)
	})

	t.Run("wrong dimensions", func(t *testing.T) {
		t.Parallel()
		_, err := TranslateDisk(Parameters{
			DiskHeight: units.New(1, units.Microgauss),
		}, 0)
		assert.ErrorIs(t, err, ErrUnitMismatch)
	})
}

func TestTranslateDiskPure(t *testing.T) {
	t.Parallel()

	params := Parameters{"mode_1": units.Number(1)}
	_, err := TranslateDisk(params, 3)
	require.NoError(t, err)
	assert.Len(t, params, 1) // input dictionary untouched
}

func TestTranslateHaloDefaults(t *testing.T) {
	t.Parallel()

	np, err := TranslateHalo(Parameters{})
	require.NoError(t, err)

	assert.Equal(t, 20.0, np.Radius)
	assert.Equal(t, 8.5, np.RefRadius)
	assert.InDelta(t, 0.1, np.RefBphi, 1e-12)
	// R_alpha = r*alpha/beta with r = 20 kpc.
	assert.InDelta(t, 61.7, np.TurbulentInduction, 0.1)
	// R_omega = -r*V/beta is large and negative for a rotating halo.
	assert.Less(t, np.RotationInduction, -1000.0)
}

func TestTranslateHaloUnitsAndPromotion(t *testing.T) {
	t.Parallel()

	// Bare numbers are promoted to the documented unit.
	np, err := TranslateHalo(Parameters{
		HaloRefBphi: units.Number(0.5),
		HaloRadius:  units.Number(15),
	})
	require.NoError(t, err)
	assert.Equal(t, 0.5, np.RefBphi)
	assert.Equal(t, 15.0, np.Radius)
}

func TestTranslateHaloErrors(t *testing.T) {
	t.Parallel()

	_, err := TranslateHalo(Parameters{"halo_refradius": units.Number(1)})
	assert.ErrorIs(t, err, ErrUnknownParameter)

	_, err = TranslateHalo(Parameters{"halo_symmetric_field": units.Number(1)})
	assert.ErrorIs(t, err, ErrParameterConflict)

	_, err = TranslateHalo(Parameters{
		HaloRotationInduction:     units.Number(-100),
		HaloRotationNormalization: units.New(220, units.KmPerSecond),
	})
	assert.ErrorIs(t, err, ErrParameterConflict)

	_, err = TranslateHalo(Parameters{
		HaloAlphaEffect: units.New(1, units.Kiloparsec),
	})
	assert.ErrorIs(t, err, ErrUnitMismatch)
}
