package modelfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imagine-consortium/galmag-go/fields"
	"github.com/imagine-consortium/galmag-go/units"
)

const diskHaloModel = `
grid {
  box        = [[-15, 15], [-15, 15], [-5, 5]]
  resolution = [9, 9, 5]
}

field "galmag_disk_magnetic_field" {
  parameters = {
    disk_height = "0.4 kpc"
    mode_1      = 1.0
    mode_3      = 4.0
  }
  number_of_modes = 3
  shear_profile   = "constant"
}

field "galmag_halo_magnetic_field" {
  parameters = {
    halo_ref_Bphi = "0.5 microgauss"
  }
  symmetric_field = false
  dynamo_type     = "alpha-omega"
}
`

func TestParseModel(t *testing.T) {
	t.Parallel()

	m, err := Parse("model.hcl", []byte(diskHaloModel))
	require.NoError(t, err)

	require.NotNil(t, m.Grid)
	assert.Equal(t, []int{9, 9, 5}, m.Grid.Resolution)
	require.Len(t, m.Fields, 2)
	assert.Equal(t, fields.DiskFieldName, m.Fields[0].Kind)
	assert.Equal(t, fields.HaloFieldName, m.Fields[1].Kind)
}

func TestBuildGridAndFields(t *testing.T) {
	t.Parallel()

	m, err := Parse("model.hcl", []byte(diskHaloModel))
	require.NoError(t, err)

	g, err := m.BuildGrid()
	require.NoError(t, err)
	assert.Equal(t, 9*9*5, g.NumCells())

	built, err := m.BuildFields(g)
	require.NoError(t, err)
	require.Len(t, built, 2)

	// Both components evaluate end to end against the built-in backend.
	for _, f := range built {
		fa, err := f.Evaluate()
		require.NoError(t, err, f.Name())
		assert.Len(t, fa.Bx, g.NumCells())
	}
}

func TestParameterConversion(t *testing.T) {
	t.Parallel()

	m, err := Parse("model.hcl", []byte(diskHaloModel))
	require.NoError(t, err)

	params, err := m.Fields[0].parameters()
	require.NoError(t, err)

	h, err := params[fields.DiskHeight].To(units.Kiloparsec)
	require.NoError(t, err)
	assert.Equal(t, 0.4, h)

	mode1, err := params["mode_1"].Dimensionless()
	require.NoError(t, err)
	assert.Equal(t, 1.0, mode1)
}

func TestLoadModelFromDisk(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "model.hcl")
	require.NoError(t, os.WriteFile(path, []byte(diskHaloModel), 0o644))

	m, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, m.Fields, 2)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	t.Run("missing grid", func(t *testing.T) {
		t.Parallel()
		_, err := Parse("m.hcl", []byte(`field "galmag_disk_magnetic_field" {}`))
		assert.ErrorContains(t, err, "no grid block")
	})

	t.Run("no fields", func(t *testing.T) {
		t.Parallel()
		_, err := Parse("m.hcl", []byte(`grid {
  box        = [[-1, 1], [-1, 1], [-1, 1]]
  resolution = [2, 2, 2]
}`))
		assert.ErrorContains(t, err, "no field components")
	})

	t.Run("unknown kind", func(t *testing.T) {
		t.Parallel()
		_, err := Parse("m.hcl", []byte(`grid {
  box        = [[-1, 1], [-1, 1], [-1, 1]]
  resolution = [2, 2, 2]
}
field "jf12" {}`))
		assert.ErrorContains(t, err, "unknown field kind")
	})

	t.Run("bad unit string", func(t *testing.T) {
		t.Parallel()
		m, err := Parse("m.hcl", []byte(`grid {
  box        = [[-1, 1], [-1, 1], [-1, 1]]
  resolution = [2, 2, 2]
}
field "galmag_disk_magnetic_field" {
  parameters = { disk_height = "0.4 parsecs" }
}`))
		require.NoError(t, err)
		g, err := m.BuildGrid()
		require.NoError(t, err)
		_, err = m.Fields[0].Build(g)
		assert.ErrorContains(t, err, "disk_height")
	})

	t.Run("halo option on disk block", func(t *testing.T) {
		t.Parallel()
		m, err := Parse("m.hcl", []byte(`grid {
  box        = [[-1, 1], [-1, 1], [-1, 1]]
  resolution = [2, 2, 2]
}
field "galmag_disk_magnetic_field" {
  dynamo_type = "alpha-omega"
}`))
		require.NoError(t, err)
		g, err := m.BuildGrid()
		require.NoError(t, err)
		_, err = m.Fields[0].Build(g)
		assert.ErrorContains(t, err, "halo option")
	})
}
