package viz

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imagine-consortium/galmag-go/fields"
	"github.com/imagine-consortium/galmag-go/grid"
	"github.com/imagine-consortium/galmag-go/units"
)

func sampleArray(t *testing.T) *fields.FieldArray {
	t.Helper()
	g, err := grid.NewCartesian(grid.Box{{-10, 10}, {-10, 10}, {-2, 2}}, [3]int{8, 8, 3})
	require.NoError(t, err)

	n := g.NumCells()
	fa := &fields.FieldArray{
		Bx:   make([]float64, n),
		By:   make([]float64, n),
		Bz:   make([]float64, n),
		Unit: units.Microgauss,
		Grid: g,
	}
	for i, x := range g.X() {
		fa.Bx[i] = x * 0.1
		fa.By[i] = g.Y()[i] * 0.1
	}
	return fa
}

func TestMidplaneHeatmapHTML(t *testing.T) {
	t.Parallel()

	fa := sampleArray(t)
	var buf bytes.Buffer
	require.NoError(t, MidplaneHeatmapHTML(fa, "disk field", &buf))

	html := buf.String()
	assert.Contains(t, html, "disk field")
	assert.Contains(t, html, "heatmap")
}

func TestMidplaneHeatmapNoGrid(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := MidplaneHeatmapHTML(&fields.FieldArray{}, "x", &buf)
	assert.ErrorContains(t, err, "no grid")
}

func TestRadialProfilePNG(t *testing.T) {
	t.Parallel()

	fa := sampleArray(t)
	path := filepath.Join(t.TempDir(), "profile.png")
	require.NoError(t, RadialProfilePNG(fa, "disk field", path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestMidplaneIndex(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, midplaneIndex([]float64{-2, 0, 2}))
	assert.Equal(t, 0, midplaneIndex([]float64{0.5, 1.5, 2.5}))
}
