package grid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imagine-consortium/galmag-go/units"
)

func symmetricBox(half float64) Box {
	return Box{{-half, half}, {-half, half}, {-half, half}}
}

func TestNewCartesian(t *testing.T) {
	t.Parallel()

	g, err := NewCartesian(symmetricBox(15), [3]int{4, 3, 2})
	require.NoError(t, err)

	assert.Equal(t, 24, g.NumCells())
	assert.Len(t, g.X(), 24)
	assert.Len(t, g.AxisX(), 4)
	assert.Equal(t, -15.0, g.AxisX()[0])
	assert.Equal(t, 15.0, g.AxisX()[3])

	// Flattened coordinates follow Index ordering.
	idx := g.Index(3, 0, 1)
	assert.Equal(t, 15.0, g.X()[idx])
	assert.Equal(t, -15.0, g.Y()[idx])
	assert.Equal(t, 15.0, g.Z()[idx])
}

func TestNewCartesianErrors(t *testing.T) {
	t.Parallel()

	_, err := NewCartesian(symmetricBox(15), [3]int{1, 3, 3})
	assert.Error(t, err)

	bad := symmetricBox(15)
	bad[2] = [2]float64{3, -3}
	_, err = NewCartesian(bad, [3]int{3, 3, 3})
	assert.Error(t, err)
}

func TestNewCartesianQuantities(t *testing.T) {
	t.Parallel()

	kpc := func(v float64) units.Quantity { return units.New(v, units.Kiloparsec) }
	g, err := NewCartesianQuantities([3][2]units.Quantity{
		{kpc(-10), kpc(10)},
		{kpc(-10), kpc(10)},
		{kpc(-2), kpc(2)},
	}, [3]int{3, 3, 3})
	require.NoError(t, err)
	assert.Equal(t, Box{{-10, 10}, {-10, 10}, {-2, 2}}, g.Box())

	// A field-strength box extent is a unit error.
	_, err = NewCartesianQuantities([3][2]units.Quantity{
		{units.New(-1, units.Microgauss), kpc(1)},
		{kpc(-1), kpc(1)},
		{kpc(-1), kpc(1)},
	}, [3]int{3, 3, 3})
	assert.Error(t, err)
}

func TestCylindricalCoordinates(t *testing.T) {
	t.Parallel()

	g, err := NewCartesian(symmetricBox(1), [3]int{3, 3, 3})
	require.NoError(t, err)

	r := g.RCylindrical()
	phi := g.Phi()
	rs := g.RSpherical()

	centre := g.Index(1, 1, 1)
	assert.Equal(t, 0.0, r[centre])
	assert.Equal(t, 0.0, rs[centre])

	corner := g.Index(2, 2, 2)
	assert.InDelta(t, math.Sqrt2, r[corner], 1e-12)
	assert.InDelta(t, math.Sqrt(3), rs[corner], 1e-12)
	assert.InDelta(t, math.Pi/4, phi[corner], 1e-12)
}
