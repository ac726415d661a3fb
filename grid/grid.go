// Package grid provides the cartesian evaluation grid the host pipeline
// samples field components on. Coordinates are stored flattened in row-major
// (x-fastest-last) order so field arrays align index-for-index with cells.
package grid

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/imagine-consortium/galmag-go/units"
)

// Box is the spatial extent of a grid along the three cartesian axes,
// [axis][min|max], in kiloparsec.
type Box [3][2]float64

// Grid is a uniform cartesian sampling of a box. All coordinate values are
// in kiloparsec, the field generator's native length unit.
type Grid struct {
	box Box
	res [3]int

	// Flattened per-cell coordinates, each of length NumCells.
	x, y, z []float64

	// Per-axis sample positions.
	ax, ay, az []float64
}

// NewCartesian builds a grid over box with the given per-axis resolution.
func NewCartesian(box Box, resolution [3]int) (*Grid, error) {
	for i := 0; i < 3; i++ {
		if resolution[i] < 2 {
			return nil, fmt.Errorf("grid: resolution[%d] must be at least 2, got %d", i, resolution[i])
		}
		if box[i][1] <= box[i][0] {
			return nil, fmt.Errorf("grid: box[%d] max %g must exceed min %g", i, box[i][1], box[i][0])
		}
	}

	g := &Grid{box: box, res: resolution}
	g.ax = floats.Span(make([]float64, resolution[0]), box[0][0], box[0][1])
	g.ay = floats.Span(make([]float64, resolution[1]), box[1][0], box[1][1])
	g.az = floats.Span(make([]float64, resolution[2]), box[2][0], box[2][1])

	n := g.NumCells()
	g.x = make([]float64, n)
	g.y = make([]float64, n)
	g.z = make([]float64, n)
	for i := 0; i < resolution[0]; i++ {
		for j := 0; j < resolution[1]; j++ {
			for k := 0; k < resolution[2]; k++ {
				idx := g.Index(i, j, k)
				g.x[idx] = g.ax[i]
				g.y[idx] = g.ay[j]
				g.z[idx] = g.az[k]
			}
		}
	}
	return g, nil
}

// NewCartesianQuantities builds a grid from unit-aware box extents, converting
// to the generator's kiloparsec convention.
func NewCartesianQuantities(box [3][2]units.Quantity, resolution [3]int) (*Grid, error) {
	var kpcBox Box
	for i := 0; i < 3; i++ {
		for j := 0; j < 2; j++ {
			v, err := box[i][j].To(units.Kiloparsec)
			if err != nil {
				return nil, fmt.Errorf("grid: box[%d][%d]: %w", i, j, err)
			}
			kpcBox[i][j] = v
		}
	}
	return NewCartesian(kpcBox, resolution)
}

// Box returns the grid extents in kiloparsec.
func (g *Grid) Box() Box { return g.box }

// Resolution returns the per-axis sample counts.
func (g *Grid) Resolution() [3]int { return g.res }

// NumCells returns the total number of sample points.
func (g *Grid) NumCells() int { return g.res[0] * g.res[1] * g.res[2] }

// Index maps (i, j, k) axis indices to the flattened cell index.
func (g *Grid) Index(i, j, k int) int {
	return (i*g.res[1]+j)*g.res[2] + k
}

// X returns the flattened x coordinates in kpc. The slice is shared; callers
// must not modify it.
func (g *Grid) X() []float64 { return g.x }

// Y returns the flattened y coordinates in kpc.
func (g *Grid) Y() []float64 { return g.y }

// Z returns the flattened z coordinates in kpc.
func (g *Grid) Z() []float64 { return g.z }

// AxisX returns the x-axis sample positions in kpc.
func (g *Grid) AxisX() []float64 { return g.ax }

// AxisY returns the y-axis sample positions in kpc.
func (g *Grid) AxisY() []float64 { return g.ay }

// AxisZ returns the z-axis sample positions in kpc.
func (g *Grid) AxisZ() []float64 { return g.az }
