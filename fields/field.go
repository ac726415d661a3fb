package fields

import (
	"math"

	"github.com/imagine-consortium/galmag-go/grid"
	"github.com/imagine-consortium/galmag-go/units"
)

// Field is the component contract the inference pipeline consumes. A field
// component is constructed with a grid and a parameter dictionary and
// produces the sampled field on demand; the pipeline sums components.
type Field interface {
	// Name identifies the component in pipeline configuration and run records.
	Name() string

	// ParameterNames lists the varyable parameters this component accepts.
	ParameterNames() []string

	// Evaluate samples the field over the component's grid. The result is
	// recomputed on every call.
	Evaluate() (*FieldArray, error)
}

// FieldArray is a grid-aligned vector field sample. Component slices follow
// the grid's flattened cell order and share its length.
type FieldArray struct {
	Bx, By, Bz []float64
	Unit       units.Unit
	Grid       *grid.Grid
}

// Strength returns the field magnitude |B| at the given flattened cell index.
func (fa *FieldArray) Strength(i int) float64 {
	return math.Sqrt(fa.Bx[i]*fa.Bx[i] + fa.By[i]*fa.By[i] + fa.Bz[i]*fa.Bz[i])
}

// Strengths returns the per-cell field magnitudes.
func (fa *FieldArray) Strengths() []float64 {
	s := make([]float64, len(fa.Bx))
	for i := range s {
		s[i] = fa.Strength(i)
	}
	return s
}
