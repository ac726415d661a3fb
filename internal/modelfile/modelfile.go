// Package modelfile loads field model definitions from HCL files. A model
// file declares the evaluation grid and one or more field components with
// their varyable parameters and structural options:
//
//	grid {
//	  box        = [[-15, 15], [-15, 15], [-5, 5]]
//	  resolution = [30, 30, 10]
//	}
//
//	field "galmag_disk_magnetic_field" {
//	  parameters = {
//	    disk_height = "0.4 kpc"
//	    mode_1      = 1.0
//	  }
//	  number_of_modes = 3
//	}
//
// Parameter values are either bare numbers, taken in each parameter's
// documented unit, or strings of the form "<number> <unit>".
package modelfile

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/imagine-consortium/galmag-go/fields"
	"github.com/imagine-consortium/galmag-go/galmag"
	"github.com/imagine-consortium/galmag-go/grid"
	"github.com/imagine-consortium/galmag-go/units"
)

// Model is a parsed model file.
type Model struct {
	Grid   *GridBlock
	Fields []*FieldBlock
}

// GridBlock declares the evaluation grid.
type GridBlock struct {
	Box        [][]float64 `hcl:"box"`
	Resolution []int       `hcl:"resolution"`
}

// FieldBlock declares one field component. The label selects the component
// kind; unset structural options keep the component's documented defaults.
type FieldBlock struct {
	Kind       string    `hcl:"kind,label"`
	Parameters cty.Value `hcl:"parameters,optional"`

	Generator       *string `hcl:"generator,optional"`
	KeepNativeField *bool   `hcl:"keep_native_field,optional"`

	// Disk options
	NumberOfModes   *int    `hcl:"number_of_modes,optional"`
	RotationProfile *string `hcl:"rotation_profile,optional"`
	ShearProfile    *string `hcl:"shear_profile,optional"`
	HeightProfile   *string `hcl:"height_profile,optional"`
	FieldDecay      *bool   `hcl:"field_decay,optional"`
	NewmanEnvelope  *bool   `hcl:"newman_envelope,optional"`

	// Halo options
	SymmetricField  *bool   `hcl:"symmetric_field,optional"`
	AlphaProfile    *string `hcl:"alpha_profile,optional"`
	DynamoType      *string `hcl:"dynamo_type,optional"`
	FreeDecayModes  *int    `hcl:"free_decay_modes,optional"`
	GrowingModeOnly *bool   `hcl:"growing_mode_only,optional"`
	OneQuadrant     *bool   `hcl:"one_quadrant,optional"`
	GalerkinGrid    *int    `hcl:"galerkin_grid,optional"`
}

type modelFile struct {
	Grid   *GridBlock    `hcl:"grid,block"`
	Fields []*FieldBlock `hcl:"field,block"`
}

// Load parses a model file from disk.
func Load(path string) (*Model, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse model file %s: %w", path, diags)
	}
	return decode(path, hclFile.Body)
}

// Parse parses model file source held in memory; filename is used in
// diagnostics only.
func Parse(filename string, src []byte) (*Model, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse model file %s: %w", filename, diags)
	}
	return decode(filename, hclFile.Body)
}

func decode(name string, body hcl.Body) (*Model, error) {
	var parsed modelFile
	if diags := gohcl.DecodeBody(body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode model file %s: %w", name, diags)
	}
	if parsed.Grid == nil {
		return nil, fmt.Errorf("model file %s has no grid block", name)
	}
	if len(parsed.Fields) == 0 {
		return nil, fmt.Errorf("model file %s declares no field components", name)
	}
	for _, fb := range parsed.Fields {
		switch fb.Kind {
		case fields.DiskFieldName, fields.HaloFieldName:
		default:
			return nil, fmt.Errorf("model file %s: unknown field kind %q", name, fb.Kind)
		}
	}
	return &Model{Grid: parsed.Grid, Fields: parsed.Fields}, nil
}

// BuildGrid constructs the evaluation grid declared by the model.
func (m *Model) BuildGrid() (*grid.Grid, error) {
	gb := m.Grid
	if len(gb.Box) != 3 {
		return nil, fmt.Errorf("grid box needs 3 axes, got %d", len(gb.Box))
	}
	if len(gb.Resolution) != 3 {
		return nil, fmt.Errorf("grid resolution needs 3 axes, got %d", len(gb.Resolution))
	}
	var box grid.Box
	for axis, lim := range gb.Box {
		if len(lim) != 2 {
			return nil, fmt.Errorf("grid box axis %d needs [min, max], got %d values", axis, len(lim))
		}
		box[axis] = [2]float64{lim[0], lim[1]}
	}
	return grid.NewCartesian(box, [3]int{gb.Resolution[0], gb.Resolution[1], gb.Resolution[2]})
}

// BuildFields constructs every field component declared by the model over the
// given grid.
func (m *Model) BuildFields(g *grid.Grid) ([]fields.Field, error) {
	built := make([]fields.Field, 0, len(m.Fields))
	for _, fb := range m.Fields {
		f, err := fb.Build(g)
		if err != nil {
			return nil, err
		}
		built = append(built, f)
	}
	return built, nil
}

// Build constructs the declared field component over the given grid.
func (fb *FieldBlock) Build(g *grid.Grid) (fields.Field, error) {
	params, err := fb.parameters()
	if err != nil {
		return nil, err
	}
	switch fb.Kind {
	case fields.DiskFieldName:
		opts, err := fb.diskOptions()
		if err != nil {
			return nil, err
		}
		return fields.NewDiskField(g, params, opts...)
	case fields.HaloFieldName:
		opts, err := fb.haloOptions()
		if err != nil {
			return nil, err
		}
		return fields.NewHaloField(g, params, opts...)
	default:
		return nil, fmt.Errorf("unknown field kind %q", fb.Kind)
	}
}

// ParameterDictionary converts the HCL parameters attribute into a
// dictionary of unit-aware quantities.
func (fb *FieldBlock) ParameterDictionary() (fields.Parameters, error) {
	return fb.parameters()
}

func (fb *FieldBlock) parameters() (fields.Parameters, error) {
	params := fields.Parameters{}
	if fb.Parameters.IsNull() {
		return params, nil
	}
	if !fb.Parameters.Type().IsObjectType() && !fb.Parameters.Type().IsMapType() {
		return nil, fmt.Errorf("field %q: parameters must be a map", fb.Kind)
	}
	for name, v := range fb.Parameters.AsValueMap() {
		q, err := quantityFromCty(v)
		if err != nil {
			return nil, fmt.Errorf("field %q parameter %s: %w", fb.Kind, name, err)
		}
		params[name] = q
	}
	return params, nil
}

func quantityFromCty(v cty.Value) (units.Quantity, error) {
	switch v.Type() {
	case cty.Number:
		f, _ := v.AsBigFloat().Float64()
		return units.Number(f), nil
	case cty.String:
		return units.Parse(v.AsString())
	default:
		return units.Quantity{}, fmt.Errorf("value must be a number or a \"<number> <unit>\" string, got %s", v.Type().FriendlyName())
	}
}

func (fb *FieldBlock) diskOptions() ([]fields.DiskOption, error) {
	var opts []fields.DiskOption
	if fb.Generator != nil {
		opts = append(opts, fields.WithDiskGeneratorName(*fb.Generator))
	}
	if fb.KeepNativeField != nil {
		opts = append(opts, fields.WithDiskKeepNativeField(*fb.KeepNativeField))
	}
	if fb.NumberOfModes != nil {
		opts = append(opts, fields.WithNumberOfModes(*fb.NumberOfModes))
	}
	if fb.RotationProfile != nil {
		p, err := galmag.RotationProfileByName(*fb.RotationProfile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, fields.WithDiskRotationProfile(p))
	}
	if fb.ShearProfile != nil {
		p, err := galmag.ShearProfileByName(*fb.ShearProfile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, fields.WithDiskShearProfile(p))
	}
	if fb.HeightProfile != nil {
		p, err := galmag.HeightProfileByName(*fb.HeightProfile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, fields.WithDiskHeightProfile(p))
	}
	if fb.FieldDecay != nil {
		opts = append(opts, fields.WithDiskFieldDecay(*fb.FieldDecay))
	}
	if fb.NewmanEnvelope != nil {
		opts = append(opts, fields.WithNewmanBoundaryEnvelope(*fb.NewmanEnvelope))
	}
	if err := fb.rejectHaloOptions(); err != nil {
		return nil, err
	}
	return opts, nil
}

func (fb *FieldBlock) haloOptions() ([]fields.HaloOption, error) {
	var opts []fields.HaloOption
	if fb.Generator != nil {
		opts = append(opts, fields.WithHaloGeneratorName(*fb.Generator))
	}
	if fb.KeepNativeField != nil {
		opts = append(opts, fields.WithHaloKeepNativeField(*fb.KeepNativeField))
	}
	if fb.SymmetricField != nil {
		opts = append(opts, fields.WithHaloSymmetricField(*fb.SymmetricField))
	}
	if fb.RotationProfile != nil {
		p, err := galmag.HaloRotationProfileByName(*fb.RotationProfile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, fields.WithHaloRotationProfile(p))
	}
	if fb.AlphaProfile != nil {
		p, err := galmag.HaloAlphaProfileByName(*fb.AlphaProfile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, fields.WithHaloAlphaProfile(p))
	}
	if fb.DynamoType != nil {
		opts = append(opts, fields.WithHaloDynamoType(*fb.DynamoType))
	}
	if fb.FreeDecayModes != nil {
		opts = append(opts, fields.WithHaloFreeDecayModes(*fb.FreeDecayModes))
	}
	if fb.GrowingModeOnly != nil {
		opts = append(opts, fields.WithHaloGrowingModeOnly(*fb.GrowingModeOnly))
	}
	if fb.OneQuadrant != nil {
		opts = append(opts, fields.WithHaloOneQuadrant(*fb.OneQuadrant))
	}
	if fb.GalerkinGrid != nil {
		opts = append(opts, fields.WithHaloGalerkinGrid(*fb.GalerkinGrid))
	}
	if err := fb.rejectDiskOptions(); err != nil {
		return nil, err
	}
	return opts, nil
}

// rejectHaloOptions flags halo-only options on a disk block.
func (fb *FieldBlock) rejectHaloOptions() error {
	switch {
	case fb.SymmetricField != nil:
		return fmt.Errorf("field %q: symmetric_field is a halo option", fb.Kind)
	case fb.AlphaProfile != nil:
		return fmt.Errorf("field %q: alpha_profile is a halo option", fb.Kind)
	case fb.DynamoType != nil:
		return fmt.Errorf("field %q: dynamo_type is a halo option", fb.Kind)
	case fb.FreeDecayModes != nil:
		return fmt.Errorf("field %q: free_decay_modes is a halo option", fb.Kind)
	case fb.GrowingModeOnly != nil:
		return fmt.Errorf("field %q: growing_mode_only is a halo option", fb.Kind)
	case fb.OneQuadrant != nil:
		return fmt.Errorf("field %q: one_quadrant is a halo option", fb.Kind)
	case fb.GalerkinGrid != nil:
		return fmt.Errorf("field %q: galerkin_grid is a halo option", fb.Kind)
	}
	return nil
}

// rejectDiskOptions flags disk-only options on a halo block.
func (fb *FieldBlock) rejectDiskOptions() error {
	switch {
	case fb.NumberOfModes != nil:
		return fmt.Errorf("field %q: number_of_modes is a disk option", fb.Kind)
	case fb.ShearProfile != nil:
		return fmt.Errorf("field %q: shear_profile is a disk option", fb.Kind)
	case fb.HeightProfile != nil:
		return fmt.Errorf("field %q: height_profile is a disk option", fb.Kind)
	case fb.FieldDecay != nil:
		return fmt.Errorf("field %q: field_decay is a disk option", fb.Kind)
	case fb.NewmanEnvelope != nil:
		return fmt.Errorf("field %q: newman_envelope is a disk option", fb.Kind)
	}
	return nil
}
