// Package config loads evaluation run configuration. The schema matches the
// model-file grid block so the same JSON can describe a standalone run or
// override a model file's settings.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// DefaultConfigPath is the path to the canonical run defaults file.
const DefaultConfigPath = "config/run.defaults.json"

// RunConfig represents the root configuration for a field evaluation run.
// All fields are optional; the Get* methods provide fallback defaults for
// anything omitted, so partial configs are safe.
type RunConfig struct {
	// Grid params
	GridResolution *[3]int        `json:"grid_resolution,omitempty"`
	GridBox        *[3][2]float64 `json:"grid_box,omitempty"` // kpc, [axis][min max]

	// Component params
	Generator     *string `json:"generator,omitempty"`
	NumberOfModes *int    `json:"number_of_modes,omitempty"`

	// Output params
	CatalogPath *string `json:"catalog_path,omitempty"`
	OutputDir   *string `json:"output_dir,omitempty"`
}

// envOverrides maps environment variables onto RunConfig fields. Pointer
// fields stay nil when the variable is unset, so env values layer over JSON
// the same way JSON layers over defaults.
type envOverrides struct {
	Generator   *string `env:"GALMAG_GENERATOR"`
	CatalogPath *string `env:"GALMAG_CATALOG"`
	OutputDir   *string `env:"GALMAG_OUTPUT_DIR"`
}

// EmptyRunConfig returns a RunConfig with all fields set to nil.
func EmptyRunConfig() *RunConfig {
	return &RunConfig{}
}

// LoadRunConfig loads a RunConfig from a JSON file and applies environment
// overrides on top. The file is validated to have a .json extension and to be
// under the max file size.
func LoadRunConfig(path string) (*RunConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyRunConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// FromEnv builds a RunConfig from environment variables alone.
func FromEnv() (*RunConfig, error) {
	cfg := EmptyRunConfig()
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// ApplyEnv layers environment variable overrides onto the config.
func (c *RunConfig) ApplyEnv() error {
	var ov envOverrides
	if err := env.Parse(&ov); err != nil {
		return fmt.Errorf("parse env overrides: %w", err)
	}
	if ov.Generator != nil {
		c.Generator = ov.Generator
	}
	if ov.CatalogPath != nil {
		c.CatalogPath = ov.CatalogPath
	}
	if ov.OutputDir != nil {
		c.OutputDir = ov.OutputDir
	}
	return nil
}

// Validate checks that the configuration values are usable.
func (c *RunConfig) Validate() error {
	if c.GridResolution != nil {
		for axis, n := range *c.GridResolution {
			if n < 2 {
				return fmt.Errorf("grid_resolution[%d] must be at least 2, got %d", axis, n)
			}
		}
	}
	if c.GridBox != nil {
		for axis, lim := range *c.GridBox {
			if lim[1] <= lim[0] {
				return fmt.Errorf("grid_box[%d] max %g must exceed min %g", axis, lim[1], lim[0])
			}
		}
	}
	if c.NumberOfModes != nil && *c.NumberOfModes < 0 {
		return fmt.Errorf("number_of_modes must be non-negative, got %d", *c.NumberOfModes)
	}
	return nil
}

// GetGridResolution returns the grid resolution or the default.
func (c *RunConfig) GetGridResolution() [3]int {
	if c.GridResolution == nil {
		return [3]int{30, 30, 30}
	}
	return *c.GridResolution
}

// GetGridBox returns the grid extents in kpc or the default.
func (c *RunConfig) GetGridBox() [3][2]float64 {
	if c.GridBox == nil {
		return [3][2]float64{{-20, 20}, {-20, 20}, {-20, 20}}
	}
	return *c.GridBox
}

// GetGenerator returns the generator backend name or the default.
func (c *RunConfig) GetGenerator() string {
	if c.Generator == nil || *c.Generator == "" {
		return "analytic"
	}
	return *c.Generator
}

// GetNumberOfModes returns the configured azimuthal mode count, zero meaning
// "infer from the parameters".
func (c *RunConfig) GetNumberOfModes() int {
	if c.NumberOfModes == nil {
		return 0
	}
	return *c.NumberOfModes
}

// GetCatalogPath returns the run catalog database path or the default.
func (c *RunConfig) GetCatalogPath() string {
	if c.CatalogPath == nil || *c.CatalogPath == "" {
		return "runs.db"
	}
	return *c.CatalogPath
}

// GetOutputDir returns the output directory or the default.
func (c *RunConfig) GetOutputDir() string {
	if c.OutputDir == nil || *c.OutputDir == "" {
		return "out"
	}
	return *c.OutputDir
}
