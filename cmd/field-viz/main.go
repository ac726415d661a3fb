// field-viz evaluates the field components declared in a model file and
// writes quick-look visualisations: a midplane heatmap (HTML) and a radial
// strength profile (PNG) per component.
//
// Usage:
//
//	field-viz -model model.hcl [-out plots]
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/imagine-consortium/galmag-go/internal/config"
	"github.com/imagine-consortium/galmag-go/internal/modelfile"
	"github.com/imagine-consortium/galmag-go/internal/viz"
)

func main() {
	modelPath := flag.String("model", "", "Path to the HCL model file")
	outDir := flag.String("out", "", "Output directory (default from config/env)")
	flag.Parse()

	_ = godotenv.Load()

	if *modelPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: field-viz -model model.hcl [-out plots]")
		os.Exit(1)
	}

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	dir := *outDir
	if dir == "" {
		dir = cfg.GetOutputDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Fatalf("Failed to create output dir: %v", err)
	}

	model, err := modelfile.Load(*modelPath)
	if err != nil {
		log.Fatalf("Failed to load model: %v", err)
	}
	g, err := model.BuildGrid()
	if err != nil {
		log.Fatalf("Failed to build grid: %v", err)
	}

	built, err := model.BuildFields(g)
	if err != nil {
		log.Fatalf("Failed to build fields: %v", err)
	}

	for _, f := range built {
		fa, err := f.Evaluate()
		if err != nil {
			log.Fatalf("Failed to evaluate %s: %v", f.Name(), err)
		}

		stem := strings.ReplaceAll(f.Name(), "galmag_", "")
		htmlPath := filepath.Join(dir, stem+"_midplane.html")
		out, err := os.Create(htmlPath)
		if err != nil {
			log.Fatalf("Failed to create %s: %v", htmlPath, err)
		}
		if err := viz.MidplaneHeatmapHTML(fa, f.Name(), out); err != nil {
			out.Close()
			log.Fatalf("Failed to render heatmap for %s: %v", f.Name(), err)
		}
		if err := out.Close(); err != nil {
			log.Fatalf("Failed to write %s: %v", htmlPath, err)
		}

		pngPath := filepath.Join(dir, stem+"_radial.png")
		if err := viz.RadialProfilePNG(fa, f.Name(), pngPath); err != nil {
			log.Fatalf("Failed to render radial profile for %s: %v", f.Name(), err)
		}

		log.Printf("%s: wrote %s and %s", f.Name(), htmlPath, pngPath)
	}
}
