// galmag-eval evaluates the field components declared in a model file and
// records each run in the run catalog.
//
// Usage:
//
//	galmag-eval -model model.hcl [-config run.json]
//	galmag-eval -list [-limit 20]
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/imagine-consortium/galmag-go/internal/config"
	"github.com/imagine-consortium/galmag-go/internal/modelfile"
	"github.com/imagine-consortium/galmag-go/internal/runcatalog"
)

func main() {
	modelPath := flag.String("model", "", "Path to the HCL model file")
	configPath := flag.String("config", "", "Optional run config JSON (catalog path, output dir)")
	list := flag.Bool("list", false, "List recent runs instead of evaluating")
	limit := flag.Int("limit", 20, "Number of runs to list")
	flag.Parse()

	// Optional .env for GALMAG_* overrides; absence is fine.
	_ = godotenv.Load()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	catalog, err := runcatalog.Open(cfg.GetCatalogPath())
	if err != nil {
		log.Fatalf("Failed to open run catalog %s: %v", cfg.GetCatalogPath(), err)
	}
	defer catalog.Close()

	if *list {
		listRuns(catalog, *limit)
		return
	}

	if *modelPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: galmag-eval -model model.hcl [-config run.json]")
		os.Exit(1)
	}

	model, err := modelfile.Load(*modelPath)
	if err != nil {
		log.Fatalf("Failed to load model: %v", err)
	}

	g, err := model.BuildGrid()
	if err != nil {
		log.Fatalf("Failed to build grid: %v", err)
	}
	log.Printf("grid: %v cells over %v kpc", g.NumCells(), g.Box())

	for _, fb := range model.Fields {
		f, err := fb.Build(g)
		if err != nil {
			log.Fatalf("Failed to build %s: %v", fb.Kind, err)
		}

		fa, err := f.Evaluate()
		if err != nil {
			log.Fatalf("Failed to evaluate %s: %v", f.Name(), err)
		}

		params, err := fb.ParameterDictionary()
		if err != nil {
			log.Fatalf("Failed to read parameters for %s: %v", f.Name(), err)
		}
		generator := cfg.GetGenerator()
		if fb.Generator != nil {
			generator = *fb.Generator
		}
		id, err := catalog.RecordRun(f.Name(), generator, params, fa)
		if err != nil {
			log.Fatalf("Failed to record run for %s: %v", f.Name(), err)
		}

		mean, max := summarize(fa)
		log.Printf("%s: run %s, mean |B| = %.4g microgauss, max |B| = %.4g microgauss",
			f.Name(), id, mean, max)
	}
}

func loadConfig(path string) (*config.RunConfig, error) {
	if path == "" {
		return config.FromEnv()
	}
	return config.LoadRunConfig(path)
}

func listRuns(catalog *runcatalog.Catalog, limit int) {
	runs, err := catalog.ListRuns(limit)
	if err != nil {
		log.Fatalf("Failed to list runs: %v", err)
	}
	if len(runs) == 0 {
		fmt.Println("no runs recorded")
		return
	}
	for _, r := range runs {
		fmt.Printf("%s  %s  %s  cells=%d  mean=%.4g  max=%.4g\n",
			r.Timestamp.Format("2006-01-02 15:04:05"), r.ID, r.FieldName,
			r.GridCells, r.MeanStrength, r.MaxStrength)
	}
}

func summarize(fa interface{ Strengths() []float64 }) (mean, max float64) {
	s := fa.Strengths()
	for _, v := range s {
		mean += v
		if v > max {
			max = v
		}
	}
	if len(s) > 0 {
		mean /= float64(len(s))
	}
	return mean, max
}
