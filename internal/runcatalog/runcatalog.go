// Package runcatalog records field evaluation runs in a local sqlite
// database so evaluated models can be compared across pipeline iterations.
package runcatalog

import (
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	_ "modernc.org/sqlite"

	"github.com/imagine-consortium/galmag-go/fields"
)

// Logf is the package logger; tests may replace it to silence output.
var Logf = log.Printf

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Run is one recorded field evaluation.
type Run struct {
	ID           string
	FieldName    string
	Generator    string
	Parameters   map[string]string
	GridCells    int64
	MeanStrength float64 // microgauss
	MaxStrength  float64 // microgauss
	Timestamp    time.Time
}

// Catalog is a handle on the run database.
type Catalog struct {
	*sql.DB
}

// Open opens (or creates) the catalog database at path and migrates its
// schema to the latest version.
func Open(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	c := &Catalog{db}
	if err := c.migrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	Logf("initialized run catalog at %s", path)
	return c, nil
}

// migrateUp runs all pending migrations up to the latest version.
func (c *Catalog) migrateUp() error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load embedded migrations: %w", err)
	}

	driver, err := sqlite.WithInstance(c.DB, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("failed to create sqlite driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	// Note: m is not closed here because that would close the underlying DB
	// connection.

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}

// RecordRun stores a run and returns its generated ID.
func (c *Catalog) RecordRun(fieldName, generator string, params fields.Parameters, fa *fields.FieldArray) (string, error) {
	id := uuid.NewString()

	rendered := make(map[string]string, len(params))
	for name, q := range params {
		rendered[name] = q.String()
	}
	paramsJSON, err := json.Marshal(rendered)
	if err != nil {
		return "", fmt.Errorf("failed to encode parameters: %w", err)
	}

	var mean, max float64
	strengths := fa.Strengths()
	if len(strengths) > 0 {
		mean = stat.Mean(strengths, nil)
		max = floats.Max(strengths)
	}

	_, err = c.Exec(
		`INSERT INTO runs (run_id, field_name, generator, parameters, grid_cells, mean_strength, max_strength)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, fieldName, generator, string(paramsJSON), int64(len(strengths)), mean, max,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}
	return id, nil
}

// GetRun fetches a single run by ID.
func (c *Catalog) GetRun(id string) (*Run, error) {
	row := c.QueryRow(
		`SELECT run_id, field_name, generator, parameters, grid_cells, mean_strength, max_strength, timestamp
		 FROM runs WHERE run_id = ?`, id)
	return scanRun(row)
}

// ListRuns returns the most recent runs, newest first.
func (c *Catalog) ListRuns(limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := c.Query(
		`SELECT run_id, field_name, generator, parameters, grid_cells, mean_strength, max_strength, timestamp
		 FROM runs ORDER BY timestamp DESC, run_id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// ListRunsByField returns the most recent runs for one component kind.
func (c *Catalog) ListRunsByField(fieldName string, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := c.Query(
		`SELECT run_id, field_name, generator, parameters, grid_cells, mean_strength, max_strength, timestamp
		 FROM runs WHERE field_name = ? ORDER BY timestamp DESC, run_id LIMIT ?`, fieldName, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var r Run
	var paramsJSON string
	err := row.Scan(&r.ID, &r.FieldName, &r.Generator, &paramsJSON,
		&r.GridCells, &r.MeanStrength, &r.MaxStrength, &r.Timestamp)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(paramsJSON), &r.Parameters); err != nil {
		return nil, fmt.Errorf("failed to decode parameters for run %s: %w", r.ID, err)
	}
	return &r, nil
}
