// Package store persists runs. Artifacts (config, trace, figure,
// reports) live as plain files under <base>/runs/<id>/ so they stay
// inspectable with ordinary tools; a SQLite index at <base>/index.db
// answers list and lookup queries without touching the artifact files.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"spiralsim/internal/config"
	"spiralsim/internal/engine"
	"spiralsim/internal/export"
	"spiralsim/internal/gate"
	"spiralsim/internal/kuramoto"
	"spiralsim/internal/trace"
)

// DefaultBase is the store location when no flag overrides it.
const DefaultBase = ".spiralsim"

const timeFormat = time.RFC3339

// Store is a run archive rooted at a base directory.
type Store struct {
	base string
	db   *sql.DB
}

// RunRecord is one row of the run index.
type RunRecord struct {
	ID        string
	CreatedAt time.Time
	Scenario  string
	Mode      string
	N         int
	Duration  float64
	Dt        float64
	Seed      int64
	Samples   int
	TraceHash string
	Status    string
	Score     float64
}

// Open creates the base layout if needed and opens the index database.
func Open(base string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(base, "runs"), 0755); err != nil {
		return nil, fmt.Errorf("creating store layout: %w", err)
	}

	dbPath := filepath.Join(base, "index.db")
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("opening index: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := initSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{base: base, db: db}, nil
}

// Close releases the index database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Base returns the store root.
func (s *Store) Base() string {
	return s.base
}

// RunDir returns the artifact directory of a run.
func (s *Store) RunDir(runID string) string {
	return filepath.Join(s.base, "runs", runID)
}

// NewRunID mints a run identifier from the scenario name and a short
// random suffix, e.g. "step-3fa85f64".
func NewRunID(scenario string) string {
	return fmt.Sprintf("%s-%s", scenario, uuid.NewString()[:8])
}

// SaveRun writes the run artifacts and then indexes the run. Files land
// before the index row so a listed run always has its artifacts.
func (s *Store) SaveRun(ctx context.Context, runID string, cfg *config.Config, res *engine.Result) error {
	dir := s.RunDir(runID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating run dir: %w", err)
	}

	if err := writeJSON(filepath.Join(dir, "config.json"), cfg); err != nil {
		return err
	}

	csvFile, err := os.Create(filepath.Join(dir, "trace.csv"))
	if err != nil {
		return fmt.Errorf("creating trace.csv: %w", err)
	}
	if err := res.Trace.WriteCSV(csvFile); err != nil {
		csvFile.Close()
		return fmt.Errorf("writing trace.csv: %w", err)
	}
	if err := csvFile.Close(); err != nil {
		return fmt.Errorf("closing trace.csv: %w", err)
	}

	if fig := export.Figure(res.Trace); fig != nil {
		if err := os.WriteFile(filepath.Join(dir, "figure.svg"), fig, 0644); err != nil {
			return fmt.Errorf("writing figure.svg: %w", err)
		}
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO runs (id, created_at, scenario, mode, n, duration, dt, seed, samples, trace_hash)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, time.Now().UTC().Format(timeFormat), cfg.Scenario.Name, cfg.Mode,
		cfg.N, cfg.Duration, cfg.Dt, cfg.Seed, len(res.Trace), res.Trace.Hash())
	if err != nil {
		return fmt.Errorf("indexing run %s: %w", runID, err)
	}
	return nil
}

// SaveReport stores the validation report beside the run and promotes
// its outcome into the index.
func (s *Store) SaveReport(ctx context.Context, runID string, rep *gate.Report) error {
	f, err := os.Create(filepath.Join(s.RunDir(runID), "report.json"))
	if err != nil {
		return fmt.Errorf("creating report.json: %w", err)
	}
	if err := rep.WriteJSON(f); err != nil {
		f.Close()
		return fmt.Errorf("writing report.json: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing report.json: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, score = ? WHERE id = ?`,
		rep.OverallStatus, rep.OverallScore, runID)
	if err != nil {
		return fmt.Errorf("updating run %s: %w", runID, err)
	}
	return nil
}

// SaveComparison stores the control comparison beside the run.
func (s *Store) SaveComparison(runID string, cmp *kuramoto.ComparisonResult) error {
	return writeJSON(filepath.Join(s.RunDir(runID), "comparison.json"), cmp)
}

// Get looks up one run in the index.
func (s *Store) Get(ctx context.Context, runID string) (*RunRecord, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, created_at, scenario, mode, n, duration, dt, seed, samples, trace_hash, status, score
FROM runs WHERE id = ?`, runID)

	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading run %s: %w", runID, err)
	}
	return rec, nil
}

// List returns all indexed runs, newest first.
func (s *Store) List(ctx context.Context) ([]RunRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, created_at, scenario, mode, n, duration, dt, seed, samples, trace_hash, status, score
FROM runs ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning run row: %w", err)
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*RunRecord, error) {
	var rec RunRecord
	var created string
	err := row.Scan(&rec.ID, &created, &rec.Scenario, &rec.Mode, &rec.N,
		&rec.Duration, &rec.Dt, &rec.Seed, &rec.Samples,
		&rec.TraceHash, &rec.Status, &rec.Score)
	if err != nil {
		return nil, err
	}
	rec.CreatedAt, err = time.Parse(timeFormat, created)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &rec, nil
}

// LoadConfig reads a run's stored configuration.
func (s *Store) LoadConfig(runID string) (*config.Config, error) {
	data, err := os.ReadFile(filepath.Join(s.RunDir(runID), "config.json"))
	if err != nil {
		return nil, fmt.Errorf("reading run config: %w", err)
	}
	var cfg config.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing run config: %w", err)
	}
	return &cfg, nil
}

// LoadTrace reads a run's stored trace.
func (s *Store) LoadTrace(runID string) (trace.Trace, error) {
	f, err := os.Open(filepath.Join(s.RunDir(runID), "trace.csv"))
	if err != nil {
		return nil, fmt.Errorf("opening run trace: %w", err)
	}
	defer f.Close()

	tr, err := trace.ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("reading run trace: %w", err)
	}
	return tr, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}
