package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"spiralsim/internal/config"
)

// Golden pins the reference run the determinism layer checks against.
type Golden struct {
	TraceHash  string         `json:"trace_hash"`
	FigureHash string         `json:"figure_hash"`
	Config     *config.Config `json:"config"`
	RecordedAt string         `json:"recorded_at"`
	RunID      string         `json:"run_id"`
}

// Matches reports whether a trace hash equals the pinned one.
func (g *Golden) Matches(traceHash string) bool {
	return g != nil && g.TraceHash == traceHash
}

func (s *Store) goldenPath() string {
	return filepath.Join(s.base, "golden.json")
}

// RecordGolden pins a run as the golden reference, replacing any
// previous one.
func (s *Store) RecordGolden(runID, traceHash, figureHash string, cfg *config.Config) (*Golden, error) {
	g := &Golden{
		TraceHash:  traceHash,
		FigureHash: figureHash,
		Config:     cfg,
		RecordedAt: time.Now().UTC().Format(timeFormat),
		RunID:      runID,
	}
	if err := writeJSON(s.goldenPath(), g); err != nil {
		return nil, err
	}
	return g, nil
}

// LoadGolden reads the pinned reference. No golden recorded yet is not
// an error: it returns nil.
func (s *Store) LoadGolden() (*Golden, error) {
	data, err := os.ReadFile(s.goldenPath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading golden: %w", err)
	}

	var g Golden
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("parsing golden: %w", err)
	}
	return &g, nil
}
