package gate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Evidence is the unit-test summary produced by the CI wrapper around
// the test run.
type Evidence struct {
	Passed int    `json:"passed"`
	Total  int    `json:"total"`
	Failed int    `json:"failed"`
	Detail string `json:"detail,omitempty"`
}

// LoadEvidence reads a test evidence file. A missing file is not an
// error: it returns nil evidence, which the unit layer reports as
// not_implemented.
func LoadEvidence(path string) (*Evidence, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading evidence: %w", err)
	}

	var ev Evidence
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("parsing evidence %s: %w", path, err)
	}
	return &ev, nil
}
