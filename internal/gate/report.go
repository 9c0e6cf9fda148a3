package gate

import (
	"encoding/json"
	"io"
)

// Layer is one row of the validation report.
type Layer struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Status      string  `json:"status"`
	Score       float64 `json:"score"`
	Details     string  `json:"details"`
	Description string  `json:"description"`
	Requirement string  `json:"requirement"`
}

// Report is the full validation outcome. The field set and key names
// are a stable contract consumed by external tooling.
type Report struct {
	OverallStatus string  `json:"overall_status"`
	OverallScore  float64 `json:"overall_score"`
	GeneratedAt   string  `json:"generated_at"`
	RunID         string  `json:"run_id"`
	Layers        []Layer `json:"layers"`
}

// WriteJSON renders the report with two-space indentation.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// Passed reports whether every layer passed.
func (r *Report) Passed() bool {
	return r.OverallStatus == StatusPass
}
