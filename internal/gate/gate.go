// Package gate folds a run's artifacts into the five-layer validation
// report. Layers degrade independently: a missing input marks its layer
// not_implemented and the remaining layers still evaluate, so the
// report always carries all five rows.
package gate

import (
	"fmt"
	"strings"
	"time"

	"spiralsim/internal/kuramoto"
	"spiralsim/internal/metrics"
)

// Layer statuses.
const (
	StatusPass           = "pass"
	StatusPartial        = "partial"
	StatusFail           = "fail"
	StatusNotImplemented = "not_implemented"
)

// Comparative and figure thresholds.
const (
	maxCPURatio       = 2.0
	minRegulationGain = 0.25
	maxFigureDiff     = 0.02
)

// Inputs collects everything the gate can judge. Nil or empty fields
// mark their layer not_implemented.
type Inputs struct {
	RunID      string
	Evidence   *Evidence
	TraceHash  string
	GoldenHash string
	Scores     []metrics.Score
	Comparison *kuramoto.ComparisonResult
	FigureDiff *float64
}

// Run evaluates all five layers and assembles the report. Overall
// status is pass only when every layer passes, fail when any layer
// fails, and partial otherwise.
func Run(in Inputs) *Report {
	layers := []Layer{
		unitLayer(in.Evidence),
		determinismLayer(in.TraceHash, in.GoldenHash),
		metricsLayer(in.Scores),
		comparativeLayer(in.Comparison),
		figureLayer(in.FigureDiff),
	}

	total := 0.0
	overall := StatusPass
	for _, l := range layers {
		total += l.Score
		switch l.Status {
		case StatusFail:
			overall = StatusFail
		case StatusPass:
		default:
			if overall != StatusFail {
				overall = StatusPartial
			}
		}
	}

	return &Report{
		OverallStatus: overall,
		OverallScore:  total / float64(len(layers)),
		GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
		RunID:         in.RunID,
		Layers:        layers,
	}
}

func scoreFor(status string) float64 {
	switch status {
	case StatusPass:
		return 1.0
	case StatusPartial:
		return 0.5
	default:
		return 0.0
	}
}

func layer(id, name, status, details, description, requirement string) Layer {
	return Layer{
		ID:          id,
		Name:        name,
		Status:      status,
		Score:       scoreFor(status),
		Details:     details,
		Description: description,
		Requirement: requirement,
	}
}

func unitLayer(ev *Evidence) Layer {
	const (
		desc = "unit-test evidence from the most recent test run"
		req  = "unit-test evidence file reports zero failures"
	)
	if ev == nil {
		return layer("L1", "unit", StatusNotImplemented, "no evidence file", desc, req)
	}
	details := fmt.Sprintf("%d/%d tests passed", ev.Passed, ev.Total)
	if ev.Detail != "" {
		details += ": " + ev.Detail
	}
	if ev.Failed > 0 || ev.Passed < ev.Total {
		return layer("L1", "unit", StatusFail, details, desc, req)
	}
	return layer("L1", "unit", StatusPass, details, desc, req)
}

func determinismLayer(traceHash, goldenHash string) Layer {
	const (
		desc = "byte-level reproducibility of the canonical trace"
		req  = "trace SHA-256 equals the recorded golden hash"
	)
	if goldenHash == "" {
		return layer("L2", "determinism", StatusNotImplemented, "no golden hash recorded", desc, req)
	}
	if traceHash != goldenHash {
		details := fmt.Sprintf("hash %.12s… does not match golden %.12s…", traceHash, goldenHash)
		return layer("L2", "determinism", StatusFail, details, desc, req)
	}
	return layer("L2", "determinism", StatusPass, "trace matches golden hash", desc, req)
}

func metricsLayer(scores []metrics.Score) Layer {
	const (
		desc = "the seven run-quality criteria"
		req  = "all seven criteria pass"
	)
	if len(scores) == 0 {
		return layer("L3", "metrics", StatusNotImplemented, "no metric scores supplied", desc, req)
	}

	passed, skipped := 0, 0
	var failed []string
	for _, s := range scores {
		switch s.Status {
		case metrics.StatusPass:
			passed++
		case metrics.StatusNotApplicable:
			skipped++
		default:
			failed = append(failed, s.Name)
		}
	}

	details := fmt.Sprintf("%d passed, %d failed, %d not applicable", passed, len(failed), skipped)
	if len(failed) > 0 {
		return layer("L3", "metrics", StatusFail, details+": "+strings.Join(failed, ", "), desc, req)
	}
	if skipped > 0 {
		return layer("L3", "metrics", StatusPartial, details, desc, req)
	}
	return layer("L3", "metrics", StatusPass, details, desc, req)
}

func comparativeLayer(cmp *kuramoto.ComparisonResult) Layer {
	const (
		desc = "engine cost and smoothness against the Kuramoto control"
		req  = "CPU ratio at most 2.0 and regulation gain at least 0.25"
	)
	if cmp == nil {
		return layer("L4", "comparative", StatusNotImplemented, "no comparison run", desc, req)
	}

	cpuOK := cmp.CPURatio <= maxCPURatio
	regOK := cmp.RegulationGain >= minRegulationGain
	details := fmt.Sprintf("cpu ratio %.2f, regulation gain %.2f", cmp.CPURatio, cmp.RegulationGain)
	switch {
	case cpuOK && regOK:
		return layer("L4", "comparative", StatusPass, details, desc, req)
	case cpuOK || regOK:
		return layer("L4", "comparative", StatusPartial, details, desc, req)
	default:
		return layer("L4", "comparative", StatusFail, details, desc, req)
	}
}

func figureLayer(diff *float64) Layer {
	const (
		desc = "rendered trace figure against the stored reference image"
		req  = "rendered figure differs in fewer than 2% of pixels"
	)
	if diff == nil {
		return layer("L5", "figures", StatusNotImplemented, "no reference figure", desc, req)
	}
	details := fmt.Sprintf("%.2f%% of pixels differ", *diff*100)
	if *diff >= maxFigureDiff {
		return layer("L5", "figures", StatusFail, details, desc, req)
	}
	return layer("L5", "figures", StatusPass, details, desc, req)
}
