// Package metrics grades completed simulation results against the seven
// validation criteria. Every criterion is a pure function over a
// [spiralsim/internal/engine.Result]; outcomes are recorded, never fatal.
package metrics

import (
	"spiralsim/internal/config"
	"spiralsim/internal/engine"
)

// Statuses a criterion can report. A criterion that cannot run for
// structural reasons (no perturbations, no latent stream, no control
// baseline) reports not_applicable rather than fail.
const (
	StatusPass          = "pass"
	StatusFail          = "fail"
	StatusNotApplicable = "not_applicable"
)

// Score is the outcome of a single criterion.
type Score struct {
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Pass   bool    `json:"pass"`
	Status string  `json:"status"`
	Detail string  `json:"detail,omitempty"`
}

// Comparison carries the control-model baseline consumed by the CPU
// efficiency criterion.
type Comparison struct {
	ControlMeanStep float64
}

// Evaluate runs all seven criteria in report order. A nil comparison
// marks cpu_efficiency not applicable.
func Evaluate(res *engine.Result, cfg *config.Config, cmp *Comparison) []Score {
	return []Score{
		Fluidity(res, cfg),
		Stability(res, cfg),
		Resilience(res, cfg),
		Innovation(res, cfg),
		Regulation(res, cfg),
		SpiralConvergence(res, cfg),
		CPUEfficiency(res, cmp),
	}
}

// Passed reports whether every applicable criterion in scores passed.
func Passed(scores []Score) bool {
	for _, s := range scores {
		if s.Status == StatusFail {
			return false
		}
	}
	return true
}

func graded(name string, value float64, pass bool, detail string) Score {
	status := StatusFail
	if pass {
		status = StatusPass
	}
	return Score{Name: name, Value: value, Pass: pass, Status: status, Detail: detail}
}

func notApplicable(name, detail string) Score {
	return Score{Name: name, Status: StatusNotApplicable, Detail: detail}
}

func windowOf(n, div, min int) int {
	w := n / div
	if w < min {
		w = min
	}
	return w
}
