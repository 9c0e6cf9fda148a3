package metrics

import (
	"fmt"
	"math"

	"spiralsim/internal/analysis"
	"spiralsim/internal/config"
	"spiralsim/internal/engine"
)

// Resilience measures recovery from the first input shock: the rolling
// mean of |S| must re-enter the pre-shock band (baseline +/- 0.1 std)
// within half the remaining run. Runs without perturbations have
// nothing to recover from.
func Resilience(res *engine.Result, cfg *config.Config) Score {
	if len(cfg.Perturbations) == 0 {
		return notApplicable("resilience", "no perturbations configured")
	}
	shock := cfg.Perturbations[0].Time
	for _, p := range cfg.Perturbations[1:] {
		if p.Time < shock {
			shock = p.Time
		}
	}

	times := res.Trace.Times()
	abs := analysis.Abs(res.Trace.Signal())
	var pre []float64
	for i, t := range times {
		if t < shock {
			pre = append(pre, abs[i])
		}
	}
	if len(pre) < 2 {
		return notApplicable("resilience", "no pre-shock baseline")
	}
	baseline := analysis.Mean(pre)
	band := 0.1 * analysis.Std(pre)
	if band < 1e-12 {
		band = 1e-12
	}

	w := windowOf(len(abs), 20, 10)
	rolled := analysis.RollingMean(abs, w)
	budget := 0.5 * (cfg.Duration - shock)
	for i, t := range times {
		if t <= shock {
			continue
		}
		if math.Abs(rolled[i]-baseline) <= band {
			rec := t - shock
			return graded("resilience", rec, rec <= budget,
				fmt.Sprintf("recovered %.2fs after shock, budget %.2fs", rec, budget))
		}
	}
	remaining := cfg.Duration - shock
	return graded("resilience", remaining, false, "no recovery within run")
}
