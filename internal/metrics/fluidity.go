package metrics

import (
	"fmt"

	"spiralsim/internal/analysis"
	"spiralsim/internal/config"
	"spiralsim/internal/engine"
)

// Fluidity measures the jerkiness of the aggregate signal: the mean
// absolute second derivative of S normalized by the mean |S| level.
// Smooth oscillation keeps the ratio low, stutter drives it up.
func Fluidity(res *engine.Result, cfg *config.Config) Score {
	s := res.Trace.Signal()
	if len(s) < 3 {
		return notApplicable("fluidity", "trace too short")
	}
	denom := analysis.MeanAbs(s)
	if denom < 1e-12 {
		denom = 1e-12
	}
	value := analysis.MeanAbs(analysis.SecondDiff(s, cfg.Dt)) / denom
	limit := cfg.Thresholds.FluidityMax
	return graded("fluidity", value, value < limit,
		fmt.Sprintf("mean |S''| / mean |S| = %.4f, limit %.1f", value, limit))
}
