package metrics

import (
	"fmt"

	"spiralsim/internal/analysis"
	"spiralsim/internal/config"
	"spiralsim/internal/engine"
)

// Stability compares the worst rolling peak of |S| against its median
// level. Bounded oscillation keeps the ratio near one; runaway growth
// blows it up. A flat signal is stable: the median is floored so the
// ratio stays finite.
func Stability(res *engine.Result, cfg *config.Config) Score {
	abs := analysis.Abs(res.Trace.Signal())
	if len(abs) < 3 {
		return notApplicable("stability", "trace too short")
	}
	med := analysis.Median(abs)
	if med < 1e-12 {
		med = 1e-12
	}
	w := windowOf(len(abs), 20, 10)
	peaks := analysis.RollingApply(abs, w, analysis.Max)
	value := analysis.Max(peaks) / med
	limit := cfg.Thresholds.StabilityMax
	return graded("stability", value, value <= limit,
		fmt.Sprintf("peak/median = %.4f, limit %.1f", value, limit))
}
