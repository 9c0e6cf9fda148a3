package metrics

import (
	"fmt"
	"math"

	"spiralsim/internal/analysis"
	"spiralsim/internal/config"
	"spiralsim/internal/engine"
)

// SpiralConvergence asks whether the ratio trajectory tightens toward
// its target: the final-quarter mean deviation must drop under half the
// whole-run median deviation. A fixed sinusoidal driver never tightens,
// so this criterion records fail for it without aborting anything.
func SpiralConvergence(res *engine.Result, cfg *config.Config) Score {
	r := res.Trace.Ratio()
	if len(r) < 4 {
		return notApplicable("spiral_convergence", "trace too short")
	}
	dev := make([]float64, len(r))
	for i, v := range r {
		dev[i] = math.Abs(v - cfg.Spiral.PhiTarget)
	}
	med := analysis.Median(dev)
	value := analysis.Mean(dev[len(dev)*3/4:])
	if med < 1e-12 {
		return graded("spiral_convergence", value, value < 1e-12,
			"deviation already at target")
	}
	half := 0.5 * med
	return graded("spiral_convergence", value, value < half,
		fmt.Sprintf("final-quarter mean %.6f vs half-median %.6f", value, half))
}
