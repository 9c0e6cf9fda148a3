package metrics

import (
	"fmt"

	"spiralsim/internal/engine"
)

// cpuRatioMax bounds how much slower a step may run than the Kuramoto
// control baseline.
const cpuRatioMax = 2.0

// CPUEfficiency compares mean per-step compute time against the control
// model's. Without a control baseline the criterion cannot be judged.
func CPUEfficiency(res *engine.Result, cmp *Comparison) Score {
	if cmp == nil || cmp.ControlMeanStep <= 0 {
		return notApplicable("cpu_efficiency", "no control baseline")
	}
	ratio := res.MeanStepSeconds() / cmp.ControlMeanStep
	return graded("cpu_efficiency", ratio, ratio <= cpuRatioMax,
		fmt.Sprintf("engine/control step ratio = %.2f, limit %.1f", ratio, cpuRatioMax))
}
