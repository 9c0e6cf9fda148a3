package metrics

import (
	"fmt"

	"spiralsim/internal/analysis"
	"spiralsim/internal/config"
	"spiralsim/internal/engine"
)

// Regulation scores how tightly the feedback loop holds the latent
// excitation/observation gap: the second-half average of the rolling
// mean |E-O|. Canonical runs carry no latent stream and skip the
// criterion.
func Regulation(res *engine.Result, cfg *config.Config) Score {
	if len(res.EODelta) == 0 {
		return notApplicable("regulation", "no latent stream in canonical mode")
	}
	w := windowOf(len(res.EODelta), 10, 10)
	rolled := analysis.RollingMean(res.EODelta, w)
	value := analysis.Mean(rolled[len(rolled)/2:])
	limit := cfg.Thresholds.RegulationMax
	return graded("regulation", value, value <= limit,
		fmt.Sprintf("second-half mean |E-O| = %.4f, limit %.2f", value, limit))
}
