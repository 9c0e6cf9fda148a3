package metrics

import (
	"fmt"

	"spiralsim/internal/analysis"
	"spiralsim/internal/config"
	"spiralsim/internal/engine"
)

// innovationBins is the histogram resolution for peak entropy.
const innovationBins = 20

// Innovation scores the variety of local signal peaks: the normalized
// Shannon entropy of windowed max |S|. A signal locked to one amplitude
// scores near zero, a varied one approaches one.
func Innovation(res *engine.Result, cfg *config.Config) Score {
	abs := analysis.Abs(res.Trace.Signal())
	if len(abs) < 3 {
		return notApplicable("innovation", "trace too short")
	}
	w := windowOf(len(abs), 50, 10)
	peaks := analysis.ChunkMax(abs, w)
	value := analysis.NormalizedEntropy(peaks, innovationBins)
	floor := cfg.Thresholds.InnovationMin
	return graded("innovation", value, value >= floor,
		fmt.Sprintf("normalized peak entropy = %.4f, floor %.2f", value, floor))
}
