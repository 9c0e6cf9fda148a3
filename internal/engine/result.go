package engine

import "spiralsim/internal/trace"

// Result holds everything a completed (or aborted) run produced. The
// trace is the hashed artifact; timings and per-strate snapshots stay
// outside it.
type Result struct {
	Trace trace.Trace

	// Amplitudes and Frequencies are the final-step per-strate values.
	Amplitudes  []float64
	Frequencies []float64

	// EODelta is the per-step mean |E-O| across strates, present only
	// for extended-mode runs.
	EODelta []float64

	StepSeconds []float64
	WallSeconds float64

	Errors []error
}

// MeanStepSeconds is the average compute time per step.
func (r *Result) MeanStepSeconds() float64 {
	if len(r.StepSeconds) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range r.StepSeconds {
		sum += s
	}
	return sum / float64(len(r.StepSeconds))
}
