// Package engine runs the multi-strate oscillator model and produces
// the run trace consumed by the metric evaluators and the validation
// gate.
//
// Determinism is the load-bearing property here: identical configs
// produce byte-identical traces. Every random draw comes from a seeded
// source, per-strate work lands in indexed slices, and the global
// signal always reduces in ascending strate order, whether or not the
// per-strate map ran on the worker pool.
package engine

import (
	"context"
	"math"
	"time"

	"spiralsim/internal/config"
	"spiralsim/internal/scenario"
	"spiralsim/internal/spiral"
	"spiralsim/internal/strata"
	"spiralsim/internal/trace"
)

// parallelThreshold is the strate count above which per-strate work
// fans out to the worker pool.
const parallelThreshold = 64

// Observer receives each sample as it is appended to the trace.
type Observer interface {
	OnStep(step int, s trace.Sample)
}

type Engine struct {
	cfg       *config.Config
	set       strata.Set
	source    scenario.Source
	schedule  *scenario.Schedule
	ratio     *spiral.Ratio
	gate      spiral.Gate
	latent    *scenario.Latent
	observers []Observer
}

// New finalizes the config in place (generating seeded parameters) and
// builds the engine. Config problems surface here, never mid-run.
func New(cfg *config.Config) (*Engine, error) {
	if err := cfg.Finalize(); err != nil {
		return nil, err
	}

	source, err := scenario.New(cfg.Scenario.Name, cfg.Scenario.Value, cfg.Scenario.High, cfg.Scenario.At, cfg.Duration)
	if err != nil {
		return nil, err
	}
	gate, err := spiral.NewGate(cfg.Gate.Name, cfg.Gate.Lambda)
	if err != nil {
		return nil, err
	}

	shocks := make([]scenario.Shock, len(cfg.Perturbations))
	for i, p := range cfg.Perturbations {
		shocks[i] = scenario.Shock{Time: p.Time, Magnitude: p.Magnitude, Strate: p.Strate}
	}

	e := &Engine{
		cfg:      cfg,
		set:      strata.NewSet(cfg.A0, cfg.F0, cfg.Alpha, cfg.K, cfg.X0, cfg.W, cfg.Gamma, cfg.Phi),
		source:   source,
		schedule: scenario.NewSchedule(shocks, cfg.Dt),
		ratio:    spiral.NewRatio(cfg.Spiral.PhiTarget, cfg.Spiral.Epsilon, cfg.Spiral.Omega, cfg.Spiral.Theta),
		gate:     gate,
	}
	if cfg.Mode == config.ModeExtended {
		e.latent = scenario.NewLatent(cfg.Seed, cfg.NoiseStd)
	}
	return e, nil
}

func (e *Engine) AddObserver(o Observer) {
	e.observers = append(e.observers, o)
}

// Config returns the finalized run configuration.
func (e *Engine) Config() *config.Config {
	return e.cfg
}

// Run folds the model over the time grid t_i = i*dt for i in
// [0, steps]. Frequency modulation at step i reads the summed
// contributions of step i-1, so f(0) is exactly the base frequency. A
// non-finite sample aborts the run with a StepError; the samples before
// it remain in the Result.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	steps := e.cfg.Steps()
	n := len(e.set)

	result := &Result{
		Trace:       make(trace.Trace, 0, steps+1),
		Amplitudes:  make([]float64, n),
		Frequencies: make([]float64, n),
		StepSeconds: make([]float64, 0, steps+1),
	}
	if e.latent != nil {
		result.EODelta = make([]float64, 0, steps+1)
	}

	terms := make([]float64, n)
	amps := make([]float64, n)
	freqs := make([]float64, n)
	prevSum := 0.0

	runStart := time.Now()

	for i := 0; i <= steps; i++ {
		select {
		case <-ctx.Done():
			result.WallSeconds = time.Since(runStart).Seconds()
			return result, ctx.Err()
		default:
		}

		stepStart := time.Now()
		t := float64(i) * e.cfg.Dt
		base := e.source.At(t)

		var expect, observe []float64
		if e.latent != nil {
			expect, observe = e.latent.Draw(n)
		}

		eval := func(lo, hi int) {
			for j := lo; j < hi; j++ {
				st := e.set[j]
				input := base + e.schedule.Bump(i, j)
				amp := st.Amplitude(input, e.cfg.SigmoidEps)
				f := st.Frequency(prevSum)
				term := st.Term(t, amp, f)
				if e.latent != nil {
					term *= st.Gamma * e.gate.Apply(expect[j]-observe[j])
				}
				amps[j] = amp
				freqs[j] = f
				terms[j] = term
			}
		}
		if n >= parallelThreshold {
			parallelFor(n, 16, eval)
		} else {
			eval(0, n)
		}

		sum := 0.0
		for _, term := range terms {
			sum += term
		}

		r := e.ratio.At(t)
		sample := trace.Sample{T: t, S: sum, C: e.ratio.Coherence(r), R: r}
		elapsed := time.Since(stepStart).Seconds()

		if bad := firstNonFinite(sum, terms); bad != nil {
			stepErr := &StepError{Step: i, Time: t, Wrapped: bad}
			result.Errors = append(result.Errors, stepErr)
			result.WallSeconds = time.Since(runStart).Seconds()
			return result, stepErr
		}

		result.Trace = append(result.Trace, sample)
		result.StepSeconds = append(result.StepSeconds, elapsed)
		if e.latent != nil {
			d := 0.0
			for j := range expect {
				d += math.Abs(expect[j] - observe[j])
			}
			result.EODelta = append(result.EODelta, d/float64(n))
		}

		for _, o := range e.observers {
			o.OnStep(i, sample)
		}

		prevSum = sum
	}

	copy(result.Amplitudes, amps)
	copy(result.Frequencies, freqs)
	result.WallSeconds = time.Since(runStart).Seconds()

	return result, nil
}

func firstNonFinite(sum float64, terms []float64) error {
	if math.IsNaN(sum) || math.IsInf(sum, 0) {
		return ErrUnstable
	}
	for _, v := range terms {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrUnstable
		}
	}
	return nil
}
