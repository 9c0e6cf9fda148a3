// Package kuramoto implements the classic coupled-oscillator control
// model the validation gate measures the spiral engine against. It
// shares the trace artifact shape so the two runs compare column for
// column: S carries the order parameter R, C the mean phase, r repeats
// R.
package kuramoto

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"spiralsim/internal/config"
	"spiralsim/internal/trace"
)

// DefaultCoupling is the coupling strength a matched control run uses.
const DefaultCoupling = 0.5

// Config describes a control run.
type Config struct {
	N        int     `json:"n"`
	K        float64 `json:"k"`
	Dt       float64 `json:"dt"`
	Duration float64 `json:"duration"`
	Seed     int64   `json:"seed"`
}

// Matched derives the control configuration from an engine config:
// same population, grid and seed, default coupling.
func Matched(cfg *config.Config) Config {
	return Config{
		N:        cfg.N,
		K:        DefaultCoupling,
		Dt:       cfg.Dt,
		Duration: cfg.Duration,
		Seed:     cfg.Seed,
	}
}

// Steps returns the number of integration steps on the grid t_i = i*dt.
func (c Config) Steps() int {
	return int(math.Ceil(c.Duration/c.Dt - 1e-9))
}

func (c Config) validate() error {
	if c.N < 1 {
		return fmt.Errorf("n must be at least 1, got %d", c.N)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %v", c.Dt)
	}
	if c.Duration < c.Dt {
		return fmt.Errorf("duration %v shorter than dt %v", c.Duration, c.Dt)
	}
	return nil
}

// Result is a completed control run.
type Result struct {
	Trace       trace.Trace
	StepSeconds []float64
	WallSeconds float64
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

// Model holds the oscillator population. Natural frequencies are drawn
// uniform on [0, 1) and initial phases uniform on [0, 2pi), all
// frequencies before all phases, from a source seeded with the config
// seed.
type Model struct {
	cfg   Config
	omega []float64
	theta []float64
}

// New validates the config and draws the population.
func New(cfg Config) (*Model, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	omega := make([]float64, cfg.N)
	theta := make([]float64, cfg.N)
	for i := range omega {
		omega[i] = rng.Float64()
	}
	for i := range theta {
		theta[i] = 2 * math.Pi * rng.Float64()
	}

	return &Model{cfg: cfg, omega: omega, theta: theta}, nil
}

// OrderParameter returns the Kuramoto order parameter R and mean phase
// psi of a phase vector. R is 1 for full synchrony and near 0 for
// incoherent phases.
func OrderParameter(theta []float64) (r, psi float64) {
	if len(theta) == 0 {
		return 0, 0
	}
	var sumSin, sumCos float64
	for _, th := range theta {
		sumSin += math.Sin(th)
		sumCos += math.Cos(th)
	}
	n := float64(len(theta))
	return math.Hypot(sumCos, sumSin) / n, math.Atan2(sumSin, sumCos)
}

// Run integrates the phase equations with explicit Euler over the same
// time grid the engine uses and records R and psi at every sample.
func (m *Model) Run(ctx context.Context) (*Result, error) {
	steps := m.cfg.Steps()
	n := len(m.theta)

	result := &Result{
		Trace:       make(trace.Trace, 0, steps+1),
		StepSeconds: make([]float64, 0, steps+1),
	}

	theta := make([]float64, n)
	copy(theta, m.theta)
	next := make([]float64, n)

	runStart := time.Now()

	for i := 0; i <= steps; i++ {
		select {
		case <-ctx.Done():
			result.WallSeconds = time.Since(runStart).Seconds()
			return result, ctx.Err()
		default:
		}

		stepStart := time.Now()
		t := float64(i) * m.cfg.Dt

		r, psi := OrderParameter(theta)

		for j := 0; j < n; j++ {
			coupling := 0.0
			for k := 0; k < n; k++ {
				coupling += math.Sin(theta[k] - theta[j])
			}
			next[j] = theta[j] + m.cfg.Dt*(m.omega[j]+m.cfg.K/float64(n)*coupling)
		}
		theta, next = next, theta

		elapsed := time.Since(stepStart).Seconds()

		result.Trace = append(result.Trace, trace.Sample{T: t, S: r, C: psi, R: r})
		result.StepSeconds = append(result.StepSeconds, elapsed)
	}

	result.WallSeconds = time.Since(runStart).Seconds()
	return result, nil
}
