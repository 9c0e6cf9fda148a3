package config

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"spiralsim/internal/scenario"
	"spiralsim/internal/spiral"
)

const (
	DefaultN        = 5
	DefaultDt       = 0.05
	DefaultDuration = 20.0
	DefaultSeed     = 42

	DefaultAlpha  = 0.1
	DefaultK      = 2.0
	DefaultX0     = 0.5
	DefaultW      = 0.01
	DefaultGamma  = 1.0
	DefaultLambda = 1.0

	DefaultInput    = 0.3
	DefaultNoiseStd = 0.1

	GoldenRatio    = 1.6180339887
	DefaultEpsilon = 0.05
	DefaultOmega   = 0.1

	DefaultSigmoidEps = 1e-12

	ModeCanonical = "canonical"
	ModeExtended  = "extended"
)

// Config is the complete description of one run. Per-strate arrays left
// empty are filled deterministically from the seed by Generate.
type Config struct {
	N        int     `yaml:"n" json:"n" jsonschema:"required"`
	Dt       float64 `yaml:"dt" json:"dt" jsonschema:"required"`
	Duration float64 `yaml:"duration" json:"duration" jsonschema:"required"`
	Seed     int64   `yaml:"seed" json:"seed" jsonschema:"required"`
	Mode     string  `yaml:"mode" json:"mode"`

	A0    []float64 `yaml:"a0,omitempty" json:"a0,omitempty"`
	F0    []float64 `yaml:"f0,omitempty" json:"f0,omitempty"`
	Alpha []float64 `yaml:"alpha,omitempty" json:"alpha,omitempty"`
	K     []float64 `yaml:"k,omitempty" json:"k,omitempty"`
	X0    []float64 `yaml:"x0,omitempty" json:"x0,omitempty"`
	W     []float64 `yaml:"w,omitempty" json:"w,omitempty"`
	Gamma []float64 `yaml:"gamma,omitempty" json:"gamma,omitempty"`
	Phi   []float64 `yaml:"phi,omitempty" json:"phi,omitempty"`

	Spiral        SpiralConfig   `yaml:"spiral" json:"spiral"`
	Gate          GateConfig     `yaml:"gate" json:"gate"`
	Scenario      ScenarioConfig `yaml:"scenario" json:"scenario"`
	Perturbations []Perturbation `yaml:"perturbations,omitempty" json:"perturbations,omitempty"`

	NoiseStd   float64 `yaml:"noise_std" json:"noise_std"`
	SigmoidEps float64 `yaml:"sigmoid_eps" json:"sigmoid_eps"`

	Thresholds ThresholdConfig `yaml:"thresholds" json:"thresholds"`
}

type SpiralConfig struct {
	PhiTarget float64 `yaml:"phi_target" json:"phi_target"`
	Epsilon   float64 `yaml:"epsilon" json:"epsilon"`
	Omega     float64 `yaml:"omega" json:"omega"`
	Theta     float64 `yaml:"theta" json:"theta"`
}

type GateConfig struct {
	Name   string  `yaml:"name" json:"name"`
	Lambda float64 `yaml:"lambda" json:"lambda"`
}

type ScenarioConfig struct {
	Name  string  `yaml:"name" json:"name"`
	Value float64 `yaml:"value" json:"value"`
	High  float64 `yaml:"high" json:"high"`
	At    float64 `yaml:"at" json:"at"`
}

// Perturbation is an additive input shock at a point in time. Strate -1
// targets every strate.
type Perturbation struct {
	Time      float64 `yaml:"time" json:"time"`
	Magnitude float64 `yaml:"magnitude" json:"magnitude"`
	Strate    int     `yaml:"strate" json:"strate"`
}

// ThresholdConfig carries the pass criteria for the metric evaluators.
type ThresholdConfig struct {
	FluidityMax   float64 `yaml:"fluidity_max" json:"fluidity_max"`
	StabilityMax  float64 `yaml:"stability_max" json:"stability_max"`
	InnovationMin float64 `yaml:"innovation_min" json:"innovation_min"`
	RegulationMax float64 `yaml:"regulation_max" json:"regulation_max"`
}

func Default() *Config {
	return &Config{
		N:        DefaultN,
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Seed:     DefaultSeed,
		Mode:     ModeCanonical,
		Spiral: SpiralConfig{
			PhiTarget: GoldenRatio,
			Epsilon:   DefaultEpsilon,
			Omega:     DefaultOmega,
			Theta:     0,
		},
		Gate: GateConfig{
			Name:   spiral.GateTanh,
			Lambda: DefaultLambda,
		},
		Scenario: ScenarioConfig{
			Name:  scenario.Constant,
			Value: DefaultInput,
		},
		NoiseStd:   DefaultNoiseStd,
		SigmoidEps: DefaultSigmoidEps,
		Thresholds: ThresholdConfig{
			FluidityMax:   50.0,
			StabilityMax:  5.0,
			InnovationMin: 0.2,
			RegulationMax: 0.2,
		},
	}
}

// Load reads a config file onto the defaults. The format follows the
// extension: .json is JSON, everything else is YAML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if filepath.Ext(path) == ".json" {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy, so presets and sweeps can be varied
// without mutating the source.
func (c *Config) Clone() *Config {
	out := *c
	out.A0 = append([]float64(nil), c.A0...)
	out.F0 = append([]float64(nil), c.F0...)
	out.Alpha = append([]float64(nil), c.Alpha...)
	out.K = append([]float64(nil), c.K...)
	out.X0 = append([]float64(nil), c.X0...)
	out.W = append([]float64(nil), c.W...)
	out.Gamma = append([]float64(nil), c.Gamma...)
	out.Phi = append([]float64(nil), c.Phi...)
	out.Perturbations = append([]Perturbation(nil), c.Perturbations...)
	return &out
}

// Generate fills empty per-strate arrays from the seed. The draw order
// is fixed (A0, then F0, then Phi) so a given config always produces
// the same parameters. Scalar defaults broadcast without consuming
// random draws.
func (c *Config) Generate() {
	rng := rand.New(rand.NewSource(c.Seed))

	if len(c.A0) == 0 {
		c.A0 = make([]float64, c.N)
		for i := range c.A0 {
			c.A0[i] = 0.5 + 0.7*rng.Float64()
		}
	}
	if len(c.F0) == 0 {
		c.F0 = make([]float64, c.N)
		for i := range c.F0 {
			c.F0[i] = 0.1 + 1.4*rng.Float64()
		}
	}
	if len(c.Phi) == 0 {
		c.Phi = make([]float64, c.N)
		for i := range c.Phi {
			c.Phi[i] = 2 * math.Pi * rng.Float64()
		}
	}

	c.A0 = broadcast(c.A0, c.N, 0)
	c.F0 = broadcast(c.F0, c.N, 0)
	c.Phi = broadcast(c.Phi, c.N, 0)
	c.Alpha = broadcast(c.Alpha, c.N, DefaultAlpha)
	c.K = broadcast(c.K, c.N, DefaultK)
	c.X0 = broadcast(c.X0, c.N, DefaultX0)
	c.W = broadcast(c.W, c.N, DefaultW)
	c.Gamma = broadcast(c.Gamma, c.N, DefaultGamma)
}

// broadcast expands a single value to length n, fills an empty slice
// with the fallback, and leaves full-length slices untouched.
func broadcast(xs []float64, n int, fallback float64) []float64 {
	switch len(xs) {
	case n:
		return xs
	case 0:
		out := make([]float64, n)
		for i := range out {
			out[i] = fallback
		}
		return out
	case 1:
		out := make([]float64, n)
		for i := range out {
			out[i] = xs[0]
		}
		return out
	default:
		return xs
	}
}

// Validate checks the config after Generate. Errors name the offending
// field.
func (c *Config) Validate() error {
	if c.N < 1 {
		return fmt.Errorf("n must be at least 1, got %d", c.N)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %v", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %v", c.Duration)
	}
	if c.Dt > c.Duration {
		return fmt.Errorf("dt %v exceeds duration %v", c.Dt, c.Duration)
	}
	if c.Mode != ModeCanonical && c.Mode != ModeExtended {
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	if !scenario.Known(c.Scenario.Name) {
		return fmt.Errorf("unknown scenario %q, known: %v", c.Scenario.Name, scenario.Names())
	}
	if !spiral.Known(c.Gate.Name) {
		return fmt.Errorf("unknown gate %q, known: %v", c.Gate.Name, spiral.Gates())
	}
	if c.SigmoidEps <= 0 || c.SigmoidEps >= 0.5 {
		return fmt.Errorf("sigmoid_eps must be in (0, 0.5), got %v", c.SigmoidEps)
	}
	if c.NoiseStd < 0 {
		return fmt.Errorf("noise_std must be non-negative, got %v", c.NoiseStd)
	}

	arrays := map[string][]float64{
		"a0": c.A0, "f0": c.F0, "alpha": c.Alpha, "k": c.K,
		"x0": c.X0, "w": c.W, "gamma": c.Gamma, "phi": c.Phi,
	}
	for name, xs := range arrays {
		if len(xs) != c.N {
			return fmt.Errorf("%s must have %d entries, got %d", name, c.N, len(xs))
		}
		for i, x := range xs {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return fmt.Errorf("%s[%d] is not finite", name, i)
			}
		}
	}
	for i, k := range c.K {
		if k == 0 {
			return fmt.Errorf("k[%d] must be non-zero", i)
		}
	}
	for i, p := range c.Perturbations {
		if p.Time < 0 || p.Time > c.Duration {
			return fmt.Errorf("perturbations[%d].time %v outside [0, %v]", i, p.Time, c.Duration)
		}
		if p.Strate < -1 || p.Strate >= c.N {
			return fmt.Errorf("perturbations[%d].strate %d out of range", i, p.Strate)
		}
	}
	return nil
}

// Finalize generates missing parameters and validates the result.
// Callers apply overrides before finalizing so the seed governs every
// generated value.
func (c *Config) Finalize() error {
	c.Generate()
	return c.Validate()
}

// Steps returns the number of simulation steps, ceil(duration/dt). The
// small tolerance keeps float division that lands just above an integer
// from adding a spurious step.
func (c *Config) Steps() int {
	return int(math.Ceil(c.Duration/c.Dt - 1e-9))
}

// Samples returns the trace length, one sample per step plus the
// initial point.
func (c *Config) Samples() int {
	return c.Steps() + 1
}
