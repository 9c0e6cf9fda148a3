package engine

import (
	"context"
	"errors"
	"math"
	"testing"

	"spiralsim/internal/config"
	"spiralsim/internal/trace"
)

func goldenConfig() *config.Config {
	cfg := config.GetPreset("golden")
	if cfg == nil {
		panic("golden preset missing")
	}
	return cfg
}

func TestRunTraceGrid(t *testing.T) {
	eng, err := New(goldenConfig())
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	result, err := eng.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Trace) != 201 {
		t.Errorf("expected 201 samples, got %d", len(result.Trace))
	}
	for i, s := range result.Trace {
		want := float64(i) * 0.1
		if math.Abs(s.T-want) > 1e-9 {
			t.Fatalf("sample %d: expected t=%v, got %v", i, want, s.T)
		}
	}
	if len(result.StepSeconds) != len(result.Trace) {
		t.Errorf("expected one timing per sample, got %d for %d samples",
			len(result.StepSeconds), len(result.Trace))
	}
}

func TestRunDeterminism(t *testing.T) {
	run := func() string {
		eng, err := New(goldenConfig())
		if err != nil {
			t.Fatalf("new failed: %v", err)
		}
		result, err := eng.Run(context.Background())
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}
		return result.Trace.Hash()
	}

	if run() != run() {
		t.Error("expected identical configs to produce identical trace hashes")
	}
}

func TestRunDeterminismParallelPath(t *testing.T) {
	// Enough strates to cross the worker-pool threshold.
	run := func() string {
		cfg := goldenConfig()
		cfg.N = 100
		cfg.Duration = 2.0

		eng, err := New(cfg)
		if err != nil {
			t.Fatalf("new failed: %v", err)
		}
		result, err := eng.Run(context.Background())
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}
		return result.Trace.Hash()
	}

	if run() != run() {
		t.Error("expected pooled per-strate evaluation to stay deterministic")
	}
}

func TestRunSeedSensitivity(t *testing.T) {
	hash := func(seed int64) string {
		cfg := goldenConfig()
		cfg.Seed = seed
		eng, err := New(cfg)
		if err != nil {
			t.Fatalf("new failed: %v", err)
		}
		result, err := eng.Run(context.Background())
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}
		return result.Trace.Hash()
	}

	if hash(42) == hash(43) {
		t.Error("expected different seeds to produce different traces")
	}
}

func TestZeroCouplingHoldsBaseFrequency(t *testing.T) {
	cfg := goldenConfig()
	cfg.W = []float64{0, 0, 0, 0, 0}

	eng, err := New(cfg)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	result, err := eng.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for i, f := range result.Frequencies {
		if f != cfg.F0[i] {
			t.Errorf("strate %d: expected base frequency %v, got %v", i, cfg.F0[i], f)
		}
	}
}

func TestExtendedLambdaZeroCollapses(t *testing.T) {
	cfg := goldenConfig()
	cfg.Mode = config.ModeExtended
	cfg.Gate.Lambda = 0

	eng, err := New(cfg)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	result, err := eng.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for i, s := range result.Trace {
		if s.S != 0 {
			t.Fatalf("sample %d: expected zero signal under zero gate, got %v", i, s.S)
		}
	}
	if len(result.EODelta) != len(result.Trace) {
		t.Errorf("expected EO deltas per sample, got %d for %d samples",
			len(result.EODelta), len(result.Trace))
	}
}

func TestCanonicalHasNoEODelta(t *testing.T) {
	eng, err := New(goldenConfig())
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	result, err := eng.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.EODelta != nil {
		t.Errorf("expected no EO deltas in canonical mode, got %d", len(result.EODelta))
	}
}

func TestSpiralBounds(t *testing.T) {
	cfg := goldenConfig()
	eng, err := New(cfg)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	result, err := eng.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for i, s := range result.Trace {
		if math.Abs(s.R-cfg.Spiral.PhiTarget) > cfg.Spiral.Epsilon+1e-12 {
			t.Fatalf("sample %d: ratio %v outside epsilon band", i, s.R)
		}
		if s.C <= 0 || s.C > 1 {
			t.Fatalf("sample %d: coherence %v outside (0, 1]", i, s.C)
		}
	}
}

func TestRunCanceled(t *testing.T) {
	eng, err := New(goldenConfig())
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = eng.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestUnstableRunAborts(t *testing.T) {
	cfg := goldenConfig()
	cfg.N = 3
	// Amplitudes near the float ceiling overflow the aligned sum on the
	// first step.
	cfg.A0 = []float64{1e308, 1e308, 1e308}
	cfg.Phi = []float64{math.Pi / 2, math.Pi / 2, math.Pi / 2}

	eng, err := New(cfg)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	result, err := eng.Run(context.Background())
	if err == nil {
		t.Fatal("expected instability error")
	}
	if !errors.Is(err, ErrUnstable) {
		t.Errorf("expected ErrUnstable, got %v", err)
	}

	var stepErr *StepError
	if !errors.As(err, &stepErr) {
		t.Fatalf("expected StepError, got %T", err)
	}
	if stepErr.Step != 0 {
		t.Errorf("expected failure at step 0, got %d", stepErr.Step)
	}
	if len(result.Trace) != 0 {
		t.Errorf("expected no samples before the failing step, got %d", len(result.Trace))
	}
	if len(result.Errors) != 1 {
		t.Errorf("expected one recorded error, got %d", len(result.Errors))
	}
}

func TestInvalidConfigRejected(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"zero dt", func(c *config.Config) { c.Dt = 0 }},
		{"negative duration", func(c *config.Config) { c.Duration = -1 }},
		{"zero strates", func(c *config.Config) { c.N = 0 }},
		{"unknown scenario", func(c *config.Config) { c.Scenario.Name = "bogus" }},
		{"unknown gate", func(c *config.Config) { c.Gate.Name = "bogus" }},
		{"zero steepness", func(c *config.Config) { c.K = []float64{0, 0, 0, 0, 0} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := goldenConfig()
			tt.mutate(cfg)
			if _, err := New(cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

type observerFunc func(step int)

func (f observerFunc) OnStep(step int, _ trace.Sample) { f(step) }

func TestObserverSeesEverySample(t *testing.T) {
	cfg := goldenConfig()
	cfg.Duration = 1.0

	eng, err := New(cfg)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	count := 0
	eng.AddObserver(observerFunc(func(step int) { count++ }))

	result, err := eng.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if count != len(result.Trace) {
		t.Errorf("expected %d observer calls, got %d", len(result.Trace), count)
	}
}

func TestRunSeeds(t *testing.T) {
	base := goldenConfig()
	base.Duration = 2.0

	results, err := RunSeeds(context.Background(), base, []int64{1, 2, 3})
	if err != nil {
		t.Fatalf("run seeds failed: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Trace.Hash() == results[1].Trace.Hash() {
		t.Error("expected different seeds to produce different traces")
	}

	// The base config stays reusable: a rerun of seed 1 must match.
	again, err := RunSeeds(context.Background(), base, []int64{1})
	if err != nil {
		t.Fatalf("rerun failed: %v", err)
	}
	if again[0].Trace.Hash() != results[0].Trace.Hash() {
		t.Error("expected seed rerun to reproduce the trace")
	}
}
