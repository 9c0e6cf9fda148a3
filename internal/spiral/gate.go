package spiral

import (
	"fmt"
	"math"
	"sort"
)

const (
	GateTanh       = "tanh"
	GateDampedSine = "damped_sine"
	GateSinc       = "sinc"
)

// Gate is the feedback nonlinearity applied to expectation-observation
// deltas in the extended signal form. The default tanh archetype is
// odd, bounded in (-1, 1), and sign-preserving; alternates only promise
// boundedness.
type Gate interface {
	Name() string
	Apply(x float64) float64
}

var gates = map[string]func(lambda float64) Gate{
	GateTanh:       func(lambda float64) Gate { return &TanhGate{Lambda: lambda} },
	GateDampedSine: func(lambda float64) Gate { return &DampedSineGate{Lambda: lambda} },
	GateSinc:       func(lambda float64) Gate { return &SincGate{Lambda: lambda} },
}

// NewGate builds a registered gate with the given slope.
func NewGate(name string, lambda float64) (Gate, error) {
	build, ok := gates[name]
	if !ok {
		return nil, fmt.Errorf("unknown gate: %s", name)
	}
	return build(lambda), nil
}

func Known(name string) bool {
	_, ok := gates[name]
	return ok
}

func Gates() []string {
	names := make([]string, 0, len(gates))
	for name := range gates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TanhGate computes G(x) = tanh(lambda*x). Lambda 0 degenerates to the
// zero gate, which collapses the extended signal to zero.
type TanhGate struct {
	Lambda float64
}

func (g *TanhGate) Name() string { return GateTanh }

func (g *TanhGate) Apply(x float64) float64 {
	return math.Tanh(g.Lambda * x)
}

// DampedSineGate computes G(x) = exp(-|lambda*x|) * sin(lambda*x).
type DampedSineGate struct {
	Lambda float64
}

func (g *DampedSineGate) Name() string { return GateDampedSine }

func (g *DampedSineGate) Apply(x float64) float64 {
	z := g.Lambda * x
	return math.Exp(-math.Abs(z)) * math.Sin(z)
}

// SincGate computes G(x) = sin(lambda*x)/(lambda*x) with G(0) = 1.
type SincGate struct {
	Lambda float64
}

func (g *SincGate) Name() string { return GateSinc }

func (g *SincGate) Apply(x float64) float64 {
	z := g.Lambda * x
	if z == 0 {
		return 1
	}
	return math.Sin(z) / z
}
