package analysis

import (
	"math"
	"testing"
)

func divergingPair(lambda, dt float64, n int) (a, b []float64) {
	a = make([]float64, n)
	b = make([]float64, n)
	d0 := 1e-8
	for i := 0; i < n; i++ {
		t := float64(i) * dt
		base := math.Sin(2 * math.Pi * 0.5 * t)
		a[i] = base
		b[i] = base + d0*math.Exp(lambda*t)
	}
	return a, b
}

func TestDivergenceExponentGrowth(t *testing.T) {
	a, b := divergingPair(0.8, 0.01, 200)

	got := DivergenceExponent(a, b, 0.01)
	if math.Abs(got-0.8) > 1e-6 {
		t.Errorf("expected exponent 0.8, got %v", got)
	}
}

func TestDivergenceExponentContraction(t *testing.T) {
	a, b := divergingPair(-0.5, 0.01, 200)

	got := DivergenceExponent(a, b, 0.01)
	if math.Abs(got+0.5) > 1e-6 {
		t.Errorf("expected exponent -0.5, got %v", got)
	}
}

func TestDivergenceExponentIdentical(t *testing.T) {
	a, _ := divergingPair(0.8, 0.01, 100)

	if got := DivergenceExponent(a, a, 0.01); got != 0 {
		t.Errorf("expected 0 for identical trajectories, got %v", got)
	}
}

func TestDivergenceExponentConstantOffset(t *testing.T) {
	a, _ := divergingPair(0.8, 0.01, 100)
	b := make([]float64, len(a))
	for i := range a {
		b[i] = a[i] + 0.1
	}

	if got := DivergenceExponent(a, b, 0.01); math.Abs(got) > 1e-12 {
		t.Errorf("expected 0 for constant separation, got %v", got)
	}
}

func TestDivergenceExponentShort(t *testing.T) {
	if got := DivergenceExponent([]float64{1}, []float64{2}, 0.01); got != 0 {
		t.Errorf("expected 0 for short series, got %v", got)
	}
}
