package strata

import (
	"math"
	"testing"
)

func TestSigmoidMidpoint(t *testing.T) {
	got := Sigmoid(0.5, 2.0, 0.5, 1e-12)
	if math.Abs(got-0.5) > 1e-12 {
		t.Errorf("expected 0.5 at midpoint, got %v", got)
	}
}

func TestSigmoidMonotone(t *testing.T) {
	prev := Sigmoid(-5, 2.0, 0.5, 1e-12)
	for x := -4.5; x <= 5; x += 0.5 {
		s := Sigmoid(x, 2.0, 0.5, 1e-12)
		if s <= prev {
			t.Errorf("x=%v: expected strictly increasing, got %v after %v", x, s, prev)
		}
		prev = s
	}
}

func TestSigmoidOpenInterval(t *testing.T) {
	tests := []struct {
		name string
		x    float64
	}{
		{"huge positive", 1e9},
		{"huge negative", -1e9},
		{"max float", math.MaxFloat64},
		{"lowest float", -math.MaxFloat64},
	}

	for _, tt := range tests {
		s := Sigmoid(tt.x, 2.0, 0.5, 1e-12)
		if s <= 0 {
			t.Errorf("%s: expected value above 0, got %v", tt.name, s)
		}
		if s >= 1 {
			t.Errorf("%s: expected value below 1, got %v", tt.name, s)
		}
	}
}

func TestSigmoidNegativeSteepness(t *testing.T) {
	// Negative k flips the gate direction.
	lo := Sigmoid(1.0, -2.0, 0.5, 1e-12)
	hi := Sigmoid(0.0, -2.0, 0.5, 1e-12)
	if lo >= hi {
		t.Errorf("expected decreasing gate for negative k, got %v >= %v", lo, hi)
	}
}

func TestFreqDeltaZeroCoupling(t *testing.T) {
	s := Strate{F0: 0.7, Alpha: 0.1, W: 0.01}
	if d := s.FreqDelta(0); d != 0 {
		t.Errorf("expected exact zero delta, got %v", d)
	}
	if f := s.Frequency(0); f != 0.7 {
		t.Errorf("expected base frequency 0.7, got %v", f)
	}
}

func TestFreqDeltaClip(t *testing.T) {
	s := Strate{Alpha: 1.0, W: 1.0}
	if d := s.FreqDelta(50); d != 1.0 {
		t.Errorf("expected clip to 1.0, got %v", d)
	}
	if d := s.FreqDelta(-50); d != -1.0 {
		t.Errorf("expected clip to -1.0, got %v", d)
	}
}

func TestFrequencyFloor(t *testing.T) {
	s := Strate{F0: 0.05, Alpha: 1.0, W: 1.0}
	if f := s.Frequency(-10); f != 0.01 {
		t.Errorf("expected floor 0.01, got %v", f)
	}
}

func TestAmplitudeGate(t *testing.T) {
	s := Strate{A0: 2.0, K: 2.0, X0: 0.5}

	mid := s.Amplitude(0.5, 1e-12)
	if math.Abs(mid-1.0) > 1e-12 {
		t.Errorf("expected half amplitude at midpoint, got %v", mid)
	}

	high := s.Amplitude(10, 1e-12)
	if high <= mid || high >= 2.0 {
		t.Errorf("expected amplitude in (%v, 2.0), got %v", mid, high)
	}
}

func TestTermPhase(t *testing.T) {
	s := Strate{Phi: math.Pi / 2}
	// sin(pi/2) = 1 at t=0.
	if got := s.Term(0, 1.5, 1.0); math.Abs(got-1.5) > 1e-12 {
		t.Errorf("expected 1.5, got %v", got)
	}
}

func TestNewSetOrder(t *testing.T) {
	set := NewSet(
		[]float64{1, 2},
		[]float64{0.1, 0.2},
		[]float64{0.01, 0.02},
		[]float64{2, 3},
		[]float64{0.5, 0.6},
		[]float64{0.01, 0.01},
		[]float64{1, 1},
		[]float64{0, 1},
	)

	if len(set) != 2 {
		t.Fatalf("expected 2 strates, got %d", len(set))
	}
	if set[0].A0 != 1 || set[1].A0 != 2 {
		t.Errorf("expected A0 order preserved, got %v, %v", set[0].A0, set[1].A0)
	}
	if set[1].Phi != 1 {
		t.Errorf("expected phi 1 on second strate, got %v", set[1].Phi)
	}
}
