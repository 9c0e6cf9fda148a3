// Package strata implements per-strate dynamics: the sigmoid amplitude
// gate and coupling-driven frequency modulation.
package strata

import "math"

const (
	// expClamp bounds the sigmoid exponent before math.Exp.
	expClamp = 500.0
	// deltaFMax bounds the frequency modulation magnitude.
	deltaFMax = 1.0
	// freqFloor keeps modulated frequencies positive.
	freqFloor = 0.01
)

// Sigmoid evaluates 1/(1+exp(-k(x-x0))), clamped into [eps, 1-eps] so
// finite inputs never land on the closed bounds.
func Sigmoid(x, k, x0, eps float64) float64 {
	z := k * (x - x0)
	if z > expClamp {
		z = expClamp
	}
	if z < -expClamp {
		z = -expClamp
	}
	s := 1 / (1 + math.Exp(-z))
	if s < eps {
		return eps
	}
	if s > 1-eps {
		return 1 - eps
	}
	return s
}

// Strate carries the parameters of one oscillator layer.
type Strate struct {
	A0    float64
	F0    float64
	Alpha float64
	K     float64
	X0    float64
	W     float64
	Gamma float64
	Phi   float64
}

// Amplitude gates the base amplitude by the sigmoid of the input.
func (s Strate) Amplitude(input, eps float64) float64 {
	return s.A0 * Sigmoid(input, s.K, s.X0, eps)
}

// FreqDelta converts the summed prior contributions into a frequency
// shift, clipped to the unit band. Zero coupling maps to exactly zero,
// so an uncoupled strate holds its base frequency bit for bit.
func (s Strate) FreqDelta(coupling float64) float64 {
	d := s.Alpha * s.W * coupling
	if d > deltaFMax {
		return deltaFMax
	}
	if d < -deltaFMax {
		return -deltaFMax
	}
	return d
}

// Frequency applies the coupling delta to the base frequency and floors
// the result.
func (s Strate) Frequency(coupling float64) float64 {
	f := s.F0 + s.FreqDelta(coupling)
	if f < freqFloor {
		return freqFloor
	}
	return f
}

// Term is the strate's sinusoidal contribution at time t for the given
// gated amplitude and modulated frequency.
func (s Strate) Term(t, amplitude, freq float64) float64 {
	return amplitude * math.Sin(2*math.Pi*freq*t+s.Phi)
}

// Set is the ordered strate list. Order is load-bearing: every
// aggregation over a Set runs in ascending index order.
type Set []Strate

// NewSet zips parallel parameter arrays into a Set. The arrays must
// share a length; config validation guarantees that upstream.
func NewSet(a0, f0, alpha, k, x0, w, gamma, phi []float64) Set {
	set := make(Set, len(a0))
	for i := range set {
		set[i] = Strate{
			A0:    a0[i],
			F0:    f0[i],
			Alpha: alpha[i],
			K:     k[i],
			X0:    x0[i],
			W:     w[i],
			Gamma: gamma[i],
			Phi:   phi[i],
		}
	}
	return set
}
