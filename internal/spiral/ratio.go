package spiral

import "math"

// Ratio drives the spiral regularization signal, an epsilon-bounded
// oscillation around the target ratio.
type Ratio struct {
	PhiTarget float64
	Epsilon   float64
	Omega     float64
	Theta     float64
}

func NewRatio(phiTarget, epsilon, omega, theta float64) *Ratio {
	return &Ratio{PhiTarget: phiTarget, Epsilon: epsilon, Omega: omega, Theta: theta}
}

// At returns r(t) = phi + epsilon*sin(2*pi*omega*t + theta).
func (r *Ratio) At(t float64) float64 {
	return r.PhiTarget + r.Epsilon*math.Sin(2*math.Pi*r.Omega*t+r.Theta)
}

// Coherence maps a ratio sample onto (0, 1], peaking when the sample
// sits exactly on the target.
func (r *Ratio) Coherence(rt float64) float64 {
	return math.Exp(-math.Abs(rt - r.PhiTarget))
}
