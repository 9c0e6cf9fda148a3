package analysis

import "math"

// DivergenceExponent estimates the largest Lyapunov exponent from two
// runs of the same system started a small distance apart, using the
// trajectory separation method: the mean per-step log growth of
// |a(t)-b(t)|. Counting stops once the separation saturates at the
// attractor scale, where the local linearization no longer holds.
// Positive values indicate sensitive dependence on initial conditions.
func DivergenceExponent(a, b []float64, dt float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n < 2 || dt <= 0 {
		return 0
	}

	d0 := math.Abs(a[0] - b[0])
	if d0 == 0 {
		return 0
	}

	maxSep := 0.0
	for i := 0; i < n; i++ {
		if d := math.Abs(a[i] - b[i]); d > maxSep {
			maxSep = d
		}
	}
	limit := 0.5 * maxSep

	sum := 0.0
	count := 0
	prev := d0
	for i := 1; i < n; i++ {
		d := math.Abs(a[i] - b[i])
		if d > limit && d > d0 {
			break
		}
		if d > 0 && prev > 0 {
			sum += math.Log(d / prev)
			count++
		}
		if d > 0 {
			prev = d
		}
	}

	if count == 0 {
		return 0
	}
	return sum / (float64(count) * dt)
}
