package analysis

import (
	"math"
	"sort"
)

// Mean returns the arithmetic mean of xs, or 0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// MeanAbs returns the mean of |x| over xs, or 0 for an empty slice.
func MeanAbs(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += math.Abs(x)
	}
	return sum / float64(len(xs))
}

// Variance returns the population variance of xs.
func Variance(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	mu := Mean(xs)
	sum := 0.0
	for _, x := range xs {
		d := x - mu
		sum += d * d
	}
	return sum / float64(len(xs))
}

// Std returns the population standard deviation of xs.
func Std(xs []float64) float64 {
	return math.Sqrt(Variance(xs))
}

// Median returns the median of xs without modifying it.
func Median(xs []float64) float64 {
	n := len(xs)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, xs)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// Clip limits x to the interval [lo, hi].
func Clip(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Gradient computes the first derivative of a uniformly sampled series
// using central differences, with one-sided differences at the ends.
// Series shorter than two samples yield zeros.
func Gradient(xs []float64, dt float64) []float64 {
	n := len(xs)
	out := make([]float64, n)
	if n < 2 || dt == 0 {
		return out
	}
	out[0] = (xs[1] - xs[0]) / dt
	out[n-1] = (xs[n-1] - xs[n-2]) / dt
	for i := 1; i < n-1; i++ {
		out[i] = (xs[i+1] - xs[i-1]) / (2 * dt)
	}
	return out
}

// SecondDiff computes the second derivative at interior points via the
// central second difference. The result has len(xs)-2 entries; series
// shorter than three samples yield an empty slice.
func SecondDiff(xs []float64, dt float64) []float64 {
	n := len(xs)
	if n < 3 || dt == 0 {
		return nil
	}
	out := make([]float64, n-2)
	dt2 := dt * dt
	for i := 1; i < n-1; i++ {
		out[i-1] = (xs[i+1] - 2*xs[i] + xs[i-1]) / dt2
	}
	return out
}

// AbsDiffMean returns the mean absolute first difference of xs, the
// step-to-step roughness of a series. Series shorter than two samples
// yield 0.
func AbsDiffMean(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	sum := 0.0
	for i := 1; i < len(xs); i++ {
		sum += math.Abs(xs[i] - xs[i-1])
	}
	return sum / float64(len(xs)-1)
}
