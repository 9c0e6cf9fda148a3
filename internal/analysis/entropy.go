package analysis

import "math"

// Histogram bins xs into equal-width bins spanning [min, max]. A
// degenerate range puts every sample in the first bin.
func Histogram(xs []float64, bins int) []int {
	if bins < 1 {
		bins = 1
	}
	counts := make([]int, bins)
	if len(xs) == 0 {
		return counts
	}
	lo, hi := xs[0], xs[0]
	for _, x := range xs[1:] {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	if hi == lo {
		counts[0] = len(xs)
		return counts
	}
	width := (hi - lo) / float64(bins)
	for _, x := range xs {
		idx := int((x - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}
	return counts
}

// ShannonEntropy computes the entropy of a histogram in nats, with a
// small smoothing term so empty bins do not produce -Inf.
func ShannonEntropy(counts []int) float64 {
	total := 0
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return 0
	}
	h := 0.0
	for _, c := range counts {
		p := float64(c) / float64(total)
		h -= p * math.Log(p+1e-10)
	}
	return h
}

// NormalizedEntropy bins xs and returns its Shannon entropy divided by
// log(bins), mapping onto [0, 1]. One bin or fewer yields 0.
func NormalizedEntropy(xs []float64, bins int) float64 {
	if bins < 2 {
		return 0
	}
	return ShannonEntropy(Histogram(xs, bins)) / math.Log(float64(bins))
}
