package analysis

// RollingApply reduces trailing windows of xs with f. Entry i covers
// xs[max(0, i-w+1) : i+1], so early entries see shorter windows. A
// window of zero or less returns a copy of f applied pointwise.
func RollingApply(xs []float64, w int, f func([]float64) float64) []float64 {
	out := make([]float64, len(xs))
	if w < 1 {
		w = 1
	}
	for i := range xs {
		lo := i - w + 1
		if lo < 0 {
			lo = 0
		}
		out[i] = f(xs[lo : i+1])
	}
	return out
}

// RollingMean computes trailing-window means of xs.
func RollingMean(xs []float64, w int) []float64 {
	return RollingApply(xs, w, Mean)
}

// ChunkMax splits xs into consecutive non-overlapping chunks of width w
// and returns the maximum of each. The final chunk may be shorter.
func ChunkMax(xs []float64, w int) []float64 {
	if len(xs) == 0 {
		return nil
	}
	if w < 1 {
		w = 1
	}
	out := make([]float64, 0, (len(xs)+w-1)/w)
	for lo := 0; lo < len(xs); lo += w {
		hi := lo + w
		if hi > len(xs) {
			hi = len(xs)
		}
		max := xs[lo]
		for _, x := range xs[lo+1 : hi] {
			if x > max {
				max = x
			}
		}
		out = append(out, max)
	}
	return out
}

// Max returns the maximum of xs, or 0 for an empty slice.
func Max(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	max := xs[0]
	for _, x := range xs[1:] {
		if x > max {
			max = x
		}
	}
	return max
}

// Abs returns a new slice holding |x| for each element of xs.
func Abs(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		if x < 0 {
			x = -x
		}
		out[i] = x
	}
	return out
}
