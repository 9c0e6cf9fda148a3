package analysis

import (
	"math"
	"math/cmplx"
)

// FFT computes the discrete Fourier transform of data using the
// recursive radix-2 algorithm. The length must be a power of two.
func FFT(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	if n%2 != 0 {
		panic("fft requires power of 2 length")
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)

	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := FFT(even)
	fodd := FFT(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}

	return result
}

// NextPow2 returns the smallest power of two >= n (and at least 1).
func NextPow2(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

// Hann returns the Hann window of length n.
func Hann(n int) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
	}
	return w
}

// Spectrum computes the single-sided amplitude spectrum of a uniformly
// sampled signal. The signal is Hann-windowed and zero-padded to a
// power of two, so any length is accepted. Returned frequencies are in
// cycles per time unit of dt.
func Spectrum(data []float64, dt float64) (freqs, power []float64) {
	if len(data) == 0 || dt <= 0 {
		return nil, nil
	}

	window := Hann(len(data))
	padded := make([]float64, NextPow2(len(data)))
	for i, x := range data {
		padded[i] = x * window[i]
	}

	fft := FFT(padded)
	half := len(padded) / 2
	if half == 0 {
		half = 1
	}

	freqs = make([]float64, half)
	power = make([]float64, half)
	df := 1 / (float64(len(padded)) * dt)
	for k := 0; k < half; k++ {
		freqs[k] = float64(k) * df
		power[k] = cmplx.Abs(fft[k])
	}
	return freqs, power
}

// DominantFrequency returns the frequency of the strongest non-DC
// spectral component, or 0 when the signal is too short to resolve one.
func DominantFrequency(data []float64, dt float64) float64 {
	freqs, power := Spectrum(data, dt)
	if len(power) < 2 {
		return 0
	}
	best := 1
	for k := 2; k < len(power); k++ {
		if power[k] > power[best] {
			best = k
		}
	}
	return freqs[best]
}
