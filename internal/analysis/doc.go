// Package analysis provides the numeric helpers shared by the metric
// evaluators and the analyze command.
//
// The package includes descriptive statistics, rolling-window reductions,
// histogram entropy, and spectral tools:
//
//   - [Mean], [Median], [Variance]: descriptive statistics
//   - [Gradient], [SecondDiff]: finite-difference derivatives
//   - [RollingApply], [ChunkMax]: windowed reductions
//   - [NormalizedEntropy]: histogram entropy on [0, 1]
//   - [Spectrum], [DominantFrequency]: windowed FFT of a sampled signal
//
// # Spectral Analysis
//
// Spectrum pads to a power of two and applies a Hann window, so callers
// can pass traces of any length:
//
//	freqs, power := analysis.Spectrum(signal, dt)
//	f0 := analysis.DominantFrequency(signal, dt)
package analysis
