// Package analysis provides post-run trajectory analysis: spectral period
// detection and divergence estimation between nearby trajectories.
package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitude spectrum of data up to the Nyquist
// bin. Input is zero-padded to the next power of two first; radix-2 input
// keeps the transform on its fast path.
func PowerSpectrum(data []float64) []float64 {
	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, data)

	spectrum := fft.FFTReal(padded)

	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantPeriod estimates the strongest periodicity in a uniformly sampled
// signal, in the same time unit as dt. Returns 0 if no dominant frequency
// stands out (DC excluded).
func DominantPeriod(data []float64, dt float64) float64 {
	if len(data) < 4 || dt <= 0 {
		return 0
	}

	ps := PowerSpectrum(data)

	n := 1
	for n < len(data) {
		n *= 2
	}

	maxPower := 0.0
	maxIdx := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}
	if maxIdx == 0 {
		return 0
	}

	freq := float64(maxIdx) / (float64(n) * dt)
	return 1 / freq
}
