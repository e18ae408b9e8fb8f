package analysis

import "math"

// Separation returns the per-tick Euclidean distance between two recorded
// trajectories in flattened-frame form. The shorter trajectory bounds the
// output length.
func Separation(a, b [][]float64) []float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := 0.0
		m := len(a[i])
		if len(b[i]) < m {
			m = len(b[i])
		}
		for j := 0; j < m; j++ {
			d := a[i][j] - b[i][j]
			sum += d * d
		}
		out[i] = math.Sqrt(sum)
	}
	return out
}

// DivergenceExponent estimates the mean exponential growth rate of the
// separation series, the practical stand-in for the largest Lyapunov
// exponent. Positive means the trajectories peel apart; sensitivity to
// initial conditions. Zero-separation samples are skipped.
func DivergenceExponent(sep []float64, dt float64) float64 {
	if len(sep) < 2 || dt <= 0 {
		return 0
	}

	d0 := sep[0]
	if d0 == 0 {
		// Find the first nonzero sample to anchor the ratio.
		for i, s := range sep {
			if s > 0 {
				d0 = s
				sep = sep[i:]
				break
			}
		}
		if d0 == 0 {
			return 0
		}
	}

	sumLog := 0.0
	count := 0
	for i := 1; i < len(sep); i++ {
		if sep[i] <= 0 {
			continue
		}
		sumLog += math.Log(sep[i]/d0) / (float64(i) * dt)
		count++
	}

	if count == 0 {
		return 0
	}
	return sumLog / float64(count)
}
