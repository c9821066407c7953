// Package masked provides population statistics over series in which some
// samples are excluded.
//
// A sample is excluded when its entry in the accompanying valid slice is
// false. Excluded samples are never read, so they may hold any value,
// including NaN or Inf. Statistics over a series with no valid samples are
// undefined and reported as NaN together with a zero count.
package masked

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Compact appends the valid samples of values to dst and returns it.
// A nil valid slice marks every sample as valid.
func Compact(dst, values []float64, valid []bool) []float64 {
	if valid == nil {
		return append(dst, values...)
	}

	for i, v := range values {
		if valid[i] {
			dst = append(dst, v)
		}
	}

	return dst
}

// Mean returns the mean of the valid samples and their count.
func Mean(values []float64, valid []bool) (float64, int) {
	x := Compact(nil, values, valid)
	if len(x) == 0 {
		return math.NaN(), 0
	}

	return stat.Mean(x, nil), len(x)
}

// MeanStdDev returns the mean and population standard deviation (ddof 0)
// of the valid samples together with their count.
func MeanStdDev(values []float64, valid []bool) (mean, std float64, n int) {
	x := Compact(nil, values, valid)
	if len(x) == 0 {
		return math.NaN(), math.NaN(), 0
	}

	mean, std = stat.PopMeanStdDev(x, nil)

	return mean, std, len(x)
}

// Accumulator collects the running mean and variance of a stream of samples
// using Welford's online update. The zero value is ready to use.
type Accumulator struct {
	n    int
	mean float64
	m2   float64
}

// Add folds x into the running statistics.
func (a *Accumulator) Add(x float64) {
	a.n++
	delta := x - a.mean
	a.mean += delta / float64(a.n)
	a.m2 += delta * (x - a.mean)
}

// N returns the number of samples added.
func (a *Accumulator) N() int {
	return a.n
}

// Mean returns the running mean, or NaN when no samples were added.
func (a *Accumulator) Mean() float64 {
	if a.n == 0 {
		return math.NaN()
	}

	return a.mean
}

// Variance returns the population variance, or NaN when no samples were added.
func (a *Accumulator) Variance() float64 {
	if a.n == 0 {
		return math.NaN()
	}

	return a.m2 / float64(a.n)
}

// StdDev returns the population standard deviation.
func (a *Accumulator) StdDev() float64 {
	return math.Sqrt(a.Variance())
}

// Reset clears the accumulator for reuse.
func (a *Accumulator) Reset() {
	*a = Accumulator{}
}
