// Package window generates tapering windows used as smoothing kernels.
package window

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// fwhmPerSigma is the Gaussian FWHM-to-sigma ratio 2*sqrt(2*ln2), rounded the
// way radio pipelines quote it.
const fwhmPerSigma = 2.355

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeGauss
)

func (t Type) String() string {
	switch t {
	case TypeRectangular:
		return "rectangular"
	case TypeHann:
		return "hann"
	case TypeGauss:
		return "gaussian"
	default:
		return "unknown"
	}
}

// Generate returns symmetric window coefficients of the given length. The
// Gaussian uses shape parameter 1; see GaussianStd for a given width.
func Generate(t Type, length int) []float64 {
	return generate(t, length, 1)
}

func generate(t Type, length int, alpha float64) []float64 {
	if length <= 0 {
		return nil
	}

	out := make([]float64, length)
	for i := range out {
		out[i] = evalWindow(t, samplePosition(i, length), alpha)
	}

	return out
}

// Hann returns Hann window coefficients.
func Hann(size int) ([]float64, error) {
	return Generate(TypeHann, size), validateLength(size)
}

// GaussianStd returns a symmetric Gaussian window of the given length whose
// standard deviation is std samples, centred at (size-1)/2.
func GaussianStd(size int, std float64) ([]float64, error) {
	if size <= 0 || std <= 0 {
		return nil, validateGaussStd(size, std)
	}
	if size == 1 {
		return []float64{1}, nil
	}

	// exp(-ln2*((2x-1)*a)^2) == exp(-0.5*(n-c)^2/std^2) for this alpha.
	alpha := float64(size-1) / (2 * std * math.Sqrt(2*math.Ln2))

	return generate(TypeGauss, size, alpha), nil
}

// SigmaFromFWHM converts a full width at half maximum into a Gaussian
// standard deviation.
func SigmaFromFWHM(fwhm float64) float64 {
	return fwhm / fwhmPerSigma
}

// Normalize scales coeffs in place to unit sum.
func Normalize(coeffs []float64) error {
	if len(coeffs) == 0 {
		return errEmptyCoeffs
	}

	sum := floats.Sum(coeffs)
	if sum == 0 {
		return errZeroSum
	}

	floats.Scale(1/sum, coeffs)

	return nil
}

func evalWindow(t Type, x, alpha float64) float64 {
	if x < 0 {
		x = 0
	}

	if x > 1 {
		x = 1
	}

	switch t {
	case TypeRectangular:
		return 1
	case TypeHann:
		return 0.5 - 0.5*math.Cos(2*math.Pi*x)
	case TypeGauss:
		v := (2*x - 1) * alpha
		return math.Exp(-math.Ln2 * v * v)
	default:
		return 1
	}
}

func samplePosition(n, size int) float64 {
	if size <= 1 {
		return 0
	}

	return float64(n) / float64(size-1)
}
