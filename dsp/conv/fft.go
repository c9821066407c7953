package conv

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// spectrum holds a zero-padded forward transform and the plan that made it.
type spectrum struct {
	plan *algofft.Plan[complex128]
	bins []complex128
	size int
}

func newSpectrum(x []float64, fftSize int) (*spectrum, error) {
	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("conv: failed to create FFT plan: %w", err)
	}

	s := &spectrum{plan: plan, bins: make([]complex128, fftSize), size: fftSize}
	padded := make([]complex128, fftSize)
	for i, v := range x {
		padded[i] = complex(v, 0)
	}

	if err := plan.Forward(s.bins, padded); err != nil {
		return nil, fmt.Errorf("conv: failed to compute kernel FFT: %w", err)
	}

	return s, nil
}

// multiply convolves x with the held spectrum into scratch and returns the
// first n real samples of the circular result in dst.
func (s *spectrum) multiply(dst, x []float64, scratch []complex128, n int) error {
	for i := range scratch {
		scratch[i] = 0
	}
	for i, v := range x {
		scratch[i] = complex(v, 0)
	}

	if err := s.plan.Forward(scratch, scratch); err != nil {
		return fmt.Errorf("conv: forward FFT failed: %w", err)
	}

	for i := range scratch {
		scratch[i] *= s.bins[i]
	}

	if err := s.plan.Inverse(scratch, scratch); err != nil {
		return fmt.Errorf("conv: inverse FFT failed: %w", err)
	}

	for i := 0; i < n; i++ {
		dst[i] = real(scratch[i])
	}

	return nil
}
