package conv

import "fmt"

// Smoother convolves series of one fixed length with one kernel and keeps
// the centred part of the result that has the series length. When both the
// kernel and the series exceed 64 samples the convolution runs through an
// FFT whose kernel spectrum is computed once; otherwise in the time domain.
type Smoother struct {
	kernel []float64
	length int
	spec   *spectrum

	full    []float64
	temp    []float64
	scratch []complex128
}

// NewSmoother prepares a smoother for series of the given length.
func NewSmoother(kernel []float64, length int) (*Smoother, error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}
	if length <= 0 {
		return nil, ErrEmptyInput
	}

	s := &Smoother{
		kernel: append([]float64(nil), kernel...),
		length: length,
		full:   make([]float64, length+len(kernel)-1),
		temp:   make([]float64, len(kernel)),
	}

	if len(kernel) > directThreshold && length > directThreshold {
		spec, err := newSpectrum(kernel, nextPowerOf2(len(s.full)))
		if err != nil {
			return nil, err
		}
		s.spec = spec
		s.scratch = make([]complex128, spec.size)
	}

	return s, nil
}

// usesFFT reports whether the FFT path is used.
func (s *Smoother) usesFFT() bool {
	return s.spec != nil
}

// Same writes the centred convolution of src with the kernel to dst.
// dst and src must both have the prepared length and may alias.
func (s *Smoother) Same(dst, src []float64) error {
	if len(src) != s.length || len(dst) != s.length {
		return fmt.Errorf("%w: expected %d, got src %d dst %d",
			ErrLengthMismatch, s.length, len(src), len(dst))
	}

	if s.spec != nil {
		if err := s.spec.multiply(s.full, src, s.scratch, len(s.full)); err != nil {
			return err
		}
	} else {
		directTo(s.full, src, s.kernel, s.temp)
	}

	start := sameStart(len(s.kernel))
	copy(dst, s.full[start:start+s.length])

	return nil
}
