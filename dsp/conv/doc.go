// Package conv smooths real series by linear convolution with a fixed kernel.
//
// A [Smoother] is prepared once per kernel and series length and returns the
// centred ("same") part of the full convolution, so the output is aligned
// with the input. Two strategies are used internally:
//
//   - Direct convolution: O(N*M) time-domain accumulation through block
//     vector operations, for kernels up to 64 taps
//   - FFT convolution: a single zero-padded FFT multiply with a cached kernel
//     spectrum, for longer kernels on longer series
//
// Usage:
//
//	s, err := conv.NewSmoother(kernel, len(series))
//	err = s.Same(dst, series)
//
// A Smoother owns scratch buffers and must not be shared between goroutines.
package conv
