package foreground

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-rfi/dsp/window"
	"github.com/cwbudde/algo-rfi/rfi"
)

// KernelSize returns the Gaussian sigma, in time bins, for a smoothing FWHM
// and the kernel length round(4*sigma)+1. Halves round to even.
func KernelSize(fwhm float64) (sigma float64, length int) {
	sigma = window.SigmaFromFWHM(fwhm)
	return sigma, int(math.RoundToEven(4*sigma)) + 1
}

// NewKernel builds the unit-sum smoothing kernel selected by cfg.
func NewKernel(cfg rfi.Config) ([]float64, error) {
	if cfg.TimeBinsSmooth <= 0 {
		return nil, fmt.Errorf("%w: time_bins_smooth must be > 0: %v", rfi.ErrConfiguration, cfg.TimeBinsSmooth)
	}

	sigma, n := KernelSize(cfg.TimeBinsSmooth)

	var (
		k   []float64
		err error
	)

	switch cfg.Kernel {
	case rfi.KernelGaussian:
		k, err = window.GaussianStd(n, sigma)
	case rfi.KernelHann:
		// drop the zero end points so every tap carries weight
		if k, err = window.Hann(n + 2); err == nil {
			k = k[1 : n+1]
		}
	case rfi.KernelRectangular:
		k = window.Generate(window.TypeRectangular, n)
	default:
		return nil, fmt.Errorf("%w: unknown kernel %q", rfi.ErrConfiguration, cfg.Kernel)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %v", rfi.ErrConfiguration, err)
	}

	if err := window.Normalize(k); err != nil {
		return nil, fmt.Errorf("%w: %v", rfi.ErrConfiguration, err)
	}

	return k, nil
}

// cropKernel returns the central 2n-1 taps of k, keeping the centre tap
// (len(k)-1)/2 in place, or k itself when it is already that short.
func cropKernel(k []float64, n int) []float64 {
	if len(k) <= 2*n-1 {
		return k
	}
	c := (len(k) - 1) / 2
	return k[c-(n-1) : c+n]
}
