// Package foreground estimates and removes slowly varying foregrounds from a
// masked visibility grid.
//
// The frequency axis is split into sub-bands within which the foreground is
// assumed identical. For each band the masked band-average light curve is
// mean-subtracted, masked samples are set to zero and the result is
// smoothed in time. The same kernel smooths the 0/1 validity weights, and
// dividing by them renormalises each output sample by the weight it actually
// received, so masked samples never leak into the estimate. Samples with no
// weight at all get a zero estimate.
package foreground

import (
	"context"
	"fmt"

	"github.com/cwbudde/algo-vecmath"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-rfi/dsp/conv"
	"github.com/cwbudde/algo-rfi/grid"
	"github.com/cwbudde/algo-rfi/rfi"
	"github.com/cwbudde/algo-rfi/stats/masked"
)

// zeroWeight treats smoothed weights at or below it as empty. FFT smoothing
// leaves round-off where the exact result is zero.
const zeroWeight = 1e-12

// Filter subtracts per-sub-band foreground estimates.
type Filter struct {
	cfg    rfi.Config
	kernel []float64
}

// New validates cfg and prepares its smoothing kernel.
func New(cfg rfi.Config) (*Filter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	k, err := NewKernel(cfg)
	if err != nil {
		return nil, err
	}

	return &Filter{cfg: cfg, kernel: k}, nil
}

// Kernel returns a copy of the smoothing kernel.
func (f *Filter) Kernel() []float64 {
	return append([]float64(nil), f.kernel...)
}

// smoother prepares smoothing of nTime-sample series. Taps further than
// nTime-1 from the kernel centre never meet a sample and are dropped.
func (f *Filter) smoother(nTime int) (*conv.Smoother, error) {
	return conv.NewSmoother(cropKernel(f.kernel, nTime), nTime)
}

// Bands returns the sub-bands used for a grid with nChan channels.
func (f *Filter) Bands(nChan int) []SubBand {
	return SubBands(nChan, f.cfg.Bands)
}

// Estimate returns the smoothed foreground of band as a [time][inner] slice.
func (f *Filter) Estimate(g *grid.Grid, band SubBand) ([]float64, error) {
	sm, err := f.smoother(g.Shape.Time)
	if err != nil {
		return nil, err
	}
	return f.estimate(g, band, sm)
}

// Apply subtracts the foreground estimate of every sub-band from all of its
// channels in place, masked samples included. With cfg.Workers > 1 bands
// are processed concurrently; each band reads and writes only its own
// channels.
func (f *Filter) Apply(ctx context.Context, g *grid.Grid) error {
	if err := g.Validate(); err != nil {
		return err
	}

	bands := f.Bands(g.Shape.Freq)

	if f.cfg.Workers <= 1 || len(bands) == 1 {
		sm, err := f.smoother(g.Shape.Time)
		if err != nil {
			return err
		}
		for _, b := range bands {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := f.applyBand(g, b, sm); err != nil {
				return err
			}
		}
		return nil
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(f.cfg.Workers)

	for _, b := range bands {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sm, err := f.smoother(g.Shape.Time)
			if err != nil {
				return err
			}
			return f.applyBand(g, b, sm)
		})
	}

	return eg.Wait()
}

func (f *Filter) applyBand(g *grid.Grid, b SubBand, sm *conv.Smoother) error {
	est, err := f.estimate(g, b, sm)
	if err != nil {
		return fmt.Errorf("foreground: band [%d,%d): %w", b.Start, b.End, err)
	}

	s := g.Shape
	inner := s.Inner()
	for t := 0; t < s.Time; t++ {
		row := est[t*inner : (t+1)*inner]
		for ch := b.Start; ch < b.End; ch++ {
			base := s.Index(t, ch, 0)
			for k, v := range row {
				g.Data[base+k] -= v
			}
		}
	}

	return nil
}

func (f *Filter) estimate(g *grid.Grid, b SubBand, sm *conv.Smoother) ([]float64, error) {
	nt, inner := g.Shape.Time, g.Shape.Inner()
	curve := g.MeanOverFreqRange(b.Start, b.End)
	est := make([]float64, nt*inner)

	x := make([]float64, nt)
	valid := make([]bool, nt)
	w := make([]float64, nt)
	xs := make([]float64, nt)
	ws := make([]float64, nt)
	col := make([]float64, nt)

	for k := 0; k < inner; k++ {
		curve.Column(k, x, valid)

		mu, n := masked.Mean(x, valid)
		if n == 0 {
			continue
		}

		for t := range x {
			if valid[t] {
				x[t] -= mu
				w[t] = 1
			} else {
				x[t] = 0
				w[t] = 0
			}
		}

		if err := sm.Same(xs, x); err != nil {
			return nil, err
		}
		if err := sm.Same(ws, w); err != nil {
			return nil, err
		}

		for t, v := range ws {
			if v > zeroWeight {
				ws[t] = 1 / v
			} else {
				ws[t] = 0
			}
		}

		vecmath.MulBlock(col, xs, ws)

		for t, v := range col {
			est[t*inner+k] = v
		}
	}

	return est, nil
}
