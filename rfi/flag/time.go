package flag

import (
	"fmt"

	"github.com/cwbudde/algo-rfi/grid"
	"github.com/cwbudde/algo-rfi/rfi"
)

// Time masks every time sample whose frequency-averaged value exceeds
// mean + cfg.TimeSigma*std across time in any inner entry, widening each
// detection according to cfg.Widen and cfg.TimeCut. It runs a single pass
// and returns the detected time indices in ascending order.
func Time(g *grid.Grid, cfg rfi.Config) ([]int, error) {
	if _, _, err := WidenRange(cfg.Widen, 0, cfg.TimeCut); err != nil {
		return nil, err
	}

	curve := g.MeanOverFreq()
	th := NewThreshold(curve, cfg.TimeSigma)

	var bad []int
	for t := 0; t < g.Shape.Time; t++ {
		if th.Exceeded(curve, t) {
			bad = append(bad, t)
		}
	}

	for _, t := range bad {
		lo, hi, _ := WidenRange(cfg.Widen, t, cfg.TimeCut)
		g.MaskTimes(lo, hi)
	}

	return bad, nil
}

// WidenRange returns the half-open time range masked around a detection at
// t. The symmetric range is one sample shorter after t than before it. The
// range may extend past the time axis; Grid.MaskTimes clamps it.
func WidenRange(mode rfi.WidenMode, t, cut int) (lo, hi int, err error) {
	switch mode {
	case rfi.WidenSymmetric:
		if cut == 0 {
			return t, t + 1, nil
		}
		return t - cut, t + cut, nil
	case rfi.WidenForward:
		if cut == 0 {
			return t, t + 1, nil
		}
		return t, t + cut, nil
	case rfi.WidenNone:
		return t, t + 1, nil
	default:
		return 0, 0, fmt.Errorf("%w: unknown widen mode %q", rfi.ErrConfiguration, mode)
	}
}
