package flag

import (
	"math"

	"github.com/cwbudde/algo-rfi/grid"
	"github.com/cwbudde/algo-rfi/rfi"
)

// Variance masks the one channel whose time variance lies furthest above
// mean + cfg.FreqSigma*std of the per-channel variances, measured in
// standard deviations. It returns 1 when a channel was masked and 0 when no
// channel is an outlier.
func Variance(g *grid.Grid, cfg rfi.Config, bad *BadChannels) int {
	vars := g.VarianceOverTime()
	th := NewThreshold(vars, cfg.FreqSigma)

	worst, worstScore := -1, math.Inf(-1)
	for f := 0; f < g.Shape.Freq; f++ {
		if bad.Contains(f) {
			continue
		}
		for c := 0; c < vars.Cols; c++ {
			v, ok := vars.At(f, c)
			if !ok || !th.Defined[c] || v <= th.Limit[c] {
				continue
			}
			score := math.Inf(1)
			if th.Std[c] > 0 {
				score = (v - th.Mean[c]) / th.Std[c]
			}
			if score > worstScore {
				worst, worstScore = f, score
			}
		}
	}

	if worst < 0 {
		return 0
	}

	bad.Add(worst)
	g.MaskChannel(worst)

	return 1
}

// VarianceLoop repeats Variance until it masks nothing or
// cfg.MaxIterations passes have run.
func VarianceLoop(g *grid.Grid, cfg rfi.Config, bad *BadChannels) rfi.LoopResult {
	return rfi.Converge(cfg.MaxIterations, func(int) int {
		return Variance(g, cfg, bad)
	})
}
