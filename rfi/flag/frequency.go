package flag

import (
	"github.com/cwbudde/algo-rfi/grid"
	"github.com/cwbudde/algo-rfi/rfi"
)

// Frequency masks every channel whose time-averaged value exceeds
// mean + cfg.FreqSigma*std of the time-averaged spectrum in any inner
// entry. Newly flagged channels are added to bad; the return value is their
// count. Fully masked channels have no defined average and are skipped.
func Frequency(g *grid.Grid, cfg rfi.Config, bad *BadChannels) int {
	avg := g.MeanOverTime()
	th := NewThreshold(avg, cfg.FreqSigma)

	var found []int
	for f := 0; f < g.Shape.Freq; f++ {
		if bad.Contains(f) {
			continue
		}
		if th.Exceeded(avg, f) {
			found = append(found, f)
		}
	}

	for _, f := range found {
		bad.Add(f)
		g.MaskChannel(f)
	}

	return len(found)
}

// FrequencyLoop repeats Frequency until it flags nothing or
// cfg.MaxIterations passes have run.
func FrequencyLoop(g *grid.Grid, cfg rfi.Config, bad *BadChannels) rfi.LoopResult {
	return rfi.Converge(cfg.MaxIterations, func(int) int {
		return Frequency(g, cfg, bad)
	})
}
