// Package simulate synthesises visibility grids with injected interference
// for tests and the rfiflag command.
package simulate

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-rfi/grid"
)

// Sky describes the uncontaminated signal: a constant level plus a slow
// sinusoidal foreground drift shared by all channels, plus white noise.
type Sky struct {
	Shape          grid.Shape
	Level          float64
	NoiseSigma     float64
	DriftAmplitude float64
	DriftPeriod    float64 // time bins; <= 0 disables the drift
	Seed           int64
}

// Interference describes injected RFI.
type Interference struct {
	Channels     []int // channels raised by ChannelPower at every time
	ChannelPower float64
	Times        []int // time samples raised by TimePower in every channel
	TimePower    float64
}

// Generate builds a fully unmasked grid for sky with rfi added.
func Generate(sky Sky, rfi Interference) (*grid.Grid, error) {
	g, err := grid.New(sky.Shape)
	if err != nil {
		return nil, err
	}

	s := sky.Shape
	inner := s.Inner()
	rng := rand.New(rand.NewSource(sky.Seed))

	for t := 0; t < s.Time; t++ {
		fg := sky.Level + Drift(sky, t)
		for f := 0; f < s.Freq; f++ {
			base := s.Index(t, f, 0)
			for k := 0; k < inner; k++ {
				v := fg
				if sky.NoiseSigma > 0 {
					v += rng.NormFloat64() * sky.NoiseSigma
				}
				g.Data[base+k] = v
			}
		}
	}

	for _, f := range rfi.Channels {
		if f < 0 || f >= s.Freq {
			continue
		}
		for t := 0; t < s.Time; t++ {
			base := s.Index(t, f, 0)
			for k := 0; k < inner; k++ {
				g.Data[base+k] += rfi.ChannelPower
			}
		}
	}

	for _, t := range rfi.Times {
		if t < 0 || t >= s.Time {
			continue
		}
		for i := s.Index(t, 0, 0); i < s.Index(t+1, 0, 0); i++ {
			g.Data[i] += rfi.TimePower
		}
	}

	return g, nil
}

// Drift returns the foreground drift of sky at time t.
func Drift(sky Sky, t int) float64 {
	if sky.DriftPeriod <= 0 || sky.DriftAmplitude == 0 {
		return 0
	}
	return sky.DriftAmplitude * math.Sin(2*math.Pi*float64(t)/sky.DriftPeriod)
}

// SpreadChannels returns count channel indices spaced evenly over nChan,
// starting half a spacing in.
func SpreadChannels(nChan, count int) []int {
	if count <= 0 || nChan <= 0 {
		return nil
	}
	if count > nChan {
		count = nChan
	}

	out := make([]int, count)
	step := float64(nChan) / float64(count)
	for i := range out {
		out[i] = int(step*float64(i) + step/2)
	}

	return out
}
