package flag

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-rfi/grid"
	"github.com/cwbudde/algo-rfi/internal/simulate"
	"github.com/cwbudde/algo-rfi/internal/testutil"
	"github.com/cwbudde/algo-rfi/rfi"
)

// onesWithHotChannel returns an all-ones grid with channel hot set to power.
func onesWithHotChannel(t *testing.T, shape grid.Shape, hot int, power float64) *grid.Grid {
	t.Helper()
	g, err := grid.New(shape)
	if err != nil {
		t.Fatal(err)
	}
	g.Fill(1)
	for tt := 0; tt < shape.Time; tt++ {
		for k := 0; k < shape.Inner(); k++ {
			g.Set(tt, hot, k, power)
		}
	}
	return g
}

func TestFrequencyFlagsSingleHotChannel(t *testing.T) {
	shape := grid.Shape{Time: 100, Freq: 64, Group: 1, Pol: 2}
	g := onesWithHotChannel(t, shape, 17, 1000)
	cfg := rfi.DefaultConfig()
	bad := NewBadChannels()

	if n := Frequency(g, cfg, bad); n != 1 {
		t.Fatalf("iteration 1 flagged %d channels, want 1", n)
	}
	if got := bad.Sorted(); len(got) != 1 || got[0] != 17 {
		t.Fatalf("bad channels = %v, want [17]", got)
	}
	if !g.ChannelMasked(17) {
		t.Fatal("channel 17 should be fully masked")
	}
	if got := g.CountMasked(); got != shape.Time*shape.Inner() {
		t.Fatalf("CountMasked = %d, want %d", got, shape.Time*shape.Inner())
	}

	if n := Frequency(g, cfg, bad); n != 0 {
		t.Fatalf("iteration 2 flagged %d channels, want 0", n)
	}
}

func TestFrequencyLoopIsIdempotent(t *testing.T) {
	g, err := simulate.Generate(
		simulate.Sky{Shape: grid.Shape{Time: 80, Freq: 48, Group: 2, Pol: 2}, Level: 10, NoiseSigma: 0.5, Seed: 3},
		simulate.Interference{Channels: []int{4, 20, 33}, ChannelPower: 500},
	)
	if err != nil {
		t.Fatal(err)
	}
	// three equal outliers inflate the spread; 6 sigma would never see them
	cfg := rfi.NewConfig(rfi.WithFreqSigma(3))
	bad := NewBadChannels()

	res := FrequencyLoop(g, cfg, bad)
	if !res.Converged || res.Err != nil {
		t.Fatalf("loop did not converge: %+v", res)
	}
	for _, f := range []int{4, 20, 33} {
		if !bad.Contains(f) {
			t.Fatalf("channel %d not flagged; bad = %v", f, bad.Sorted())
		}
	}

	masked := g.CountMasked()
	if n := Frequency(g, cfg, bad); n != 0 {
		t.Fatalf("second run flagged %d channels, want 0", n)
	}
	if g.CountMasked() != masked {
		t.Fatal("second run changed the mask")
	}
}

func TestFrequencySkipsFullyMaskedChannel(t *testing.T) {
	shape := grid.Shape{Time: 20, Freq: 16, Group: 1, Pol: 1}
	g := onesWithHotChannel(t, shape, 5, 1e6)
	g.MaskChannel(5)

	bad := NewBadChannels()
	if n := Frequency(g, rfi.DefaultConfig(), bad); n != 0 {
		t.Fatalf("flagged %d channels, want 0", n)
	}
	if bad.Len() != 0 {
		t.Fatalf("bad = %v, want empty", bad.Sorted())
	}
}

func TestFrequencyAllMaskedGrid(t *testing.T) {
	shape := grid.Shape{Time: 4, Freq: 4, Group: 1, Pol: 1}
	g := onesWithHotChannel(t, shape, 1, 50)
	for i := range g.Mask {
		g.Mask[i] = true
	}

	if n := Frequency(g, rfi.DefaultConfig(), NewBadChannels()); n != 0 {
		t.Fatalf("flagged %d channels on a fully masked grid", n)
	}
}

func TestTimeFlaggingWidenModes(t *testing.T) {
	shape := grid.Shape{Time: 100, Freq: 16, Group: 1, Pol: 2}
	perTime := shape.Freq * shape.Inner()

	tests := []struct {
		mode       rfi.WidenMode
		cut        int
		wantMasked int
	}{
		{rfi.WidenSymmetric, 5, 10 * perTime},
		{rfi.WidenForward, 5, 5 * perTime},
		{rfi.WidenNone, 5, 1 * perTime},
		{rfi.WidenSymmetric, 0, 1 * perTime},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			g, err := simulate.Generate(
				simulate.Sky{Shape: shape, Level: 1},
				simulate.Interference{Times: []int{50}, TimePower: 1000},
			)
			if err != nil {
				t.Fatal(err)
			}

			cfg := rfi.NewConfig(rfi.WithWiden(tt.mode), rfi.WithTimeCut(tt.cut))
			times, err := Time(g, cfg)
			if err != nil {
				t.Fatal(err)
			}
			if len(times) != 1 || times[0] != 50 {
				t.Fatalf("bad times = %v, want [50]", times)
			}
			if got := g.CountMasked(); got != tt.wantMasked {
				t.Fatalf("CountMasked = %d, want %d", got, tt.wantMasked)
			}
		})
	}
}

func TestTimeFlaggingClampsAtEdges(t *testing.T) {
	shape := grid.Shape{Time: 30, Freq: 8, Group: 1, Pol: 1}
	g, err := simulate.Generate(
		simulate.Sky{Shape: shape, Level: 1},
		simulate.Interference{Times: []int{1}, TimePower: 500},
	)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := Time(g, rfi.NewConfig(rfi.WithTimeCut(4))); err != nil {
		t.Fatal(err)
	}
	// [1-4, 1+4) clamps to [0, 5)
	if got := g.CountMasked(); got != 5*shape.Freq {
		t.Fatalf("CountMasked = %d, want %d", got, 5*shape.Freq)
	}
}

func TestTimeRejectsUnknownWidenMode(t *testing.T) {
	g, err := grid.New(grid.Shape{Time: 4, Freq: 4, Group: 1, Pol: 1})
	if err != nil {
		t.Fatal(err)
	}

	_, err = Time(g, rfi.NewConfig(rfi.WithWiden("outward")))
	if !errors.Is(err, rfi.ErrConfiguration) {
		t.Fatalf("err = %v, want ErrConfiguration", err)
	}
	if g.CountMasked() != 0 {
		t.Fatal("mask changed despite configuration error")
	}
}

func TestVarianceRemovesWorstChannel(t *testing.T) {
	shape := grid.Shape{Time: 100, Freq: 64, Group: 1, Pol: 1}
	g, err := simulate.Generate(
		simulate.Sky{Shape: shape, Level: 1, NoiseSigma: 0.01, Seed: 5},
		simulate.Interference{},
	)
	if err != nil {
		t.Fatal(err)
	}
	// channel 7 keeps a normal mean but oscillates wildly
	for tt := 0; tt < shape.Time; tt++ {
		v := 1.0 + 50
		if tt%2 == 1 {
			v = 1.0 - 50
		}
		g.Set(tt, 7, 0, v)
	}

	cfg := rfi.DefaultConfig()
	if n := Frequency(g, cfg, NewBadChannels()); n != 0 {
		t.Fatalf("frequency flagger caught the oscillating channel (%d)", n)
	}

	bad := NewBadChannels()
	res := VarianceLoop(g, cfg, bad)
	if res.Flagged != 1 || !res.Converged {
		t.Fatalf("VarianceLoop = %+v, want one flag and convergence", res)
	}
	if got := bad.Sorted(); len(got) != 1 || got[0] != 7 {
		t.Fatalf("bad = %v, want [7]", got)
	}
	if !g.ChannelMasked(7) {
		t.Fatal("channel 7 should be masked")
	}
}

func TestVarianceOnConstantDataFlagsNothing(t *testing.T) {
	shape := grid.Shape{Time: 10, Freq: 10, Group: 1, Pol: 1}
	g := onesWithHotChannel(t, shape, 0, 1)

	if n := Variance(g, rfi.DefaultConfig(), NewBadChannels()); n != 0 {
		t.Fatalf("Variance = %d, want 0", n)
	}
}

func TestMaskMonotonicAndShapePreserved(t *testing.T) {
	g, err := simulate.Generate(
		simulate.Sky{Shape: grid.Shape{Time: 120, Freq: 40, Group: 1, Pol: 2}, Level: 5, NoiseSigma: 1, Seed: 11},
		simulate.Interference{Channels: []int{3, 9, 30}, ChannelPower: 80, Times: []int{60}, TimePower: 400},
	)
	if err != nil {
		t.Fatal(err)
	}
	cfg := rfi.NewConfig(rfi.WithTimeCut(3))
	bad := NewBadChannels()
	dataLen := len(g.Data)

	steps := []func(){
		func() { Frequency(g, cfg, bad) },
		func() { _, _ = Time(g, cfg) },
		func() { FrequencyLoop(g, cfg, bad) },
		func() { Variance(g, cfg, bad) },
		func() { VarianceLoop(g, cfg, bad) },
	}

	prev := append([]bool(nil), g.Mask...)
	for i, step := range steps {
		step()
		if err := g.Validate(); err != nil || len(g.Mask) != dataLen {
			t.Fatalf("step %d broke the shape invariant: %v", i, err)
		}
		testutil.RequireMaskSuperset(t, prev, g.Mask)
		prev = append(prev[:0], g.Mask...)
	}
}

func TestThresholdIgnoresConstantColumns(t *testing.T) {
	v := 0.1 + 0.2 // not exactly representable; sums of copies round
	r := &grid.Reduced{
		Rows:   7,
		Cols:   2,
		Values: []float64{v, 1, v, 2, v, 3, v, 4, v, 5, v, 6, v, 100},
		Valid:  []bool{true, true, true, true, true, true, true, true, true, true, true, true, true, true},
	}

	th := NewThreshold(r, 1)
	if !math.IsInf(th.Limit[0], 1) {
		t.Fatalf("constant column limit = %v, want +Inf", th.Limit[0])
	}
	for row := 0; row < 6; row++ {
		if th.Exceeded(r, row) {
			t.Fatalf("row %d exceeded", row)
		}
	}
	if !th.Exceeded(r, 6) {
		t.Fatal("row 6 should exceed the second column limit")
	}
}

func TestWidenRangeBounds(t *testing.T) {
	tests := []struct {
		mode   rfi.WidenMode
		cut    int
		lo, hi int
	}{
		// cut samples before t, cut-1 after.
		{rfi.WidenSymmetric, 3, 47, 53},
		{rfi.WidenSymmetric, 1, 49, 51},
		{rfi.WidenSymmetric, 0, 50, 51},
		{rfi.WidenForward, 3, 50, 53},
		{rfi.WidenForward, 0, 50, 51},
		{rfi.WidenNone, 3, 50, 51},
	}

	for _, tc := range tests {
		lo, hi, err := WidenRange(tc.mode, 50, tc.cut)
		if err != nil {
			t.Fatalf("%s cut=%d: %v", tc.mode, tc.cut, err)
		}
		if lo != tc.lo || hi != tc.hi {
			t.Fatalf("%s cut=%d: got [%d,%d), want [%d,%d)", tc.mode, tc.cut, lo, hi, tc.lo, tc.hi)
		}
	}
}
