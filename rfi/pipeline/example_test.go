package pipeline_test

import (
	"context"
	"fmt"

	"github.com/cwbudde/algo-rfi/grid"
	"github.com/cwbudde/algo-rfi/internal/simulate"
	"github.com/cwbudde/algo-rfi/rfi"
	"github.com/cwbudde/algo-rfi/rfi/pipeline"
)

func ExampleRun() {
	g, err := simulate.Generate(
		simulate.Sky{Shape: grid.Shape{Time: 100, Freq: 64, Group: 1, Pol: 2}, Level: 1},
		simulate.Interference{Channels: []int{12}, ChannelPower: 1000},
	)
	if err != nil {
		panic(err)
	}

	rep, err := pipeline.Run(context.Background(), g, rfi.DefaultConfig())
	if err != nil {
		panic(err)
	}

	fmt.Println(rep.BadChannels, rep.TimeFlagged, rep.MaskedAfter)
	fmt.Println(rep.Path())
	// Output:
	// [12] false 200
	// [init freq_flag_1 evaluate_badness foreground_subtract freq_flag_final done]
}
