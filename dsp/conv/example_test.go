package conv_test

import (
	"fmt"

	"github.com/cwbudde/algo-rfi/dsp/conv"
)

func ExampleSmoother() {
	s, _ := conv.NewSmoother([]float64{0.25, 0.5, 0.25}, 5)
	dst := make([]float64, 5)
	_ = s.Same(dst, []float64{0, 0, 4, 0, 0})
	fmt.Println(dst)

	// Output:
	// [0 1 2 1 0]
}
