package conv

import (
	"errors"

	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by convolution functions.
var (
	ErrEmptyInput     = errors.New("conv: empty input")
	ErrEmptyKernel    = errors.New("conv: empty kernel")
	ErrLengthMismatch = errors.New("conv: buffer length mismatch")
)

// directThreshold is the longest kernel convolved in the time domain.
const directThreshold = 64

// directTo performs direct linear convolution into dst, which must have
// length len(a)+len(b)-1, accumulating one scaled copy of the kernel per
// input sample. temp is scratch of length len(b).
func directTo(dst, a, b, temp []float64) {
	for i := range dst {
		dst[i] = 0
	}

	m := len(b)
	for i, x := range a {
		if x == 0 {
			continue
		}
		vecmath.ScaleBlock(temp, b, x)
		vecmath.AddBlockInPlace(dst[i:i+m], temp)
	}
}

// sameStart is the offset of the ModeSame window inside a full result: the
// output keeps the input length and is centred on kernel tap (m-1)/2.
func sameStart(kernelLen int) int {
	return (kernelLen - 1) / 2
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
