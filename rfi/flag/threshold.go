package flag

import (
	"math"

	"github.com/cwbudde/algo-rfi/grid"
)

// flatSpread is the relative spread below which a column counts as constant.
// Summation round-off can leave the mean of identical values one ulp below
// them with a zero std; such a column has no outliers.
const flatSpread = 1e-12

// Threshold holds per-column acceptance limits derived from a reduced view:
// Limit[c] = Mean[c] + sigma*Std[c] over the defined rows of column c.
// Columns without defined rows are not Defined and never flag anything, and
// constant columns get an infinite limit.
type Threshold struct {
	Mean    []float64
	Std     []float64
	Limit   []float64
	Defined []bool
}

// NewThreshold computes fresh limits for r.
func NewThreshold(r *grid.Reduced, sigma float64) Threshold {
	th := Threshold{
		Mean:    make([]float64, r.Cols),
		Std:     make([]float64, r.Cols),
		Limit:   make([]float64, r.Cols),
		Defined: make([]bool, r.Cols),
	}

	for c := 0; c < r.Cols; c++ {
		mean, std, n := r.ColumnStats(c)
		if n == 0 {
			continue
		}
		th.Mean[c] = mean
		th.Std[c] = std
		th.Limit[c] = mean + sigma*std
		if std == 0 || std < flatSpread*math.Abs(mean) {
			th.Limit[c] = math.Inf(1)
		}
		th.Defined[c] = true
	}

	return th
}

// Exceeded reports whether any defined entry of row lies above its limit.
func (th Threshold) Exceeded(r *grid.Reduced, row int) bool {
	for c := 0; c < r.Cols; c++ {
		if v, ok := r.At(row, c); ok && th.Defined[c] && v > th.Limit[c] {
			return true
		}
	}
	return false
}
