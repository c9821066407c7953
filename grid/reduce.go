package grid

import (
	"math"

	"github.com/cwbudde/algo-rfi/stats/masked"
)

// Reduced is a 2-D masked view produced by collapsing one axis of a Grid.
// Rows index the surviving time or frequency axis and columns index the
// inner axes. An entry is invalid when every sample feeding it was masked;
// its value is then NaN and must not be read.
type Reduced struct {
	Rows   int
	Cols   int
	Values []float64
	Valid  []bool
}

func newReduced(rows, cols int) *Reduced {
	return &Reduced{
		Rows:   rows,
		Cols:   cols,
		Values: make([]float64, rows*cols),
		Valid:  make([]bool, rows*cols),
	}
}

// At returns entry (row, col) and whether it is defined.
func (r *Reduced) At(row, col int) (float64, bool) {
	i := row*r.Cols + col
	return r.Values[i], r.Valid[i]
}

// Column copies column col into values and valid, which must have length
// Rows, and returns them.
func (r *Reduced) Column(col int, values []float64, valid []bool) ([]float64, []bool) {
	for row := 0; row < r.Rows; row++ {
		i := row*r.Cols + col
		values[row] = r.Values[i]
		valid[row] = r.Valid[i]
	}
	return values, valid
}

// RowDefined reports whether any column of row is defined.
func (r *Reduced) RowDefined(row int) bool {
	for _, ok := range r.Valid[row*r.Cols : (row+1)*r.Cols] {
		if ok {
			return true
		}
	}
	return false
}

// ColumnStats returns the mean and population standard deviation of the
// defined entries in column col. n is zero when the column has none.
func (r *Reduced) ColumnStats(col int) (mean, std float64, n int) {
	values, valid := r.Column(col, make([]float64, r.Rows), make([]bool, r.Rows))
	return masked.MeanStdDev(values, valid)
}

func (r *Reduced) store(accs []masked.Accumulator, variance bool) {
	for i := range accs {
		if accs[i].N() == 0 {
			r.Values[i] = math.NaN()
			continue
		}
		r.Valid[i] = true
		if variance {
			r.Values[i] = accs[i].Variance()
		} else {
			r.Values[i] = accs[i].Mean()
		}
	}
}

// MeanOverTime returns the masked mean over the time axis: a [freq][inner]
// time-averaged spectrum.
func (g *Grid) MeanOverTime() *Reduced {
	return g.reduceTime(false)
}

// VarianceOverTime returns the masked population variance over the time
// axis for every [freq][inner] entry.
func (g *Grid) VarianceOverTime() *Reduced {
	return g.reduceTime(true)
}

func (g *Grid) reduceTime(variance bool) *Reduced {
	s := g.Shape
	inner := s.Inner()
	accs := make([]masked.Accumulator, s.Freq*inner)

	for t := 0; t < s.Time; t++ {
		base := s.Index(t, 0, 0)
		for j := range accs {
			if !g.Mask[base+j] {
				accs[j].Add(g.Data[base+j])
			}
		}
	}

	r := newReduced(s.Freq, inner)
	r.store(accs, variance)

	return r
}

// MeanOverFreq returns the masked mean over the whole frequency axis: a
// [time][inner] frequency-averaged light curve.
func (g *Grid) MeanOverFreq() *Reduced {
	return g.MeanOverFreqRange(0, g.Shape.Freq)
}

// MeanOverFreqRange returns the masked mean over channels [start, end) for
// every [time][inner] entry.
func (g *Grid) MeanOverFreqRange(start, end int) *Reduced {
	s := g.Shape
	inner := s.Inner()
	accs := make([]masked.Accumulator, s.Time*inner)

	for t := 0; t < s.Time; t++ {
		row := accs[t*inner : (t+1)*inner]
		for f := start; f < end; f++ {
			base := s.Index(t, f, 0)
			for k := range row {
				if !g.Mask[base+k] {
					row[k].Add(g.Data[base+k])
				}
			}
		}
	}

	r := newReduced(s.Time, inner)
	r.store(accs, false)

	return r
}
