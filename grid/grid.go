// Package grid provides the masked visibility array processed by the RFI
// flagging engine.
//
// A Grid stores float64 samples in row-major [time][freq][group][pol] order
// together with a boolean mask of identical length. A true mask entry
// excludes the sample from every statistic computed by this module. The
// group and pol axes are treated jointly as the "inner" axes: every reduction
// keeps them separate and collapses only time or frequency.
package grid

import (
	"errors"
	"fmt"
)

// Errors returned by grid constructors and validation.
var (
	ErrEmptyShape    = errors.New("grid: every axis must have length > 0")
	ErrShapeMismatch = errors.New("grid: data and mask length must match shape")
)

// Shape describes the axis lengths of a Grid.
type Shape struct {
	Time  int
	Freq  int
	Group int // baselines or antenna groups
	Pol   int // polarisations
}

// Inner returns the number of entries on the non-time, non-frequency axes.
func (s Shape) Inner() int {
	return s.Group * s.Pol
}

// Size returns the total number of samples.
func (s Shape) Size() int {
	return s.Time * s.Freq * s.Inner()
}

// Index returns the flat offset of (t, f, k) where k indexes the inner axes.
func (s Shape) Index(t, f, k int) int {
	return (t*s.Freq+f)*s.Inner() + k
}

// InnerIndex returns the inner offset of (group, pol).
func (s Shape) InnerIndex(group, pol int) int {
	return group*s.Pol + pol
}

func (s Shape) String() string {
	return fmt.Sprintf("%dx%dx%dx%d", s.Time, s.Freq, s.Group, s.Pol)
}

func (s Shape) validate() error {
	if s.Time <= 0 || s.Freq <= 0 || s.Group <= 0 || s.Pol <= 0 {
		return fmt.Errorf("%w: %s", ErrEmptyShape, s)
	}
	return nil
}

// Grid is a masked 4-D visibility array.
type Grid struct {
	Shape Shape
	Data  []float64
	Mask  []bool
}

// New returns a zero-filled, fully unmasked grid.
func New(shape Shape) (*Grid, error) {
	if err := shape.validate(); err != nil {
		return nil, err
	}

	n := shape.Size()

	return &Grid{
		Shape: shape,
		Data:  make([]float64, n),
		Mask:  make([]bool, n),
	}, nil
}

// FromSlices wraps existing data and mask slices without copying.
// A nil mask is replaced by a fully unmasked one.
func FromSlices(shape Shape, data []float64, mask []bool) (*Grid, error) {
	if mask == nil {
		mask = make([]bool, len(data))
	}

	g := &Grid{Shape: shape, Data: data, Mask: mask}
	if err := g.Validate(); err != nil {
		return nil, err
	}

	return g, nil
}

// Validate reports whether the data and mask agree with the shape.
func (g *Grid) Validate() error {
	if err := g.Shape.validate(); err != nil {
		return err
	}

	n := g.Shape.Size()
	if len(g.Data) != n || len(g.Mask) != n {
		return fmt.Errorf("%w: shape %s wants %d, got data %d mask %d",
			ErrShapeMismatch, g.Shape, n, len(g.Data), len(g.Mask))
	}

	return nil
}

// Clone returns a deep copy of g.
func (g *Grid) Clone() *Grid {
	return &Grid{
		Shape: g.Shape,
		Data:  append([]float64(nil), g.Data...),
		Mask:  append([]bool(nil), g.Mask...),
	}
}

// At returns the sample at (t, f, k) and whether it is unmasked.
func (g *Grid) At(t, f, k int) (float64, bool) {
	i := g.Shape.Index(t, f, k)
	return g.Data[i], !g.Mask[i]
}

// Set stores v at (t, f, k) without touching the mask.
func (g *Grid) Set(t, f, k int, v float64) {
	g.Data[g.Shape.Index(t, f, k)] = v
}

// Fill sets every sample to v.
func (g *Grid) Fill(v float64) {
	for i := range g.Data {
		g.Data[i] = v
	}
}

// Filled returns a copy of the data with masked samples replaced by v.
func (g *Grid) Filled(v float64) []float64 {
	out := make([]float64, len(g.Data))
	for i, x := range g.Data {
		if g.Mask[i] {
			out[i] = v
		} else {
			out[i] = x
		}
	}
	return out
}

// CountMasked returns the number of masked samples.
func (g *Grid) CountMasked() int {
	n := 0
	for _, m := range g.Mask {
		if m {
			n++
		}
	}
	return n
}

// MaskChannel masks every sample of frequency channel f.
func (g *Grid) MaskChannel(f int) {
	inner := g.Shape.Inner()
	for t := 0; t < g.Shape.Time; t++ {
		start := g.Shape.Index(t, f, 0)
		for k := 0; k < inner; k++ {
			g.Mask[start+k] = true
		}
	}
}

// MaskTimes masks every sample with time index in [start, end). The range is
// clamped to the time axis; an empty range is a no-op.
func (g *Grid) MaskTimes(start, end int) {
	if start < 0 {
		start = 0
	}
	if end > g.Shape.Time {
		end = g.Shape.Time
	}
	if start >= end {
		return
	}

	lo := g.Shape.Index(start, 0, 0)
	hi := g.Shape.Index(end, 0, 0)
	for i := lo; i < hi; i++ {
		g.Mask[i] = true
	}
}

// ChannelMasked reports whether every sample of channel f is masked.
func (g *Grid) ChannelMasked(f int) bool {
	inner := g.Shape.Inner()
	for t := 0; t < g.Shape.Time; t++ {
		start := g.Shape.Index(t, f, 0)
		for k := 0; k < inner; k++ {
			if !g.Mask[start+k] {
				return false
			}
		}
	}
	return true
}

// MergeMask ORs the mask of other into g. Shapes must match.
func (g *Grid) MergeMask(other *Grid) error {
	if g.Shape != other.Shape || len(g.Mask) != len(other.Mask) {
		return fmt.Errorf("%w: %s vs %s", ErrShapeMismatch, g.Shape, other.Shape)
	}

	for i, m := range other.Mask {
		if m {
			g.Mask[i] = true
		}
	}

	return nil
}
