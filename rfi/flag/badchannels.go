package flag

import "sort"

// BadChannels is a sorted set of flagged channel indices. It only grows.
type BadChannels struct {
	idx []int
}

// NewBadChannels returns an empty set.
func NewBadChannels() *BadChannels {
	return &BadChannels{}
}

// Add inserts f and reports whether it was new.
func (b *BadChannels) Add(f int) bool {
	i := sort.SearchInts(b.idx, f)
	if i < len(b.idx) && b.idx[i] == f {
		return false
	}

	b.idx = append(b.idx, 0)
	copy(b.idx[i+1:], b.idx[i:])
	b.idx[i] = f

	return true
}

// Contains reports whether f has been flagged.
func (b *BadChannels) Contains(f int) bool {
	i := sort.SearchInts(b.idx, f)
	return i < len(b.idx) && b.idx[i] == f
}

// Len returns the number of flagged channels.
func (b *BadChannels) Len() int {
	return len(b.idx)
}

// Sorted returns a copy of the flagged channels in ascending order.
func (b *BadChannels) Sorted() []int {
	return append([]int(nil), b.idx...)
}

// Fraction returns Len divided by the total channel count.
func (b *BadChannels) Fraction(nChan int) float64 {
	if nChan <= 0 {
		return 0
	}
	return float64(len(b.idx)) / float64(nChan)
}
