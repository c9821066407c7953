package foreground

// SubBand is the half-open channel range [Start, End).
type SubBand struct {
	Start int
	End   int
}

// Width returns the number of channels in the band.
func (b SubBand) Width() int {
	return b.End - b.Start
}

// SubBands splits nChan channels into nBands contiguous bands. Widths differ
// by at most one; the nChan%nBands leftover channels go one each to the
// leading bands. nBands is clamped to [1, nChan].
func SubBands(nChan, nBands int) []SubBand {
	if nChan <= 0 {
		return nil
	}
	if nBands < 1 {
		nBands = 1
	}
	if nBands > nChan {
		nBands = nChan
	}

	base, rem := nChan/nBands, nChan%nBands
	bands := make([]SubBand, nBands)

	start := 0
	for i := range bands {
		w := base
		if i < rem {
			w++
		}
		bands[i] = SubBand{Start: start, End: start + w}
		start += w
	}

	return bands
}
