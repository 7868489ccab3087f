// Package histogram turns a flattened variable array into a cleaned sample
// set, descriptive statistics, and a fixed-width binned histogram.
package histogram

import (
	"errors"

	"gonum.org/v1/gonum/floats"
)

// ErrInvalidBinCount is returned for a requested bin count <= 0.
var ErrInvalidBinCount = errors.New("bin count must be a positive integer")

// Bin is one contiguous sub-interval of the sample value range. Bins are
// half-open on the left edge except the last, which also includes its
// right edge so the maximum sample is never dropped.
type Bin struct {
	Left   float64
	Right  float64
	Center float64
	Count  int
}

// Histogram is an ordered sequence of equal-width bins covering
// [min, max] of the sample set. The sum of all bin counts always equals
// the number of input samples.
type Histogram struct {
	Bins  []Bin
	Width float64
}

// Build partitions the value range of samples into bins equal-width bins
// and counts samples per bin. A sample equal to the maximum lands in the
// last bin. When every sample has the same value the range has zero width:
// all samples are counted in bin 0 and every bin collapses to that single
// point, with the remaining bins empty.
func Build(samples []float64, bins int) (*Histogram, error) {
	if bins <= 0 {
		return nil, ErrInvalidBinCount
	}
	if len(samples) == 0 {
		return nil, ErrEmptySampleSet
	}
	lo := floats.Min(samples)
	hi := floats.Max(samples)

	h := &Histogram{Bins: make([]Bin, bins)}
	if lo == hi {
		for i := range h.Bins {
			h.Bins[i] = Bin{Left: lo, Right: lo, Center: lo}
		}
		h.Bins[0].Count = len(samples)
		return h, nil
	}

	h.Width = (hi - lo) / float64(bins)
	edges := make([]float64, bins+1)
	floats.Span(edges, lo, hi)
	for i := range h.Bins {
		h.Bins[i] = Bin{
			Left:   edges[i],
			Right:  edges[i+1],
			Center: edges[i] + h.Width/2,
		}
	}
	for _, v := range samples {
		idx := int((v - lo) / h.Width)
		if idx >= bins {
			idx = bins - 1
		}
		if idx < 0 {
			idx = 0
		}
		h.Bins[idx].Count++
	}
	return h, nil
}
