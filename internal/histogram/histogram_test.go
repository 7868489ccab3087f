package histogram

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func totalCount(h *Histogram) int {
	n := 0
	for _, b := range h.Bins {
		n += b.Count
	}
	return n
}

func TestBuild_CountsConservedForAnyBinCount(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	samples := make([]float64, 5000)
	for i := range samples {
		samples[i] = rng.NormFloat64()*12 + 3
	}
	for _, bins := range []int{1, 2, 7, 50, 101} {
		h, err := Build(samples, bins)
		require.NoError(t, err)
		require.Len(t, h.Bins, bins)
		assert.Equal(t, len(samples), totalCount(h), "bins=%d", bins)
	}
}

func TestBuild_MaximumLandsInLastBin(t *testing.T) {
	samples := []float64{0, 1, 2, 3, 4, 5, 10}
	h, err := Build(samples, 10)
	require.NoError(t, err)
	last := h.Bins[len(h.Bins)-1]
	assert.Equal(t, 1, last.Count, "sample equal to max belongs to the final bin")
	assert.Equal(t, len(samples), totalCount(h))
}

func TestBuild_BinsAreContiguousEqualWidth(t *testing.T) {
	samples := []float64{-2, 0, 1, 7, 13}
	h, err := Build(samples, 6)
	require.NoError(t, err)
	require.Len(t, h.Bins, 6)
	assert.InDelta(t, -2, h.Bins[0].Left, 1e-12)
	assert.InDelta(t, 13, h.Bins[5].Right, 1e-12)
	for i := 0; i < len(h.Bins)-1; i++ {
		assert.InDelta(t, h.Bins[i].Right, h.Bins[i+1].Left, 1e-9, "bin %d", i)
	}
	for i, b := range h.Bins {
		assert.InDelta(t, b.Left+h.Width/2, b.Center, 1e-9, "bin %d center", i)
		assert.InDelta(t, h.Width, b.Right-b.Left, 1e-9, "bin %d width", i)
	}
}

func TestBuild_DegenerateZeroWidthRange(t *testing.T) {
	samples := make([]float64, 1000)
	for i := range samples {
		samples[i] = 3.5
	}
	h, err := Build(samples, 50)
	require.NoError(t, err)
	require.Len(t, h.Bins, 50)
	assert.Zero(t, h.Width)
	assert.Equal(t, 1000, h.Bins[0].Count)
	assert.Equal(t, 3.5, h.Bins[0].Left)
	assert.Equal(t, 3.5, h.Bins[0].Right)
	assert.Equal(t, 3.5, h.Bins[0].Center)
	for i := 1; i < 50; i++ {
		assert.Zero(t, h.Bins[i].Count, "bin %d", i)
		assert.Equal(t, 3.5, h.Bins[i].Left)
		assert.Equal(t, 3.5, h.Bins[i].Right)
	}
}

func TestBuild_SingleSample(t *testing.T) {
	h, err := Build([]float64{7}, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, h.Bins[0].Count)
}

func TestBuild_InvalidBinCount(t *testing.T) {
	for _, bins := range []int{0, -5} {
		_, err := Build([]float64{1, 2}, bins)
		assert.ErrorIs(t, err, ErrInvalidBinCount, "bins=%d", bins)
	}
}

func TestBuild_EmptySamples(t *testing.T) {
	_, err := Build(nil, 50)
	assert.ErrorIs(t, err, ErrEmptySampleSet)
}
