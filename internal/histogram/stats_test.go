package histogram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe_PopulationStdDev(t *testing.T) {
	// Classic example: population std dev divides by n, not n-1.
	sum, err := Describe([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	require.NoError(t, err)
	assert.Equal(t, 8, sum.Count)
	assert.InDelta(t, 5.0, sum.Mean, 1e-12)
	assert.InDelta(t, 2.0, sum.StdDev, 1e-12)
	assert.InDelta(t, 2.0, sum.Min, 1e-12)
	assert.InDelta(t, 9.0, sum.Max, 1e-12)
}

func TestDescribe_MedianEvenCount(t *testing.T) {
	sum, err := Describe([]float64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.InDelta(t, 2.5, sum.Median, 1e-12)
}

func TestDescribe_MedianOddCount(t *testing.T) {
	sum, err := Describe([]float64{3, 1, 2})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, sum.Median, 1e-12)
}

func TestDescribe_IdenticalValues(t *testing.T) {
	sum, err := Describe([]float64{3.5, 3.5, 3.5, 3.5})
	require.NoError(t, err)
	assert.Zero(t, sum.StdDev)
	assert.Equal(t, 3.5, sum.Mean)
	assert.Equal(t, 3.5, sum.Median)
	assert.Equal(t, sum.Min, sum.Max)
}

func TestDescribe_Empty(t *testing.T) {
	_, err := Describe(nil)
	assert.ErrorIs(t, err, ErrEmptySampleSet)
}
