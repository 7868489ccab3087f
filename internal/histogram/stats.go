package histogram

import (
	"errors"
	"fmt"

	"github.com/montanaflynn/stats"
)

// ErrEmptySampleSet is returned when a variable has no finite samples left
// after cleaning. Callers skip histogram and report generation for it.
var ErrEmptySampleSet = errors.New("empty sample set")

// Summary holds descriptive statistics over one cleaned sample set.
// StdDev uses the population convention (divisor n, not n-1); the whole
// tool sticks to that one convention.
type Summary struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	Median float64
}

// Describe computes count, mean, population standard deviation, min, max
// and median over samples. An even count yields the mean of the two middle
// order statistics as the median.
func Describe(samples []float64) (Summary, error) {
	if len(samples) == 0 {
		return Summary{}, ErrEmptySampleSet
	}
	mean, err := stats.Mean(samples)
	if err != nil {
		return Summary{}, fmt.Errorf("mean: %w", err)
	}
	sd, err := stats.StandardDeviationPopulation(samples)
	if err != nil {
		return Summary{}, fmt.Errorf("std dev: %w", err)
	}
	lo, err := stats.Min(samples)
	if err != nil {
		return Summary{}, fmt.Errorf("min: %w", err)
	}
	hi, err := stats.Max(samples)
	if err != nil {
		return Summary{}, fmt.Errorf("max: %w", err)
	}
	med, err := stats.Median(samples)
	if err != nil {
		return Summary{}, fmt.Errorf("median: %w", err)
	}
	return Summary{
		Count:  len(samples),
		Mean:   mean,
		StdDev: sd,
		Min:    lo,
		Max:    hi,
		Median: med,
	}, nil
}
