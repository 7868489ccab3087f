package histogram

import "math"

// Clean returns the finite elements of raw in their original order, plus
// the number of elements removed. NaN and ±Inf never enter statistics or
// binning; running Clean over an already-clean sequence returns an equal
// sequence with removed == 0.
func Clean(raw []float64) (clean []float64, removed int) {
	clean = make([]float64, 0, len(raw))
	for _, v := range raw {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			removed++
			continue
		}
		clean = append(clean, v)
	}
	return clean, removed
}
