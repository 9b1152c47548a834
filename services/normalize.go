package services

import "math"

// Normalize rescales values to the [0,1] range using the min and max observed
// within the slice. The result has the same length and order as the input.
//
// NaN marks a missing value: NaN entries are ignored when computing min/max
// and stay NaN in the output. An empty input, or one where every entry is
// missing, is returned as-is. When all defined values are equal the output is
// 0.5 everywhere — the set carries no discriminating information, and 0.5
// avoids both a divide-by-zero and an arbitrary winner.
//
// With lowerIsBetter the scale inverts, so the cheapest price maps to 1.
// Normalization is always relative to the given set; results from one
// comparison must never be reused for another.
func Normalize(values []float64, lowerIsBetter bool) []float64 {
	if len(values) == 0 {
		return values
	}

	min := math.NaN()
	max := math.NaN()
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(min) || v < min {
			min = v
		}
		if math.IsNaN(max) || v > max {
			max = v
		}
	}
	if math.IsNaN(min) {
		// Every value is missing.
		return values
	}

	out := make([]float64, len(values))
	for i, v := range values {
		switch {
		case math.IsNaN(v):
			out[i] = math.NaN()
		case min == max:
			out[i] = 0.5
		case lowerIsBetter:
			out[i] = (max - v) / (max - min)
		default:
			out[i] = (v - min) / (max - min)
		}
	}
	return out
}
