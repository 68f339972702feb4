package recommend

// degenerateValue is assigned to every entry of a column whose values are
// all equal. Any constant leaves the ranking unchanged; 0.5 keeps the
// composite inside [0,1] without favouring or penalising the column.
const degenerateValue = 0.5

// Normalize min-max scales values into [0,1]. The second return reports a
// degenerate column (max == min), in which case every entry is 0.5.
func Normalize(values []float64) ([]float64, bool) {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out, false
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	span := hi - lo
	if span == 0 {
		for i := range out {
			out[i] = degenerateValue
		}
		return out, true
	}

	for i, v := range values {
		out[i] = (v - lo) / span
	}
	return out, false
}
