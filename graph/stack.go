package graph

// Stack populates each datapoint's StackOffset with the cumulative sum
// of all lower-stacked series' values at the same grid point. Series
// must already be in canonical order (Align's output order); gaps
// contribute zero to the running sum. Offsets are always computed so a
// caller can switch between line and stacked rendering without
// realigning; line-mode callers simply ignore them.
func Stack(series []AlignedSeries) {
	if len(series) == 0 {
		return
	}
	sums := make([]float64, len(series[0].Datapoints))
	for i := range series {
		points := series[i].Datapoints
		for j := range points {
			points[j].StackOffset = sums[j]
			if !points[j].Value.Gap {
				sums[j] += points[j].Value.V
			}
		}
	}
}
