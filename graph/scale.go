package graph

// LinearScale is a plain-data linear mapping between a domain and a
// pixel range. Keeping it as data rather than captured closures makes
// the mapping trivially testable and lets hover resolution invert it
// exactly.
type LinearScale struct {
	DomainLo, DomainHi float64
	RangeLo, RangeHi   float64
}

// Map converts a domain value to a range (pixel) value by linear
// interpolation. No clamping: values outside the domain extrapolate.
// A zero-span domain degrades to the low end of the range instead of
// dividing by zero.
func (s LinearScale) Map(v float64) float64 {
	span := s.DomainHi - s.DomainLo
	if span == 0 {
		return s.RangeLo
	}
	return s.RangeLo + (v-s.DomainLo)/span*(s.RangeHi-s.RangeLo)
}

// Invert converts a range (pixel) value back to a domain value. No
// clamping: pixels outside the surface still invert to a meaningful
// domain value. A zero-span range degrades to the low end of the
// domain.
func (s LinearScale) Invert(r float64) float64 {
	span := s.RangeHi - s.RangeLo
	if span == 0 {
		return s.DomainLo
	}
	return s.DomainLo + (r-s.RangeLo)/span*(s.DomainHi-s.DomainLo)
}

// TimeScale maps the [start, end] time window onto [0, width] pixels.
func TimeScale(startSec, endSec, pixelWidth float64) LinearScale {
	return LinearScale{
		DomainLo: startSec,
		DomainHi: endSec,
		RangeLo:  0,
		RangeHi:  pixelWidth,
	}
}

// ValueScale maps [0, maxY] onto [height, 0]. The range is inverted so
// larger values plot higher on the surface.
func ValueScale(maxY, pixelHeight float64) LinearScale {
	return LinearScale{
		DomainLo: 0,
		DomainHi: maxY,
		RangeLo:  pixelHeight,
		RangeHi:  0,
	}
}

// MaxY sizes the y domain from the currently visible data: the largest
// graph value of any visible datapoint, floored at minSpread so a flat
// all-zero chart never produces a degenerate axis. In stacked mode the
// graph value of a point is its stack offset plus its own value; gaps
// never contribute.
func MaxY(visible []AlignedSeries, minSpread float64, stacked bool) float64 {
	maxY := minSpread
	for _, series := range visible {
		for _, point := range series.Datapoints {
			if point.Value.Gap {
				continue
			}
			v := point.Value.V
			if stacked {
				v += point.StackOffset
			}
			maxY = max(maxY, v)
		}
	}
	return maxY
}
