// Package graph implements the data-processing core of the chart:
// aligning irregular time series onto a fixed grid, stacking, scale
// mapping, value formatting, and hover resolution. It performs no
// drawing and reads no ambient state; geometry and options are passed
// in by the caller.
package graph

import (
	"math"
	"strconv"
)

// GraphValue is either a numeric value or a gap. A gap marks the
// absence of data at a grid point and is distinct from zero: it draws
// as a break in the series and formats as a placeholder string.
type GraphValue struct {
	V   float64
	Gap bool
}

// Number wraps a finite float as a graphable value.
func Number(v float64) GraphValue {
	return GraphValue{V: v}
}

// GapValue returns the explicit absence-of-data marker.
func GapValue() GraphValue {
	return GraphValue{Gap: true}
}

// ParseValue converts a raw textual sample value into a graphable
// value. Anything that does not parse as a finite real number
// (including textual infinities and NaN) becomes a gap. Parse failure
// is an expected outcome, not an error.
func ParseValue(raw string) GraphValue {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return GapValue()
	}
	return FromFloat(v)
}

// FromFloat wraps an already-numeric sample value, turning non-finite
// values into gaps.
func FromFloat(v float64) GraphValue {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return GapValue()
	}
	return GraphValue{V: v}
}
