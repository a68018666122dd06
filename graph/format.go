package graph

import (
	"math"
	"strconv"
)

// UnitScheme names how axis and tooltip values are rendered.
type UnitScheme uint8

const (
	UnitNone UnitScheme = iota
	UnitBytes
	UnitPercent
)

// gapLabel is the fixed placeholder every scheme renders a gap as.
const gapLabel = "---"

type unitPrefix struct {
	label string
	size  float64
}

var metricPrefixes = []unitPrefix{
	{"T", 1e12},
	{"G", 1e9},
	{"M", 1e6},
	{"k", 1e3},
}

var bytePrefixes = []unitPrefix{
	{"TB", 1 << 40},
	{"GB", 1 << 30},
	{"MB", 1 << 20},
	{"kB", 1 << 10},
	{"B", 1},
}

// decimal precisions for sub-1 magnitudes, coarsest first. The number
// of fraction digits used is the index into this list.
var subUnitPrecisions = []float64{1, 0.1, 0.01, 0.001, 0.0001}

// Formatter returns a rendering function for one axis. The unit prefix
// or decimal precision is chosen once from the reference magnitude
// (typically the y-axis max) so that every label on that axis shares
// one unit, rather than each value picking its own.
func Formatter(scheme UnitScheme, reference float64) func(GraphValue) string {
	reference = math.Abs(reference)
	switch scheme {
	case UnitBytes:
		unit := bytePrefixes[len(bytePrefixes)-1]
		for _, p := range bytePrefixes {
			if reference/p.size >= 2 {
				unit = p
				break
			}
		}
		return func(v GraphValue) string {
			if v.Gap {
				return gapLabel
			}
			return strconv.FormatFloat(math.Round(v.V/unit.size), 'f', 0, 64) + " " + unit.label
		}
	case UnitPercent:
		return func(v GraphValue) string {
			if v.Gap {
				return gapLabel
			}
			if v.V == 0 {
				return "0%"
			}
			return strconv.FormatFloat(v.V*100, 'f', 2, 64) + "%"
		}
	default:
		for _, p := range metricPrefixes {
			if reference/p.size >= 2 {
				p := p
				return func(v GraphValue) string {
					if v.Gap {
						return gapLabel
					}
					if v.V == 0 {
						return "0"
					}
					return trimTrailingZero(strconv.FormatFloat(v.V/p.size, 'f', 1, 64)) + p.label
				}
			}
		}
		digits := -1
		for i, p := range subUnitPrecisions {
			if reference/p >= 2 {
				digits = i
				break
			}
		}
		if digits < 0 {
			// No threshold matched: integer precision, no prefix.
			digits = 0
		}
		return func(v GraphValue) string {
			if v.Gap {
				return gapLabel
			}
			if v.V == 0 {
				return "0"
			}
			return strconv.FormatFloat(v.V, 'f', digits, 64)
		}
	}
}

// trimTrailingZero drops an insignificant ".0" suffix so whole
// prefixed values read "2k" rather than "2.0k".
func trimTrailingZero(s string) string {
	if len(s) > 2 && s[len(s)-2:] == ".0" {
		return s[:len(s)-2]
	}
	return s
}
