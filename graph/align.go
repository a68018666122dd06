package graph

import (
	"image/color"
	"slices"
	"strconv"
	"strings"
)

// Sample is one raw observation supplied by a data source. Raw keeps
// the source's textual form so unparseable cells can become gaps
// instead of errors.
type Sample struct {
	TimestampSec float64
	Raw          string
}

// InputSeries is one unaligned series as supplied by the caller.
// Sample order is preserved as given: when two samples quantize to the
// same grid slot, the later one wins.
type InputSeries struct {
	Name    string
	Samples []Sample
}

// Datapoint is one grid-aligned value of a series. StackOffset is the
// cumulative sum of all lower-stacked series' values at the same
// timestamp, populated by Stack.
type Datapoint struct {
	TimestampSec float64
	Value        GraphValue
	StackOffset  float64
}

// AlignedSeries is one series mapped 1:1 onto a TimeGrid. Key is
// stable across re-renders of the same series set and identifies the
// series independent of its values.
type AlignedSeries struct {
	Name       string
	Key        string
	Ordinal    int
	Color      color.NRGBA
	Datapoints []Datapoint
}

// seriesKey builds the stable identity for a series at its canonical
// position.
func seriesKey(name string, ordinal int) string {
	return name + "-" + strconv.Itoa(ordinal)
}

// Align maps raw input series onto the grid. Series are sorted
// lexicographically by name first; that order is canonical and fixes
// both color assignment and stacking order. Every grid slot starts as
// a gap and each sample overwrites the slot its timestamp quantizes
// to.
func Align(input []InputSeries, grid TimeGrid, theme Theme) []AlignedSeries {
	sorted := make([]InputSeries, len(input))
	copy(sorted, input)
	slices.SortStableFunc(sorted, func(a, b InputSeries) int {
		return strings.Compare(a.Name, b.Name)
	})

	aligned := make([]AlignedSeries, 0, len(sorted))
	for ordinal, in := range sorted {
		out := AlignedSeries{
			Name:       in.Name,
			Key:        seriesKey(in.Name, ordinal),
			Ordinal:    ordinal,
			Color:      ColorFor(theme, ordinal),
			Datapoints: make([]Datapoint, grid.Len()),
		}
		for i, ts := range grid.Points {
			out.Datapoints[i] = Datapoint{
				TimestampSec: ts,
				Value:        GapValue(),
			}
		}
		for _, sample := range in.Samples {
			idx := grid.index(sample.TimestampSec)
			if idx < 0 {
				continue
			}
			out.Datapoints[idx].Value = ParseValue(sample.Raw)
		}
		aligned = append(aligned, out)
	}
	return aligned
}

// datapointAt locates the datapoint for a grid timestamp by binary
// search. Datapoints are grid-ordered, so any timestamp produced by
// quantizing against the same grid is found.
func (s AlignedSeries) datapointAt(ts float64) (Datapoint, bool) {
	idx, found := slices.BinarySearchFunc(s.Datapoints, ts, func(d Datapoint, target float64) int {
		switch {
		case d.TimestampSec < target-timeTolerance:
			return -1
		case d.TimestampSec > target+timeTolerance:
			return 1
		default:
			return 0
		}
	})
	if !found {
		return Datapoint{}, false
	}
	return s.Datapoints[idx], true
}
