package backend

import "git.sr.ht/~whereswaldon/metric-scope/graph"

// Dataset accumulates raw samples per series in arrival order. Arrival
// order matters: when two samples land on the same grid slot during
// alignment, the later one wins, so the dataset never reorders what a
// source produced.
type Dataset struct {
	Names   []string
	Samples [][]graph.Sample
	// Revision increments on every mutation so consumers can tell
	// whether a rebuild of their processed state is due.
	Revision uint64
	// seriesMapping maps from series identifiers used by the backend
	// to the index of a series in this structure.
	seriesMapping map[int]int
}

func (d *Dataset) Initialized() bool {
	return len(d.Names) != 0
}

// SetHeadings registers series names. It must be invoked at least once
// prior to the first call to [Insert] and may be invoked again to
// register additional series.
//
// The series slice provides the backend's ID for each series, which is
// likely to differ from the index used to store the data in this type.
func (d *Dataset) SetHeadings(headings []string, series []int) {
	if d.seriesMapping == nil {
		d.seriesMapping = make(map[int]int)
	}
	for i, identifier := range series {
		d.seriesMapping[identifier] = len(d.Names)
		d.Names = append(d.Names, headings[i])
		d.Samples = append(d.Samples, nil)
	}
	d.Revision++
}

// Insert appends one raw sample to its series. Samples for series
// never registered via [SetHeadings] are dropped.
func (d *Dataset) Insert(sample Sample) {
	localIdx, ok := d.seriesMapping[sample.Series]
	if !ok {
		return
	}
	d.Samples[localIdx] = append(d.Samples[localIdx], graph.Sample{
		TimestampSec: sample.TimestampSec,
		Raw:          sample.Raw,
	})
	d.Revision++
}

// InputSeries converts the dataset into the graph core's input form.
// The returned slices alias the dataset's sample storage; the core
// consumes them within a single rebuild.
func (d *Dataset) InputSeries() []graph.InputSeries {
	out := make([]graph.InputSeries, 0, len(d.Names))
	for i, name := range d.Names {
		out = append(out, graph.InputSeries{
			Name:    name,
			Samples: d.Samples[i],
		})
	}
	return out
}

// Domain reports the time range covered by the raw data.
func (d *Dataset) Domain() (minSec, maxSec float64, ok bool) {
	for _, samples := range d.Samples {
		for _, s := range samples {
			if !ok {
				minSec, maxSec, ok = s.TimestampSec, s.TimestampSec, true
				continue
			}
			minSec = min(minSec, s.TimestampSec)
			maxSec = max(maxSec, s.TimestampSec)
		}
	}
	return minSec, maxSec, ok
}
