package backend

import "testing"

func TestDatasetInsert(t *testing.T) {
	var d Dataset
	if d.Initialized() {
		t.Error("expected zero-value dataset to be uninitialized")
	}
	d.SetHeadings([]string{"cpu", "mem"}, []int{7, 9})
	if !d.Initialized() {
		t.Error("expected dataset with headings to be initialized")
	}
	rev := d.Revision
	d.Insert(Sample{TimestampSec: 1, Series: 7, Raw: "10"})
	d.Insert(Sample{TimestampSec: 2, Series: 9, Raw: "20"})
	d.Insert(Sample{TimestampSec: 3, Series: 42, Raw: "30"})
	if d.Revision != rev+2 {
		t.Errorf("expected two revisions for two known-series inserts, got %d", d.Revision-rev)
	}
	input := d.InputSeries()
	if len(input) != 2 {
		t.Fatalf("expected 2 input series, got %d", len(input))
	}
	if input[0].Name != "cpu" || len(input[0].Samples) != 1 || input[0].Samples[0].Raw != "10" {
		t.Errorf("unexpected cpu series: %+v", input[0])
	}
	if input[1].Name != "mem" || len(input[1].Samples) != 1 || input[1].Samples[0].Raw != "20" {
		t.Errorf("unexpected mem series: %+v", input[1])
	}
	minSec, maxSec, ok := d.Domain()
	if !ok || minSec != 1 || maxSec != 2 {
		t.Errorf("expected domain [1, 2], got [%f, %f] ok=%v", minSec, maxSec, ok)
	}
}

func TestDatasetLateHeadings(t *testing.T) {
	var d Dataset
	d.SetHeadings([]string{"cpu"}, []int{1})
	d.Insert(Sample{TimestampSec: 1, Series: 1, Raw: "5"})
	d.SetHeadings([]string{"mem"}, []int{2})
	d.Insert(Sample{TimestampSec: 2, Series: 2, Raw: "6"})
	input := d.InputSeries()
	if len(input) != 2 {
		t.Fatalf("expected 2 input series, got %d", len(input))
	}
	if input[0].Name != "cpu" || input[1].Name != "mem" {
		t.Errorf("unexpected series names: %q, %q", input[0].Name, input[1].Name)
	}
	if len(input[1].Samples) != 1 || input[1].Samples[0].Raw != "6" {
		t.Errorf("unexpected late series samples: %+v", input[1].Samples)
	}
}

func TestDatasetDomainEmpty(t *testing.T) {
	var d Dataset
	if _, _, ok := d.Domain(); ok {
		t.Error("expected empty dataset to report no domain")
	}
}
