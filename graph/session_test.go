package graph

import "testing"

func buildSession(t *testing.T, opts Options) *Session {
	t.Helper()
	input := []InputSeries{
		{Name: "base", Samples: []Sample{{0, "3"}, {100, "1"}, {300, "2"}}},
		{Name: "edge", Samples: []Sample{{0, "4"}, {100, "2"}, {200, "5"}}},
	}
	return BuildSession(input, Window{StartSec: 0, EndSec: 300, StepSec: 100}, opts)
}

func TestSessionPipeline(t *testing.T) {
	opts := DefaultOptions()
	opts.Stacked = true
	s := buildSession(t, opts)
	if s.Grid.Len() != 4 {
		t.Fatalf("expected a 4-point grid, got %d", s.Grid.Len())
	}
	if len(s.Series) != 2 {
		t.Fatalf("expected 2 series, got %d", len(s.Series))
	}
	// Stacking ran: edge sits on top of base at ts 0.
	if got := s.Series[1].Datapoints[0].StackOffset; got != 3 {
		t.Errorf("expected edge offset 3 at ts 0, got %v", got)
	}
	if got := s.YAxisMax(""); got != 7 {
		t.Errorf("expected stacked y max 7, got %v", got)
	}
}

func TestSessionSelectionCollapsesStack(t *testing.T) {
	opts := DefaultOptions()
	opts.Stacked = true
	s := buildSession(t, opts)

	edgeKey := s.Series[1].Key
	visible := s.Visible(edgeKey)
	if len(visible) != 1 || visible[0].Key != edgeKey {
		t.Fatalf("selection should restrict the visible set to one series")
	}
	// With edge selected the stack collapses: its own max (5) sizes
	// the axis, not offset+value (8).
	if got := s.YAxisMax(edgeKey); got != 5 {
		t.Errorf("expected selected y max 5, got %v", got)
	}
	// An unknown key leaves everything visible.
	if got := len(s.Visible("nope-9")); got != 2 {
		t.Errorf("unknown selection should not filter, got %d series", got)
	}
}

func TestSessionEmptyInput(t *testing.T) {
	s := BuildSession(nil, Window{StartSec: 0, EndSec: 300, StepSec: 100}, DefaultOptions())
	if len(s.Series) != 0 {
		t.Errorf("expected no series, got %d", len(s.Series))
	}
	if s.Grid.Len() == 0 {
		t.Errorf("grid should still be valid for empty input")
	}
	if got := s.YAxisMax(""); got != DefaultMinSpread {
		t.Errorf("expected the min-spread floor, got %v", got)
	}
}

func TestStateTransitions(t *testing.T) {
	opts := DefaultOptions()
	opts.Stacked = true
	s := buildSession(t, opts)
	geom := Geometry{WidthPx: 300, HeightPx: 100}

	var st State
	st.OnPointerMove(s, Point{X: 0, Y: s.ValueScale("", geom).Map(5)}, geom)
	if st.Hover == nil {
		t.Fatal("expected hover state after a pointer move")
	}
	if st.Hover.TimestampSec != 0 {
		t.Errorf("expected hover timestamp 0, got %v", st.Hover.TimestampSec)
	}
	if len(st.Hover.Points) != 2 {
		t.Errorf("expected 2 hover points, got %d", len(st.Hover.Points))
	}

	st.OnPointerLeave()
	if st.Hover != nil {
		t.Errorf("pointer leave must clear hover state")
	}

	st.OnSelect("edge-1")
	if st.SelectedKey != "edge-1" {
		t.Errorf("expected selection edge-1, got %q", st.SelectedKey)
	}
	// Selecting the same key toggles the selection off.
	st.OnSelect("edge-1")
	if st.SelectedKey != "" {
		t.Errorf("expected selection cleared, got %q", st.SelectedKey)
	}

	st.OnHover("base-0")
	if st.HoveredKey != "base-0" {
		t.Errorf("expected hovered key base-0, got %q", st.HoveredKey)
	}
}

func TestStateSelectionChangesHoverScope(t *testing.T) {
	opts := DefaultOptions()
	opts.Stacked = true
	s := buildSession(t, opts)
	geom := Geometry{WidthPx: 300, HeightPx: 100}

	var st State
	st.OnSelect(s.Series[1].Key)
	// With a single selection the stack is collapsed, so the hover
	// resolves in line mode against the selected series alone.
	st.OnPointerMove(s, Point{X: 0, Y: 0}, geom)
	if st.Hover == nil {
		t.Fatal("expected hover state")
	}
	if len(st.Hover.Points) != 1 {
		t.Fatalf("expected a single hover point, got %d", len(st.Hover.Points))
	}
	p := st.Hover.Points[0]
	if p.Key != s.Series[1].Key {
		t.Errorf("expected the selected series, got %q", p.Key)
	}
	if p.GraphPosition != 4 {
		t.Errorf("expected position 4 (offset collapsed), got %v", p.GraphPosition)
	}
}

func TestSessionRebuildSwapsWholesale(t *testing.T) {
	s := buildSession(t, DefaultOptions())
	old := s.Series

	replacement := BuildSession(
		[]InputSeries{{Name: "other", Samples: []Sample{{0, "1"}}}},
		Window{StartSec: 0, EndSec: 100, StepSec: 50},
		DefaultOptions(),
	)
	// The old session's data is untouched by building a new one.
	if len(old) != 2 || old[0].Name != "base" {
		t.Errorf("rebuild must not disturb the previous session")
	}
	if len(replacement.Series) != 1 || replacement.Series[0].Name != "other" {
		t.Errorf("unexpected replacement session: %+v", replacement.Series)
	}
}
