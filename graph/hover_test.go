package graph

import "testing"

// buildStacked aligns and stacks a small two-series set over a
// four-point grid:
//
//	ts:   0    100  200  300
//	base: 3    1    ---  2
//	edge: 4    2    5    ---
func buildStacked(t *testing.T) (TimeGrid, []AlignedSeries) {
	t.Helper()
	grid := NewTimeGrid(0, 300, 100)
	input := []InputSeries{
		{Name: "base", Samples: []Sample{{0, "3"}, {100, "1"}, {300, "2"}}},
		{Name: "edge", Samples: []Sample{{0, "4"}, {100, "2"}, {200, "5"}}},
	}
	series := Align(input, grid, ThemeMixed)
	Stack(series)
	return grid, series
}

func TestResolveHoverStackedFocus(t *testing.T) {
	grid, series := buildStacked(t)
	timeScale := TimeScale(0, 300, 300)
	valueScale := ValueScale(10, 100)

	// Cursor at ts 0, value 5: "edge" is stacked from 3 to 7, "base"
	// from 0 to 3. The innermost band containing the cursor is "edge"
	// (top 7 >= 5); "base" does not qualify (top 3 < 5).
	cursor := Point{X: timeScale.Map(0), Y: valueScale.Map(5)}
	result := ResolveHover(cursor, series, timeScale, valueScale, grid, true, false)

	if result.TimestampSec != 0 {
		t.Fatalf("expected hover timestamp 0, got %v", result.TimestampSec)
	}
	if len(result.Points) != 2 {
		t.Fatalf("expected 2 hover points, got %d", len(result.Points))
	}
	for _, p := range result.Points {
		switch p.Name {
		case "edge":
			if !p.Focused {
				t.Errorf("expected edge to be focused")
			}
			if p.GraphPosition != 7 {
				t.Errorf("expected stacked position 7, got %v", p.GraphPosition)
			}
		case "base":
			if p.Focused {
				t.Errorf("base should not be focused")
			}
			if p.GraphPosition != 3 {
				t.Errorf("expected stacked position 3, got %v", p.GraphPosition)
			}
		}
	}
}

func TestResolveHoverStackedAboveAllBands(t *testing.T) {
	grid, series := buildStacked(t)
	timeScale := TimeScale(0, 300, 300)
	valueScale := ValueScale(10, 100)

	// Cursor above every band top: nothing qualifies, nothing focuses.
	cursor := Point{X: timeScale.Map(0), Y: valueScale.Map(9)}
	result := ResolveHover(cursor, series, timeScale, valueScale, grid, true, false)
	for _, p := range result.Points {
		if p.Focused {
			t.Errorf("no series should be focused above the stack, but %q is", p.Name)
		}
	}
}

func TestResolveHoverLineFocus(t *testing.T) {
	grid, series := buildStacked(t)
	timeScale := TimeScale(0, 300, 300)
	valueScale := ValueScale(10, 100)

	// Line mode at ts 100: values are 1 and 2. Cursor value 1.8 is
	// closest to 2.
	cursor := Point{X: timeScale.Map(100), Y: valueScale.Map(1.8)}
	result := ResolveHover(cursor, series, timeScale, valueScale, grid, false, false)
	if result.TimestampSec != 100 {
		t.Fatalf("expected hover timestamp 100, got %v", result.TimestampSec)
	}
	for _, p := range result.Points {
		if p.Name == "edge" && !p.Focused {
			t.Errorf("expected edge (value 2) to win the nearest-value tie-break")
		}
		if p.Name == "base" && p.Focused {
			t.Errorf("base should not be focused")
		}
	}
}

func TestResolveHoverGapExcludedFromFocus(t *testing.T) {
	grid, series := buildStacked(t)
	timeScale := TimeScale(0, 300, 300)
	valueScale := ValueScale(10, 100)

	// At ts 200 "base" has a gap. It still yields a hover point but
	// must not win focus even though a gap's zero position might be
	// numerically closest.
	cursor := Point{X: timeScale.Map(200), Y: valueScale.Map(0.1)}
	result := ResolveHover(cursor, series, timeScale, valueScale, grid, false, false)
	if len(result.Points) != 2 {
		t.Fatalf("expected 2 hover points, got %d", len(result.Points))
	}
	for _, p := range result.Points {
		switch p.Name {
		case "base":
			if !p.Value.Gap {
				t.Errorf("expected a gap value for base at ts 200")
			}
			if p.Focused {
				t.Errorf("a gap must never be focused")
			}
		case "edge":
			if !p.Focused {
				t.Errorf("expected edge to be focused as the only non-gap series")
			}
		}
	}
}

func TestResolveHoverAllGaps(t *testing.T) {
	grid := NewTimeGrid(0, 100, 100)
	input := []InputSeries{
		{Name: "a", Samples: nil},
		{Name: "b", Samples: nil},
	}
	series := Align(input, grid, ThemeMixed)
	Stack(series)
	result := ResolveHover(Point{X: 0, Y: 0}, series, TimeScale(0, 100, 100), ValueScale(1, 100), grid, false, false)
	for _, p := range result.Points {
		if p.Focused {
			t.Errorf("nothing should be focused when every series is a gap")
		}
	}
}

func TestResolveHoverSimpleTooltip(t *testing.T) {
	grid, series := buildStacked(t)
	timeScale := TimeScale(0, 300, 300)
	valueScale := ValueScale(10, 100)

	cursor := Point{X: timeScale.Map(0), Y: valueScale.Map(5)}
	result := ResolveHover(cursor, series, timeScale, valueScale, grid, true, true)
	if len(result.Points) != 1 {
		t.Fatalf("simple tooltip should keep only the focused entry, got %d", len(result.Points))
	}
	if result.Points[0].Name != "edge" || !result.Points[0].Focused {
		t.Errorf("expected the focused entry to be edge, got %+v", result.Points[0])
	}

	// With the cursor above the stack nothing focuses, so the simple
	// tooltip is empty.
	cursor = Point{X: timeScale.Map(0), Y: valueScale.Map(9)}
	result = ResolveHover(cursor, series, timeScale, valueScale, grid, true, true)
	if len(result.Points) != 0 {
		t.Errorf("expected an empty simple tooltip, got %d entries", len(result.Points))
	}
}

func TestResolveHoverQuantizesCursor(t *testing.T) {
	grid, series := buildStacked(t)
	timeScale := TimeScale(0, 300, 300)
	valueScale := ValueScale(10, 100)

	// A cursor between grid points snaps to the nearest one; exactly
	// halfway snaps up.
	cursor := Point{X: timeScale.Map(130), Y: valueScale.Map(1)}
	result := ResolveHover(cursor, series, timeScale, valueScale, grid, false, false)
	if result.TimestampSec != 100 {
		t.Errorf("expected 130 to snap to 100, got %v", result.TimestampSec)
	}
	cursor = Point{X: timeScale.Map(150), Y: valueScale.Map(1)}
	result = ResolveHover(cursor, series, timeScale, valueScale, grid, false, false)
	if result.TimestampSec != 200 {
		t.Errorf("expected the half boundary to snap up to 200, got %v", result.TimestampSec)
	}
}
