package graph

// DefaultMinSpread is the default minimum y-axis spread. It keeps an
// all-zero chart from collapsing to a flat axis.
const DefaultMinSpread = 0.012

// Window is the time window and step the chart is rendered over.
type Window struct {
	StartSec float64
	EndSec   float64
	StepSec  float64
}

// Geometry is the pixel size of the drawing surface. The core never
// reads it from the environment; the host hands in a fresh value with
// every call that needs one.
type Geometry struct {
	WidthPx  float64
	HeightPx float64
}

// Options are the chart's mode flags.
type Options struct {
	Theme         Theme
	Units         UnitScheme
	Stacked       bool
	SimpleTooltip bool
	MinSpread     float64
}

// DefaultOptions returns the documented defaults: mixed palette, plain
// units, line mode, full tooltip.
func DefaultOptions() Options {
	return Options{MinSpread: DefaultMinSpread}
}

// Session is the fully processed form of one input set over one
// window. It is rebuilt wholesale whenever the series set or window
// parameters change; consumers keep reading the old session until the
// replacement is complete, so a rebuild is atomic from their point of
// view.
type Session struct {
	Grid    TimeGrid
	Series  []AlignedSeries
	Options Options
}

// BuildSession runs the full processing pipeline: grid derivation,
// alignment, stacking, and color assignment. An empty input produces
// an empty aligned set over a still-valid grid.
func BuildSession(input []InputSeries, win Window, opts Options) *Session {
	grid := NewTimeGrid(win.StartSec, win.EndSec, win.StepSec)
	series := Align(input, grid, opts.Theme)
	Stack(series)
	return &Session{
		Grid:    grid,
		Series:  series,
		Options: opts,
	}
}

// Visible returns the series the chart should draw. A selection
// restricts the set to that single series; legend hover does not
// affect visibility, only fade.
func (s *Session) Visible(selectedKey string) []AlignedSeries {
	if selectedKey != "" {
		for _, series := range s.Series {
			if series.Key == selectedKey {
				return []AlignedSeries{series}
			}
		}
	}
	return s.Series
}

// stackedFor reports whether stacking applies given the current
// selection. Selecting a single series collapses the stack: its
// offsets are treated as zero regardless of what Stack computed.
func (s *Session) stackedFor(selectedKey string) bool {
	return s.Options.Stacked && selectedKey == ""
}

// YAxisMax is the y-domain size for the currently visible data.
func (s *Session) YAxisMax(selectedKey string) float64 {
	return MaxY(s.Visible(selectedKey), s.Options.MinSpread, s.stackedFor(selectedKey))
}

// TimeScale maps the session window onto the surface width.
func (s *Session) TimeScale(geom Geometry) LinearScale {
	return TimeScale(s.Grid.StartSec, s.Grid.EndSec, geom.WidthPx)
}

// ValueScale maps [0, YAxisMax] onto the surface height.
func (s *Session) ValueScale(selectedKey string, geom Geometry) LinearScale {
	return ValueScale(s.YAxisMax(selectedKey), geom.HeightPx)
}

// State is the chart's transient interaction state. It has no hidden
// fields and changes only through the transition methods below.
type State struct {
	SelectedKey string
	HoveredKey  string
	Hover       *HoverResult
}

// OnPointerMove resolves the hover for a cursor position against a
// stable session and records it.
func (st *State) OnPointerMove(s *Session, cursor Point, geom Geometry) {
	stacked := s.stackedFor(st.SelectedKey)
	result := ResolveHover(
		cursor,
		s.Visible(st.SelectedKey),
		s.TimeScale(geom),
		s.ValueScale(st.SelectedKey, geom),
		s.Grid,
		stacked,
		s.Options.SimpleTooltip,
	)
	st.Hover = &result
}

// OnPointerLeave clears all hover state: no timestamp, no pixel, no
// points. Tooltip and crosshair disappear.
func (st *State) OnPointerLeave() {
	st.Hover = nil
}

// OnSelect toggles the legend selection. Selecting the already
// selected series clears the selection. Any in-flight hover is
// dropped because the visible set it was resolved against changed.
func (st *State) OnSelect(key string) {
	if st.SelectedKey == key {
		st.SelectedKey = ""
	} else {
		st.SelectedKey = key
	}
	st.Hover = nil
}

// OnHover records which legend entry the pointer is over. Hover only
// drives visual fade, never data visibility.
func (st *State) OnHover(key string) {
	st.HoveredKey = key
}
