package main

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"

	"gioui.org/f32"
	"gioui.org/font"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/component"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"git.sr.ht/~whereswaldon/metric-scope/backend"
	"git.sr.ht/~whereswaldon/metric-scope/graph"
)

var pauseIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.AVPause)
	return icon
}()

var playIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.AVPlayArrow)
	return icon
}()

// fadedAlpha is applied to every series except the one whose legend
// entry is hovered.
const fadedAlpha = 100

// ChartData displays one dataset as a line or stacked area chart with
// a legend, hover tooltip, and pausable live window.
type ChartData struct {
	options graph.Options
	spanSec float64
	stepSec float64

	session  *graph.Session
	state    graph.State
	revision uint64
	window   graph.Window

	paused    bool
	pausedEnd float64
	pauseBtn  widget.Clickable
	stacked   widget.Bool

	keyTable component.GridState
	rows     []*widget.Clickable

	// returnPath is a scratch slice used to build each stacked band's
	// lower edge.
	returnPath []f32.Point
	// dots is a scratch slice collecting isolated datapoints that a
	// stroked path cannot represent.
	dots []f32.Point

	// hover gesture state
	pos       f32.Point
	isHovered bool
}

func NewChart(opts graph.Options, spanSec, stepSec float64) *ChartData {
	if stepSec <= 0 {
		stepSec = 1
	}
	if spanSec < stepSec {
		spanSec = stepSec
	}
	return &ChartData{
		options: opts,
		spanSec: spanSec,
		stepSec: stepSec,
		stacked: widget.Bool{Value: opts.Stacked},
	}
}

func rec(gtx C, w layout.Widget) (D, op.CallOp) {
	macro := op.Record(gtx.Ops)
	dims := w(gtx)
	call := macro.Stop()
	return dims, call
}

func ceil[T constraints.Integer | constraints.Float](a T) T {
	return T(math.Ceil(float64(a)))
}

// computeWindow derives the visible time window from the dataset's
// domain. The end is snapped up to a step multiple so that grid points
// stay put across frames as new samples arrive.
func (c *ChartData) computeWindow(data *backend.Dataset) graph.Window {
	endSec := c.spanSec
	if _, dataMax, ok := data.Domain(); ok {
		endSec = ceil(dataMax/c.stepSec) * c.stepSec
	}
	if c.paused {
		endSec = c.pausedEnd
	}
	return graph.Window{
		StartSec: endSec - c.spanSec,
		EndSec:   endSec,
		StepSec:  c.stepSec,
	}
}

func (c *ChartData) Update(gtx C, data *backend.Dataset) {
	if c.pauseBtn.Clicked(gtx) {
		c.paused = !c.paused
		c.pausedEnd = c.window.EndSec
	}
	c.stacked.Update(gtx)
	c.options.Stacked = c.stacked.Value
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: c,
			Kinds:  pointer.Enter | pointer.Leave | pointer.Move,
		})
		if !ok {
			break
		}
		switch ev := ev.(type) {
		case pointer.Event:
			switch ev.Kind {
			case pointer.Enter:
				c.isHovered = true
				c.pos = ev.Position
			case pointer.Leave, pointer.Cancel:
				c.isHovered = false
				c.state.OnPointerLeave()
			case pointer.Move:
				c.pos = ev.Position
			}
		}
	}
	win := c.computeWindow(data)
	if c.session == nil || data.Revision != c.revision || win != c.window || c.session.Options != c.options {
		c.session = graph.BuildSession(data.InputSeries(), win, c.options)
		c.revision = data.Revision
		c.window = win
		if c.state.SelectedKey != "" && !c.hasKey(c.state.SelectedKey) {
			c.state.OnSelect(c.state.SelectedKey)
		}
	}
	for len(c.rows) < len(c.session.Series) {
		c.rows = append(c.rows, &widget.Clickable{})
	}
	for i, click := range c.rows {
		if click.Clicked(gtx) && i < len(c.session.Series) {
			c.state.OnSelect(c.session.Series[i].Key)
		}
	}
}

func (c *ChartData) hasKey(key string) bool {
	for _, series := range c.session.Series {
		if series.Key == key {
			return true
		}
	}
	return false
}

func (c *ChartData) Layout(gtx C, th *material.Theme, data *backend.Dataset) D {
	c.Update(gtx, data)
	if len(c.session.Series) < 1 {
		return D{Size: gtx.Constraints.Max}
	}
	maxY := c.session.YAxisMax(c.state.SelectedKey)
	format := graph.Formatter(c.options.Units, maxY)

	startLabel := material.Body2(th, strconv.FormatFloat(c.session.Grid.StartSec, 'f', 0, 64)+"s")
	endLabel := material.Body2(th, strconv.FormatFloat(c.session.Grid.EndSec, 'f', 0, 64)+"s")
	xAxisLabel := material.Body2(th, fmt.Sprintf("Time (spans %.0f s, step %.0f s)", c.spanSec, c.stepSec))
	xAxisLabel.MaxLines = 1
	xAxisLabel.Alignment = text.Middle

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Flexed(1, func(gtx C) D {
			return c.layoutPlot(gtx, th, format, maxY)
		}),
		layout.Rigid(func(gtx C) D {
			return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
				layout.Rigid(func(gtx C) D {
					gtx.Constraints = layout.Exact(image.Pt(gtx.Dp(24), gtx.Dp(24)))
					icon := pauseIcon
					if c.paused {
						icon = playIcon
					}
					return material.Clickable(gtx, &c.pauseBtn, func(gtx C) D {
						return layout.Center.Layout(gtx, func(gtx C) D {
							return icon.Layout(gtx, th.Fg)
						})
					})
				}),
				layout.Rigid(startLabel.Layout),
				layout.Flexed(1, xAxisLabel.Layout),
				layout.Rigid(endLabel.Layout),
			)
		}),
		layout.Rigid(func(gtx C) D {
			return c.layoutKey(gtx, th, format)
		}),
	)
}

func (c *ChartData) layoutPlot(gtx C, th *material.Theme, format func(graph.GraphValue) string, maxY float64) D {
	session := c.session
	geom := graph.Geometry{
		WidthPx:  float64(gtx.Constraints.Max.X),
		HeightPx: float64(gtx.Constraints.Max.Y),
	}
	timeScale := session.TimeScale(geom)
	valueScale := session.ValueScale(c.state.SelectedKey, geom)
	visible := session.Visible(c.state.SelectedKey)
	stacked := c.options.Stacked && c.state.SelectedKey == ""

	defer clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops).Pop()
	event.Op(gtx.Ops, c)

	// Draw grid underneath plot.
	c.layoutYAxisGrid(gtx, th, format, maxY, valueScale)
	if stacked {
		c.layoutStackPlot(gtx, visible, timeScale, valueScale)
	} else {
		c.layoutLinePlot(gtx, visible, timeScale, valueScale)
	}
	if c.isHovered {
		c.state.OnPointerMove(session, graph.Point{X: float64(c.pos.X), Y: float64(c.pos.Y)}, geom)
		c.layoutHover(gtx, th, format, timeScale)
	}
	return D{Size: gtx.Constraints.Max}
}

// seriesColor fades every series except the hovered one.
func (c *ChartData) seriesColor(series graph.AlignedSeries) color.NRGBA {
	col := series.Color
	if c.state.HoveredKey != "" && c.state.HoveredKey != series.Key {
		col.A = fadedAlpha
	}
	return col
}

func (c *ChartData) layoutYAxisGrid(gtx C, th *material.Theme, format func(graph.GraphValue) string, maxY float64, valueScale graph.LinearScale) {
	gtx.Constraints.Min = image.Point{}
	oneDp := gtx.Dp(1)
	const divisions = 4
	for i := 0; i <= divisions; i++ {
		v := maxY * float64(i) / divisions
		y := int(valueScale.Map(v))
		a := uint8(50)
		if i == 0 || i == divisions {
			a = 100
		}
		paint.FillShape(gtx.Ops, color.NRGBA{A: a}, clip.Rect{
			Min: image.Point{Y: y - oneDp},
			Max: image.Point{X: gtx.Constraints.Max.X, Y: y},
		}.Op())
		if i == 0 {
			continue
		}
		label := material.Body2(th, format(graph.Number(v)))
		label.Color.A = 200
		_, call := rec(gtx, label.Layout)
		stack := op.Offset(image.Point{X: gtx.Dp(2), Y: y}).Push(gtx.Ops)
		call.Add(gtx.Ops)
		stack.Pop()
	}
}

func (c *ChartData) layoutLinePlot(gtx C, visible []graph.AlignedSeries, timeScale, valueScale graph.LinearScale) {
	width := float32(gtx.Dp(2))
	dotRadius := gtx.Dp(2)
	for _, series := range visible {
		col := c.seriesColor(series)
		c.dots = c.dots[:0]
		var p clip.Path
		p.Begin(gtx.Ops)
		runLen := 0
		var last f32.Point
		endRun := func() {
			// A one-point run strokes nothing; remember it and draw a
			// dot once the path is finished.
			if runLen == 1 {
				c.dots = append(c.dots, last)
			}
			runLen = 0
		}
		for _, dp := range series.Datapoints {
			if dp.Value.Gap {
				endRun()
				continue
			}
			pt := f32.Pt(
				float32(timeScale.Map(dp.TimestampSec)),
				float32(valueScale.Map(dp.Value.V)),
			)
			if runLen == 0 {
				p.MoveTo(pt)
			} else {
				p.LineTo(pt)
			}
			last = pt
			runLen++
		}
		endRun()
		paint.FillShape(gtx.Ops, col, clip.Stroke{
			Path:  p.End(),
			Width: width,
		}.Op())
		for _, pt := range c.dots {
			center := image.Pt(int(pt.X), int(pt.Y))
			paint.FillShape(gtx.Ops, col, clip.Ellipse{
				Min: center.Sub(image.Pt(dotRadius, dotRadius)),
				Max: center.Add(image.Pt(dotRadius, dotRadius)),
			}.Op(gtx.Ops))
		}
	}
}

func (c *ChartData) layoutStackPlot(gtx C, visible []graph.AlignedSeries, timeScale, valueScale graph.LinearScale) {
	for _, series := range visible {
		col := c.seriesColor(series)
		dps := series.Datapoints
		for start := 0; start < len(dps); {
			if dps[start].Value.Gap {
				start++
				continue
			}
			end := start
			for end < len(dps) && !dps[end].Value.Gap {
				end++
			}
			c.layoutBand(gtx, col, dps[start:end], timeScale, valueScale)
			start = end
		}
	}
}

// layoutBand fills the area between one gap-free run's stack offset and
// its top edge.
func (c *ChartData) layoutBand(gtx C, col color.NRGBA, run []graph.Datapoint, timeScale, valueScale graph.LinearScale) {
	if len(run) == 1 {
		dp := run[0]
		x := int(timeScale.Map(dp.TimestampSec))
		w := gtx.Dp(1)
		paint.FillShape(gtx.Ops, col, clip.Rect{
			Min: image.Pt(x-w, int(valueScale.Map(dp.StackOffset+dp.Value.V))),
			Max: image.Pt(x+w, int(valueScale.Map(dp.StackOffset))),
		}.Op())
		return
	}
	c.returnPath = c.returnPath[:0]
	var p clip.Path
	p.Begin(gtx.Ops)
	for i, dp := range run {
		x := float32(timeScale.Map(dp.TimestampSec))
		top := f32.Pt(x, float32(valueScale.Map(dp.StackOffset+dp.Value.V)))
		if i == 0 {
			p.MoveTo(top)
		} else {
			p.LineTo(top)
		}
		c.returnPath = append(c.returnPath, f32.Pt(x, float32(valueScale.Map(dp.StackOffset))))
	}
	for i := range c.returnPath {
		p.LineTo(c.returnPath[len(c.returnPath)-(i+1)])
	}
	p.Close()
	paint.FillShape(gtx.Ops, col, clip.Outline{Path: p.End()}.Op())
}

func (c *ChartData) layoutHover(gtx C, th *material.Theme, format func(graph.GraphValue) string, timeScale graph.LinearScale) {
	hover := c.state.Hover
	if hover == nil || len(hover.Points) == 0 {
		return
	}
	xR := ceil(float32(timeScale.Map(hover.TimestampSec)))
	xL := xR - float32(gtx.Dp(1))
	paint.FillShape(gtx.Ops, color.NRGBA{A: 255}, clip.Rect{
		Min: image.Point{X: int(xL)},
		Max: image.Point{X: int(xR), Y: gtx.Constraints.Max.Y},
	}.Op())

	children := make([]layout.FlexChild, 0, len(hover.Points))
	for _, pt := range hover.Points {
		pt := pt
		children = append(children, layout.Rigid(func(gtx C) D {
			label := material.Body2(th, pt.Name+" "+format(pt.Value))
			if pt.Focused {
				label.Font.Weight = font.Bold
			}
			return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
				layout.Rigid(func(gtx C) D {
					size := image.Pt(gtx.Dp(8), gtx.Dp(8))
					paint.FillShape(gtx.Ops, pt.Color, clip.Ellipse{Max: size}.Op(gtx.Ops))
					return D{Size: size}
				}),
				layout.Rigid(layout.Spacer{Width: 8}.Layout),
				layout.Rigid(label.Layout),
			)
		}))
	}

	origConstraints := gtx.Constraints
	gtx.Constraints.Min = image.Point{}
	hoverInfoMacro := op.Record(gtx.Ops)
	hoverInfoDims := layout.Background{}.Layout(gtx,
		func(gtx C) D {
			paint.FillShape(gtx.Ops, color.NRGBA{R: 255, G: 255, B: 255, A: 150}, clip.Rect{Max: gtx.Constraints.Min}.Op())
			return D{Size: gtx.Constraints.Min}
		},
		func(gtx C) D {
			return layout.UniformInset(10).Layout(gtx, func(gtx C) D {
				return layout.Flex{Axis: layout.Vertical}.Layout(gtx, children...)
			})
		},
	)
	hoverInfoCall := hoverInfoMacro.Stop()
	gtx.Constraints = origConstraints

	pos := image.Point{}
	if int(xL) > gtx.Constraints.Max.X-int(xR) {
		pos.X = max(int(xL)-hoverInfoDims.Size.X, 0)
	} else {
		pos.X = min(int(xR), gtx.Constraints.Max.X-hoverInfoDims.Size.X)
	}
	if offscreenY := gtx.Constraints.Max.Y - (int(c.pos.Y) + hoverInfoDims.Size.Y); offscreenY < 0 {
		pos.Y = int(c.pos.Y) + offscreenY
	} else {
		pos.Y = int(c.pos.Y)
	}
	transform := op.Offset(pos).Push(gtx.Ops)
	hoverInfoCall.Add(gtx.Ops)
	transform.Pop()
}

func (c *ChartData) layoutKey(gtx C, th *material.Theme, format func(graph.GraphValue) string) D {
	session := c.session
	hovered := ""
	for i, click := range c.rows {
		if i < len(session.Series) && click.Hovered() {
			hovered = session.Series[i].Key
		}
	}
	c.state.OnHover(hovered)

	table := component.Table(th, &c.keyTable)
	table.HScrollbarStyle.Indicator.MinorWidth = 0
	table.HScrollbarStyle.Track.MinorPadding = 0
	table.VScrollbarStyle.Indicator.MinorWidth = 0
	table.VScrollbarStyle.Track.MinorPadding = 0
	colorColWidth := gtx.Dp(50)
	latestColWidth := gtx.Dp(100)
	nameColWidth := gtx.Constraints.Max.X - colorColWidth - latestColWidth - gtx.Dp(table.VScrollbarStyle.Width())
	rowHeight := gtx.Sp(20)
	const (
		colorCol = iota
		seriesNameCol
		latestCol
		numCols
	)
	checkRow := material.CheckBox(th, &c.stacked, "Stacked")
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(checkRow.Layout),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Max.Y = min(gtx.Constraints.Max.Y, rowHeight*(len(session.Series)+1))
			return table.Layout(gtx, len(session.Series), numCols,
				func(axis layout.Axis, index, constraint int) int {
					if axis == layout.Vertical {
						return min(constraint, rowHeight)
					}
					var size int
					switch index {
					case colorCol:
						size = colorColWidth
					case seriesNameCol:
						size = nameColWidth
					case latestCol:
						size = latestColWidth
					}
					return min(size, constraint)
				},
				func(gtx C, index int) D {
					var l material.LabelStyle
					switch index {
					case colorCol:
						l = material.Body1(th, "Color")
					case seriesNameCol:
						l = material.Body1(th, "Data Series Name")
						l.Alignment = text.Middle
					case latestCol:
						l = material.Body1(th, "Latest")
						l.Alignment = text.End
					default:
						l = material.Body1(th, "???")
					}
					l.Color = th.ContrastFg
					return layout.Background{}.Layout(gtx,
						func(gtx C) D {
							paint.FillShape(gtx.Ops, th.ContrastBg, clip.Rect{Max: gtx.Constraints.Max}.Op())
							return D{Size: gtx.Constraints.Min}
						}, func(gtx C) D {
							return l.Layout(gtx)
						},
					)
				},
				func(gtx C, row, col int) (dims D) {
					defer func() {
						dims.Size = gtx.Constraints.Constrain(dims.Size)
					}()
					if row >= len(session.Series) || row >= len(c.rows) {
						return D{Size: gtx.Constraints.Max}
					}
					series := session.Series[row]
					faded := c.state.HoveredKey != "" && c.state.HoveredKey != series.Key
					selected := c.state.SelectedKey == series.Key
					dims = layout.UniformInset(2).Layout(gtx, func(gtx C) D {
						switch col {
						case colorCol:
							return layout.Center.Layout(gtx, func(gtx C) D {
								sideLen := gtx.Dp(10)
								sz := image.Pt(sideLen, sideLen)
								fullColor := series.Color
								if faded {
									fullColor.A = fadedAlpha
								}
								paint.FillShape(gtx.Ops, fullColor, clip.Rect{Max: sz}.Op())
								return D{Size: sz}
							})
						case seriesNameCol:
							return c.rows[row].Layout(gtx, func(gtx C) D {
								l := material.Body2(th, series.Name)
								if faded {
									l.Color.A = fadedAlpha
								}
								if selected {
									l.Font.Weight = font.Bold
								}
								gtx.Constraints.Min = gtx.Constraints.Max
								return l.Layout(gtx)
							})
						case latestCol:
							latest := graph.GapValue()
							if n := len(series.Datapoints); n > 0 {
								latest = series.Datapoints[n-1].Value
							}
							l := material.Body2(th, format(latest))
							if faded {
								l.Color.A = fadedAlpha
							}
							l.Alignment = text.End
							return l.Layout(gtx)
						default:
							return D{Size: gtx.Constraints.Max}
						}
					})
					if selected {
						bg := series.Color
						bg.A = 50
						paint.FillShape(gtx.Ops, bg, clip.Rect{Max: gtx.Constraints.Max}.Op())
					} else if row&1 != 0 {
						paint.FillShape(gtx.Ops, color.NRGBA{A: 25}, clip.Rect{Max: gtx.Constraints.Max}.Op())
					}
					return dims
				})
		}),
	)
}
