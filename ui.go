package main

import (
	"image"
	"image/color"

	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/text"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"

	"git.sr.ht/~whereswaldon/metric-scope/backend"
	"git.sr.ht/~whereswaldon/metric-scope/graph"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

// UI is responsible for holding the state of and drawing the top-level UI.
type UI struct {
	ws   backend.WindowState
	expl *explorer.Explorer

	chart       *ChartData
	explorerBtn widget.Clickable
	loadErr     string

	th            *material.Theme
	sessionStream *stream.Stream[backend.Session]
	session       backend.Session
}

func NewUI(ws backend.WindowState, expl *explorer.Explorer, opts graph.Options, spanSec, stepSec float64) *UI {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()), text.NoSystemFonts())
	ui := &UI{
		ws:    ws,
		th:    th,
		expl:  expl,
		chart: NewChart(opts, spanSec, stepSec),
	}
	ui.sessionStream = stream.New(ws.Controller, ws.Bundle.Datasource.LatestSessionStream)
	return ui
}

// Update the state of the UI and generate events.
func (ui *UI) Update(gtx C) {
	ui.sessionStream.ReadInto(gtx, &ui.session, backend.Session{})
	if ui.session.Err != nil {
		ui.loadErr = ui.session.Err.Error()
	}
	if ui.explorerBtn.Clicked(gtx) {
		if _, err := ui.ws.Bundle.Datasource.LoadFromFile(ui.expl); err != nil {
			ui.loadErr = err.Error()
		}
	}
}

func (ui *UI) layoutStartScreen(gtx C) D {
	l := material.Body1(ui.th, "No data yet.")
	return layout.Flex{
		Axis:      layout.Vertical,
		Alignment: layout.Middle,
		Spacing:   layout.SpaceAround,
	}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return l.Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return material.Button(ui.th, &ui.explorerBtn, "Open Sample CSV").Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			hint := "Pipe CSV on stdin with -stdin, or subscribe with -broker."
			return material.Body2(ui.th, hint).Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			errLabel := material.Body2(ui.th, ui.loadErr)
			errLabel.Color = color.NRGBA{R: 150, A: 255}
			return errLabel.Layout(gtx)
		}),
	)
}

// Layout the UI into the provided context.
func (ui *UI) Layout(gtx C) D {
	ui.Update(gtx)
	if ui.session.Data.Initialized() {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx C) D {
				if len(ui.loadErr) == 0 {
					return D{}
				}
				l := material.Body1(ui.th, ui.loadErr)
				l.Color = color.NRGBA{R: 150, A: 255}
				return l.Layout(gtx)
			}),
			layout.Flexed(1, func(gtx C) D {
				return ui.chart.Layout(gtx, ui.th, &ui.session.Data)
			}),
		)
	}
	return ui.layoutStartScreen(gtx)
}
