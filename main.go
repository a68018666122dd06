package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"

	"git.sr.ht/~whereswaldon/metric-scope/backend"
	"git.sr.ht/~whereswaldon/metric-scope/graph"
)

func parsePalette(name string) graph.Theme {
	switch name {
	case "blue":
		return graph.ThemeBlue
	case "purple":
		return graph.ThemePurple
	default:
		return graph.ThemeMixed
	}
}

func parseUnits(name string) graph.UnitScheme {
	switch name {
	case "bytes":
		return graph.UnitBytes
	case "percent":
		return graph.UnitPercent
	default:
		return graph.UnitNone
	}
}

func main() {
	stdin := flag.Bool("stdin", false, "read CSV sample data from stdin")
	broker := flag.String("broker", "", "MQTT broker to subscribe to for live samples (empty to disable)")
	topic := flag.String("topic", "metrics/samples", "MQTT topic carrying sample payloads")
	palette := flag.String("palette", "mixed", "series palette (mixed, blue, purple)")
	units := flag.String("units", "none", "value unit scheme (none, bytes, percent)")
	stacked := flag.Bool("stacked", false, "draw series as a stacked area chart")
	simpleTooltip := flag.Bool("simple-tooltip", false, "show only the focused series in the tooltip")
	minSpread := flag.Float64("min-spread", graph.DefaultMinSpread, "minimum y-axis spread")
	span := flag.Float64("span", 300, "visible time window in seconds")
	step := flag.Float64("step", 5, "grid step in seconds")
	flag.Parse()

	opts := graph.Options{
		Theme:         parsePalette(*palette),
		Units:         parseUnits(*units),
		Stacked:       *stacked,
		SimpleTooltip: *simpleTooltip,
		MinSpread:     *minSpread,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	mutator := stream.NewMutator(ctx, time.Second)
	bundle, err := backend.NewBundle(ctx, mutator)
	if err != nil {
		log.Fatal(err)
	}
	if *stdin {
		bundle.Datasource.LoadFromStream(backend.ModeReplaying, os.Stdin)
	}
	for _, name := range flag.Args() {
		f, err := os.Open(name)
		if err != nil {
			log.Fatalf("could not open %q: %v", name, err)
		}
		bundle.Datasource.LoadFromStream(backend.ModeReplaying, f)
	}
	if *broker != "" {
		if _, err := bundle.Datasource.Subscribe(*broker, *topic); err != nil {
			log.Fatalf("could not subscribe to %q: %v", *broker, err)
		}
	}

	go func() {
		w := app.NewWindow(app.Title("Metric Scope"))
		ws := backend.NewWindowState(ctx, bundle, w)
		expl := explorer.NewExplorer(w)
		ui := NewUI(ws, expl, opts, *span, *step)
		if err := loop(w, expl, ui); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

func loop(w *app.Window, expl *explorer.Explorer, ui *UI) error {
	var ops op.Ops
	for {
		ev := w.NextEvent()
		expl.ListenEvents(ev)
		switch ev := ev.(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, ev)
			ui.Layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}
