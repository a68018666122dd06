package backend

import (
	"context"
	"fmt"

	"gioui.org/app"
	"git.sr.ht/~gioverse/skel/stream"
)

// WindowState binds the shared backend bundle to one window's stream
// controller.
type WindowState struct {
	Bundle
	Controller *stream.Controller
}

func NewWindowState(ctx context.Context, bundle Bundle, win *app.Window) WindowState {
	return WindowState{
		Bundle:     bundle,
		Controller: stream.NewController(ctx, win.Invalidate),
	}
}

// Bundle holds the application-wide backend services.
type Bundle struct {
	Datasource *Datasource
}

func NewBundle(ctx context.Context, mutator *stream.Mutator) (Bundle, error) {
	ds, err := NewDatasource(ctx, mutator)
	if err != nil {
		return Bundle{}, fmt.Errorf("failed creating datasource: %w", err)
	}
	return Bundle{
		Datasource: ds,
	}, nil
}
