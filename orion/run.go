package orion

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/oliverbestmann/trichrome/glimpse"
	"github.com/oliverbestmann/trichrome/pulse"
)

type RunOptions struct {
	WindowWidth  int
	WindowHeight int
	WindowTitle  string

	// optional window icon
	Icon image.Image

	// initial color of the triangle, defaults to opaque red
	InitialColor *pulse.Color
}

func (opts RunOptions) withDefaults() RunOptions {
	if opts.WindowWidth == 0 {
		opts.WindowWidth = 800
	}

	if opts.WindowHeight == 0 {
		opts.WindowHeight = 600
	}

	if opts.WindowTitle == "" {
		opts.WindowTitle = "Trichrome"
	}

	if opts.InitialColor == nil {
		color := pulse.ColorRed
		opts.InitialColor = &color
	}

	return opts
}

// Run opens a window and runs the frame loop until the window is closed.
func Run(opts RunOptions) error {
	opts = opts.withDefaults()

	// create a new window (or canvas)
	win, err := glimpse.NewWindow(
		opts.WindowWidth,
		opts.WindowHeight,
		opts.WindowTitle,
	)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}

	defer win.Terminate()

	if opts.Icon != nil {
		win.SetIcon(opts.Icon)
	}

	app, err := newApp(win, *opts.InitialColor)
	if err != nil {
		return err
	}

	defer app.Release()

	return win.Run(app.loop.HandleEvent)
}

type app struct {
	ctx       *pulse.Context
	view      *pulse.View
	presenter *GpuPresenter
	loop      *FrameLoop
}

func newApp(win glimpse.Window, color pulse.Color) (a *app, err error) {
	a = &app{}

	// release everything created so far if anything below fails
	defer func() {
		if err != nil {
			a.Release()
			a = nil
		}
	}()

	defer recoverFatal(&err, "initialize graphics")

	// initialize the webgpu device
	a.ctx, err = pulse.New(win.SurfaceDescriptor())
	if err != nil {
		return a, fmt.Errorf("initialize wgpu: %w", err)
	}

	width, height := win.Size()

	a.view, err = pulse.NewView(a.ctx, width, height)
	if err != nil {
		return a, fmt.Errorf("create view: %w", err)
	}

	slog.Info("Surface configured",
		slog.Any("format", a.view.Format()),
		slog.Float64("scaleFactor", float64(win.ScaleFactor())),
	)

	a.presenter = NewGpuPresenter(a.ctx, a.view, color)

	overlay := NewOverlay(width, height, win.ScaleFactor())
	a.loop = NewFrameLoop(overlay, a.presenter, win, color)

	return a, nil
}

func (a *app) Release() {
	if a.presenter != nil {
		a.presenter.Release()
	}

	if a.ctx != nil {
		a.ctx.Release()
	}
}
