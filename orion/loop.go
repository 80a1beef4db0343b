package orion

import (
	"fmt"
	"log/slog"

	"github.com/oliverbestmann/trichrome/glimpse"
	"github.com/oliverbestmann/trichrome/pulse"
)

// Session is the ui side of a frame loop.
type Session interface {
	HandleWindowEvent(ev glimpse.Event) EventResponse
	RunFrame(color *pulse.Color) UiFrame
}

// Presenter is the gpu side of a frame loop.
type Presenter interface {
	// Resize reconfigures the render target. Sizes are already clamped to at least 1x1.
	Resize(width, height uint32)

	// WriteColor enqueues a write of the scene color. It is visible
	// to every frame drawn afterwards.
	WriteColor(color pulse.Color)

	// DrawFrame renders the scene with the ui on top and presents it.
	DrawFrame(frame UiFrame) error
}

type Redrawer interface {
	RequestRedraw()
}

// FrameLoop routes window events between the ui and the scene and
// renders a frame for every redraw request.
type FrameLoop struct {
	session   Session
	presenter Presenter
	redrawer  Redrawer

	// input that was not consumed by the ui
	scene glimpse.InputState

	color  pulse.Color
	closed bool

	times FrameTimes
}

func NewFrameLoop(session Session, presenter Presenter, redrawer Redrawer, initial pulse.Color) *FrameLoop {
	return &FrameLoop{
		session:   session,
		presenter: presenter,
		redrawer:  redrawer,
		color:     initial,
	}
}

// Color returns the current scene color.
func (l *FrameLoop) Color() pulse.Color {
	return l.color
}

// Closed returns true after the window was closed or a frame failed.
func (l *FrameLoop) Closed() bool {
	return l.closed
}

// Scene returns the input state of the scene, built from all
// input events the ui did not consume.
func (l *FrameLoop) Scene() *glimpse.InputState {
	return &l.scene
}

// HandleEvent processes one window event. An error is fatal,
// the loop ignores all events afterwards.
func (l *FrameLoop) HandleEvent(ev glimpse.Event) error {
	if l.closed {
		return nil
	}

	resp := l.session.HandleWindowEvent(ev)

	if resp.Repaint {
		l.redrawer.RequestRedraw()
	}

	if resp.Consumed {
		return nil
	}

	switch ev := ev.(type) {
	case glimpse.Resized:
		width, height := pulse.ClampSurfaceSize(ev.Width, ev.Height)
		l.presenter.Resize(width, height)

		// some platforms do not redraw on their own after a resize
		l.redrawer.RequestRedraw()

	case glimpse.RedrawRequested:
		if err := l.redraw(); err != nil {
			l.closed = true
			return err
		}

	case glimpse.CloseRequested:
		slog.Info("Window closed", slog.Uint64("frames", l.times.FrameCount))
		l.closed = true

	default:
		l.scene.Apply(ev)
	}

	return nil
}

func (l *FrameLoop) redraw() error {
	frame := l.session.RunFrame(&l.color)

	if frame.ColorChanged {
		slog.Debug("Color changed", slog.Any("color", l.color))
		l.presenter.WriteColor(l.color)
	}

	if err := l.presenter.DrawFrame(frame); err != nil {
		return fmt.Errorf("draw frame: %w", err)
	}

	l.scene.NextTick()

	if l.times.Tick() {
		slog.Debug("Frame stats",
			slog.Uint64("frames", l.times.FrameCount),
			slog.Duration("average", l.times.AverageDuration),
			slog.Duration("max", l.times.MaxDuration),
			slog.Float64("fps", l.times.FPS()),
		)
	}

	if frame.NeedsRepaint {
		l.redrawer.RequestRedraw()
	}

	return nil
}
