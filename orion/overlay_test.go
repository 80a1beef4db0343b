package orion

import (
	"testing"

	"github.com/oliverbestmann/trichrome/glimpse"
	"github.com/oliverbestmann/trichrome/pulse"
	"github.com/oliverbestmann/trichrome/ui"
)

// position of the color button in points, below the panel margin
var buttonCenter = ui.Pos2{30, 19}

func alphaTrack(t *testing.T, frame UiFrame) ui.Rect {
	t.Helper()

	for _, shape := range frame.Shapes {
		gradient, ok := shape.Shape.(ui.GradientShape)
		if ok && gradient.Left[3] == 0 && gradient.Right[3] == 1 {
			return gradient.Rect
		}
	}

	t.Fatalf("alpha slider not found")
	return ui.Rect{}
}

func TestOverlayFreshStart(t *testing.T) {
	overlay := NewOverlay(800, 600, 1)

	color := pulse.ColorRed
	frame := overlay.RunFrame(&color)

	if frame.ColorChanged || color != pulse.ColorRed {
		t.Fatalf("color changed without input")
	}

	if len(frame.Primitives) == 0 {
		t.Fatalf("expected the color button to be painted")
	}

	if len(frame.TexturesDelta.Set) == 0 || frame.TexturesDelta.Set[0].ID != ui.FontTexture {
		t.Fatalf("expected the font texture in the first frame")
	}
}

func TestOverlayNeverConsumesWindowEvents(t *testing.T) {
	overlay := NewOverlay(800, 600, 1)

	color := pulse.ColorRed
	overlay.RunFrame(&color)

	events := []glimpse.Event{
		glimpse.Resized{Width: 10, Height: 10},
		glimpse.RedrawRequested{},
		glimpse.CloseRequested{},
		glimpse.ScaleFactorChanged{ScaleFactor: 2},
	}

	for _, ev := range events {
		if overlay.HandleWindowEvent(ev).Consumed {
			t.Errorf("%T must not be consumed", ev)
		}
	}
}

func TestOverlayDragAlpha(t *testing.T) {
	// use a scale factor to check the conversion to points
	const scale = 2

	overlay := NewOverlay(1600, 1200, scale)

	color := pulse.ColorRed
	overlay.RunFrame(&color)

	physical := func(pos ui.Pos2) glimpse.CursorMoved {
		return glimpse.CursorMoved{X: pos[0] * scale, Y: pos[1] * scale}
	}

	// a click on empty space is not for the ui
	overlay.HandleWindowEvent(physical(ui.Pos2{400, 300}))
	if overlay.HandleWindowEvent(glimpse.MouseInput{Pressed: true}).Consumed {
		t.Fatalf("click on empty space should not be consumed")
	}

	overlay.HandleWindowEvent(glimpse.MouseInput{Pressed: false})
	overlay.RunFrame(&color)

	// open the popup
	overlay.HandleWindowEvent(physical(buttonCenter))

	if !overlay.HandleWindowEvent(glimpse.MouseInput{Pressed: true}).Consumed {
		t.Fatalf("click on the button should be consumed")
	}

	overlay.HandleWindowEvent(glimpse.MouseInput{Pressed: false})

	frame := overlay.RunFrame(&color)
	if !frame.NeedsRepaint {
		t.Fatalf("opening the popup should request a repaint")
	}

	if !overlay.HandleWindowEvent(glimpse.KeyboardInput{Key: glimpse.KeySpace, Pressed: true}).Consumed {
		t.Fatalf("keyboard input should be consumed while the popup is open")
	}

	// drag the alpha slider to the middle
	track := alphaTrack(t, frame)
	middle := ui.Pos2{track.Min[0] + track.Width()/2, track.Center()[1]}

	overlay.HandleWindowEvent(physical(middle))

	if !overlay.HandleWindowEvent(glimpse.MouseInput{Pressed: true}).Consumed {
		t.Fatalf("press on the slider should be consumed")
	}

	frame = overlay.RunFrame(&color)

	if !frame.ColorChanged {
		t.Fatalf("expected a color change")
	}

	if color[3] < 0.499 || color[3] > 0.501 {
		t.Fatalf("expected alpha of 0.5, got %f", color[3])
	}

	// moving while dragging belongs to the ui
	if !overlay.HandleWindowEvent(physical(ui.Pos2{700, 500})).Consumed {
		t.Fatalf("cursor movement while dragging should be consumed")
	}

	overlay.RunFrame(&color)

	if color[3] != 1 {
		t.Fatalf("expected alpha to be clamped to 1, got %f", color[3])
	}

	overlay.HandleWindowEvent(glimpse.MouseInput{Pressed: false})
	overlay.RunFrame(&color)

	if overlay.HandleWindowEvent(physical(ui.Pos2{700, 500})).Consumed {
		t.Fatalf("cursor movement after dragging should not be consumed")
	}
}

func TestOverlayKeyboardWithoutPopup(t *testing.T) {
	overlay := NewOverlay(800, 600, 1)

	color := pulse.ColorRed
	overlay.RunFrame(&color)

	if overlay.HandleWindowEvent(glimpse.KeyboardInput{Key: glimpse.KeyEscape, Pressed: true}).Consumed {
		t.Fatalf("keyboard input should not be consumed without a popup")
	}

	if overlay.HandleWindowEvent(glimpse.ReceivedCharacter{Char: 'a'}).Consumed {
		t.Fatalf("text input should not be consumed without a popup")
	}
}
