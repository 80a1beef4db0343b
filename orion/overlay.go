package orion

import (
	"unicode"

	"github.com/oliverbestmann/trichrome/glimpse"
	"github.com/oliverbestmann/trichrome/pulse"
	"github.com/oliverbestmann/trichrome/ui"
)

// points scrolled per line of mouse wheel movement
const pointsPerScrollLine = 50

// EventResponse tells the caller what the overlay did with a window event.
type EventResponse struct {
	// Consumed is true if the ui used the event and it must
	// not be passed on to the scene.
	Consumed bool

	// Repaint is true if the ui wants to be redrawn.
	Repaint bool
}

// UiFrame is the result of running the ui for one frame.
type UiFrame struct {
	ui.FullOutput

	// tessellated shapes of FullOutput
	Primitives []ui.ClippedPrimitive

	// the color was edited during this frame
	ColorChanged bool
}

// Overlay connects window events to the ui and builds the color picker.
type Overlay struct {
	ctx *ui.Context

	events []ui.Event

	width, height  uint32
	pixelsPerPoint float32
	focused        bool

	// last known pointer position in points
	pointerPos ui.Pos2
}

func NewOverlay(width, height uint32, scaleFactor float32) *Overlay {
	if scaleFactor <= 0 {
		scaleFactor = 1
	}

	return &Overlay{
		ctx:            ui.NewContext(),
		width:          width,
		height:         height,
		pixelsPerPoint: scaleFactor,
		focused:        true,
	}
}

func (o *Overlay) toPoints(x, y float32) ui.Pos2 {
	return ui.Pos2{x / o.pixelsPerPoint, y / o.pixelsPerPoint}
}

// HandleWindowEvent queues the input for the next frame. Every event is
// seen by the ui, even if it is not consumed.
func (o *Overlay) HandleWindowEvent(ev glimpse.Event) EventResponse {
	switch ev := ev.(type) {
	case glimpse.Resized:
		o.width, o.height = ev.Width, ev.Height
		return EventResponse{}

	case glimpse.ScaleFactorChanged:
		if ev.ScaleFactor > 0 {
			o.pixelsPerPoint = ev.ScaleFactor
		}

		return EventResponse{Repaint: true}

	case glimpse.Focused:
		o.focused = ev.Focused
		return EventResponse{Repaint: true}

	case glimpse.CursorMoved:
		o.pointerPos = o.toPoints(ev.X, ev.Y)
		o.events = append(o.events, ui.PointerMoved{Pos: o.pointerPos})

		return EventResponse{
			Consumed: o.ctx.IsUsingPointer(),
			Repaint:  true,
		}

	case glimpse.CursorLeft:
		o.events = append(o.events, ui.PointerGone{})
		return EventResponse{Repaint: true}

	case glimpse.MouseInput:
		consumed := o.ctx.WantsPointerInput(o.pointerPos)

		o.events = append(o.events, ui.PointerButtonEvent{
			Pos:     o.pointerPos,
			Button:  pointerButtonOf(ev.Button),
			Pressed: ev.Pressed,
		})

		return EventResponse{Consumed: consumed, Repaint: true}

	case glimpse.MouseWheel:
		o.events = append(o.events, ui.Scroll{
			Delta: ui.Pos2{ev.DeltaX, ev.DeltaY}.MulScalar(pointsPerScrollLine),
		})

		return EventResponse{
			Consumed: o.ctx.WantsPointerInput(o.pointerPos),
			Repaint:  true,
		}

	case glimpse.KeyboardInput:
		o.events = append(o.events, ui.KeyEvent{Key: keyOf(ev.Key), Pressed: ev.Pressed})

		return EventResponse{
			Consumed: o.ctx.WantsKeyboardInput(),
			Repaint:  true,
		}

	case glimpse.ReceivedCharacter:
		if unicode.IsControl(ev.Char) {
			return EventResponse{}
		}

		o.events = append(o.events, ui.Text{Text: string(ev.Char)})

		return EventResponse{
			Consumed: o.ctx.WantsKeyboardInput(),
			Repaint:  true,
		}

	default:
		// redraw and close requests are handled by the frame loop
		return EventResponse{}
	}
}

// RunFrame runs the ui with the input collected since the last frame. The color
// is edited in place.
func (o *Overlay) RunFrame(color *pulse.Color) UiFrame {
	screenSize := ui.Pos2{float32(o.width), float32(o.height)}.MulScalar(1 / o.pixelsPerPoint)

	raw := ui.RawInput{
		ScreenRect:     ui.RectFromMinSize(ui.Pos2{}, screenSize),
		PixelsPerPoint: o.pixelsPerPoint,
		Events:         o.events,
		Focused:        o.focused,
	}

	o.events = nil

	var changed bool

	output := o.ctx.Run(raw, func(ctx *ui.Context) {
		panel := ui.CentralPanel{Margin: ui.MarginSame(10)}

		panel.Show(ctx, func(u *ui.Ui) {
			changed = u.ColorEditButton(color).Changed
		})
	})

	return UiFrame{
		FullOutput:   output,
		Primitives:   o.ctx.Tessellate(output.Shapes, output.PixelsPerPoint),
		ColorChanged: changed,
	}
}

func pointerButtonOf(button glimpse.MouseButton) ui.PointerButton {
	switch button {
	case glimpse.MouseButtonRight:
		return ui.PointerSecondary
	case glimpse.MouseButtonMiddle:
		return ui.PointerMiddle
	default:
		return ui.PointerPrimary
	}
}

func keyOf(key glimpse.Key) ui.Key {
	switch key {
	case glimpse.KeyEscape:
		return ui.KeyEscape
	case glimpse.KeyEnter:
		return ui.KeyEnter
	case glimpse.KeyTab:
		return ui.KeyTab
	default:
		return ui.KeyUnknown
	}
}
