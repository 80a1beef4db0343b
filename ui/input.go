package ui

// Event is an input event in points, already translated from the
// platform representation.
type Event interface {
	isEvent()
}

type PointerButton uint8

const (
	PointerPrimary PointerButton = iota
	PointerSecondary
	PointerMiddle
)

type Key uint8

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyEnter
	KeyTab
)

// PointerMoved is sent when the pointer moved to Pos.
type PointerMoved struct {
	Pos Pos2
}

// PointerButtonEvent is sent when a pointer button was pressed or released.
type PointerButtonEvent struct {
	Pos     Pos2
	Button  PointerButton
	Pressed bool
}

// PointerGone is sent when the pointer left the window.
type PointerGone struct{}

// Scroll is sent for mouse wheel or touchpad scrolling, in points.
type Scroll struct {
	Delta Pos2
}

type KeyEvent struct {
	Key     Key
	Pressed bool
}

// Text is sent for typed text.
type Text struct {
	Text string
}

func (PointerMoved) isEvent()       {}
func (PointerButtonEvent) isEvent() {}
func (PointerGone) isEvent()        {}
func (Scroll) isEvent()             {}
func (KeyEvent) isEvent()           {}
func (Text) isEvent()               {}

// RawInput is everything the Context needs to run one frame.
type RawInput struct {
	// Screen area in points
	ScreenRect Rect

	// Physical pixels per point. Defaults to one.
	PixelsPerPoint float32

	Events []Event

	Focused bool
}

// inputState is the aggregated input of one frame.
type inputState struct {
	pointerPos Pos2
	hasPointer bool

	// pointer button state at the end of the frame
	down bool

	// button went down/up within this frame, together
	// with the position where that happened
	pressed    bool
	pressPos   Pos2
	released   bool
	releasePos Pos2

	scroll Pos2

	keysPressed map[Key]bool
	text        string
}

func (in *inputState) begin(raw *RawInput) {
	in.pressed = false
	in.released = false
	in.scroll = Pos2{}
	in.text = ""
	clear(in.keysPressed)

	for _, ev := range raw.Events {
		switch ev := ev.(type) {
		case PointerMoved:
			in.pointerPos = ev.Pos
			in.hasPointer = true

		case PointerButtonEvent:
			if ev.Button != PointerPrimary {
				continue
			}

			in.pointerPos = ev.Pos
			in.hasPointer = true

			if ev.Pressed {
				in.down = true
				in.pressed = true
				in.pressPos = ev.Pos
			} else {
				in.down = false
				in.released = true
				in.releasePos = ev.Pos
			}

		case PointerGone:
			in.hasPointer = false

		case Scroll:
			in.scroll = in.scroll.Add(ev.Delta)

		case KeyEvent:
			if ev.Pressed {
				if in.keysPressed == nil {
					in.keysPressed = map[Key]bool{}
				}

				in.keysPressed[ev.Key] = true
			}

		case Text:
			in.text += ev.Text
		}
	}
}

func (in *inputState) keyPressed(key Key) bool {
	return in.keysPressed[key]
}
