package glimpse

// Event is an event produced by a Window. Positions and sizes
// are in physical pixels.
type Event interface {
	isEvent()
}

type MouseButton uint32

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// Resized is sent when the drawable area of the window changed its size.
// The size may be zero, e.g. while the window is minimized.
type Resized struct {
	Width, Height uint32
}

type RedrawRequested struct{}

// CloseRequested is the last event a window dispatches.
type CloseRequested struct{}

type CursorMoved struct {
	X, Y float32
}

type CursorLeft struct{}

type MouseInput struct {
	Button  MouseButton
	Pressed bool
}

// MouseWheel is a scroll delta in lines.
type MouseWheel struct {
	DeltaX, DeltaY float32
}

type KeyboardInput struct {
	Key     Key
	Pressed bool

	// key was pressed before and is repeated by the os
	Repeat bool
}

type ReceivedCharacter struct {
	Char rune
}

type ScaleFactorChanged struct {
	ScaleFactor float32
}

type Focused struct {
	Focused bool
}

func (Resized) isEvent()            {}
func (RedrawRequested) isEvent()    {}
func (CloseRequested) isEvent()     {}
func (CursorMoved) isEvent()        {}
func (CursorLeft) isEvent()         {}
func (MouseInput) isEvent()         {}
func (MouseWheel) isEvent()         {}
func (KeyboardInput) isEvent()      {}
func (ReceivedCharacter) isEvent()  {}
func (ScaleFactorChanged) isEvent() {}
func (Focused) isEvent()            {}
