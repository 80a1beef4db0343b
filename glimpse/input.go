package glimpse

import "log/slog"

type KeysState struct {
	// the keys that are currently marked as "pressed"
	Pressed map[Key]bool

	// keys that where just pressed after the last call to NextTick()
	JustPressed map[Key]bool

	// keys that were just released after the last call to NextTick()
	JustReleased map[Key]bool
}

func (k *KeysState) press(key Key) {
	slog.Debug("Key just pressed", slog.String("key", key.String()))

	setTrue(&k.Pressed, key)
	setTrue(&k.JustPressed, key)
}

func (k *KeysState) release(key Key) {
	setFalse(&k.Pressed, key)
	setTrue(&k.JustReleased, key)
}

func (k *KeysState) nextTick() {
	clear(k.JustPressed)
	clear(k.JustReleased)
}

type MouseState struct {
	CursorX, CursorY float32

	// cursor movement since the last call to NextTick()
	DeltaX, DeltaY float32

	// accumulated wheel movement since the last call to NextTick()
	WheelX, WheelY float32

	// cursor is within the window
	Inside bool

	Pressed map[MouseButton]bool

	// mouse buttons that were just clicked after the last call to NextTick()
	JustPressed map[MouseButton]bool

	// mouse buttons that were just released after the last call to NextTick()
	JustReleased map[MouseButton]bool
}

func (m *MouseState) press(button MouseButton) {
	setTrue(&m.Pressed, button)
	setTrue(&m.JustPressed, button)
}

func (m *MouseState) release(button MouseButton) {
	setFalse(&m.Pressed, button)
	setTrue(&m.JustReleased, button)
}

func (m *MouseState) position(x, y float32) {
	if m.Inside {
		m.DeltaX += x - m.CursorX
		m.DeltaY += y - m.CursorY
	}

	m.CursorX = x
	m.CursorY = y
	m.Inside = true
}

func (m *MouseState) nextTick() {
	m.DeltaX, m.DeltaY = 0, 0
	m.WheelX, m.WheelY = 0, 0

	clear(m.JustPressed)
	clear(m.JustReleased)
}

// InputState aggregates the input events a window produced.
type InputState struct {
	Keys  KeysState
	Mouse MouseState
}

// Apply updates the state with an event. It returns false
// if the event is not an input event.
func (s *InputState) Apply(ev Event) bool {
	switch ev := ev.(type) {
	case KeyboardInput:
		if ev.Repeat {
			return true
		}

		if ev.Pressed {
			s.Keys.press(ev.Key)
		} else {
			s.Keys.release(ev.Key)
		}

	case MouseInput:
		if ev.Pressed {
			s.Mouse.press(ev.Button)
		} else {
			s.Mouse.release(ev.Button)
		}

	case CursorMoved:
		s.Mouse.position(ev.X, ev.Y)

	case CursorLeft:
		s.Mouse.Inside = false

	case MouseWheel:
		s.Mouse.WheelX += ev.DeltaX
		s.Mouse.WheelY += ev.DeltaY

	case ReceivedCharacter:
		// characters carry no state

	default:
		return false
	}

	return true
}

// NextTick resets the per tick state.
func (s *InputState) NextTick() {
	s.Keys.nextTick()
	s.Mouse.nextTick()
}

func setTrue[K comparable](m *map[K]bool, key K) {
	if *m == nil {
		*m = map[K]bool{}
	}

	(*m)[key] = true
}

func setFalse[K comparable](m *map[K]bool, key K) {
	if *m == nil {
		*m = map[K]bool{}
	}

	(*m)[key] = false
}
