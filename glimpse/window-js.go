//go:build js

package glimpse

import (
	"image"
	"log/slog"
	"syscall/js"

	"github.com/oliverbestmann/webgpu/wgpu"
)

var jsToKey = map[string]Key{
	"Escape":     KeyEscape,
	"Enter":      KeyEnter,
	"Tab":        KeyTab,
	"Backspace":  KeyBackspace,
	"Delete":     KeyDelete,
	" ":          KeySpace,
	"ArrowLeft":  KeyLeft,
	"ArrowRight": KeyRight,
	"ArrowUp":    KeyUp,
	"ArrowDown":  KeyDown,
	"Home":       KeyHome,
	"End":        KeyEnd,
	"Shift":      KeyShift,
	"Control":    KeyControl,
	"Alt":        KeyAlt,
}

// events that can be buffered between two iterations of the event loop
const eventQueueSize = 1024

type jsWindow struct {
	canvas js.Value

	events chan Event
	funcs  []js.Func

	redrawPending bool
	scaleFactor   float32
}

func NewWindow(width, height int, title string) (Window, error) {
	document := js.Global().Get("document")
	canvas := document.Call("createElement", "canvas")
	document.Get("body").Call("appendChild", canvas)

	document.Set("title", title)

	canvas.Set("style", "width:100vw; height:100vh; display:block; touch-action:none")
	canvas.Set("tabIndex", 0)

	win := &jsWindow{
		canvas:      canvas,
		events:      make(chan Event, eventQueueSize),
		scaleFactor: devicePixelRatio(),
	}

	resizeCanvas(canvas)

	return win, nil
}

func (g *jsWindow) Size() (uint32, uint32) {
	return uint32(g.canvas.Get("width").Int()), uint32(g.canvas.Get("height").Int())
}

func (g *jsWindow) ScaleFactor() float32 {
	return g.scaleFactor
}

func (g *jsWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return &wgpu.SurfaceDescriptor{Canvas: g.canvas}
}

func (g *jsWindow) SetIcon(icon image.Image) {
	// the favicon is defined by the hosting page
}

func (g *jsWindow) RequestRedraw() {
	if g.redrawPending {
		return
	}

	g.redrawPending = true

	var callback js.Func
	callback = js.FuncOf(func(this js.Value, args []js.Value) any {
		callback.Release()
		g.push(RedrawRequested{})
		return nil
	})

	js.Global().Call("requestAnimationFrame", callback)
}

func (g *jsWindow) Terminate() {
	for _, fn := range g.funcs {
		fn.Release()
	}

	g.funcs = nil
}

func (g *jsWindow) Run(handle func(ev Event) error) error {
	g.registerListeners()

	width, height := g.Size()
	g.push(Resized{Width: width, Height: height})
	g.RequestRedraw()

	for ev := range g.events {
		if _, ok := ev.(RedrawRequested); ok {
			g.redrawPending = false
		}

		if err := handle(ev); err != nil {
			return err
		}

		if _, ok := ev.(CloseRequested); ok {
			return nil
		}
	}

	return nil
}

// push queues an event. It must not block, as it is called from javascript callbacks.
func (g *jsWindow) push(ev Event) {
	select {
	case g.events <- ev:
	default:
		slog.Warn("Event queue is full, dropping event", slog.Any("event", ev))
	}
}

func (g *jsWindow) listen(target js.Value, name string, handler func(ev js.Value)) {
	fn := js.FuncOf(func(this js.Value, args []js.Value) any {
		handler(args[0])
		return nil
	})

	g.funcs = append(g.funcs, fn)
	target.Call("addEventListener", name, fn)
}

func (g *jsWindow) registerListeners() {
	window := js.Global()

	g.listen(window, "resize", func(ev js.Value) {
		if ratio := devicePixelRatio(); ratio != g.scaleFactor {
			g.scaleFactor = ratio
			g.push(ScaleFactorChanged{ScaleFactor: ratio})
		}

		resizeCanvas(g.canvas)

		width, height := g.Size()
		g.push(Resized{Width: width, Height: height})
	})

	g.listen(g.canvas, "pointermove", func(ev js.Value) {
		g.push(g.cursorMoved(ev))
	})

	g.listen(g.canvas, "pointerleave", func(ev js.Value) {
		g.push(CursorLeft{})
	})

	g.listen(g.canvas, "pointerdown", func(ev js.Value) {
		g.canvas.Call("focus")
		g.canvas.Call("setPointerCapture", ev.Get("pointerId"))

		g.push(g.cursorMoved(ev))
		g.push(MouseInput{Button: mouseButtonOf(ev), Pressed: true})
	})

	g.listen(g.canvas, "pointerup", func(ev js.Value) {
		g.push(g.cursorMoved(ev))
		g.push(MouseInput{Button: mouseButtonOf(ev), Pressed: false})
	})

	g.listen(g.canvas, "wheel", func(ev js.Value) {
		ev.Call("preventDefault")

		// pixel based deltas, roughly one line per 50 pixels
		scale := float32(1.0 / 50.0)
		if ev.Get("deltaMode").Int() != 0 {
			scale = 1
		}

		g.push(MouseWheel{
			DeltaX: -float32(ev.Get("deltaX").Float()) * scale,
			DeltaY: -float32(ev.Get("deltaY").Float()) * scale,
		})
	})

	g.listen(g.canvas, "keydown", func(ev js.Value) {
		key := ev.Get("key").String()

		g.push(KeyboardInput{
			Key:     keyOf(key),
			Pressed: true,
			Repeat:  ev.Get("repeat").Bool(),
		})

		// printable characters have a key of exactly one rune
		if runes := []rune(key); len(runes) == 1 && !ev.Get("ctrlKey").Bool() && !ev.Get("metaKey").Bool() {
			g.push(ReceivedCharacter{Char: runes[0]})
		}
	})

	g.listen(g.canvas, "keyup", func(ev js.Value) {
		g.push(KeyboardInput{Key: keyOf(ev.Get("key").String()), Pressed: false})
	})

	g.listen(g.canvas, "focus", func(ev js.Value) {
		g.push(Focused{Focused: true})
	})

	g.listen(g.canvas, "blur", func(ev js.Value) {
		g.push(Focused{Focused: false})
	})
}

func (g *jsWindow) cursorMoved(ev js.Value) CursorMoved {
	ratio := float64(g.scaleFactor)

	return CursorMoved{
		X: float32(ev.Get("offsetX").Float() * ratio),
		Y: float32(ev.Get("offsetY").Float() * ratio),
	}
}

func mouseButtonOf(ev js.Value) MouseButton {
	switch ev.Get("button").Int() {
	case 1:
		return MouseButtonMiddle
	case 2:
		return MouseButtonRight
	default:
		return MouseButtonLeft
	}
}

func keyOf(key string) Key {
	if k, ok := jsToKey[key]; ok {
		return k
	}

	return KeyUnknown
}

func devicePixelRatio() float32 {
	ratio := js.Global().Get("devicePixelRatio").Float()
	if ratio <= 0 {
		return 1
	}

	return float32(ratio)
}

func resizeCanvas(canvas js.Value) {
	vv := js.Global().Get("visualViewport")
	viewWidth := vv.Get("width").Float()
	viewHeight := vv.Get("height").Float()

	ratio := float64(devicePixelRatio())

	canvas.Set("width", int(viewWidth*ratio))
	canvas.Set("height", int(viewHeight*ratio))
}
