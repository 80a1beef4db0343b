//go:build !js

package glimpse

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/oliverbestmann/webgpu/wgpu"
	"github.com/oliverbestmann/webgpu/wgpuglfw"
)

var glfwToKey = map[glfw.Key]Key{
	glfw.KeyEscape:       KeyEscape,
	glfw.KeyEnter:        KeyEnter,
	glfw.KeyKPEnter:      KeyEnter,
	glfw.KeyTab:          KeyTab,
	glfw.KeyBackspace:    KeyBackspace,
	glfw.KeyDelete:       KeyDelete,
	glfw.KeySpace:        KeySpace,
	glfw.KeyLeft:         KeyLeft,
	glfw.KeyRight:        KeyRight,
	glfw.KeyUp:           KeyUp,
	glfw.KeyDown:         KeyDown,
	glfw.KeyHome:         KeyHome,
	glfw.KeyEnd:          KeyEnd,
	glfw.KeyLeftShift:    KeyShift,
	glfw.KeyRightShift:   KeyShift,
	glfw.KeyLeftControl:  KeyControl,
	glfw.KeyRightControl: KeyControl,
	glfw.KeyLeftAlt:      KeyAlt,
	glfw.KeyRightAlt:     KeyAlt,
}

var glfwToMouseButton = map[glfw.MouseButton]MouseButton{
	glfw.MouseButtonLeft:   MouseButtonLeft,
	glfw.MouseButtonRight:  MouseButtonRight,
	glfw.MouseButtonMiddle: MouseButtonMiddle,
}

type glfwWindow struct {
	win  *glfw.Window
	prof stopper

	// events collected by the callbacks, dispatched by Run
	events []Event

	redrawRequested bool
}

func NewWindow(width, height int, title string) (Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("initialize glfw: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.ScaleToMonitor, glfw.True)

	window, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}

	w := &glfwWindow{
		win:  window,
		prof: startProfile(),
	}

	w.configureCallbacks()

	return w, nil
}

func (g *glfwWindow) Size() (uint32, uint32) {
	width, height := g.win.GetFramebufferSize()
	return uint32(max(0, width)), uint32(max(0, height))
}

func (g *glfwWindow) ScaleFactor() float32 {
	scale, _ := g.win.GetContentScale()
	if scale <= 0 {
		return 1
	}

	return scale
}

func (g *glfwWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(g.win)
}

func (g *glfwWindow) SetIcon(icon image.Image) {
	g.win.SetIcon(ScaleIcon(icon, IconSizes...))
}

func (g *glfwWindow) RequestRedraw() {
	g.redrawRequested = true
}

func (g *glfwWindow) Terminate() {
	g.prof.Stop()
	g.win.Destroy()
	glfw.Terminate()
}

func (g *glfwWindow) Run(handle func(ev Event) error) error {
	width, height := g.Size()
	g.push(Resized{Width: width, Height: height})
	g.RequestRedraw()

	for {
		if len(g.events) == 0 && !g.redrawRequested {
			// nothing to do, sleep until the os has something for us
			glfw.WaitEvents()
		} else {
			glfw.PollEvents()
		}

		events := g.events
		g.events = nil

		for _, ev := range events {
			if err := handle(ev); err != nil {
				return err
			}

			if _, ok := ev.(CloseRequested); ok {
				return nil
			}
		}

		if g.redrawRequested {
			g.redrawRequested = false

			if err := handle(RedrawRequested{}); err != nil {
				return err
			}
		}
	}
}

func (g *glfwWindow) push(ev Event) {
	g.events = append(g.events, ev)
}

// cursorScale converts from screen coordinates to framebuffer pixels.
func (g *glfwWindow) cursorScale() (float32, float32) {
	width, height := g.win.GetSize()
	fbWidth, fbHeight := g.win.GetFramebufferSize()

	if width <= 0 || height <= 0 {
		return 1, 1
	}

	return float32(fbWidth) / float32(width), float32(fbHeight) / float32(height)
}

func (g *glfwWindow) configureCallbacks() {
	g.win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		g.push(Resized{Width: uint32(max(0, width)), Height: uint32(max(0, height))})
	})

	g.win.SetRefreshCallback(func(_ *glfw.Window) {
		g.RequestRedraw()
	})

	g.win.SetCloseCallback(func(_ *glfw.Window) {
		g.push(CloseRequested{})
	})

	g.win.SetContentScaleCallback(func(_ *glfw.Window, x float32, y float32) {
		g.push(ScaleFactorChanged{ScaleFactor: x})
	})

	g.win.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		g.push(Focused{Focused: focused})
	})

	g.win.SetCursorPosCallback(func(_ *glfw.Window, xpos float64, ypos float64) {
		sx, sy := g.cursorScale()
		g.push(CursorMoved{X: float32(xpos) * sx, Y: float32(ypos) * sy})
	})

	g.win.SetCursorEnterCallback(func(_ *glfw.Window, entered bool) {
		if !entered {
			g.push(CursorLeft{})
		}
	})

	g.win.SetMouseButtonCallback(func(_ *glfw.Window, btn glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		button, ok := glfwToMouseButton[btn]
		if !ok {
			return
		}

		g.push(MouseInput{Button: button, Pressed: action == glfw.Press})
	})

	g.win.SetScrollCallback(func(_ *glfw.Window, xoff float64, yoff float64) {
		g.push(MouseWheel{DeltaX: float32(xoff), DeltaY: float32(yoff)})
	})

	g.win.SetKeyCallback(func(_ *glfw.Window, glfwKey glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		g.push(KeyboardInput{
			Key:     keyOf(glfwKey),
			Pressed: action != glfw.Release,
			Repeat:  action == glfw.Repeat,
		})
	})

	g.win.SetCharCallback(func(_ *glfw.Window, char rune) {
		g.push(ReceivedCharacter{Char: char})
	})
}

func keyOf(glfwKey glfw.Key) Key {
	key, ok := glfwToKey[glfwKey]
	if !ok {
		slog.Debug(
			"Unknown key code",
			slog.String("key", glfw.GetKeyName(glfwKey, 0)),
		)

		return KeyUnknown
	}

	return key
}
