package glimpse

import (
	"image"

	"github.com/oliverbestmann/webgpu/wgpu"
)

// Window is a platform window that produces a stream of events.
type Window interface {
	// Size returns the size of the drawable area in physical pixels.
	Size() (uint32, uint32)

	// ScaleFactor returns the number of physical pixels per logical pixel.
	ScaleFactor() float32

	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// SetIcon sets the window icon. The image is scaled to the sizes the
	// platform expects. Does nothing on platforms without window icons.
	SetIcon(icon image.Image)

	// RequestRedraw schedules a RedrawRequested event. Multiple requests
	// before the event is dispatched are merged into one event.
	RequestRedraw()

	// Run dispatches events to handle until the window was closed or handle
	// returns an error. The first events are a Resized event with the initial
	// size, followed by a RedrawRequested event.
	Run(handle func(ev Event) error) error

	Terminate()
}
