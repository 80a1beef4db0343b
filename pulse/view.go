package pulse

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/oliverbestmann/webgpu/wgpu"
)

// View owns the configuration of the Surface of a Context.
type View struct {
	*Context

	surfaceConfig wgpu.SurfaceConfiguration
}

// NewView picks the first surface format the adapter supports and configures
// the surface for the given size.
func NewView(ctx *Context, width, height uint32) (*View, error) {
	if ctx.Surface == nil {
		return nil, errors.New("context has no surface")
	}

	caps := ctx.Surface.GetCapabilities(ctx.Adapter)
	slog.Info("Available surface formats", slog.Any("formats", caps.Formats))

	if len(caps.Formats) == 0 || len(caps.AlphaModes) == 0 {
		return nil, errors.New("surface is not supported by the adapter")
	}

	vs := &View{
		Context: ctx,
		surfaceConfig: wgpu.SurfaceConfiguration{
			Usage:       wgpu.TextureUsageRenderAttachment,
			Format:      caps.Formats[0],
			PresentMode: wgpu.PresentModeFifo,
			AlphaMode:   caps.AlphaModes[0],

			// try to reduce input latency
			DesiredMaximumFrameLatency: 1,
		},
	}

	vs.Configure(width, height)

	return vs, nil
}

// ClampSurfaceSize clamps a window size to the smallest size a surface
// can be configured with.
func ClampSurfaceSize(width, height uint32) (uint32, uint32) {
	return max(width, 1), max(height, 1)
}

func resized(config wgpu.SurfaceConfiguration, width, height uint32) wgpu.SurfaceConfiguration {
	config.Width, config.Height = ClampSurfaceSize(width, height)
	return config
}

// Configure resizes the surface. It must be called after the window was resized
// and before the next frame is acquired.
func (vs *View) Configure(width, height uint32) {
	vs.surfaceConfig = resized(vs.surfaceConfig, width, height)

	slog.Debug("Configure surface",
		slog.Int("width", int(vs.surfaceConfig.Width)),
		slog.Int("height", int(vs.surfaceConfig.Height)),
	)

	vs.Surface.Configure(vs.Device, &vs.surfaceConfig)
}

func (vs *View) Format() wgpu.TextureFormat {
	return vs.surfaceConfig.Format
}

// Size returns the size of the surface in pixels.
func (vs *View) Size() (uint32, uint32) {
	return vs.surfaceConfig.Width, vs.surfaceConfig.Height
}

// Acquire gets the next presentable image of the surface.
func (vs *View) Acquire() (*Frame, error) {
	texture, err := vs.Surface.TryGetCurrentTexture()
	if err != nil {
		return nil, fmt.Errorf("get current texture: %w", err)
	}

	guard := NewReleaseGuard(texture)
	defer guard.Release()

	view := texture.CreateView(nil)

	guard.Keep()

	return &Frame{
		RenderTarget: RenderTarget{
			View:   view,
			Format: vs.surfaceConfig.Format,
			Width:  texture.GetWidth(),
			Height: texture.GetHeight(),
		},
	}, nil
}

// Present hands the frame to the compositor. The frame must not be used afterwards.
func (vs *View) Present(frame *Frame) {
	vs.Surface.Present()

	frame.release()
}
