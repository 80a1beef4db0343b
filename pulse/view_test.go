package pulse

import (
	"reflect"
	"testing"

	"github.com/oliverbestmann/webgpu/wgpu"
)

func TestResizedSurfaceConfiguration(t *testing.T) {
	base := wgpu.SurfaceConfiguration{
		Usage:                      wgpu.TextureUsageRenderAttachment,
		Format:                     wgpu.TextureFormatBGRA8Unorm,
		Width:                      800,
		Height:                     600,
		PresentMode:                wgpu.PresentModeFifo,
		AlphaMode:                  wgpu.CompositeAlphaModeOpaque,
		DesiredMaximumFrameLatency: 1,
	}

	tests := []struct {
		name          string
		width, height uint32
		expectedW     uint32
		expectedH     uint32
	}{
		{name: "same size", width: 800, height: 600, expectedW: 800, expectedH: 600},
		{name: "larger", width: 1920, height: 1080, expectedW: 1920, expectedH: 1080},
		{name: "zero size", width: 0, height: 0, expectedW: 1, expectedH: 1},
		{name: "zero width", width: 0, height: 300, expectedW: 1, expectedH: 300},
		{name: "zero height", width: 300, height: 0, expectedW: 300, expectedH: 1},
		{name: "smallest", width: 1, height: 1, expectedW: 1, expectedH: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once := resized(base, tt.width, tt.height)

			if once.Width != tt.expectedW || once.Height != tt.expectedH {
				t.Fatalf("expected %dx%d, got %dx%d", tt.expectedW, tt.expectedH, once.Width, once.Height)
			}

			// only the size changes
			expected := base
			expected.Width, expected.Height = tt.expectedW, tt.expectedH

			if !reflect.DeepEqual(once, expected) {
				t.Fatalf("unexpected configuration %+v", once)
			}

			twice := resized(once, tt.width, tt.height)
			if !reflect.DeepEqual(once, twice) {
				t.Fatalf("resizing twice differs from resizing once: %+v vs %+v", once, twice)
			}
		})
	}
}

func TestClampSurfaceSize(t *testing.T) {
	tests := []struct {
		width, height uint32
		expectedW     uint32
		expectedH     uint32
	}{
		{0, 0, 1, 1},
		{0, 7, 1, 7},
		{7, 0, 7, 1},
		{640, 480, 640, 480},
	}

	for _, tt := range tests {
		w, h := ClampSurfaceSize(tt.width, tt.height)
		if w != tt.expectedW || h != tt.expectedH {
			t.Errorf("ClampSurfaceSize(%d, %d): expected %dx%d, got %dx%d",
				tt.width, tt.height, tt.expectedW, tt.expectedH, w, h)
		}
	}
}

func TestOffscreenConfigure(t *testing.T) {
	ctx := newTestContext(t)
	defer ctx.Release()

	target := NewOffscreen(ctx, 800, 600, wgpu.TextureFormatRGBA8Unorm)
	defer target.Release()

	target.Configure(0, 0)

	if w, h := target.Size(); w != 1 || h != 1 {
		t.Fatalf("expected 1x1, got %dx%d", w, h)
	}

	frame, err := target.Acquire()
	if err != nil {
		t.Fatalf("acquire: %s", err)
	}

	if frame.Width != 1 || frame.Height != 1 {
		t.Fatalf("expected a 1x1 frame, got %dx%d", frame.Width, frame.Height)
	}

	target.Present(frame)

	// configuring the same size twice keeps the texture
	target.Configure(64, 32)
	texture := target.texture

	target.Configure(64, 32)
	if target.texture != texture {
		t.Fatalf("second configure with the same size reallocated the texture")
	}

	if format := target.Format(); format != wgpu.TextureFormatRGBA8Unorm {
		t.Fatalf("format changed to %v", format)
	}
}
