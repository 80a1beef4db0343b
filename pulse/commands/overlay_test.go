package commands

import (
	"image"
	"image/color"
	"testing"

	"github.com/oliverbestmann/trichrome/pulse"
	"github.com/oliverbestmann/trichrome/ui"
	"github.com/oliverbestmann/webgpu/wgpu"
)

func TestScissorRect(t *testing.T) {
	screen := ScreenDescriptor{Width: 200, Height: 100, PixelsPerPoint: 2}

	tests := []struct {
		name     string
		clip     ui.Rect
		expected pulse.Rectangle2u
		ok       bool
	}{
		{
			name:     "scaled by pixels per point",
			clip:     ui.RectFromMinSize(ui.Pos2{10, 5}, ui.Pos2{20, 10}),
			expected: pulse.RectangleFromXYWH[uint32](20, 10, 40, 20),
			ok:       true,
		},
		{
			name:     "clamped to the screen",
			clip:     ui.RectFromMinMax(ui.Pos2{-10, -10}, ui.Pos2{500, 500}),
			expected: pulse.RectangleFromXYWH[uint32](0, 0, 200, 100),
			ok:       true,
		},
		{
			name: "outside of the screen",
			clip: ui.RectFromMinSize(ui.Pos2{150, 0}, ui.Pos2{10, 10}),
			ok:   false,
		},
		{
			name: "empty",
			clip: ui.Nothing,
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rect, ok := scissorRect(tt.clip, screen)
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, ok)
			}

			if ok && rect != tt.expected {
				t.Fatalf("expected %s, got %s", tt.expected, rect)
			}
		})
	}
}

func TestScreenSizeInPoints(t *testing.T) {
	screen := ScreenDescriptor{Width: 1600, Height: 1200, PixelsPerPoint: 2}
	if size := screen.SizeInPoints(); size[0] != 800 || size[1] != 600 {
		t.Fatalf("expected 800x600 points, got %v", size)
	}

	screen.PixelsPerPoint = 0
	if size := screen.SizeInPoints(); size[0] != 1600 || size[1] != 1200 {
		t.Fatalf("expected pixels per point to default to one, got %v", size)
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	tests := map[uint64]uint64{0: 1, 1: 1, 2: 2, 3: 4, 1000: 1024, 1024: 1024, 1025: 2048}

	for value, expected := range tests {
		if actual := nextPowerOfTwo(value); actual != expected {
			t.Errorf("nextPowerOfTwo(%d): expected %d, got %d", value, expected, actual)
		}
	}
}

func solidImage(width, height int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for idx := 0; idx < len(img.Pix); idx += 4 {
		img.Pix[idx+0] = c.R
		img.Pix[idx+1] = c.G
		img.Pix[idx+2] = c.B
		img.Pix[idx+3] = c.A
	}

	return img
}

func TestOverlayTextureLifecycle(t *testing.T) {
	ctx := headlessContext(t)

	overlay := NewOverlayRenderer(ctx)
	defer overlay.Release()

	white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	err := overlay.UpdateTexture(3, ui.ImageDelta{Pos: &image.Point{}, Image: solidImage(2, 2, white)})
	if err == nil {
		t.Fatalf("partial update of an unknown texture must fail")
	}

	if err := overlay.UpdateTexture(3, ui.ImageDelta{Image: solidImage(8, 8, white)}); err != nil {
		t.Fatalf("create texture: %s", err)
	}

	if !overlay.HasTexture(3) {
		t.Fatalf("texture not created")
	}

	if err := overlay.UpdateTexture(3, ui.ImageDelta{Pos: &image.Point{X: 4, Y: 4}, Image: solidImage(4, 4, white)}); err != nil {
		t.Fatalf("partial update: %s", err)
	}

	err = overlay.UpdateTexture(3, ui.ImageDelta{Pos: &image.Point{X: 6, Y: 6}, Image: solidImage(4, 4, white)})
	if err == nil {
		t.Fatalf("partial update outside of the texture must fail")
	}

	overlay.FreeTexture(3)
	if overlay.HasTexture(3) {
		t.Fatalf("texture not freed")
	}

	// freeing twice is fine
	overlay.FreeTexture(3)
}

func TestOverlayRendersUi(t *testing.T) {
	ctx := headlessContext(t)

	overlay := NewOverlayRenderer(ctx)
	defer overlay.Release()

	uiCtx := ui.NewContext()

	screenRect := ui.RectFromMinSize(ui.Pos2{}, ui.Pos2{64, 64})
	output := uiCtx.Run(ui.RawInput{ScreenRect: screenRect, PixelsPerPoint: 1}, func(ctx *ui.Context) {
		ui.CentralPanel{Fill: ui.Rgba{0, 0, 1, 1}}.Show(ctx, func(*ui.Ui) {})
	})

	for _, set := range output.TexturesDelta.Set {
		if err := overlay.UpdateTexture(set.ID, set.Delta); err != nil {
			t.Fatalf("upload texture: %s", err)
		}
	}

	prims := uiCtx.Tessellate(output.Shapes, output.PixelsPerPoint)

	target := pulse.NewOffscreen(ctx, 64, 64, wgpu.TextureFormatRGBA8Unorm)
	defer target.Release()

	screen := ScreenDescriptor{Format: target.Format(), Width: 64, Height: 64, PixelsPerPoint: 1}
	overlay.UpdateBuffers(prims, screen)

	pixels := renderPass(t, ctx, target, func(pass *wgpu.RenderPassEncoder, format wgpu.TextureFormat) {
		overlay.Render(pass, prims, screen)
	})

	if center := pixelAt(pixels, 64, 32, 32); center != [4]byte{0, 0, 0xff, 0xff} {
		t.Fatalf("expected the panel fill, got %v", center)
	}
}

func TestOverlayTexturesAcrossContexts(t *testing.T) {
	white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	// each context owns its samplers, releasing one context must
	// not break texture uploads on the next one
	for round := range 2 {
		ctx := headlessContext(t)

		overlay := NewOverlayRenderer(ctx)

		for _, filter := range []ui.TextureFilter{ui.FilterLinear, ui.FilterNearest} {
			delta := ui.ImageDelta{Image: solidImage(4, 4, white), Filter: filter}
			if err := overlay.UpdateTexture(ui.FontTexture, delta); err != nil {
				t.Fatalf("round %d: upload texture: %s", round, err)
			}
		}

		overlay.Release()
		ctx.Release()
	}
}
