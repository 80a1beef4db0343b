package orion

import (
	"testing"

	"github.com/oliverbestmann/trichrome/glimpse"
	"github.com/oliverbestmann/trichrome/pulse"
	"github.com/oliverbestmann/trichrome/pulse/commands"
	"github.com/oliverbestmann/webgpu/wgpu"
)

type noRedraw struct{}

func (noRedraw) RequestRedraw() {}

func headlessContext(t *testing.T) *pulse.Context {
	t.Helper()

	defer func() {
		if r := recover(); r != nil {
			t.Skipf("no gpu available: %v", r)
		}
	}()

	ctx, err := pulse.NewHeadless()
	if err != nil {
		t.Skipf("no gpu available: %s", err)
	}

	t.Cleanup(ctx.Release)

	return ctx
}

func newGpuLoop(t *testing.T, width, height uint32, initial pulse.Color) (*FrameLoop, *GpuPresenter, *pulse.Offscreen) {
	t.Helper()

	ctx := headlessContext(t)

	target := pulse.NewOffscreen(ctx, width, height, wgpu.TextureFormatRGBA8Unorm)
	t.Cleanup(target.Release)

	presenter := NewGpuPresenter(ctx, target, initial)
	t.Cleanup(presenter.Release)

	loop := NewFrameLoop(NewOverlay(width, height, 1), presenter, noRedraw{}, initial)

	return loop, presenter, target
}

func centerPixel(t *testing.T, target *pulse.Offscreen) [4]byte {
	t.Helper()

	pixels, err := target.ReadPixels()
	if err != nil {
		t.Fatalf("read pixels: %s", err)
	}

	width, height := target.Size()
	offset := ((height/2)*width + width/2) * 4

	return [4]byte(pixels[offset : offset+4])
}

func expectPixel(t *testing.T, actual, expected [4]byte) {
	t.Helper()

	for idx := range actual {
		if max(actual[idx], expected[idx])-min(actual[idx], expected[idx]) > 1 {
			t.Fatalf("expected pixel %v, got %v", expected, actual)
		}
	}
}

func TestPresenterFreshStartIsRed(t *testing.T) {
	loop, presenter, target := newGpuLoop(t, 128, 96, pulse.ColorRed)

	handleAll(t, loop, glimpse.Resized{Width: 128, Height: 96}, glimpse.RedrawRequested{})

	expectPixel(t, centerPixel(t, target), [4]byte{0xff, 0, 0, 0xff})

	data, err := pulse.ReadBuffer(presenter.ctx, presenter.Uniform().Buffer(), commands.ColorUniformSize)
	if err != nil {
		t.Fatalf("read uniform: %s", err)
	}

	if [16]byte(data) != commands.EncodeColor(pulse.ColorRed) {
		t.Fatalf("uniform does not hold the initial color: %v", data)
	}
}

func TestPresenterHalfAlphaOverBlack(t *testing.T) {
	loop, presenter, target := newGpuLoop(t, 128, 96, pulse.ColorRed)

	half := pulse.ColorLinearRGBA(1, 0, 0, 0.5)
	presenter.WriteColor(half)

	handleAll(t, loop, glimpse.RedrawRequested{})

	expectPixel(t, centerPixel(t, target), [4]byte{0x80, 0, 0, 0xff})

	data, err := pulse.ReadBuffer(presenter.ctx, presenter.Uniform().Buffer(), commands.ColorUniformSize)
	if err != nil {
		t.Fatalf("read uniform: %s", err)
	}

	if [16]byte(data) != commands.EncodeColor(half) {
		t.Fatalf("uniform does not hold the written color: %v", data)
	}
}

func TestPresenterSurvivesZeroSize(t *testing.T) {
	loop, _, target := newGpuLoop(t, 800, 600, pulse.ColorRed)

	handleAll(t, loop,
		glimpse.Resized{Width: 800, Height: 600},
		glimpse.RedrawRequested{},
		glimpse.Resized{Width: 0, Height: 0},
		glimpse.RedrawRequested{},
	)

	if width, height := target.Size(); width != 1 || height != 1 {
		t.Fatalf("expected target of 1x1, got %dx%d", width, height)
	}

	expectPixel(t, centerPixel(t, target), [4]byte{0xff, 0, 0, 0xff})

	// growing again works as well
	handleAll(t, loop, glimpse.Resized{Width: 64, Height: 64}, glimpse.RedrawRequested{})
	expectPixel(t, centerPixel(t, target), [4]byte{0xff, 0, 0, 0xff})
}
