package commands

import (
	"testing"

	"github.com/oliverbestmann/trichrome/pulse"
	"github.com/oliverbestmann/webgpu/wgpu"
)

// headlessContext returns a gpu context, or skips the test if
// no adapter is available on this machine.
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

// renderPass records one pass into a frame of the target, clearing it to black first.
func renderPass(t *testing.T, ctx *pulse.Context, target *pulse.Offscreen, record func(pass *wgpu.RenderPassEncoder, format wgpu.TextureFormat)) []byte {
	t.Helper()

	frame, err := target.Acquire()
	if err != nil {
		t.Fatalf("acquire frame: %s", err)
	}

	enc := ctx.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: "Test"})
	defer enc.Release()

	pass := enc.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "Test",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       frame.View,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: pulse.ClearValue(pulse.ColorBlack),
			},
		},
	})

	record(pass, frame.Format)
	pass.End()

	cmd := enc.Finish(nil)
	defer cmd.Release()

	ctx.Submit(cmd)
	target.Present(frame)

	pixels, err := target.ReadPixels()
	if err != nil {
		t.Fatalf("read pixels: %s", err)
	}

	return pixels
}

func pixelAt(pixels []byte, width, x, y uint32) [4]byte {
	offset := (y*width + x) * 4
	return [4]byte(pixels[offset : offset+4])
}

func near(a, b byte) bool {
	return max(a, b)-min(a, b) <= 1
}
