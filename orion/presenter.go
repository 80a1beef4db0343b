package orion

import (
	"fmt"

	"github.com/oliverbestmann/trichrome/pulse"
	"github.com/oliverbestmann/trichrome/pulse/commands"
	"github.com/oliverbestmann/webgpu/wgpu"
)

// FrameTarget is something frames can be rendered to, either
// a pulse.View or a pulse.Offscreen.
type FrameTarget interface {
	Configure(width, height uint32)
	Format() wgpu.TextureFormat
	Acquire() (*pulse.Frame, error)
	Present(frame *pulse.Frame)
}

// GpuPresenter draws the triangle and the ui into a FrameTarget.
type GpuPresenter struct {
	ctx    *pulse.Context
	target FrameTarget

	uniform  *commands.ColorUniform
	triangle *commands.TriangleCommand
	overlay  *commands.OverlayRenderer

	clearColor pulse.Color
}

func NewGpuPresenter(ctx *pulse.Context, target FrameTarget, initial pulse.Color) *GpuPresenter {
	uniform := commands.NewColorUniform(ctx, initial)

	return &GpuPresenter{
		ctx:        ctx,
		target:     target,
		uniform:    uniform,
		triangle:   commands.NewTriangleCommand(ctx, uniform),
		overlay:    commands.NewOverlayRenderer(ctx),
		clearColor: pulse.ColorBlack,
	}
}

func (p *GpuPresenter) Resize(width, height uint32) {
	p.target.Configure(width, height)
}

func (p *GpuPresenter) WriteColor(color pulse.Color) {
	p.uniform.Write(color)
}

// DrawFrame records the scene and the ui into one render pass, submits and
// presents it. Textures the ui freed are released after the submission.
func (p *GpuPresenter) DrawFrame(frame UiFrame) (err error) {
	defer recoverFatal(&err, "render frame")

	target, err := p.target.Acquire()
	if err != nil {
		return fmt.Errorf("acquire frame: %w", err)
	}

	for _, set := range frame.TexturesDelta.Set {
		if err := p.overlay.UpdateTexture(set.ID, set.Delta); err != nil {
			p.target.Present(target)
			return fmt.Errorf("update ui texture: %w", err)
		}
	}

	screen := commands.ScreenDescriptor{
		Format:         target.Format,
		Width:          target.Width,
		Height:         target.Height,
		PixelsPerPoint: frame.PixelsPerPoint,
	}

	p.overlay.UpdateBuffers(frame.Primitives, screen)

	enc := p.ctx.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: "Frame"})
	defer enc.Release()

	pass := enc.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "Frame",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       target.View,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: pulse.ClearValue(p.clearColor),
			},
		},
	})

	p.triangle.Draw(pass, target.Format)
	p.overlay.Render(pass, frame.Primitives, screen)
	pass.End()

	cmd := enc.Finish(nil)
	defer cmd.Release()

	p.ctx.Submit(cmd)
	p.target.Present(target)

	for _, id := range frame.TexturesDelta.Free {
		p.overlay.FreeTexture(id)
	}

	return nil
}

// Uniform returns the buffer holding the scene color.
func (p *GpuPresenter) Uniform() *commands.ColorUniform {
	return p.uniform
}

func (p *GpuPresenter) Release() {
	p.overlay.Release()
	p.triangle.Release()
	p.uniform.Release()
}
