package pulse

import (
	"fmt"

	"github.com/oliverbestmann/webgpu/wgpu"
)

// rows of a texture to buffer copy must be aligned to this many bytes
const copyBytesPerRowAlignment = 256

// Offscreen is a render target backed by a texture instead of a surface.
// It provides the same Acquire and Present contract as a View.
type Offscreen struct {
	ctx     *Context
	texture *Texture
}

func NewOffscreen(ctx *Context, width, height uint32, format wgpu.TextureFormat) *Offscreen {
	width, height = ClampSurfaceSize(width, height)

	texture := NewTexture(ctx, NewTextureOptions{
		Label:  "Offscreen",
		Format: format,
		Width:  width,
		Height: height,
	})

	return &Offscreen{ctx: ctx, texture: texture}
}

func (o *Offscreen) Format() wgpu.TextureFormat {
	return o.texture.Format()
}

func (o *Offscreen) Size() (uint32, uint32) {
	return o.texture.Width(), o.texture.Height()
}

// Configure reallocates the backing texture if the size changed.
func (o *Offscreen) Configure(width, height uint32) {
	width, height = ClampSurfaceSize(width, height)
	if width == o.texture.Width() && height == o.texture.Height() {
		return
	}

	format := o.texture.Format()
	o.texture.Release()

	o.texture = NewTexture(o.ctx, NewTextureOptions{
		Label:  "Offscreen",
		Format: format,
		Width:  width,
		Height: height,
	})
}

func (o *Offscreen) Acquire() (*Frame, error) {
	return &Frame{
		RenderTarget: RenderTarget{
			View:   o.texture.ToWGPUTexture().CreateView(nil),
			Format: o.texture.Format(),
			Width:  o.texture.Width(),
			Height: o.texture.Height(),
		},
	}, nil
}

func (o *Offscreen) Present(frame *Frame) {
	frame.release()
}

// ReadPixels reads back the texels of the target. Rows are tightly packed,
// assuming a format with four bytes per texel.
func (o *Offscreen) ReadPixels() ([]byte, error) {
	width, height := o.Size()

	tightStride := width * 4
	paddedStride := alignUp(tightStride, copyBytesPerRowAlignment)

	size := uint64(paddedStride) * uint64(height)

	staging := o.ctx.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Offscreen.Readback",
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		Size:  size,
	})

	defer staging.Release()

	enc := o.ctx.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: "Offscreen.Readback"})
	defer enc.Release()

	enc.CopyTextureToBuffer(
		&wgpu.TexelCopyTextureInfo{
			Texture: o.texture.ToWGPUTexture(),
			Aspect:  wgpu.TextureAspectAll,
		},
		&wgpu.TexelCopyBufferInfo{
			Buffer: staging,
			Layout: wgpu.TexelCopyBufferLayout{
				BytesPerRow:  paddedStride,
				RowsPerImage: height,
			},
		},
		&wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
	)

	cmd := enc.Finish(nil)
	defer cmd.Release()

	o.ctx.Submit(cmd)

	padded, err := mapStaging(o.ctx, staging, size)
	if err != nil {
		return nil, fmt.Errorf("read offscreen texture: %w", err)
	}

	pixels := make([]byte, 0, tightStride*height)
	for y := range height {
		row := padded[y*paddedStride:]
		pixels = append(pixels, row[:tightStride]...)
	}

	return pixels, nil
}

func (o *Offscreen) Release() {
	o.texture.Release()
}

func alignUp(value, alignment uint32) uint32 {
	return (value + alignment - 1) / alignment * alignment
}
