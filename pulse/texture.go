package pulse

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/oliverbestmann/trichrome/glm"
	"github.com/oliverbestmann/webgpu/wgpu"
)

// Texture wraps a wgpu.Texture and an identity wgpu.TextureView.
type Texture struct {
	texture     *wgpu.Texture
	textureView *wgpu.TextureView

	// equal to texture.GetFormat()
	format wgpu.TextureFormat

	region Rectangle2u
}

type NewTextureOptions struct {
	Format wgpu.TextureFormat
	Width  uint32
	Height uint32

	Label string
}

func NewTexture(ctx *Context, opts NewTextureOptions) *Texture {
	desc := &wgpu.TextureDescriptor{
		Label:         opts.Label,
		Format:        opts.Format,
		SampleCount:   1,
		MipLevelCount: 1,

		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              opts.Width,
			Height:             opts.Height,
			DepthOrArrayLayers: 1,
		},

		// allow to do almost everything with this texture
		Usage: wgpu.TextureUsageTextureBinding |
			wgpu.TextureUsageRenderAttachment |
			wgpu.TextureUsageCopyDst |
			wgpu.TextureUsageCopySrc,
	}

	return NewTextureFromDesc(ctx, desc)
}

// NewTextureFromDesc gives you full control and creates a texture directly from
// a texture descriptor
func NewTextureFromDesc(ctx *Context, desc *wgpu.TextureDescriptor) *Texture {
	texture := ctx.Device.CreateTexture(desc)

	// now create a default texture view
	textureView := texture.CreateView(nil)

	region := RectangleFromSize(
		glm.Vec2u{},
		glm.Vec2u{
			desc.Size.Width,
			desc.Size.Height,
		},
	)

	return &Texture{
		texture:     texture,
		textureView: textureView,
		format:      desc.Format,
		region:      region,
	}
}

func (t *Texture) Width() uint32 {
	return t.region.Width()
}

func (t *Texture) Height() uint32 {
	return t.region.Height()
}

func (t *Texture) Size() glm.Vec2u {
	return t.region.Size()
}

func (t *Texture) Format() wgpu.TextureFormat {
	return t.format
}

func (t *Texture) ToWGPUTexture() *wgpu.Texture {
	return t.texture
}

func (t *Texture) ToWGPUTextureView() *wgpu.TextureView {
	return t.textureView
}

// Release releases the texture and its view. You must be sure to not use the
// texture after calling release, not even in a command buffer that is not yet submitted.
func (t *Texture) Release() {
	t.textureView.Release()
	t.texture.Release()
}

func (t *Texture) WritePixels(ctx *Context, pixels []byte) error {
	rect := RectangleFromXYWH(0, 0, t.Width(), t.Height())

	return t.WritePixelsToRect(ctx, WritePixelsOptions{
		Pixels: pixels,
		Region: rect,
	})
}

type WritePixelsOptions struct {
	Pixels   []byte
	Region   Rectangle2u
	Stride   uint32
	MipLevel uint32
}

func (t *Texture) WritePixelsToRect(ctx *Context, opts WritePixelsOptions) error {
	// fail if not in rect
	if !t.region.Contains(opts.Region) {
		return fmt.Errorf("target rect %s not in texture region %s", opts.Region, t.region)
	}

	if opts.Stride == 0 {
		opts.Stride = opts.Region.Width() * 4
	}

	if want := int(opts.Stride) * int(opts.Region.Height()); len(opts.Pixels) < want {
		return fmt.Errorf("expected at least %d bytes of pixel data, got %d", want, len(opts.Pixels))
	}

	layout := &wgpu.TexelCopyBufferLayout{
		Offset:       0,
		BytesPerRow:  opts.Stride,
		RowsPerImage: opts.Region.Height(),
	}

	size := &wgpu.Extent3D{
		Width:              opts.Region.Width(),
		Height:             opts.Region.Height(),
		DepthOrArrayLayers: 1,
	}

	dest := &wgpu.TexelCopyTextureInfo{
		Texture:  t.texture,
		MipLevel: opts.MipLevel,
		Origin: wgpu.Origin3D{
			X: opts.Region.Min[0],
			Y: opts.Region.Min[1],
		},
		Aspect: wgpu.TextureAspectAll,
	}

	// send data to the gpu
	ctx.WriteTexture(dest, opts.Pixels, layout, size)

	return nil
}

// ToRGBA converts any image into a tightly packed *image.RGBA.
func ToRGBA(src image.Image) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok && rgba.Stride == rgba.Rect.Dx()*4 && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}

	iw, ih := src.Bounds().Dx(), src.Bounds().Dy()
	rgba := image.NewRGBA(image.Rect(0, 0, iw, ih))
	draw.Draw(rgba, rgba.Bounds(), src, src.Bounds().Min, draw.Src)
	return rgba
}
