package commands

import (
	_ "embed"
	"fmt"
	"log/slog"
	"math"
	"math/bits"
	"structs"
	"unsafe"

	"github.com/oliverbestmann/trichrome/glm"
	"github.com/oliverbestmann/trichrome/pulse"
	"github.com/oliverbestmann/trichrome/ui"
	"github.com/oliverbestmann/webgpu/wgpu"
)

//go:embed overlay.wgsl
var overlayShaderCode string

// ScreenDescriptor describes the target the overlay is rendered to.
type ScreenDescriptor struct {
	Format wgpu.TextureFormat

	// size of the target in pixels
	Width  uint32
	Height uint32

	PixelsPerPoint float32
}

// SizeInPoints returns the size of the target in ui points.
func (s ScreenDescriptor) SizeInPoints() glm.Vec2f {
	ppp := s.PixelsPerPoint
	if ppp <= 0 {
		ppp = 1
	}

	return glm.Vec2f{float32(s.Width) / ppp, float32(s.Height) / ppp}
}

type overlayUniforms struct {
	_ structs.HostLayout

	ScreenSize glm.Vec2f
	_          glm.Vec2f
}

type overlayTexture struct {
	texture   *pulse.Texture
	bindGroup *wgpu.BindGroup
	filter    ui.TextureFilter
}

func (t *overlayTexture) Release() {
	t.bindGroup.Release()
	t.texture.Release()
}

type overlayDraw struct {
	firstIndex uint32
	indexCount uint32
	baseVertex int32
}

// OverlayRenderer renders tessellated ui primitives on top of the scene.
type OverlayRenderer struct {
	ctx *pulse.Context

	uniformLayout    *wgpu.BindGroupLayout
	textureLayout    *wgpu.BindGroupLayout
	pipelineLayout   *wgpu.PipelineLayout
	uniformBuffer    *wgpu.Buffer
	uniformBindGroup *wgpu.BindGroup
	pipelineCache    *pulse.PipelineCache[overlayPipelineConfig]
	textures         map[ui.TextureID]*overlayTexture
	vertexBuffer     *wgpu.Buffer
	indexBuffer      *wgpu.Buffer
	draws            []overlayDraw
}

func NewOverlayRenderer(ctx *pulse.Context) *OverlayRenderer {
	uniformLayout := ctx.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Overlay.UniformLayout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: uint64(unsafe.Sizeof(overlayUniforms{})),
				},
			},
		},
	})

	textureLayout := ctx.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Overlay.TextureLayout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	})

	pipelineLayout := ctx.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Overlay.PipelineLayout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{uniformLayout, textureLayout},
	})

	uniformBuffer := ctx.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Overlay.Uniforms",
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		Size:  uint64(unsafe.Sizeof(overlayUniforms{})),
	})

	uniformBindGroup := ctx.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Overlay.UniformBindGroup",
		Layout: uniformLayout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  uniformBuffer,
				Size:    wgpu.WholeSize,
			},
		},
	})

	r := &OverlayRenderer{
		ctx:              ctx,
		uniformLayout:    uniformLayout,
		textureLayout:    textureLayout,
		pipelineLayout:   pipelineLayout,
		uniformBuffer:    uniformBuffer,
		uniformBindGroup: uniformBindGroup,
		textures:         map[ui.TextureID]*overlayTexture{},
	}

	r.pipelineCache = pulse.NewPipelineCache[overlayPipelineConfig](ctx)

	return r
}

// UpdateTexture creates, replaces or partially updates a texture.
func (r *OverlayRenderer) UpdateTexture(id ui.TextureID, delta ui.ImageDelta) error {
	img := pulse.ToRGBA(delta.Image)
	width, height := uint32(img.Rect.Dx()), uint32(img.Rect.Dy())

	if !delta.IsWhole() {
		existing, ok := r.textures[id]
		if !ok {
			return fmt.Errorf("partial update of unknown texture %d", id)
		}

		region := pulse.RectangleFromXYWH(uint32(delta.Pos.X), uint32(delta.Pos.Y), width, height)

		err := existing.texture.WritePixelsToRect(r.ctx, pulse.WritePixelsOptions{
			Pixels: img.Pix,
			Region: region,
			Stride: uint32(img.Stride),
		})

		if err != nil {
			return fmt.Errorf("update texture %d: %w", id, err)
		}

		return nil
	}

	if width == 0 || height == 0 {
		return fmt.Errorf("texture %d has an empty image", id)
	}

	slog.Debug("Upload ui texture",
		slog.Uint64("id", uint64(id)),
		slog.Int("width", int(width)),
		slog.Int("height", int(height)),
	)

	texture := pulse.NewTexture(r.ctx, pulse.NewTextureOptions{
		Label:  fmt.Sprintf("Overlay.Texture[%d]", id),
		Format: wgpu.TextureFormatRGBA8Unorm,
		Width:  width,
		Height: height,
	})

	if err := texture.WritePixels(r.ctx, img.Pix); err != nil {
		texture.Release()
		return fmt.Errorf("upload texture %d: %w", id, err)
	}

	bindGroup := r.ctx.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  fmt.Sprintf("Overlay.TextureBindGroup[%d]", id),
		Layout: r.textureLayout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding:     0,
				TextureView: texture.ToWGPUTextureView(),
			},
			{
				Binding: 1,
				Sampler: pulse.CachedSampler(r.ctx, samplerDescriptor(delta.Filter)),
			},
		},
	})

	// replace any previous texture with this id
	if previous, ok := r.textures[id]; ok {
		previous.Release()
	}

	r.textures[id] = &overlayTexture{
		texture:   texture,
		bindGroup: bindGroup,
		filter:    delta.Filter,
	}

	return nil
}

func samplerDescriptor(filter ui.TextureFilter) wgpu.SamplerDescriptor {
	mode := wgpu.FilterModeLinear
	if filter == ui.FilterNearest {
		mode = wgpu.FilterModeNearest
	}

	return wgpu.SamplerDescriptor{
		Label:         "Overlay.Sampler",
		AddressModeU:  wgpu.AddressModeRepeat,
		AddressModeV:  wgpu.AddressModeRepeat,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     mode,
		MinFilter:     mode,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMinClamp:   0,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	}
}

// FreeTexture releases a texture. Must only be called after every command
// buffer that uses the texture was submitted.
func (r *OverlayRenderer) FreeTexture(id ui.TextureID) {
	texture, ok := r.textures[id]
	if !ok {
		return
	}

	slog.Debug("Free ui texture", slog.Uint64("id", uint64(id)))

	texture.Release()
	delete(r.textures, id)
}

// HasTexture returns true if a texture with the given id was uploaded.
func (r *OverlayRenderer) HasTexture(id ui.TextureID) bool {
	_, ok := r.textures[id]
	return ok
}

// UpdateBuffers uploads the meshes of all primitives and the screen size.
// It must be called before Render with the same primitives.
func (r *OverlayRenderer) UpdateBuffers(prims []ui.ClippedPrimitive, screen ScreenDescriptor) {
	uniforms := overlayUniforms{ScreenSize: screen.SizeInPoints()}
	r.ctx.WriteBuffer(r.uniformBuffer, 0, pulse.AsByteSlice(&uniforms))

	r.draws = r.draws[:0]

	var vertices []ui.Vertex
	var indices []uint32

	for _, prim := range prims {
		r.draws = append(r.draws, overlayDraw{
			firstIndex: uint32(len(indices)),
			indexCount: uint32(len(prim.Mesh.Indices)),
			baseVertex: int32(len(vertices)),
		})

		vertices = append(vertices, prim.Mesh.Vertices...)
		indices = append(indices, prim.Mesh.Indices...)
	}

	if len(indices) == 0 {
		return
	}

	vertexBytes := wgpu.ToBytes(vertices)
	r.vertexBuffer = r.ensureCapacity(r.vertexBuffer, "Overlay.Vertices", wgpu.BufferUsageVertex, uint64(len(vertexBytes)))
	r.ctx.WriteBuffer(r.vertexBuffer, 0, vertexBytes)

	indexBytes := wgpu.ToBytes(indices)
	r.indexBuffer = r.ensureCapacity(r.indexBuffer, "Overlay.Indices", wgpu.BufferUsageIndex, uint64(len(indexBytes)))
	r.ctx.WriteBuffer(r.indexBuffer, 0, indexBytes)
}

// ensureCapacity returns a buffer of at least the given size, growing
// the buffer to the next power of two if required.
func (r *OverlayRenderer) ensureCapacity(buffer *wgpu.Buffer, label string, usage wgpu.BufferUsage, size uint64) *wgpu.Buffer {
	if buffer != nil && buffer.GetSize() >= size {
		return buffer
	}

	if buffer != nil {
		buffer.Release()
	}

	capacity := max(1024, nextPowerOfTwo(size))

	slog.Debug("Grow overlay buffer", slog.String("label", label), slog.Uint64("size", capacity))

	return r.ctx.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Usage: usage | wgpu.BufferUsageCopyDst,
		Size:  capacity,
	})
}

func nextPowerOfTwo(value uint64) uint64 {
	if value <= 1 {
		return 1
	}

	return 1 << (64 - bits.LeadingZeros64(value-1))
}

// Render records the primitives into the pass. UpdateBuffers must have been
// called with the same primitives before.
func (r *OverlayRenderer) Render(pass *wgpu.RenderPassEncoder, prims []ui.ClippedPrimitive, screen ScreenDescriptor) {
	if len(prims) == 0 || r.vertexBuffer == nil || r.indexBuffer == nil {
		return
	}

	if len(prims) != len(r.draws) {
		panic(fmt.Sprintf("overlay buffers hold %d primitives, render called with %d", len(r.draws), len(prims)))
	}

	pipeline := r.pipelineCache.Get(overlayPipelineConfig{
		TargetFormat: screen.Format,
		BlendState:   pulse.BlendStateAlphaBlendingStraight,
		Layout:       r.pipelineLayout,
	})

	pass.SetPipeline(pipeline)
	pass.SetBindGroup(0, r.uniformBindGroup, nil)
	pass.SetVertexBuffer(0, r.vertexBuffer, 0, wgpu.WholeSize)
	pass.SetIndexBuffer(r.indexBuffer, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)

	for idx, prim := range prims {
		draw := r.draws[idx]
		if draw.indexCount == 0 {
			continue
		}

		scissor, ok := scissorRect(prim.ClipRect, screen)
		if !ok {
			continue
		}

		texture, ok := r.textures[prim.Mesh.Texture]
		if !ok {
			slog.Warn("Skip ui primitive with unknown texture", slog.Uint64("id", uint64(prim.Mesh.Texture)))
			continue
		}

		pass.SetScissorRect(scissor.XYWH())
		pass.SetBindGroup(1, texture.bindGroup, nil)
		pass.DrawIndexed(draw.indexCount, 1, draw.firstIndex, draw.baseVertex, 0)
	}
}

// scissorRect converts a clip rect in points to a pixel rect within the screen.
func scissorRect(clip ui.Rect, screen ScreenDescriptor) (pulse.Rectangle2u, bool) {
	ppp := screen.PixelsPerPoint
	if ppp <= 0 {
		ppp = 1
	}

	toPixels := func(value float32, limit uint32) uint32 {
		scaled := math.Round(float64(value * ppp))
		return uint32(max(0, min(float64(limit), scaled)))
	}

	x0 := toPixels(clip.Min[0], screen.Width)
	y0 := toPixels(clip.Min[1], screen.Height)
	x1 := toPixels(clip.Max[0], screen.Width)
	y1 := toPixels(clip.Max[1], screen.Height)

	if x1 <= x0 || y1 <= y0 {
		return pulse.Rectangle2u{}, false
	}

	return pulse.RectangleFromPoints(glm.Vec2u{x0, y0}, glm.Vec2u{x1, y1}), true
}

func (r *OverlayRenderer) Release() {
	for id := range r.textures {
		r.FreeTexture(id)
	}

	if r.vertexBuffer != nil {
		r.vertexBuffer.Release()
	}

	if r.indexBuffer != nil {
		r.indexBuffer.Release()
	}

	r.pipelineCache.Purge()
	r.uniformBindGroup.Release()
	r.uniformBuffer.Release()
	r.pipelineLayout.Release()
	r.textureLayout.Release()
	r.uniformLayout.Release()
}

type overlayPipelineConfig struct {
	TargetFormat wgpu.TextureFormat
	BlendState   wgpu.BlendState
	Layout       *wgpu.PipelineLayout
}

func (conf overlayPipelineConfig) Specialize(dev *wgpu.Device) *wgpu.RenderPipeline {
	slog.Info("Create RenderPipeline for overlay", slog.Any("format", conf.TargetFormat))

	shader := dev.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:      "Overlay.ShaderSource",
		WGSLSource: &wgpu.ShaderSourceWGSL{Code: overlayShaderCode},
	})

	defer shader.Release()

	return dev.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  fmt.Sprintf("Overlay.%s", conf.TargetFormat),
		Layout: conf.Layout,
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					StepMode:    wgpu.VertexStepModeVertex,
					ArrayStride: uint64(unsafe.Sizeof(ui.Vertex{})),
					Attributes: []wgpu.VertexAttribute{
						{
							// position in points
							Format:         wgpu.VertexFormatFloat32x2,
							Offset:         uint64(unsafe.Offsetof(ui.Vertex{}.Pos)),
							ShaderLocation: 0,
						},
						{
							Format:         wgpu.VertexFormatFloat32x2,
							Offset:         uint64(unsafe.Offsetof(ui.Vertex{}.UV)),
							ShaderLocation: 1,
						},
						{
							// straight alpha color
							Format:         wgpu.VertexFormatFloat32x4,
							Offset:         uint64(unsafe.Offsetof(ui.Vertex{}.Color)),
							ShaderLocation: 2,
						},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    conf.TargetFormat,
					Blend:     &conf.BlendState,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
}
