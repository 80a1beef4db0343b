package commands

import (
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/oliverbestmann/trichrome/pulse"
	"github.com/oliverbestmann/webgpu/wgpu"
)

//go:embed triangle.wgsl
var triangleShaderCode string

// TriangleCommand draws a single triangle filled with the color of a ColorUniform.
type TriangleCommand struct {
	ctx *pulse.Context

	bindGroupLayout *wgpu.BindGroupLayout
	pipelineLayout  *wgpu.PipelineLayout
	bindGroup       *wgpu.BindGroup

	pipelineCache *pulse.PipelineCache[trianglePipelineConfig]
}

func NewTriangleCommand(ctx *pulse.Context, uniform *ColorUniform) *TriangleCommand {
	bindGroupLayout := ctx.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Triangle.BindGroupLayout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: ColorUniformSize,
				},
			},
		},
	})

	pipelineLayout := ctx.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Triangle.PipelineLayout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{bindGroupLayout},
	})

	bindGroup := ctx.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Triangle.BindGroup",
		Layout: bindGroupLayout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  uniform.Buffer(),
				Size:    ColorUniformSize,
			},
		},
	})

	c := &TriangleCommand{
		ctx:             ctx,
		bindGroupLayout: bindGroupLayout,
		pipelineLayout:  pipelineLayout,
		bindGroup:       bindGroup,
	}

	c.pipelineCache = pulse.NewPipelineCache[trianglePipelineConfig](ctx)

	return c
}

// Draw records the triangle into the pass. The pass must target a texture of the given format.
func (c *TriangleCommand) Draw(pass *wgpu.RenderPassEncoder, format wgpu.TextureFormat) {
	pipeline := c.pipelineCache.Get(trianglePipelineConfig{
		TargetFormat: format,
		BlendState:   pulse.BlendStateDefault,
		Layout:       c.pipelineLayout,
	})

	pass.SetPipeline(pipeline)
	pass.SetBindGroup(0, c.bindGroup, nil)
	pass.Draw(3, 1, 0, 0)
}

func (c *TriangleCommand) Release() {
	c.pipelineCache.Purge()
	c.bindGroup.Release()
	c.pipelineLayout.Release()
	c.bindGroupLayout.Release()
}

type trianglePipelineConfig struct {
	TargetFormat wgpu.TextureFormat
	BlendState   wgpu.BlendState
	Layout       *wgpu.PipelineLayout
}

func (conf trianglePipelineConfig) Specialize(dev *wgpu.Device) *wgpu.RenderPipeline {
	slog.Info("Create RenderPipeline for triangle", slog.Any("format", conf.TargetFormat))

	shader := dev.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:      "Triangle.ShaderSource",
		WGSLSource: &wgpu.ShaderSourceWGSL{Code: triangleShaderCode},
	})

	defer shader.Release()

	return dev.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  fmt.Sprintf("Triangle.%s", conf.TargetFormat),
		Layout: conf.Layout,
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
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
