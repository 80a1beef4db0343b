package pulse

import (
	"log/slog"

	"github.com/hashicorp/golang-lru/v2"
	"github.com/oliverbestmann/webgpu/wgpu"
)

type PipelineConfig interface {
	comparable

	// Specialize creates a specialized pipeline for the
	// current PipelineConfig
	Specialize(dev *wgpu.Device) *wgpu.RenderPipeline
}

// PipelineCache builds a pipeline once per distinct config. Changing any
// field of the config (e.g. the target format) yields a freshly built pipeline.
type PipelineCache[C PipelineConfig] struct {
	device *wgpu.Device
	cache  *lru.Cache[C, *wgpu.RenderPipeline]
}

func NewPipelineCache[C PipelineConfig](ctx *Context) *PipelineCache[C] {
	cache, _ := lru.NewWithEvict[C, *wgpu.RenderPipeline](16, releasePipelineOnEviction[C])

	return &PipelineCache[C]{
		device: ctx.Device,
		cache:  cache,
	}
}

func (p *PipelineCache[C]) Get(conf C) *wgpu.RenderPipeline {
	cached, ok := p.cache.Get(conf)
	if ok {
		return cached
	}

	pipeline := conf.Specialize(p.device)
	p.cache.Add(conf, pipeline)

	return pipeline
}

func (p *PipelineCache[C]) Len() int {
	return p.cache.Len()
}

// Purge releases all cached pipelines
func (p *PipelineCache[C]) Purge() {
	p.cache.Purge()
}

func releasePipelineOnEviction[C any](config C, pipe *wgpu.RenderPipeline) {
	slog.Debug("Release cached pipeline", slog.Any("config", config))
	pipe.Release()
}
