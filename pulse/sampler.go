package pulse

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/oliverbestmann/webgpu/wgpu"
)

// samplerCache holds the samplers of one Context. Samplers belong to the device
// that created them and must never be shared between contexts.
type samplerCache = lru.Cache[wgpu.SamplerDescriptor, *wgpu.Sampler]

func newSamplerCache() *samplerCache {
	cache, _ := lru.NewWithEvict[wgpu.SamplerDescriptor, *wgpu.Sampler](16, samplerCacheOnEvict)
	return cache
}

func samplerCacheOnEvict(key wgpu.SamplerDescriptor, value *wgpu.Sampler) {
	value.Release()
}

// CachedSampler returns a sampler matching your description. The sampler may be cached,
// you  must not call wgpu.Sampler.Release() on it. It is released with the Context.
func CachedSampler(ctx *Context, desc wgpu.SamplerDescriptor) *wgpu.Sampler {
	if ctx.samplers == nil {
		ctx.samplers = newSamplerCache()
	}

	cachedSampler, ok := ctx.samplers.Get(desc)
	if ok {
		return cachedSampler
	}

	// create a new sampler
	sampler := ctx.CreateSampler(&desc)
	ctx.samplers.Add(desc, sampler)

	return sampler
}
