package pulse

import (
	"fmt"

	"github.com/oliverbestmann/webgpu/wgpu"
)

// ReadBuffer copies the first size bytes of source into a staging buffer
// and maps it for reading. Source must have been created with BufferUsageCopySrc.
// This blocks until the gpu finished all previously submitted work.
func ReadBuffer(ctx *Context, source *wgpu.Buffer, size uint64) ([]byte, error) {
	staging := ctx.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Readback.Staging",
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		Size:  size,
	})

	defer staging.Release()

	enc := ctx.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: "Readback"})
	defer enc.Release()

	enc.CopyBufferToBuffer(source, 0, staging, 0, size)

	cmd := enc.Finish(nil)
	defer cmd.Release()

	ctx.Submit(cmd)

	return mapStaging(ctx, staging, size)
}

func mapStaging(ctx *Context, staging *wgpu.Buffer, size uint64) ([]byte, error) {
	var status wgpu.MapAsyncStatus
	var done bool

	staging.MapAsync(wgpu.MapModeRead, 0, size, func(st wgpu.MapAsyncStatus) {
		status = st
		done = true
	})

	// wait for the copy and the mapping to finish
	for !done {
		ctx.Poll(true, nil)
	}

	if status != wgpu.MapAsyncStatusSuccess {
		return nil, fmt.Errorf("map staging buffer: status %v", status)
	}

	defer staging.Unmap()

	mapped := staging.GetMappedRange(0, uint(size))

	result := make([]byte, size)
	copy(result, mapped)

	return result, nil
}
