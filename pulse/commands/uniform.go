package commands

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/oliverbestmann/trichrome/pulse"
	"github.com/oliverbestmann/webgpu/wgpu"
)

// ColorUniformSize is the size of a vec4<f32> uniform in bytes.
const ColorUniformSize = 16

// EncodeColor encodes the color the way a vec4<f32> is laid out in a
// uniform buffer: r, g, b, a as little endian float32 values.
func EncodeColor(c pulse.Color) [ColorUniformSize]byte {
	var buf [ColorUniformSize]byte

	for idx, value := range c {
		binary.LittleEndian.PutUint32(buf[idx*4:], math.Float32bits(value))
	}

	return buf
}

// ColorUniform is a uniform buffer holding exactly one color.
type ColorUniform struct {
	ctx    *pulse.Context
	buffer *wgpu.Buffer
}

func NewColorUniform(ctx *pulse.Context, initial pulse.Color) *ColorUniform {
	buffer := ctx.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "ColorUniform",
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst | wgpu.BufferUsageCopySrc,
		Size:  ColorUniformSize,
	})

	u := &ColorUniform{ctx: ctx, buffer: buffer}
	u.Write(initial)

	return u
}

// Write enqueues an overwrite of the whole buffer. The write is ordered
// before every command buffer submitted afterwards.
func (u *ColorUniform) Write(color pulse.Color) {
	encoded := EncodeColor(color)
	u.writeBytes(encoded[:])
}

func (u *ColorUniform) writeBytes(data []byte) {
	if len(data) != ColorUniformSize {
		panic(fmt.Sprintf("color uniform expects %d bytes, got %d", ColorUniformSize, len(data)))
	}

	u.ctx.WriteBuffer(u.buffer, 0, data)
}

func (u *ColorUniform) Buffer() *wgpu.Buffer {
	return u.buffer
}

func (u *ColorUniform) Release() {
	u.buffer.Release()
}
