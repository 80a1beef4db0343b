package pulse

import (
	"github.com/oliverbestmann/trichrome/glm"
	"github.com/oliverbestmann/webgpu/wgpu"
)

// Color is a straight (non-premultiplied) rgba color, each component in [0, 1].
type Color = glm.Vec4f

var ColorWhite = ColorLinearRGBA(1, 1, 1, 1)
var ColorBlack = ColorLinearRGBA(0, 0, 0, 1)
var ColorRed = ColorLinearRGBA(1, 0, 0, 1)
var ColorTransparent = ColorLinearRGBA(0, 0, 0, 0)

// ColorLinearRGBA creates a new Color value from the given color values.
func ColorLinearRGBA(r, g, b, a float32) Color {
	return Color{r, g, b, a}
}

// ClearValue converts the color into a value usable with wgpu.LoadOpClear
func ClearValue(c Color) wgpu.Color {
	return wgpu.Color{
		R: float64(c[0]),
		G: float64(c[1]),
		B: float64(c[2]),
		A: float64(c[3]),
	}
}
