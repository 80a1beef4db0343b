package glm

import (
	"golang.org/x/mobile/exp/f32"
)

// Sincos returns a fast approximation of sin and cos of r, looked up
// from a table. The error is below 1e-3, which is plenty for
// tessellating arcs on screen.
func Sincos(r Rad) (float32, float32) {
	return f32.Sin(float32(r)), f32.Cos(float32(r))
}
