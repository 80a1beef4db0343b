package ui

// Shape is something that can be painted. Shapes are tessellated
// into triangle meshes by Tessellate.
type Shape interface {
	isShape()
}

type Stroke struct {
	Width float32
	Color Rgba
}

// RectShape is a filled rectangle with optionally rounded corners and an outline.
type RectShape struct {
	Rect     Rect
	Rounding float32
	Fill     Rgba
	Stroke   Stroke
}

// TextShape paints a Galley with its top left corner at Pos.
type TextShape struct {
	Pos    Pos2
	Galley *Galley
	Color  Rgba
}

// ImageShape paints a region of a texture, multiplied by Tint.
type ImageShape struct {
	Rect    Rect
	UV      Rect
	Texture TextureID
	Tint    Rgba
}

// GradientShape is a rectangle with a horizontal color gradient.
type GradientShape struct {
	Rect  Rect
	Left  Rgba
	Right Rgba
}

func (RectShape) isShape()     {}
func (TextShape) isShape()     {}
func (ImageShape) isShape()    {}
func (GradientShape) isShape() {}

// ClippedShape is a shape that must only be painted within ClipRect.
type ClippedShape struct {
	ClipRect Rect
	Shape    Shape
}

// Order defines the paint order of a layer. Higher orders are painted
// on top of lower orders and occlude their input.
type Order uint8

const (
	OrderBackground Order = iota
	OrderForeground

	orderCount
)

type area struct {
	rect  Rect
	order Order
}
