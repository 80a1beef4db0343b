package ui

import "github.com/oliverbestmann/trichrome/glm"

// Pos2 is a position in points, with the origin in the top left corner.
type Pos2 = glm.Vec2f

// Rgba is a straight alpha color with each component in [0, 1].
type Rgba = glm.Vec4f

// TextureID identifies a texture managed by the Context.
type TextureID uint64

// FontTexture is the id of the font atlas. It always
// contains a white texel at WhiteUV.
const FontTexture TextureID = 0

// Rect is an axis aligned rectangle in points.
type Rect struct {
	Min Pos2
	Max Pos2
}

// Nothing is a rectangle that contains nothing and intersects with nothing.
var Nothing = Rect{Min: Pos2{1, 1}, Max: Pos2{0, 0}}

func RectFromMinSize(min Pos2, size Pos2) Rect {
	return Rect{Min: min, Max: min.Add(size)}
}

func RectFromMinMax(min, max Pos2) Rect {
	return Rect{Min: min, Max: max}
}

func (r Rect) Width() float32 {
	return r.Max[0] - r.Min[0]
}

func (r Rect) Height() float32 {
	return r.Max[1] - r.Min[1]
}

func (r Rect) Size() Pos2 {
	return r.Max.Sub(r.Min)
}

func (r Rect) Center() Pos2 {
	return r.Min.Add(r.Max).MulScalar(0.5)
}

// IsPositive returns true if the rectangle has a non zero area.
func (r Rect) IsPositive() bool {
	return r.Max[0] > r.Min[0] && r.Max[1] > r.Min[1]
}

func (r Rect) Contains(p Pos2) bool {
	return p[0] >= r.Min[0] && p[0] < r.Max[0] &&
		p[1] >= r.Min[1] && p[1] < r.Max[1]
}

func (r Rect) Intersect(other Rect) Rect {
	return Rect{
		Min: r.Min.Max(other.Min),
		Max: r.Max.Min(other.Max),
	}
}

func (r Rect) Union(other Rect) Rect {
	return Rect{
		Min: r.Min.Min(other.Min),
		Max: r.Max.Max(other.Max),
	}
}

// Expand grows the rectangle by amount on each side. Use a
// negative amount to shrink it.
func (r Rect) Expand(amount float32) Rect {
	return Rect{
		Min: r.Min.Sub(Pos2{amount, amount}),
		Max: r.Max.Add(Pos2{amount, amount}),
	}
}

func (r Rect) Translate(delta Pos2) Rect {
	return Rect{Min: r.Min.Add(delta), Max: r.Max.Add(delta)}
}

// Margin is spacing around the inside of a container, in points.
type Margin struct {
	Left, Right, Top, Bottom float32
}

func MarginSame(value float32) Margin {
	return Margin{Left: value, Right: value, Top: value, Bottom: value}
}

func (m Margin) shrink(r Rect) Rect {
	return Rect{
		Min: Pos2{r.Min[0] + m.Left, r.Min[1] + m.Top},
		Max: Pos2{r.Max[0] - m.Right, r.Max[1] - m.Bottom},
	}
}
