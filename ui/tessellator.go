package ui

import (
	"math"

	"github.com/oliverbestmann/trichrome/glm"
)

// Vertex is laid out to be uploaded to the gpu as is.
type Vertex struct {
	Pos   Pos2
	UV    glm.Vec2f
	Color Rgba
}

// Mesh is a list of triangles sharing one texture.
type Mesh struct {
	Indices  []uint32
	Vertices []Vertex
	Texture  TextureID
}

func (m *Mesh) IsEmpty() bool {
	return len(m.Indices) == 0
}

func (m *Mesh) addTriangle(a, b, c uint32) {
	m.Indices = append(m.Indices, a, b, c)
}

// addRect adds a quad with per corner colors, ordered top left,
// top right, bottom right, bottom left.
func (m *Mesh) addRect(rect Rect, uv Rect, colors [4]Rgba) {
	base := uint32(len(m.Vertices))

	m.Vertices = append(m.Vertices,
		Vertex{Pos: rect.Min, UV: uv.Min, Color: colors[0]},
		Vertex{Pos: Pos2{rect.Max[0], rect.Min[1]}, UV: glm.Vec2f{uv.Max[0], uv.Min[1]}, Color: colors[1]},
		Vertex{Pos: rect.Max, UV: uv.Max, Color: colors[2]},
		Vertex{Pos: Pos2{rect.Min[0], rect.Max[1]}, UV: glm.Vec2f{uv.Min[0], uv.Max[1]}, Color: colors[3]},
	)

	m.addTriangle(base+0, base+1, base+2)
	m.addTriangle(base+0, base+2, base+3)
}

// ClippedPrimitive is a mesh that must be drawn with a scissor
// rect covering ClipRect, in points.
type ClippedPrimitive struct {
	ClipRect Rect
	Mesh     Mesh
}

type tessellator struct {
	pixelsPerPoint float32
	whiteUV        Pos2
}

// Tessellate converts shapes into meshes. Consecutive shapes sharing a clip
// rect and a texture are merged into one primitive.
func (ctx *Context) Tessellate(shapes []ClippedShape, pixelsPerPoint float32) []ClippedPrimitive {
	tess := tessellator{
		pixelsPerPoint: pixelsPerPoint,
		whiteUV:        ctx.fonts.whiteUV,
	}

	return tess.tessellate(shapes)
}

func (t *tessellator) tessellate(shapes []ClippedShape) []ClippedPrimitive {
	var primitives []ClippedPrimitive

	for _, clipped := range shapes {
		if !clipped.ClipRect.IsPositive() {
			continue
		}

		texture := shapeTexture(clipped.Shape)

		// try to continue the previous primitive
		var current *ClippedPrimitive
		if n := len(primitives); n > 0 {
			last := &primitives[n-1]
			if last.ClipRect == clipped.ClipRect && last.Mesh.Texture == texture {
				current = last
			}
		}

		if current == nil {
			primitives = append(primitives, ClippedPrimitive{
				ClipRect: clipped.ClipRect,
				Mesh:     Mesh{Texture: texture},
			})

			current = &primitives[len(primitives)-1]
		}

		t.tessellateShape(&current.Mesh, clipped.Shape)
	}

	// drop primitives that did not produce any triangles
	result := primitives[:0]
	for _, prim := range primitives {
		if !prim.Mesh.IsEmpty() {
			result = append(result, prim)
		}
	}

	return result
}

func shapeTexture(shape Shape) TextureID {
	if image, ok := shape.(ImageShape); ok {
		return image.Texture
	}

	return FontTexture
}

func (t *tessellator) tessellateShape(mesh *Mesh, shape Shape) {
	switch shape := shape.(type) {
	case RectShape:
		t.rect(mesh, shape)

	case TextShape:
		t.text(mesh, shape)

	case ImageShape:
		if shape.Rect.IsPositive() {
			tint := shape.Tint
			mesh.addRect(shape.Rect, shape.UV, [4]Rgba{tint, tint, tint, tint})
		}

	case GradientShape:
		if shape.Rect.IsPositive() {
			l, r := shape.Left, shape.Right
			mesh.addRect(shape.Rect, t.whiteRect(), [4]Rgba{l, r, r, l})
		}
	}
}

func (t *tessellator) whiteRect() Rect {
	return Rect{Min: t.whiteUV, Max: t.whiteUV}
}

func (t *tessellator) rect(mesh *Mesh, shape RectShape) {
	if !shape.Rect.IsPositive() {
		return
	}

	rounding := min(shape.Rounding, shape.Rect.Width()/2, shape.Rect.Height()/2)

	if shape.Fill[3] > 0 {
		path := t.roundedRectPath(shape.Rect, rounding)
		t.fillConvex(mesh, path, shape.Fill)
	}

	if shape.Stroke.Width > 0 && shape.Stroke.Color[3] > 0 {
		half := shape.Stroke.Width / 2

		// both paths need the same number of points
		var segments int
		if rounding > 0 {
			segments = t.segmentsFor(rounding + half)
		}

		outer := t.roundedRectPathSegments(shape.Rect.Expand(half), rounding+half, segments)
		inner := t.roundedRectPathSegments(shape.Rect.Expand(-half), max(0, rounding-half), segments)

		t.strokeRing(mesh, outer, inner, shape.Stroke.Color)
	}
}

func (t *tessellator) text(mesh *Mesh, shape TextShape) {
	if shape.Galley == nil {
		return
	}

	color := shape.Color
	colors := [4]Rgba{color, color, color, color}

	for _, glyph := range shape.Galley.Glyphs {
		mesh.addRect(glyph.Rect.Translate(shape.Pos), glyph.UV, colors)
	}
}

// segmentsFor returns the number of segments to approximate a
// quarter circle of the given radius with.
func (t *tessellator) segmentsFor(radius float32) int {
	if radius <= 0 {
		return 0
	}

	pixels := radius * t.pixelsPerPoint
	return int(min(16, max(2, math.Ceil(float64(pixels)/2))))
}

func (t *tessellator) roundedRectPath(rect Rect, radius float32) []Pos2 {
	return t.roundedRectPathSegments(rect, radius, t.segmentsFor(radius))
}

// roundedRectPathSegments returns the outline of a rectangle clockwise, starting at
// the top left corner. Each corner contributes segments+1 points.
func (t *tessellator) roundedRectPathSegments(rect Rect, radius float32, segments int) []Pos2 {
	if segments <= 0 || radius <= 0 {
		// still emit segments+1 points per corner to keep paths comparable
		count := max(segments, 0) + 1

		corners := [4]Pos2{
			rect.Min,
			{rect.Max[0], rect.Min[1]},
			rect.Max,
			{rect.Min[0], rect.Max[1]},
		}

		path := make([]Pos2, 0, 4*count)
		for _, corner := range corners {
			for range count {
				path = append(path, corner)
			}
		}

		return path
	}

	centers := [4]Pos2{
		{rect.Min[0] + radius, rect.Min[1] + radius},
		{rect.Max[0] - radius, rect.Min[1] + radius},
		{rect.Max[0] - radius, rect.Max[1] - radius},
		{rect.Min[0] + radius, rect.Max[1] - radius},
	}

	path := make([]Pos2, 0, 4*(segments+1))

	for corner, center := range centers {
		// top left corner starts pointing left (180°), going clockwise on screen
		start := math.Pi + float64(corner)*math.Pi/2

		for step := 0; step <= segments; step++ {
			angle := start + float64(step)/float64(segments)*math.Pi/2
			sin, cos := glm.Sincos(glm.Rad(angle))
			path = append(path, Pos2{center[0] + cos*radius, center[1] + sin*radius})
		}
	}

	return path
}

func (t *tessellator) fillConvex(mesh *Mesh, path []Pos2, color Rgba) {
	if len(path) < 3 {
		return
	}

	base := uint32(len(mesh.Vertices))

	for _, p := range path {
		mesh.Vertices = append(mesh.Vertices, Vertex{Pos: p, UV: t.whiteUV, Color: color})
	}

	for idx := 1; idx+1 < len(path); idx++ {
		mesh.addTriangle(base, base+uint32(idx), base+uint32(idx+1))
	}
}

func (t *tessellator) strokeRing(mesh *Mesh, outer, inner []Pos2, color Rgba) {
	n := len(outer)
	if n < 3 || len(inner) != n {
		return
	}

	base := uint32(len(mesh.Vertices))

	for idx := range n {
		mesh.Vertices = append(mesh.Vertices,
			Vertex{Pos: outer[idx], UV: t.whiteUV, Color: color},
			Vertex{Pos: inner[idx], UV: t.whiteUV, Color: color},
		)
	}

	for idx := range n {
		next := (idx + 1) % n

		o0, i0 := base+uint32(2*idx), base+uint32(2*idx+1)
		o1, i1 := base+uint32(2*next), base+uint32(2*next+1)

		mesh.addTriangle(o0, o1, i1)
		mesh.addTriangle(o0, i1, i0)
	}
}
