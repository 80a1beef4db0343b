package ui

import "testing"

func TestTessellateShapes(t *testing.T) {
	clip := RectFromMinSize(Pos2{}, Pos2{100, 100})
	rect := RectFromMinSize(Pos2{10, 10}, Pos2{20, 10})
	white := Rgba{1, 1, 1, 1}

	tests := []struct {
		name     string
		shape    Shape
		vertices int
		indices  int
	}{
		{
			name:     "plain rect",
			shape:    RectShape{Rect: rect, Fill: white},
			vertices: 4,
			indices:  6,
		},
		{
			name:     "transparent rect",
			shape:    RectShape{Rect: rect},
			vertices: 0,
			indices:  0,
		},
		{
			name:     "empty rect",
			shape:    RectShape{Rect: Nothing, Fill: white},
			vertices: 0,
			indices:  0,
		},
		{
			name:     "stroke only",
			shape:    RectShape{Rect: rect, Stroke: Stroke{Width: 1, Color: white}},
			vertices: 2 * 4,
			indices:  6 * 4,
		},
		{
			name:     "gradient",
			shape:    GradientShape{Rect: rect, Left: Rgba{0, 0, 0, 1}, Right: white},
			vertices: 4,
			indices:  6,
		},
		{
			name:     "image",
			shape:    ImageShape{Rect: rect, UV: RectFromMinSize(Pos2{}, Pos2{1, 1}), Texture: 3, Tint: white},
			vertices: 4,
			indices:  6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tess := tessellator{pixelsPerPoint: 1}

			prims := tess.tessellate([]ClippedShape{{ClipRect: clip, Shape: tt.shape}})

			var vertices, indices int
			for _, prim := range prims {
				vertices += len(prim.Mesh.Vertices)
				indices += len(prim.Mesh.Indices)
			}

			if vertices != tt.vertices || indices != tt.indices {
				t.Fatalf("expected %d vertices and %d indices, got %d and %d",
					tt.vertices, tt.indices, vertices, indices)
			}
		})
	}
}

func TestTessellateRoundedRect(t *testing.T) {
	tess := tessellator{pixelsPerPoint: 1}

	rect := RectFromMinSize(Pos2{10, 10}, Pos2{40, 20})
	shape := RectShape{Rect: rect, Rounding: 4, Fill: Rgba{1, 0, 0, 1}}

	prims := tess.tessellate([]ClippedShape{{ClipRect: rect, Shape: shape}})
	if len(prims) != 1 {
		t.Fatalf("expected one primitive, got %d", len(prims))
	}

	mesh := prims[0].Mesh

	segments := tess.segmentsFor(4)
	if len(mesh.Vertices) != 4*(segments+1) {
		t.Fatalf("expected %d vertices, got %d", 4*(segments+1), len(mesh.Vertices))
	}

	if len(mesh.Indices) != 3*(len(mesh.Vertices)-2) {
		t.Fatalf("expected a triangle fan, got %d indices", len(mesh.Indices))
	}

	// rounded corners stay within the rectangle
	for _, vertex := range mesh.Vertices {
		if !rect.Expand(1e-3).Contains(vertex.Pos) {
			t.Fatalf("vertex %v outside of %v", vertex.Pos, rect)
		}
	}

	// the corner itself is cut off
	for _, vertex := range mesh.Vertices {
		if vertex.Pos == rect.Min {
			t.Fatalf("corner should be rounded")
		}
	}
}

func TestTessellateBatching(t *testing.T) {
	tess := tessellator{pixelsPerPoint: 1}

	clipA := RectFromMinSize(Pos2{}, Pos2{100, 100})
	clipB := RectFromMinSize(Pos2{}, Pos2{50, 50})
	rect := RectFromMinSize(Pos2{10, 10}, Pos2{10, 10})
	fill := Rgba{1, 1, 1, 1}

	shapes := []ClippedShape{
		{ClipRect: clipA, Shape: RectShape{Rect: rect, Fill: fill}},
		{ClipRect: clipA, Shape: GradientShape{Rect: rect, Left: fill, Right: fill}},
		{ClipRect: clipA, Shape: ImageShape{Rect: rect, Texture: 5, Tint: fill}},
		{ClipRect: clipB, Shape: RectShape{Rect: rect, Fill: fill}},
		{ClipRect: Nothing, Shape: RectShape{Rect: rect, Fill: fill}},
	}

	prims := tess.tessellate(shapes)
	if len(prims) != 3 {
		t.Fatalf("expected 3 primitives, got %d", len(prims))
	}

	expected := []TextureID{FontTexture, 5, FontTexture}
	for idx, prim := range prims {
		if prim.Mesh.Texture != expected[idx] {
			t.Errorf("primitive %d: expected texture %d, got %d", idx, expected[idx], prim.Mesh.Texture)
		}
	}

	if len(prims[0].Mesh.Vertices) != 8 {
		t.Fatalf("expected the first two shapes to be merged")
	}

	for _, prim := range prims {
		for _, index := range prim.Mesh.Indices {
			if int(index) >= len(prim.Mesh.Vertices) {
				t.Fatalf("index %d out of range", index)
			}
		}
	}
}

func TestTessellateText(t *testing.T) {
	ctx := NewContext()
	ctx.rebuildFonts(1)

	galley := ctx.fonts.layout("a b")
	if len(galley.Glyphs) != 2 {
		t.Fatalf("expected two glyphs without the space, got %d", len(galley.Glyphs))
	}

	shapes := []ClippedShape{{
		ClipRect: testScreen,
		Shape:    TextShape{Pos: Pos2{10, 10}, Galley: galley, Color: Rgba{1, 1, 1, 1}},
	}}

	prims := ctx.Tessellate(shapes, 1)
	if len(prims) != 1 || len(prims[0].Mesh.Vertices) != 8 {
		t.Fatalf("expected one quad per glyph")
	}

	for _, vertex := range prims[0].Mesh.Vertices {
		if vertex.Pos[0] < 10 || vertex.Pos[1] < 10 {
			t.Fatalf("glyph not translated: %v", vertex.Pos)
		}
	}
}
