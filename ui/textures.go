package ui

import (
	"image"
	"log/slog"
)

type TextureFilter uint8

const (
	FilterLinear TextureFilter = iota
	FilterNearest
)

// ImageDelta is a full or partial update of a texture.
type ImageDelta struct {
	Image *image.RGBA

	// Pos is nil when the delta replaces the whole texture.
	// Otherwise the image is written at this position into
	// the existing texture.
	Pos *image.Point

	Filter TextureFilter
}

// IsWhole returns true if the delta replaces the whole texture.
func (d ImageDelta) IsWhole() bool {
	return d.Pos == nil
}

type TextureSet struct {
	ID    TextureID
	Delta ImageDelta
}

// TexturesDelta lists textures to create or update before rendering
// a frame, and textures to free after the frame was submitted.
type TexturesDelta struct {
	Set  []TextureSet
	Free []TextureID
}

func (d *TexturesDelta) IsEmpty() bool {
	return len(d.Set) == 0 && len(d.Free) == 0
}

type userTexture struct {
	id      TextureID
	touched bool
}

// textureManager tracks user textures. A texture lives as long as it is
// requested during every frame, and is freed at the end of the first
// frame that does not request it.
type textureManager struct {
	nextID TextureID
	byName map[string]*userTexture
	delta  TexturesDelta
}

func newTextureManager() *textureManager {
	return &textureManager{
		// zero is reserved for the font texture
		nextID: FontTexture + 1,
		byName: map[string]*userTexture{},
	}
}

func (m *textureManager) set(id TextureID, delta ImageDelta) {
	m.delta.Set = append(m.delta.Set, TextureSet{ID: id, Delta: delta})
}

func (m *textureManager) load(name string, create func() *image.RGBA, filter TextureFilter) TextureID {
	if tex, ok := m.byName[name]; ok {
		tex.touched = true
		return tex.id
	}

	tex := &userTexture{id: m.nextID, touched: true}
	m.nextID++

	slog.Debug("Allocate ui texture", slog.String("name", name), slog.Uint64("id", uint64(tex.id)))

	m.byName[name] = tex
	m.set(tex.id, ImageDelta{Image: create(), Filter: filter})

	return tex.id
}

// endFrame frees every texture that was not touched within this frame
// and returns the delta accumulated since the previous call.
func (m *textureManager) endFrame() TexturesDelta {
	for name, tex := range m.byName {
		if !tex.touched {
			slog.Debug("Free ui texture", slog.String("name", name), slog.Uint64("id", uint64(tex.id)))

			m.delta.Free = append(m.delta.Free, tex.id)
			delete(m.byName, name)
			continue
		}

		tex.touched = false
	}

	delta := m.delta
	m.delta = TexturesDelta{}

	return delta
}
