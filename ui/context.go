package ui

import (
	"fmt"
	"image"
	"log/slog"
)

// Context holds the state of the ui between frames. It is not safe for
// concurrent use.
type Context struct {
	input    inputState
	fonts    *fonts
	textures *textureManager

	screenRect     Rect
	pixelsPerPoint float32

	// widget that received the last pointer press. Cleared
	// at the end of the frame the pointer was released.
	activeID string

	// id of the currently open popup, if any
	openPopup string

	// rectangles of popups painted in the previous frame
	popupRects map[string]Rect

	// interactive areas of the current frame and the previous frame.
	areas     []area
	prevAreas []area

	layers [orderCount][]ClippedShape

	repaint bool
}

func NewContext() *Context {
	return &Context{
		textures:   newTextureManager(),
		popupRects: map[string]Rect{},
		// paint at least two frames to settle the layout
		repaint: true,
	}
}

// Run runs one frame of the ui. The build function is called exactly once
// and adds panels and widgets to the context.
func (ctx *Context) Run(raw RawInput, build func(ctx *Context)) FullOutput {
	ppp := raw.PixelsPerPoint
	if ppp <= 0 {
		ppp = 1
	}

	if ctx.fonts == nil || ctx.fonts.pixelsPerPoint != ppp {
		ctx.rebuildFonts(ppp)
	}

	ctx.pixelsPerPoint = ppp
	ctx.screenRect = raw.ScreenRect
	ctx.input.begin(&raw)

	ctx.areas = ctx.areas[:0]
	for idx := range ctx.layers {
		ctx.layers[idx] = nil
	}

	build(ctx)

	if ctx.input.released {
		ctx.activeID = ""
	}

	// keep the interactive areas for the input routing of the next frame
	ctx.areas, ctx.prevAreas = ctx.prevAreas, ctx.areas

	var shapes []ClippedShape
	for _, layer := range ctx.layers {
		shapes = append(shapes, layer...)
	}

	output := FullOutput{
		Shapes:         shapes,
		TexturesDelta:  ctx.textures.endFrame(),
		PixelsPerPoint: ppp,
		NeedsRepaint:   ctx.repaint,
	}

	ctx.repaint = false

	return output
}

func (ctx *Context) rebuildFonts(ppp float32) {
	fonts, err := newFonts(ppp)
	if err != nil {
		// the builtin font is known to be valid
		panic(fmt.Sprintf("rasterize builtin font at %f pixels per point: %s", ppp, err))
	}

	slog.Debug("Rebuild font atlas",
		slog.Float64("pixelsPerPoint", float64(ppp)),
		slog.Int("width", fonts.atlas.Rect.Dx()),
		slog.Int("height", fonts.atlas.Rect.Dy()),
	)

	ctx.fonts = fonts
	ctx.textures.set(FontTexture, ImageDelta{Image: fonts.atlas, Filter: FilterLinear})
}

// PixelsPerPoint returns the pixels per point of the current or last frame.
func (ctx *Context) PixelsPerPoint() float32 {
	if ctx.pixelsPerPoint <= 0 {
		return 1
	}

	return ctx.pixelsPerPoint
}

// ScreenRect returns the screen area of the current or last frame in points.
func (ctx *Context) ScreenRect() Rect {
	return ctx.screenRect
}

// RequestRepaint asks for another frame to be run after the current one.
func (ctx *Context) RequestRepaint() {
	ctx.repaint = true
}

// LoadTexture returns the id of the texture with the given name, creating it
// on first use. A texture is freed after a frame that did not load it.
func (ctx *Context) LoadTexture(name string, create func() *image.RGBA, filter TextureFilter) TextureID {
	return ctx.textures.load(name, create, filter)
}

// IsPointerOverArea returns true if the position is above any interactive
// area painted in the last frame.
func (ctx *Context) IsPointerOverArea(pos Pos2) bool {
	for _, area := range ctx.prevAreas {
		if area.rect.Contains(pos) {
			return true
		}
	}

	return false
}

// IsUsingPointer returns true while a widget is being dragged.
func (ctx *Context) IsUsingPointer() bool {
	return ctx.activeID != ""
}

// WantsPointerInput returns true if pointer input at the given
// position should be handled by the ui and not be passed on to the
// application below it.
func (ctx *Context) WantsPointerInput(pos Pos2) bool {
	return ctx.IsUsingPointer() || ctx.IsPointerOverArea(pos)
}

// WantsKeyboardInput returns true if keyboard input should be handled by the ui.
func (ctx *Context) WantsKeyboardInput() bool {
	return ctx.openPopup != ""
}

func (ctx *Context) addArea(rect Rect, order Order) {
	if rect.IsPositive() {
		ctx.areas = append(ctx.areas, area{rect: rect, order: order})
	}
}

// occluded returns true if an area of the previous frame that is painted on top
// of the given order covers the position.
func (ctx *Context) occluded(pos Pos2, order Order) bool {
	for _, area := range ctx.prevAreas {
		if area.order > order && area.rect.Contains(pos) {
			return true
		}
	}

	return false
}

func (ctx *Context) paint(order Order, clip Rect, shape Shape) int {
	ctx.layers[order] = append(ctx.layers[order], ClippedShape{ClipRect: clip, Shape: shape})
	return len(ctx.layers[order]) - 1
}

func (ctx *Context) replaceShape(order Order, idx int, shape Shape) {
	ctx.layers[order][idx].Shape = shape
}
