package ui

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// FontSize is the size of the default font in points.
const FontSize = 13

const atlasWidth = 512

// padding between glyphs in the atlas, in pixels
const atlasPadding = 1

var parsedFont = mustParseFont(goregular.TTF)

func mustParseFont(ttf []byte) *opentype.Font {
	parsed, err := opentype.Parse(ttf)
	if err != nil {
		panic(fmt.Sprintf("parse builtin font: %s", err))
	}

	return parsed
}

type glyphInfo struct {
	// uv rectangle in the atlas, normalized
	uv Rect

	// offset of the glyph image relative to the pen position on
	// the baseline, and the size of the glyph image, both in pixels.
	offset Pos2
	size   Pos2

	// horizontal advance in pixels
	advance float32
}

// fonts holds a rasterized atlas of the printable ascii characters
// for one pixels per point value.
type fonts struct {
	pixelsPerPoint float32

	atlas  *image.RGBA
	glyphs map[rune]glyphInfo

	// in pixels
	ascent     float32
	lineHeight float32

	// uv of a texel that is fully white and opaque
	whiteUV Pos2
}

func newFonts(pixelsPerPoint float32) (*fonts, error) {
	face, err := opentype.NewFace(parsedFont, &opentype.FaceOptions{
		Size:    float64(FontSize * pixelsPerPoint),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face: %w", err)
	}

	defer face.Close()

	metrics := face.Metrics()

	ascent := metrics.Ascent.Ceil()
	rowHeight := ascent + metrics.Descent.Ceil() + atlasPadding

	type placed struct {
		r      rune
		rect   image.Rectangle
		bounds fixed.Rectangle26_6
		adv    fixed.Int26_6
	}

	var glyphs []placed

	penX, penY := 2+atlasPadding, 0

	for r := rune(32); r < 127; r++ {
		bounds, advance, ok := face.GlyphBounds(r)
		if !ok {
			continue
		}

		width := (bounds.Max.X - bounds.Min.X).Ceil() + 1
		if penX+width > atlasWidth {
			penX = 0
			penY += rowHeight
		}

		glyphs = append(glyphs, placed{
			r:      r,
			rect:   image.Rect(penX, penY, penX+width, penY+rowHeight-atlasPadding),
			bounds: bounds,
			adv:    advance,
		})

		penX += width + atlasPadding
	}

	height := penY + rowHeight

	mask := image.NewAlpha(image.Rect(0, 0, atlasWidth, height))

	// white block in the top left corner, reserved before placing the glyphs
	draw.Draw(mask, image.Rect(0, 0, 2, 2), image.Opaque, image.Point{}, draw.Src)

	fs := &fonts{
		pixelsPerPoint: pixelsPerPoint,
		glyphs:         make(map[rune]glyphInfo, len(glyphs)),
		ascent:         float32(ascent),
		lineHeight:     float32(rowHeight - atlasPadding),
		whiteUV:        Pos2{1.0 / atlasWidth, 1.0 / float32(height)},
	}

	atlasSize := Pos2{atlasWidth, float32(height)}

	for _, g := range glyphs {
		// draw the glyph so that its left edge touches the left
		// edge of the reserved rect and the baseline is at ascent
		dot := fixed.Point26_6{
			X: fixed.I(g.rect.Min.X - g.bounds.Min.X.Floor()),
			Y: fixed.I(g.rect.Min.Y + ascent),
		}

		drawer := font.Drawer{Dst: mask, Src: image.Opaque, Face: face, Dot: dot}
		drawer.DrawString(string(g.r))

		origin := Pos2{float32(g.rect.Min.X), float32(g.rect.Min.Y)}
		size := Pos2{float32(g.rect.Dx()), float32(g.rect.Dy())}

		fs.glyphs[g.r] = glyphInfo{
			uv:      RectFromMinSize(origin.Div(atlasSize), size.Div(atlasSize)),
			offset:  Pos2{float32(g.bounds.Min.X.Floor()), -float32(ascent)},
			size:    size,
			advance: float32(g.adv) / 64,
		}
	}

	fs.atlas = alphaToWhiteRGBA(mask)

	return fs, nil
}

// alphaToWhiteRGBA converts an alpha mask into a white image
// with straight alpha taken from the mask.
func alphaToWhiteRGBA(mask *image.Alpha) *image.RGBA {
	rgba := image.NewRGBA(mask.Rect)

	for idx, alpha := range mask.Pix {
		rgba.Pix[idx*4+0] = 0xff
		rgba.Pix[idx*4+1] = 0xff
		rgba.Pix[idx*4+2] = 0xff
		rgba.Pix[idx*4+3] = alpha
	}

	return rgba
}

// PlacedGlyph is a glyph positioned relative to the origin of a Galley.
type PlacedGlyph struct {
	Rect Rect
	UV   Rect
}

// Galley is a laid out piece of text. Coordinates are in points.
type Galley struct {
	Glyphs []PlacedGlyph
	Size   Pos2
}

// layout lays out a single line of text. The top left corner
// of the line box is at the origin.
func (fs *fonts) layout(text string) *Galley {
	ppp := fs.pixelsPerPoint

	galley := &Galley{}

	var penX float32

	for _, r := range text {
		glyph, ok := fs.glyphs[r]
		if !ok {
			glyph, ok = fs.glyphs['?']
			if !ok {
				continue
			}
		}

		if r != ' ' {
			// snap to pixels to keep the glyphs crisp
			x := float32(math.Round(float64(penX))) + glyph.offset[0]
			y := fs.ascent + glyph.offset[1]

			rect := RectFromMinSize(Pos2{x, y}, glyph.size)

			galley.Glyphs = append(galley.Glyphs, PlacedGlyph{
				Rect: Rect{Min: rect.Min.MulScalar(1 / ppp), Max: rect.Max.MulScalar(1 / ppp)},
				UV:   glyph.uv,
			})
		}

		penX += glyph.advance
	}

	galley.Size = Pos2{penX / ppp, fs.lineHeight / ppp}

	return galley
}
