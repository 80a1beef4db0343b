package ui

import (
	"fmt"
	"image"
	"image/color"
)

var (
	swatchSize  = Pos2{40, 18}
	sliderSize  = Pos2{128, 16}
	previewSize = Pos2{160, 24}
)

// size of a checkerboard cell in texels
const checkerCell = 4

var channelNames = [4]string{"R", "G", "B", "A"}

// ColorEditButton shows a button with the current color. Clicking the button
// opens a popup to edit the color. The popup closes on escape or on a click
// outside of it.
func (ui *Ui) ColorEditButton(value *Rgba) Response {
	id := ui.nextID("color_edit")
	popupID := id + "/popup"

	rect := ui.allocate(swatchSize)
	resp := ui.interact(rect, id)

	ui.paintSwatch(rect, *value, resp.Hovered || ui.isPopupOpen(popupID))

	if resp.Clicked {
		if ui.isPopupOpen(popupID) {
			ui.closePopup(popupID)
		} else {
			ui.openPopup(popupID)
		}
	}

	if !ui.isPopupOpen(popupID) {
		return resp
	}

	in := &ui.ctx.input

	if in.keyPressed(KeyEscape) {
		ui.closePopup(popupID)
		return resp
	}

	if in.pressed && !rect.Contains(in.pressPos) {
		if prev, ok := ui.ctx.popupRects[popupID]; ok && !prev.Contains(in.pressPos) {
			ui.closePopup(popupID)
			return resp
		}
	}

	ui.popup(popupID, Pos2{rect.Min[0], rect.Max[1] + itemSpacing}, func(ui *Ui) {
		resp.Changed = ui.colorPicker(value)
	})

	return resp
}

// paintSwatch paints the color opaque on the left half, and with its
// alpha over a checkerboard on the right half.
func (ui *Ui) paintSwatch(rect Rect, value Rgba, highlight bool) {
	opaque := value
	opaque[3] = 1

	center := rect.Center()[0]
	left := Rect{Min: rect.Min, Max: Pos2{center, rect.Max[1]}}
	right := Rect{Min: Pos2{center, rect.Min[1]}, Max: rect.Max}

	ui.paint(RectShape{Rect: left, Fill: opaque})
	ui.paintChecker(right)
	ui.paint(RectShape{Rect: right, Fill: value})

	stroke := Stroke{Width: 1, Color: strokeColor}
	if highlight {
		stroke.Color = hoverColor
	}

	ui.paint(RectShape{Rect: rect, Rounding: 2, Stroke: stroke})
}

func (ui *Ui) colorPicker(value *Rgba) bool {
	var changed bool

	for channel, name := range channelNames {
		ui.Horizontal(func(row *Ui) {
			row.Label(name)

			if row.channelSlider(value, channel) {
				changed = true
			}

			row.Label(fmt.Sprintf("%.2f", value[channel]))
		})
	}

	preview := ui.allocate(previewSize)
	ui.paintChecker(preview)
	ui.paint(RectShape{Rect: preview, Fill: *value, Stroke: Stroke{Width: 1, Color: strokeColor}})

	return changed
}

// channelSlider edits one channel of the color by dragging.
func (ui *Ui) channelSlider(value *Rgba, channel int) bool {
	id := ui.nextID("channel")

	rect := ui.allocate(sliderSize)
	resp := ui.interact(rect, id)

	var changed bool

	if resp.Dragged {
		pos := ui.ctx.input.pointerPos
		t := clamp01((pos[0] - rect.Min[0]) / rect.Width())

		if value[channel] != t {
			value[channel] = t
			changed = true
		}
	}

	// gradient from zero to one for the edited channel
	lo, hi := *value, *value
	lo[channel], hi[channel] = 0, 1

	if channel == 3 {
		ui.paintChecker(rect)
	} else {
		lo[3], hi[3] = 1, 1
	}

	ui.paint(GradientShape{Rect: rect, Left: lo, Right: hi})

	// handle at the current value
	x := rect.Min[0] + value[channel]*rect.Width()
	handle := Rect{
		Min: Pos2{x - 1.5, rect.Min[1] - 1},
		Max: Pos2{x + 1.5, rect.Max[1] + 1},
	}

	handleStroke := Stroke{Width: 1, Color: widgetFill}
	if resp.Hovered || resp.Dragged {
		handleStroke.Color = hoverColor
	}

	ui.paint(RectShape{Rect: handle, Fill: textColor, Stroke: handleStroke})

	return changed
}

func (ui *Ui) paintChecker(rect Rect) {
	texture := ui.ctx.LoadTexture("checkerboard", checkerboard, FilterNearest)

	// one cell per checkerCell points
	uv := Rect{Max: rect.Size().MulScalar(1.0 / (2 * checkerCell))}

	ui.paint(ImageShape{Rect: rect, UV: uv, Texture: texture, Tint: Rgba{1, 1, 1, 1}})
}

// checkerboard creates a texture with two by two cells. The texture must
// be sampled with a repeating address mode.
func checkerboard() *image.RGBA {
	const size = 2 * checkerCell

	dark := color.RGBA{R: 0x50, G: 0x50, B: 0x50, A: 0xff}
	light := color.RGBA{R: 0xa0, G: 0xa0, B: 0xa0, A: 0xff}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := range size {
		for x := range size {
			c := dark
			if (x/checkerCell+y/checkerCell)%2 == 1 {
				c = light
			}

			img.SetRGBA(x, y, c)
		}
	}

	return img
}

func clamp01(value float32) float32 {
	return max(0, min(1, value))
}
