package ui

import "fmt"

// spacing between two widgets in points
const itemSpacing = 4

var (
	textColor   = Rgba{0.85, 0.85, 0.85, 1}
	strokeColor = Rgba{0.35, 0.35, 0.35, 1}
	hoverColor  = Rgba{0.9, 0.9, 0.9, 1}
	popupFill   = Rgba{0.11, 0.11, 0.11, 0.96}
	widgetFill  = Rgba{0.2, 0.2, 0.2, 1}
	popupMargin = MarginSame(8)
)

const popupRounding = 4

// Response describes the interaction with a widget in the current frame.
type Response struct {
	ID   string
	Rect Rect

	// pointer is above the widget
	Hovered bool

	// pointer was pressed on the widget within this frame
	Pressed bool

	// pointer was pressed and released on the widget
	Clicked bool

	// widget is being dragged
	Dragged bool

	// the value represented by the widget was changed
	Changed bool
}

// Ui places widgets one after another, either top to bottom
// or left to right.
type Ui struct {
	ctx *Context

	order Order
	clip  Rect

	horizontal bool
	cursor     Pos2

	// union of all allocated rects
	used Rect

	id     string
	autoID int
}

func newUi(ctx *Context, id string, maxRect Rect, order Order) *Ui {
	return &Ui{
		ctx:    ctx,
		id:     id,
		order:  order,
		clip:   ctx.screenRect,
		cursor: maxRect.Min,
		used:   RectFromMinSize(maxRect.Min, Pos2{}),
	}
}

// nextID returns an id that is stable between frames as long as the
// widgets are added in the same order.
func (ui *Ui) nextID(kind string) string {
	id := fmt.Sprintf("%s/%s#%d", ui.id, kind, ui.autoID)
	ui.autoID++
	return id
}

// allocate reserves space for a widget of the given size.
func (ui *Ui) allocate(size Pos2) Rect {
	rect := RectFromMinSize(ui.cursor, size)

	if ui.horizontal {
		ui.cursor[0] += size[0] + itemSpacing
	} else {
		ui.cursor[1] += size[1] + itemSpacing
	}

	ui.used = ui.used.Union(rect)

	return rect
}

func (ui *Ui) paint(shape Shape) int {
	return ui.ctx.paint(ui.order, ui.clip, shape)
}

func (ui *Ui) hoveredAt(rect Rect, pos Pos2) bool {
	return rect.Intersect(ui.clip).Contains(pos) && !ui.ctx.occluded(pos, ui.order)
}

// interact registers the rect as an interactive area and checks the pointer against it.
func (ui *Ui) interact(rect Rect, id string) Response {
	ctx := ui.ctx
	in := &ctx.input

	ctx.addArea(rect.Intersect(ui.clip), ui.order)

	resp := Response{ID: id, Rect: rect}

	if in.pressed && ui.hoveredAt(rect, in.pressPos) {
		ctx.activeID = id
		resp.Pressed = true
	}

	resp.Hovered = in.hasPointer && ui.hoveredAt(rect, in.pointerPos)

	isActive := ctx.activeID == id
	resp.Dragged = isActive && (in.down || in.pressed)
	resp.Clicked = isActive && in.released && ui.hoveredAt(rect, in.releasePos)

	return resp
}

// Label adds a line of text.
func (ui *Ui) Label(text string) Response {
	galley := ui.ctx.fonts.layout(text)

	rect := ui.allocate(galley.Size)
	ui.paint(TextShape{Pos: rect.Min, Galley: galley, Color: textColor})

	return Response{Rect: rect}
}

// Horizontal places the widgets added by add left to right.
func (ui *Ui) Horizontal(add func(ui *Ui)) Response {
	child := &Ui{
		ctx:        ui.ctx,
		id:         ui.nextID("horizontal"),
		order:      ui.order,
		clip:       ui.clip,
		horizontal: true,
		cursor:     ui.cursor,
		used:       RectFromMinSize(ui.cursor, Pos2{}),
	}

	add(child)

	rect := ui.allocate(child.used.Size())
	return Response{Rect: rect}
}

// popup shows a popup with its top left corner at pos, painted on top of
// everything else. The popup is moved to stay within the screen.
func (ui *Ui) popup(id string, pos Pos2, add func(ui *Ui)) Rect {
	ctx := ui.ctx

	// the size of the popup is only known after its content was added,
	// use the size of the last frame to place it
	if prev, ok := ctx.popupRects[id]; ok {
		size := prev.Size()
		pos[0] = max(ctx.screenRect.Min[0], min(pos[0], ctx.screenRect.Max[0]-size[0]))
		pos[1] = max(ctx.screenRect.Min[1], min(pos[1], ctx.screenRect.Max[1]-size[1]))
	}

	inner := Rect{
		Min: Pos2{pos[0] + popupMargin.Left, pos[1] + popupMargin.Top},
		Max: ctx.screenRect.Max,
	}

	child := newUi(ctx, id, inner, OrderForeground)

	// reserve a slot for the background, the frame is only known later
	bg := child.paint(RectShape{})

	add(child)

	content := child.used
	frame := Rect{
		Min: pos,
		Max: Pos2{content.Max[0] + popupMargin.Right, content.Max[1] + popupMargin.Bottom},
	}

	ctx.replaceShape(OrderForeground, bg, RectShape{
		Rect:     frame,
		Rounding: popupRounding,
		Fill:     popupFill,
		Stroke:   Stroke{Width: 1, Color: strokeColor},
	})

	ctx.addArea(frame, OrderForeground)

	if prev, ok := ctx.popupRects[id]; !ok || prev != frame {
		// layout changed, paint once more to place the popup correctly
		ctx.RequestRepaint()
	}

	ctx.popupRects[id] = frame

	return frame
}

func (ui *Ui) isPopupOpen(id string) bool {
	return ui.ctx.openPopup == id
}

func (ui *Ui) openPopup(id string) {
	ui.ctx.openPopup = id
	ui.ctx.RequestRepaint()
}

func (ui *Ui) closePopup(id string) {
	if ui.ctx.openPopup == id {
		ui.ctx.openPopup = ""
		delete(ui.ctx.popupRects, id)
		ui.ctx.RequestRepaint()
	}
}
