package ui

// CentralPanel covers the whole screen. The panel itself is transparent
// to input, only the widgets added to it are interactive.
type CentralPanel struct {
	Margin Margin

	// Fill is painted below the panels content. A fully
	// transparent fill paints nothing.
	Fill Rgba
}

func (p CentralPanel) Show(ctx *Context, add func(ui *Ui)) Response {
	screen := ctx.screenRect

	if p.Fill[3] > 0 {
		ctx.paint(OrderBackground, screen, RectShape{Rect: screen, Fill: p.Fill})
	}

	ui := newUi(ctx, "central_panel", p.Margin.shrink(screen), OrderBackground)
	add(ui)

	return Response{ID: ui.id, Rect: screen}
}
