package ui

// FullOutput is everything a frame of the ui produced.
type FullOutput struct {
	// Shapes to paint, back to front
	Shapes []ClippedShape

	// Textures to update before painting, and textures
	// to free after painting.
	TexturesDelta TexturesDelta

	PixelsPerPoint float32

	// NeedsRepaint is true if the ui wants to run another frame
	// even without new input, e.g. because the layout changed.
	NeedsRepaint bool
}
