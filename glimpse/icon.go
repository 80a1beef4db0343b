package glimpse

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"

	"golang.org/x/image/draw"
)

// IconSizes are the edge lengths window icons are scaled to.
var IconSizes = []int{16, 32, 48, 64}

// DecodeIcon decodes an encoded image, e.g. a png file.
func DecodeIcon(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode icon: %w", err)
	}

	return img, nil
}

// ScaleIcon scales the icon to each of the given square sizes.
func ScaleIcon(icon image.Image, sizes ...int) []image.Image {
	var images []image.Image

	for _, size := range sizes {
		scaled := image.NewRGBA(image.Rect(0, 0, size, size))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), icon, icon.Bounds(), draw.Src, nil)
		images = append(images, scaled)
	}

	return images
}
