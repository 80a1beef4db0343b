package glimpse

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func TestScaleIcon(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for idx := range src.Pix {
		src.Pix[idx] = 0xff
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatalf("encode: %s", err)
	}

	icon, err := DecodeIcon(buf.Bytes())
	if err != nil {
		t.Fatalf("decode: %s", err)
	}

	images := ScaleIcon(icon, IconSizes...)
	if len(images) != len(IconSizes) {
		t.Fatalf("expected %d images, got %d", len(IconSizes), len(images))
	}

	for idx, img := range images {
		size := IconSizes[idx]
		if img.Bounds().Dx() != size || img.Bounds().Dy() != size {
			t.Errorf("expected %dx%d, got %v", size, size, img.Bounds())
		}

		if c := color.RGBAModel.Convert(img.At(size/2, size/2)).(color.RGBA); c.A != 0xff || c.R != 0xff {
			t.Errorf("expected opaque white, got %v", c)
		}
	}
}

func TestDecodeIconRejectsGarbage(t *testing.T) {
	if _, err := DecodeIcon([]byte("not an image")); err == nil {
		t.Fatalf("expected an error")
	}
}
