package commands

import (
	"bytes"
	"testing"

	"github.com/oliverbestmann/trichrome/pulse"
)

func TestEncodeColor(t *testing.T) {
	tests := []struct {
		name     string
		color    pulse.Color
		expected [ColorUniformSize]byte
	}{
		{
			name:  "opaque red",
			color: pulse.ColorRed,
			expected: [ColorUniformSize]byte{
				0x00, 0x00, 0x80, 0x3f,
				0x00, 0x00, 0x00, 0x00,
				0x00, 0x00, 0x00, 0x00,
				0x00, 0x00, 0x80, 0x3f,
			},
		},
		{
			name:  "half transparent red",
			color: pulse.ColorLinearRGBA(1, 0, 0, 0.5),
			expected: [ColorUniformSize]byte{
				0x00, 0x00, 0x80, 0x3f,
				0x00, 0x00, 0x00, 0x00,
				0x00, 0x00, 0x00, 0x00,
				0x00, 0x00, 0x00, 0x3f,
			},
		},
		{
			name:     "transparent",
			color:    pulse.ColorTransparent,
			expected: [ColorUniformSize]byte{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := EncodeColor(tt.color)
			if encoded != tt.expected {
				t.Fatalf("expected % x, got % x", tt.expected, encoded)
			}
		})
	}
}

func TestColorUniformRejectsWrongSize(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic")
		}
	}()

	var u ColorUniform
	u.writeBytes(make([]byte, 12))
}

func TestColorUniformReadback(t *testing.T) {
	ctx := headlessContext(t)

	uniform := NewColorUniform(ctx, pulse.ColorLinearRGBA(0, 1, 0, 1))
	defer uniform.Release()

	colors := []pulse.Color{
		pulse.ColorRed,
		pulse.ColorLinearRGBA(0.25, 0.5, 0.75, 0.5),
		pulse.ColorTransparent,
	}

	for _, color := range colors {
		uniform.Write(color)

		data, err := pulse.ReadBuffer(ctx, uniform.Buffer(), ColorUniformSize)
		if err != nil {
			t.Fatalf("read buffer: %s", err)
		}

		expected := EncodeColor(color)
		if !bytes.Equal(data, expected[:]) {
			t.Fatalf("expected % x, got % x", expected, data)
		}
	}
}
