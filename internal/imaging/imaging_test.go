// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
		ok   bool
	}{
		{"white", color.NRGBA{255, 255, 255, 255}, true},
		{"Black", color.NRGBA{0, 0, 0, 255}, true},
		{" navy ", color.NRGBA{0, 0, 128, 255}, true},
		{"transparent", color.NRGBA{}, true},
		{"#f00", color.NRGBA{255, 0, 0, 255}, true},
		{"#f008", color.NRGBA{255, 0, 0, 0x88}, true},
		{"#00ff7f", color.NRGBA{0, 255, 127, 255}, true},
		{"#11223344", color.NRGBA{0x11, 0x22, 0x33, 0x44}, true},
		{"rgb(10, 20, 30)", color.NRGBA{10, 20, 30, 255}, true},
		{"rgba(10,20,30,0)", color.NRGBA{10, 20, 30, 0}, true},
		{"rgba(10,20,30,1)", color.NRGBA{10, 20, 30, 255}, true},
		{"", color.NRGBA{}, false},
		{"notacolor", color.NRGBA{}, false},
		{"#12", color.NRGBA{}, false},
		{"#gggggg", color.NRGBA{}, false},
		{"rgb(300,0,0)", color.NRGBA{}, false},
		{"rgb(1,2)", color.NRGBA{}, false},
		{"rgba(1,2,3,2)", color.NRGBA{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseColor(tt.in)
			require.Equal(t, tt.ok, ok)
			if !tt.ok {
				return
			}
			assert.Equal(t, tt.want, color.NRGBAModel.Convert(got))
		})
	}
}

func TestResolve(t *testing.T) {
	tests := map[string]string{
		"Arial":                    "go",
		"Go Mono":                  "go-mono",
		"'Courier New', monospace": "go-mono",
		"Unknown, Times New Roman": "go-medium",
		"Comic Sans MS":            DefaultFamily,
		"":                         DefaultFamily,
		"go-bold":                  "go-bold",
	}
	for in, want := range tests {
		assert.Equal(t, want, Resolve(in), "Resolve(%q)", in)
	}
}

func TestFontsFace(t *testing.T) {
	fonts := NewFonts()

	face, err := fonts.Face("Arial", 30)
	require.NoError(t, err)
	defer face.Close()

	narrow := MeasureString(face, "i")
	wide := MeasureString(face, "WWWW")
	assert.Greater(t, narrow, 0.0)
	assert.Greater(t, wide, narrow)
	assert.Equal(t, 0.0, MeasureString(face, ""))

	// Larger sizes measure wider.
	big, err := fonts.Face("Arial", 60)
	require.NoError(t, err)
	defer big.Close()
	assert.InDelta(t, 2*wide, MeasureString(big, "WWWW"), 1.0)

	// Parsed fonts are cached by family key.
	assert.Len(t, fonts.parsed, 1)
}

func TestCanvasDrawAndEncode(t *testing.T) {
	fonts := NewFonts()
	face, err := fonts.Face("monospace", 40)
	require.NoError(t, err)
	defer face.Close()

	img := NewCanvas(200, 60, color.White)
	DrawString(img, face, color.Black, 10, 45, "Hi")

	b, err := EncodePNG(img)
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 200, 60), decoded.Bounds())

	// Background untouched in a corner, some dark pixels where text landed.
	r, g, bl, _ := decoded.At(199, 0).RGBA()
	assert.Equal(t, uint32(0xffff), r&g&bl)

	dark := 0
	for y := 0; y < 60; y++ {
		for x := 0; x < 200; x++ {
			if r, _, _, _ := decoded.At(x, y).RGBA(); r < 0x8000 {
				dark++
			}
		}
	}
	assert.Greater(t, dark, 0, "text should leave dark pixels")
}
