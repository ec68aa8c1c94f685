// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging provides the raster primitives banners are drawn with:
// background-filled canvases, text measurement and drawing with TrueType
// faces, CSS color parsing, and PNG encoding.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	disimaging "github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// NewCanvas allocates a width x height canvas filled with bg.
func NewCanvas(width, height int, bg color.Color) *image.NRGBA {
	return disimaging.New(width, height, bg)
}

// MeasureString returns the advance width of text in pixels.
func MeasureString(face font.Face, text string) float64 {
	return fromFixed(font.MeasureString(face, text))
}

// DrawString draws text onto dst with its baseline origin at (x, y).
// Coordinates may be fractional or lie outside the canvas; glyphs are
// clipped to dst's bounds.
func DrawString(dst draw.Image, face font.Face, col color.Color, x, y float64, text string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: toFixed(x), Y: toFixed(y)},
	}
	d.DrawString(text)
}

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := disimaging.Encode(&buf, img, disimaging.PNG); err != nil {
		return nil, fmt.Errorf("imaging: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
