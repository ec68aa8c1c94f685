// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package banner renders banner options as a PNG image, an HTML fragment,
// or plain text. Rendering is pure: missing options fall back to defaults
// and nothing is read from or written to storage.
package banner

import (
	"fmt"
	"image/color"
	"log/slog"
	"strconv"

	"bannerkit/internal/imaging"
	"bannerkit/internal/models"
)

// Kind selects the output format of a render.
type Kind string

const (
	KindImage Kind = "image"
	KindHTML  Kind = "html"
	KindText  Kind = "text"
)

// ParseKind maps a path segment to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch k := Kind(s); k {
	case KindImage, KindHTML, KindText:
		return k, true
	}
	return "", false
}

// ContentType returns the HTTP content type for the kind.
func (k Kind) ContentType() string {
	switch k {
	case KindImage:
		return "image/png"
	case KindHTML:
		return "text/html; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Renderer defaults.
const (
	DefaultWidth           = 1000
	DefaultHeight          = 100
	DefaultFontSize        = 30
	DefaultFontFamily      = "Arial"
	DefaultColor           = "black"
	DefaultBackgroundColor = "white"
)

// Output is a rendered banner and the content type to serve it with.
type Output struct {
	ContentType string
	Body        []byte
}

// Renderer turns banner options into output bytes.
type Renderer struct {
	fonts *imaging.Fonts
}

// NewRenderer creates a Renderer with its own font registry.
func NewRenderer() *Renderer {
	return &Renderer{fonts: imaging.NewFonts()}
}

// Render produces the banner in the requested kind. Only image output can
// fail on valid options; see Image.
func (r *Renderer) Render(kind Kind, opts models.BannerOptions) (*Output, error) {
	var (
		body []byte
		err  error
	)
	switch kind {
	case KindImage:
		body, err = r.Image(opts)
	case KindHTML:
		body = []byte(HTML(opts))
	case KindText:
		body = []byte(Text(opts))
	default:
		return nil, fmt.Errorf("banner: unknown render kind %q", kind)
	}
	if err != nil {
		return nil, err
	}
	return &Output{ContentType: kind.ContentType(), Body: body}, nil
}

// Image rasterizes opts into a PNG. Options that would size the canvas
// beyond models.MaxDimension or models.MaxFontSize are rejected with a
// *models.ValidationError before anything is allocated.
func (r *Renderer) Image(opts models.BannerOptions) ([]byte, error) {
	if err := opts.ValidateCanvas(); err != nil {
		return nil, fmt.Errorf("banner: %w", err)
	}
	s := resolve(opts)

	canvas := imaging.NewCanvas(s.width, s.height, parseColorOr(s.backgroundColor, DefaultBackgroundColor))

	face, err := r.fonts.Face(s.fontFamily, s.fontSize)
	if err != nil {
		return nil, fmt.Errorf("banner: %w", err)
	}
	defer face.Close()

	textWidth := imaging.MeasureString(face, s.text)
	x := HorizontalOffset(s.textAlign, float64(s.width), textWidth)
	y := VerticalOffset(s.textVerticalAlign, float64(s.height), s.fontSize)

	imaging.DrawString(canvas, face, parseColorOr(s.color, DefaultColor), x, y, s.text)

	return imaging.EncodePNG(canvas)
}

// HTML returns the fixed-structure HTML fragment for opts. The text is
// inserted as-is, without escaping, so callers may embed markup.
func HTML(opts models.BannerOptions) string {
	s := resolve(opts)
	return `
    <div style="width: ` + formatNumber(s.widthRaw) + `px; height: ` + formatNumber(s.heightRaw) + `px; background-color: ` + s.backgroundColor + `;">
    <div style="font-size: ` + formatNumber(s.fontSize) + `px; font-family: ` + s.fontFamily + `; color: ` + s.color + `;">
    ` + s.text + `
    </div>
    </div>
    `
}

// Text returns the text field verbatim, or "" when unset.
func Text(opts models.BannerOptions) string {
	if opts.Text == nil {
		return ""
	}
	return *opts.Text
}

// HorizontalOffset returns the x coordinate of the text origin.
func HorizontalOffset(align models.TextAlign, canvasWidth, textWidth float64) float64 {
	switch align {
	case models.TextAlignLeft:
		return 0
	case models.TextAlignRight:
		return canvasWidth - textWidth
	default:
		return (canvasWidth - textWidth) / 2
	}
}

// VerticalOffset returns the y coordinate of the text baseline. The center
// case is height/2 + fontSize/2, an approximation of centering that
// published banners already rely on.
func VerticalOffset(align models.VerticalAlign, canvasHeight, fontSize float64) float64 {
	switch align {
	case models.VerticalAlignTop:
		return 0
	case models.VerticalAlignBottom:
		return canvasHeight - fontSize
	default:
		return canvasHeight/2 + fontSize/2
	}
}

// settings are options with defaults applied.
type settings struct {
	text              string
	color             string
	backgroundColor   string
	fontSize          float64
	fontFamily        string
	width, height     int
	widthRaw          float64
	heightRaw         float64
	textAlign         models.TextAlign
	textVerticalAlign models.VerticalAlign
}

// resolve applies defaults. Zero values count as unset, so an explicit
// width of 0 or an empty color behaves like an omitted field.
func resolve(o models.BannerOptions) settings {
	s := settings{
		text:            str(o.Text, ""),
		color:           str(o.Color, DefaultColor),
		backgroundColor: str(o.BackgroundColor, DefaultBackgroundColor),
		fontFamily:      str(o.FontFamily, DefaultFontFamily),
		fontSize:        num(o.FontSize, DefaultFontSize),
		widthRaw:        num(o.Width, DefaultWidth),
		heightRaw:       num(o.Height, DefaultHeight),
	}
	// Canvas dimensions truncate toward zero.
	s.width = max(int(s.widthRaw), 1)
	s.height = max(int(s.heightRaw), 1)

	if o.TextAlign != nil {
		s.textAlign = *o.TextAlign
	}
	if o.TextVerticalAlign != nil {
		s.textVerticalAlign = *o.TextVerticalAlign
	}
	return s
}

func str(p *string, fallback string) string {
	if p == nil || *p == "" {
		return fallback
	}
	return *p
}

func num(p *float64, fallback float64) float64 {
	if p == nil || *p == 0 {
		return fallback
	}
	return *p
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseColorOr(s, fallback string) color.Color {
	if c, ok := imaging.ParseColor(s); ok {
		return c
	}
	slog.Debug("unrecognized banner color, using default", "color", s, "default", fallback)
	c, _ := imaging.ParseColor(fallback)
	return c
}
