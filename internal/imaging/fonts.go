// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package imaging

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
	"golang.org/x/image/font/opentype"

	"bannerkit/internal/slug"
)

// DefaultFamily is used when a requested family is unknown.
const DefaultFamily = "go"

// families maps canonical family keys to embedded TrueType data.
var families = map[string][]byte{
	"go":             goregular.TTF,
	"go-bold":        gobold.TTF,
	"go-italic":      goitalic.TTF,
	"go-bold-italic": gobolditalic.TTF,
	"go-medium":      gomedium.TTF,
	"go-mono":        gomono.TTF,
	"go-mono-bold":   gomonobold.TTF,
	"go-smallcaps":   gosmallcaps.TTF,
}

// aliases maps common CSS family names onto the embedded Go fonts.
var aliases = map[string]string{
	"go-regular":      "go",
	"arial":           "go",
	"helvetica":       "go",
	"verdana":         "go",
	"sans-serif":      "go",
	"system-ui":       "go",
	"arial-bold":      "go-bold",
	"impact":          "go-bold",
	"serif":           "go-medium",
	"times":           "go-medium",
	"times-new-roman": "go-medium",
	"georgia":         "go-medium",
	"cursive":         "go-italic",
	"monospace":       "go-mono",
	"courier":         "go-mono",
	"courier-new":     "go-mono",
	"consolas":        "go-mono",
	"menlo":           "go-mono",
}

// Fonts resolves CSS font-family values to TrueType faces. Parsed fonts
// are cached and shared; faces are created per call because a font.Face
// is not safe for concurrent use.
type Fonts struct {
	mu     sync.Mutex
	parsed map[string]*opentype.Font
}

// NewFonts creates an empty font registry.
func NewFonts() *Fonts {
	return &Fonts{parsed: make(map[string]*opentype.Font)}
}

// Resolve returns the canonical family key for a CSS font-family value.
// Comma-separated fallback lists are tried in order; the first known
// family wins. Unknown values resolve to DefaultFamily.
func Resolve(family string) string {
	for _, candidate := range strings.Split(family, ",") {
		key := slug.Generate(candidate)
		if _, ok := families[key]; ok {
			return key
		}
		if alias, ok := aliases[key]; ok {
			return alias
		}
	}
	return DefaultFamily
}

// Face returns a new face for family at size pixels. The caller must
// Close it.
func (f *Fonts) Face(family string, size float64) (font.Face, error) {
	key := Resolve(family)

	parsed, err := f.font(key)
	if err != nil {
		return nil, err
	}

	// At 72 DPI one point is one pixel, which matches CSS "px" sizing.
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("imaging: face %s at %.1fpx: %w", key, size, err)
	}
	return face, nil
}

func (f *Fonts) font(key string) (*opentype.Font, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if parsed, ok := f.parsed[key]; ok {
		return parsed, nil
	}

	parsed, err := opentype.Parse(families[key])
	if err != nil {
		return nil, fmt.Errorf("imaging: parse font %s: %w", key, err)
	}
	f.parsed[key] = parsed
	return parsed, nil
}
