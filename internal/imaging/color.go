// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package imaging

import (
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor parses a CSS color: a named color ("navy"), "transparent",
// hex notation (#rgb, #rgba, #rrggbb, #rrggbbaa), or rgb()/rgba()
// functional notation. The boolean is false when s is not recognized.
func ParseColor(s string) (color.Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return nil, false
	}
	if s == "transparent" {
		return color.NRGBA{}, true
	}
	if c, ok := colornames.Map[s]; ok {
		return c, true
	}
	if strings.HasPrefix(s, "#") {
		return parseHex(s[1:])
	}
	if strings.HasPrefix(s, "rgb") {
		return parseRGBFunc(s)
	}
	return nil, false
}

func parseHex(h string) (color.Color, bool) {
	switch len(h) {
	case 3, 4:
		// Expand shorthand: "f0a" → "ff00aa".
		var b strings.Builder
		for _, r := range h {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		h = b.String()
	case 6, 8:
	default:
		return nil, false
	}

	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return nil, false
	}
	if len(h) == 6 {
		return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, true
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, true
}

// parseRGBFunc handles "rgb(r, g, b)" and "rgba(r, g, b, a)" where a is
// in [0, 1].
func parseRGBFunc(s string) (color.Color, bool) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return nil, false
	}
	name := s[:open]
	args := strings.Split(s[open+1:len(s)-1], ",")

	switch {
	case name == "rgb" && len(args) == 3:
	case name == "rgba" && len(args) == 4:
	default:
		return nil, false
	}

	var ch [3]uint8
	for i := 0; i < 3; i++ {
		n, err := strconv.Atoi(strings.TrimSpace(args[i]))
		if err != nil || n < 0 || n > 255 {
			return nil, false
		}
		ch[i] = uint8(n)
	}

	alpha := uint8(0xff)
	if len(args) == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(args[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return nil, false
		}
		alpha = uint8(a*255 + 0.5)
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: alpha}, true
}
