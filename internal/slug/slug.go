// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug normalizes free-form names into lowercase hyphenated keys.
// It is used to look up font families regardless of how a client spells
// them ("Courier New", "'courier new'", "courier_new").
package slug

import (
	"regexp"
	"strings"
)

var (
	// separators matches runs of whitespace, underscores and hyphens.
	separators = regexp.MustCompile(`[\s_-]+`)
	// disallowed matches anything left that isn't a letter, digit, or hyphen.
	disallowed = regexp.MustCompile(`[^a-z0-9-]`)
	// multipleHyphens collapses what removing disallowed characters leaves behind.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Generate creates a lookup key from the given name.
// Example: `"Times New Roman"` → "times-new-roman"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = separators.ReplaceAllString(result, "-")
	result = disallowed.ReplaceAllString(result, "")
	result = multipleHyphens.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}
