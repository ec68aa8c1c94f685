// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"heading with id", "# Rendering banners", []string{`<h1 id="rendering-banners">Rendering banners</h1>`}},
		{"table", "| a | b |\n|---|---|\n| 1 | 2 |", []string{"<table>", "<td>1</td>"}},
		{"raw html passthrough", `<img src="/banners/image?text=hi">`, []string{`<img src="/banners/image?text=hi">`}},
		{"fenced code highlighted", "```json\n{\"text\": \"hi\"}\n```", []string{"<pre", "text"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToHTML([]byte(tt.input))
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, got, w)
			}
		})
	}
}
