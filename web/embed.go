// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package web provides the embedded browser assets: the playground page,
// the API guide, the OpenAPI document, and the static files they load.
package web

import "embed"

// StaticFS embeds the web/static/ directory tree, served at /static/.
//
//go:embed all:static
var StaticFS embed.FS

// TestPage is the interactive playground served at /test.
//
//go:embed test.html
var TestPage []byte

// DocsMarkdown is the API guide rendered at /docs.
//
//go:embed docs.md
var DocsMarkdown []byte

// OpenAPI is the OpenAPI 3 document served at /api/docs.
//
//go:embed openapi.json
var OpenAPI []byte
