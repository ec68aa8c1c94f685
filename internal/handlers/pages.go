// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"io/fs"
	"net/http"

	"bannerkit/internal/markdown"
	"bannerkit/internal/render"
	"bannerkit/web"
)

// Pages serves the landing endpoint, the playground, the API guide, the
// OpenAPI document, and static assets.
type Pages struct {
	pages    *render.Renderer
	docsHTML string
}

// NewPages creates a new Pages handler group. The API guide is converted
// from Markdown once, here.
func NewPages(pages *render.Renderer) (*Pages, error) {
	docs, err := markdown.ToHTML(web.DocsMarkdown)
	if err != nil {
		return nil, fmt.Errorf("render docs: %w", err)
	}
	return &Pages{pages: pages, docsHTML: docs}, nil
}

// Home serves GET /.
func (p *Pages) Home(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"hello": "world"})
}

// Test serves GET /test, the interactive playground.
func (p *Pages) Test(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(web.TestPage)
}

// Docs serves GET /docs.
func (p *Pages) Docs(w http.ResponseWriter, r *http.Request) {
	p.pages.Page(w, http.StatusOK, "docs", &render.PageData{Title: "Docs", Data: p.docsHTML})
}

// OpenAPI serves GET /api/docs.
func (p *Pages) OpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Write(web.OpenAPI)
}

// Static returns a file server for the embedded static assets, to be
// mounted under /static/.
func (p *Pages) Static() http.Handler {
	sub, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		// "static" is a literal embedded directory.
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
